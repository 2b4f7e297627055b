package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tablebook/infras/otel"
	"tablebook/infras/postgres"
	resModel "tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/table/model"
	"tablebook/shared"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/logger"
	gRepo "tablebook/shared/repository"
	"tablebook/shared/timezone"
)

type Table interface {
	Insert(ctx context.Context, model model.Table) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Seat(ctx context.Context, tableID, reservationID string) error
	Finish(ctx context.Context, tableID, reservationID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	reservations gRepo.Repository[resModel.Reservation]
	db           *postgres.Connection
	otel         otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository:   gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldID, db, otel),
		reservations: gRepo.NewRepository[resModel.Reservation](resModel.EntityName, resModel.TableName, resModel.FieldID, db, otel),
		db:           db,
		otel:         otel,
	}
}

// Seat assigns the reservation to the table and marks it seated in one
// transaction, so the table never points at a reservation that was not moved
// along with it.
func (repo *repositoryImpl) Seat(ctx context.Context, tableID, reservationID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.Seat")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.assign(ctx, tableID, reservationID, resModel.StatusSeated)
}

// Finish clears the reservation from the table and marks it finished in one
// transaction.
func (repo *repositoryImpl) Finish(ctx context.Context, tableID, reservationID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".table.Finish")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.assign(ctx, tableID, reservationID, resModel.StatusFinished)
}

func (repo *repositoryImpl) assign(ctx context.Context, tableID, reservationID string, status resModel.Status) (err error) {
	tx, err := repo.db.Write.Beginx()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	now := timezone.Now()

	var assignment any
	if status == resModel.StatusSeated {
		assignment = reservationID
	}

	tableFields := map[string]any{
		model.FieldReservationID: assignment,
		constant.FieldModifiedAt: now,
	}

	if err = repo.UpdateTx(ctx, tx, tableFields, shared.FilterByID(tableID, model.FieldID, model.TableName)); err != nil {
		return err
	}

	reservationFields := map[string]any{
		resModel.FieldStatus:     string(status),
		constant.FieldModifiedAt: now,
	}

	if err = repo.reservations.UpdateTx(ctx, tx, reservationFields, shared.FilterByID(reservationID, resModel.FieldID, resModel.TableName)); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return nil
}
