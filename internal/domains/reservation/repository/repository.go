package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tablebook/infras/otel"
	"tablebook/infras/postgres"
	"tablebook/internal/domains/reservation/model"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/logger"
	gRepo "tablebook/shared/repository"
)

// searchQuery matches on the digits of the stored mobile number so formatting
// punctuation in either the stored value or the search term is ignored.
const searchQuery = `SELECT id, first_name, last_name, mobile_number, reservation_date, reservation_time, people, status, created_at, modified_at
FROM reservations
WHERE translate(mobile_number, '() -', '') LIKE :mobile_number
ORDER BY reservation_date`

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Search(ctx context.Context, digits string) ([]model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Search returns every reservation, regardless of status, whose mobile number
// contains the given digits. Results come back oldest reservation date first.
func (repo *repositoryImpl) Search(ctx context.Context, digits string) ([]model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Search")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, searchQuery)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, searchQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	reservations := []model.Reservation{}

	err = prepare.SelectContext(ctx, &reservations, map[string]any{
		model.FieldMobileNumber: "%" + digits + "%",
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to search data (%s): %w", model.EntityName, err)
	}

	return reservations, nil
}
