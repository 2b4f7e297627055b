package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tablebook/config"
	"tablebook/infras/otel"
	"tablebook/internal/domains/reservation/events"
	resModel "tablebook/internal/domains/reservation/model"
	resRepo "tablebook/internal/domains/reservation/repository"
	"tablebook/internal/domains/table/model"
	"tablebook/internal/domains/table/model/dto"
	"tablebook/internal/domains/table/repository"
	"tablebook/shared"
	"tablebook/shared/cache"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTable    = "table:get"
	cacheGetAllTable = "table:gets"

	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
)

type Table interface {
	Create(ctx context.Context, req dto.CreateTableRequest) (dto.TableResponse, error)
	GetAll(ctx context.Context) ([]dto.TableResponse, error)
	Get(ctx context.Context, id string) (dto.TableResponse, error)
	Seat(ctx context.Context, tableID string, req dto.SeatTableRequest) (dto.TableResponse, error)
	Finish(ctx context.Context, tableID string) (dto.TableResponse, error)
}

type serviceImpl struct {
	repo            repository.Table
	reservationRepo resRepo.Reservation
	publisher       events.Publisher
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(repo repository.Table, reservationRepo resRepo.Reservation, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Table {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.Validate(); err != nil {
		return res, err
	}

	table := req.ToModel()

	if err = s.repo.Insert(ctx, table); err != nil {
		log.Error().Err(err).Msg("failed to create table")

		return res, fmt.Errorf("failed to create table: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
	}()

	res.FromModel(table)

	return res, nil
}

// GetAll returns every table ordered by name, with its current occupancy.
func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllTable)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tables")

		return res, nil
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldTableName,
		SortDir: gDto.SortDirAsc,
	}

	tables, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res = dto.NewTableResponses(tables)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to cache tables")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTable, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table")

		return res, nil
	}

	table, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(table)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to cache table")
		}
	}()

	return res, nil
}

// Seat assigns a booked reservation to a free table with enough seats. The
// occupancy and capacity checks happen up front so a rejected request never
// touches either row.
func (s *serviceImpl) Seat(ctx context.Context, tableID string, req dto.SeatTableRequest) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Seat")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(req.ReservationID, resModel.FieldID, resModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return res, failure.NotFound(fmt.Sprintf("%s not found", req.ReservationID)) //nolint:wrapcheck
	}

	table, err := s.getByID(ctx, tableID)
	if err != nil {
		return res, err
	}

	if table.Occupied() {
		return res, failure.BadRequestFromString("table is occupied") //nolint:wrapcheck
	}

	if reservation.People > table.Capacity {
		return res, failure.BadRequestFromString("reservation is greater than table capacity") //nolint:wrapcheck
	}

	if reservation.Status != resModel.StatusBooked {
		if reservation.Status == resModel.StatusSeated {
			return res, failure.BadRequestFromString("reservation is already seated.") //nolint:wrapcheck
		}

		return res, failure.BadRequestFromString(fmt.Sprintf("reservation is %s", reservation.Status)) //nolint:wrapcheck
	}

	if err = s.repo.Seat(ctx, tableID, reservation.ID); err != nil {
		log.Error().Err(err).Msg("failed to seat reservation")

		return res, fmt.Errorf("failed to seat reservation: %w", err)
	}

	s.afterAssignment(ctx, reservation.ID, resModel.StatusSeated)

	table.ReservationID = &reservation.ID

	res.FromModel(table)

	return res, nil
}

// Finish clears the table and closes out the seated reservation.
func (s *serviceImpl) Finish(ctx context.Context, tableID string) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".table.Finish")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.getByID(ctx, tableID)
	if err != nil {
		return res, err
	}

	if !table.Occupied() {
		return res, failure.BadRequestFromString("table is not occupied") //nolint:wrapcheck
	}

	reservationID := *table.ReservationID

	if err = s.repo.Finish(ctx, tableID, reservationID); err != nil {
		log.Error().Err(err).Msg("failed to finish reservation")

		return res, fmt.Errorf("failed to finish reservation: %w", err)
	}

	s.afterAssignment(ctx, reservationID, resModel.StatusFinished)

	table.ReservationID = nil

	res.FromModel(table)

	return res, nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Table, error) {
	table, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return table, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == "" {
		return table, failure.NotFound(fmt.Sprintf("table cannot be found. %s", id)) //nolint:wrapcheck
	}

	return table, nil
}

// afterAssignment drops every cache touched by a seating change and announces
// the reservation's new status.
func (s *serviceImpl) afterAssignment(ctx context.Context, reservationID string, status resModel.Status) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
		shared.InvalidateCaches(c, s.cache, cacheGetTable)
		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetReservation, reservationID))

		s.publisher.StatusChanged(c, reservationID, status)
	}()
}
