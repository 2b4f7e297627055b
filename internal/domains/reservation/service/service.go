package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tablebook/config"
	"tablebook/infras/otel"
	"tablebook/internal/domains/reservation/events"
	"tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/reservation/model/dto"
	"tablebook/internal/domains/reservation/repository"
	"tablebook/shared"
	"tablebook/shared/cache"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	"tablebook/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	ListByDate(ctx context.Context, date string) ([]dto.ReservationResponse, error)
	Search(ctx context.Context, mobileNumber string) ([]dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (dto.ReservationResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	publisher events.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Reservation, publisher events.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.Validate(timezone.Now()); err != nil {
		return res, err
	}

	reservation, err := req.ToModel()
	if err != nil {
		return res, err
	}

	if err = s.repo.Insert(ctx, reservation); err != nil {
		log.Error().Err(err).Msg("failed to create reservation")

		return res, fmt.Errorf("failed to create reservation: %w", err)
	}

	s.afterWrite(ctx, reservation.ID, reservation.Status, true)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetReservation, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to cache reservation")
		}
	}()

	return res, nil
}

// ListByDate returns the working set for a date: every reservation that day
// still awaiting or receiving service, ordered by reservation time. Finished
// and cancelled reservations stay out of the listing. An empty date means
// today.
func (s *serviceImpl) ListByDate(ctx context.Context, date string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.ListByDate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if date == "" {
		date = timezone.Format(timezone.Now(), constant.DateFormat)
	}

	day, err := timezone.Parse(constant.DateFormat, date)
	if err != nil {
		return res, failure.InvalidDateParam //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetAllReservation, date)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldReservationDate,
				Operator: gDto.FilterOperatorEq,
				Value:    day,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotIn,
				Value:    []any{string(model.StatusFinished), string(model.StatusCancelled)},
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldReservationTime,
		SortDir: gDto.SortDirAsc,
	}

	reservations, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res = dto.NewReservationResponses(reservations)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("failed to cache reservations")
		}
	}()

	return res, nil
}

// Search finds reservations whose mobile number contains the digits of the
// given term, in any lifecycle state. An empty term matches everything.
func (s *serviceImpl) Search(ctx context.Context, mobileNumber string) (res []dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	digits := shared.DigitsOnly(mobileNumber)

	reservations, err := s.repo.Search(ctx, digits)
	if err != nil {
		log.Error().Err(err).Msg("failed to search reservations")

		return res, fmt.Errorf("failed to search reservations: %w", err)
	}

	return dto.NewReservationResponses(reservations), nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	if reservation.Status == model.StatusFinished {
		return res, failure.BadRequestFromString("a finished reservation cannot be updated") //nolint:wrapcheck
	}

	if err = req.Validate(timezone.Now()); err != nil {
		return res, err
	}

	fields, err := req.Fields()
	if err != nil {
		return res, err
	}

	next := reservation.Status

	if req.Status != "" && model.Status(req.Status) != reservation.Status {
		next = model.Status(req.Status)
		if !reservation.Status.CanTransition(next) {
			return res, failure.BadRequestFromString(fmt.Sprintf("cannot update reservation status from %s to %s", reservation.Status, next)) //nolint:wrapcheck
		}

		fields[model.FieldStatus] = string(next)
	}

	if err = s.repo.Update(ctx, fields, s.writableByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation")

		return res, fmt.Errorf("failed to update reservation: %w", err)
	}

	s.afterWrite(ctx, id, next, next != reservation.Status)

	updated, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.getByID(ctx, id)
	if err != nil {
		return res, err
	}

	next := model.Status(req.Status)
	if !next.Valid() {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown status: %s", req.Status)) //nolint:wrapcheck
	}

	if reservation.Status == model.StatusFinished {
		return res, failure.BadRequestFromString("a finished reservation cannot be updated") //nolint:wrapcheck
	}

	if !reservation.Status.CanTransition(next) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot update reservation status from %s to %s", reservation.Status, next)) //nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldStatus:        string(next),
		constant.FieldModifiedAt: timezone.Now(),
	}

	if err = s.repo.Update(ctx, fields, s.writableByID(id)); err != nil {
		log.Error().Err(err).Msg("failed to update reservation status")

		return res, fmt.Errorf("failed to update reservation status: %w", err)
	}

	s.afterWrite(ctx, id, next, true)

	reservation.Status = next

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) getByID(ctx context.Context, id string) (model.Reservation, error) {
	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return reservation, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == "" {
		return reservation, failure.NotFound(fmt.Sprintf("Reservation not found. %s", id)) //nolint:wrapcheck
	}

	return reservation, nil
}

// writableByID scopes a write to the given reservation as long as it has not
// finished in the meantime. The extra predicate keeps a concurrent finish from
// being overwritten between the read and the write. The guard binds under its
// own arg name so a status column in the SET map cannot clobber it.
func (s *serviceImpl) writableByID(id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    string(model.StatusFinished),
				Table:    model.TableName,
			},
		},
	}
}

// afterWrite invalidates the read caches and, when the write moved the
// reservation to a new status, announces it. A full update that leaves the
// status alone must not put a phantom transition on the topic.
func (s *serviceImpl) afterWrite(ctx context.Context, id string, status model.Status, statusChanged bool) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetReservation, id))

		if statusChanged {
			s.publisher.StatusChanged(c, id, status)
		}
	}()
}
