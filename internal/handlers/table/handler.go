package table

import (
	"net/http"

	"tablebook/infras/otel"
	"tablebook/internal/domains/table/model/dto"
	"tablebook/internal/domains/table/service"
	"tablebook/shared/constant"
	"tablebook/shared/validator"
	"tablebook/transport/http/middleware"
	"tablebook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Table
	middleware middleware.AppMiddleware
	otel       otel.Otel
}

func New(service service.Table, middleware middleware.AppMiddleware, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/tables", func(routerGroup chi.Router) {
		routerGroup.With(handler.middleware.APIKey()).Post("/", handler.CreateTable)
		routerGroup.Get("/", handler.GetTables)
		routerGroup.Route("/{id}", func(routerGroup chi.Router) {
			routerGroup.Get("/", handler.GetTableByID)
			routerGroup.Put("/seat", handler.SeatTable)
			routerGroup.Delete("/seat", handler.FinishTable)
		})
	})
}

// CreateTable registers a new dining table. Guarded by the API key.
func (handler *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTable")
	defer scope.End()

	var req dto.CreateTableRequest
	if err := validator.ValidateKnownFields(r.Body, &req, dto.AllowedFields); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create table")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

func (handler *Handler) GetTables(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTables")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get tables")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetTableByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTableByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get table")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// SeatTable seats a booked reservation at the table.
func (handler *Handler) SeatTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SeatTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.SeatTableRequest
	if err := validator.ValidateKnownFields(r.Body, &req, dto.AllowedSeatFields); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Seat(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to seat reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation seated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// FinishTable frees the table and closes out its reservation.
func (handler *Handler) FinishTable(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinishTable")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Finish(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to finish reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Table finished successfully")

	response.WithJSON(w, http.StatusOK, res)
}
