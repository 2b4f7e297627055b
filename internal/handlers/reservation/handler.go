package reservation

import (
	"net/http"

	"tablebook/infras/otel"
	"tablebook/internal/domains/reservation/model/dto"
	"tablebook/internal/domains/reservation/service"
	"tablebook/shared/constant"
	"tablebook/shared/validator"
	"tablebook/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Route("/{id}", func(routerGroup chi.Router) {
			routerGroup.Get("/", handler.GetReservationByID)
			routerGroup.Put("/", handler.UpdateReservation)
			routerGroup.Put("/status", handler.UpdateReservationStatus)
		})
	})
}

// CreateReservation books a new reservation and echoes the stored record back.
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	var req dto.CreateReservationRequest
	if err := validator.ValidateKnownFields(r.Body, &req, dto.AllowedFields); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetReservations lists a day's open reservations, or searches by mobile
// number when the mobile_number parameter is present.
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	query := r.URL.Query()

	if query.Has(constant.RequestParamMobileNumber) {
		res, err := handler.service.Search(ctx, query.Get(constant.RequestParamMobileNumber))
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to search reservations")

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusOK, res)

		return
	}

	res, err := handler.service.ListByDate(ctx, query.Get(constant.RequestParamDate))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateReservationRequest
	if err := validator.ValidateKnownFields(r.Body, &req, dto.AllowedFields); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) UpdateReservationStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservationStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	var req dto.UpdateStatusRequest
	if err := validator.ValidateKnownFields(r.Body, &req, dto.AllowedStatusFields); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update reservation status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation status updated successfully")

	response.WithJSON(w, http.StatusOK, res)
}
