package dto

import (
	"fmt"
	"time"

	"tablebook/internal/domains/reservation/model"
	"tablebook/shared/constant"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	"tablebook/shared/timezone"

	"github.com/google/uuid"
)

const (
	openingMinutes = 10*60 + 30 // 10:30 AM
	closingMinutes = 21*60 + 30 // 9:30 PM, last seating
)

// AllowedFields is the set of payload fields accepted on create and update.
var AllowedFields = map[string]struct{}{
	model.FieldFirstName:       {},
	model.FieldLastName:        {},
	model.FieldMobileNumber:    {},
	model.FieldReservationDate: {},
	model.FieldReservationTime: {},
	model.FieldPeople:          {},
	model.FieldStatus:          {},
}

// AllowedStatusFields is the set of payload fields accepted on a status change.
var AllowedStatusFields = map[string]struct{}{
	model.FieldStatus: {},
}

type CreateReservationRequest struct {
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	MobileNumber    string `json:"mobile_number"    validate:"required"`
	ReservationDate string `json:"reservation_date" validate:"required"`
	ReservationTime string `json:"reservation_time" validate:"required"`
	People          int    `json:"people"`
	Status          string `json:"status"           validate:"omitempty"`
}

// Validate applies the ordered business rules on top of the struct tags:
// party size, date and time formats, future scheduling, the Tuesday closure,
// the service window, and the initial status.
func (r *CreateReservationRequest) Validate(now time.Time) error {
	if _, _, err := validateSchedule(r.ReservationDate, r.ReservationTime, r.People, now); err != nil {
		return err
	}

	if r.Status != "" && model.Status(r.Status) != model.StatusBooked {
		return failure.BadRequestFromString(fmt.Sprintf("reservation cannot be created with status %s", r.Status)) //nolint:wrapcheck
	}

	return nil
}

// ToModel builds a new booked reservation from the request. Validate must have
// passed before calling this.
func (r *CreateReservationRequest) ToModel() (model.Reservation, error) {
	date, err := timezone.Parse(constant.DateFormat, r.ReservationDate)
	if err != nil {
		return model.Reservation{}, failure.BadRequestFromString(invalidField(model.FieldReservationDate)) //nolint:wrapcheck
	}

	_, clock, err := parseClock(r.ReservationTime)
	if err != nil {
		return model.Reservation{}, err
	}

	now := timezone.Now()

	reservation := model.Reservation{
		ID:              uuid.New().String(),
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		MobileNumber:    r.MobileNumber,
		ReservationDate: date,
		ReservationTime: clock,
		People:          r.People,
		Status:          model.StatusBooked,
	}
	reservation.CreatedAt = now
	reservation.ModifiedAt = now

	return reservation, nil
}

type UpdateReservationRequest struct {
	FirstName       string `json:"first_name"       validate:"required"`
	LastName        string `json:"last_name"        validate:"required"`
	MobileNumber    string `json:"mobile_number"    validate:"required"`
	ReservationDate string `json:"reservation_date" validate:"required"`
	ReservationTime string `json:"reservation_time" validate:"required"`
	People          int    `json:"people"`
	Status          string `json:"status"           validate:"omitempty"`
}

// Validate applies the same scheduling rules as creation. A status, when
// present, only needs to be a known one; the transition check happens in the
// service against the stored reservation.
func (r *UpdateReservationRequest) Validate(now time.Time) error {
	if _, _, err := validateSchedule(r.ReservationDate, r.ReservationTime, r.People, now); err != nil {
		return err
	}

	if r.Status != "" && !model.Status(r.Status).Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown status: %s", r.Status)) //nolint:wrapcheck
	}

	return nil
}

// Fields returns the column values to persist for a full update.
func (r *UpdateReservationRequest) Fields() (map[string]any, error) {
	date, err := timezone.Parse(constant.DateFormat, r.ReservationDate)
	if err != nil {
		return nil, failure.BadRequestFromString(invalidField(model.FieldReservationDate)) //nolint:wrapcheck
	}

	_, clock, err := parseClock(r.ReservationTime)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		model.FieldFirstName:       r.FirstName,
		model.FieldLastName:        r.LastName,
		model.FieldMobileNumber:    r.MobileNumber,
		model.FieldReservationDate: date,
		model.FieldReservationTime: clock,
		model.FieldPeople:          r.People,
		constant.FieldModifiedAt:   timezone.Now(),
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ReservationResponse struct {
	ID              string `json:"id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MobileNumber    string `json:"mobile_number"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	People          int    `json:"people"`
	Status          string `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(reservation model.Reservation) {
	r.ID = reservation.ID
	r.FirstName = reservation.FirstName
	r.LastName = reservation.LastName
	r.MobileNumber = reservation.MobileNumber
	r.ReservationDate = timezone.Format(reservation.ReservationDate, constant.DateFormat)
	r.ReservationTime = reservation.ReservationTime
	r.People = reservation.People
	r.Status = string(reservation.Status)
	r.Metadata.FromModel(reservation.Metadata)
}

func NewReservationResponses(reservations []model.Reservation) []ReservationResponse {
	responses := make([]ReservationResponse, len(reservations))
	for i := range reservations {
		responses[i].FromModel(reservations[i])
	}

	return responses
}

// validateSchedule runs the date and time rules shared by create and update.
// The rules fire in a fixed order so a payload with several problems always
// reports the same one first.
func validateSchedule(dateValue, timeValue string, people int, now time.Time) (time.Time, int, error) {
	if people < 1 {
		return time.Time{}, 0, failure.BadRequestFromString("Invalid number of people") //nolint:wrapcheck
	}

	date, err := timezone.Parse(constant.DateFormat, dateValue)
	if err != nil {
		return time.Time{}, 0, failure.BadRequestFromString(invalidField(model.FieldReservationDate)) //nolint:wrapcheck
	}

	clock, _, err := parseClock(timeValue)
	if err != nil {
		return time.Time{}, 0, err
	}

	at := time.Date(date.Year(), date.Month(), date.Day(), clock/60, clock%60, 0, 0, timezone.GetLocation())
	if !at.After(now) {
		return time.Time{}, 0, failure.BadRequestFromString("Reservation must be set in the future") //nolint:wrapcheck
	}

	if date.Weekday() == time.Tuesday {
		return time.Time{}, 0, failure.BadRequestFromString("Restaurant is closed on Tuesdays") //nolint:wrapcheck
	}

	if clock < openingMinutes {
		return time.Time{}, 0, failure.BadRequestFromString("restaurant is not open until 10:30AM") //nolint:wrapcheck
	}

	if clock > closingMinutes {
		return time.Time{}, 0, failure.BadRequestFromString("cannot schedule a reservation after 9:30pm") //nolint:wrapcheck
	}

	return date, clock, nil
}

// parseClock converts a wall-clock string, with or without seconds, into
// minutes since midnight plus the canonical HH:MM:SS form. Seconds carry
// through the canonical form untouched; only the window checks flatten to
// minutes.
func parseClock(value string) (int, string, error) {
	for _, layout := range []string{constant.TimeFormat, constant.TimeFormatHHMM} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Hour()*60 + t.Minute(), t.Format(constant.TimeFormat), nil
		}
	}

	return 0, "", failure.BadRequestFromString(invalidField(model.FieldReservationTime)) //nolint:wrapcheck
}

func invalidField(field string) string {
	return fmt.Sprintf("Invalid %s", field)
}
