package dto_test

import (
	"testing"
	"time"

	"tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/reservation/model/dto"
	"tablebook/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Monday at noon so relative dates in the cases stay deterministic.
func fixedNow() time.Time {
	return time.Date(2026, time.March, 2, 12, 0, 0, 0, timezone.GetLocation())
}

func validCreateRequest() dto.CreateReservationRequest {
	return dto.CreateReservationRequest{
		FirstName:       "Rick",
		LastName:        "Sanchez",
		MobileNumber:    "(202) 555-0164",
		ReservationDate: "2026-03-04",
		ReservationTime: "17:30",
		People:          4,
	}
}

func TestCreateReservationRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(r *dto.CreateReservationRequest)
		message string
	}{
		{
			name:   "valid",
			mutate: func(r *dto.CreateReservationRequest) {},
		},
		{
			name:   "valid with seconds and explicit status",
			mutate: func(r *dto.CreateReservationRequest) { r.ReservationTime = "17:30:00"; r.Status = "booked" },
		},
		{
			name:    "zero people",
			mutate:  func(r *dto.CreateReservationRequest) { r.People = 0 },
			message: "Invalid number of people",
		},
		{
			name:    "negative people",
			mutate:  func(r *dto.CreateReservationRequest) { r.People = -2 },
			message: "Invalid number of people",
		},
		{
			name:    "malformed date",
			mutate:  func(r *dto.CreateReservationRequest) { r.ReservationDate = "not-a-date" },
			message: "Invalid reservation_date",
		},
		{
			name:    "malformed time",
			mutate:  func(r *dto.CreateReservationRequest) { r.ReservationTime = "half past five" },
			message: "Invalid reservation_time",
		},
		{
			name: "date in the past",
			mutate: func(r *dto.CreateReservationRequest) {
				r.ReservationDate = "2026-02-25"
			},
			message: "Reservation must be set in the future",
		},
		{
			name: "same day earlier time",
			mutate: func(r *dto.CreateReservationRequest) {
				r.ReservationDate = "2026-03-02"
				r.ReservationTime = "11:00"
			},
			message: "Reservation must be set in the future",
		},
		{
			name: "tuesday",
			mutate: func(r *dto.CreateReservationRequest) {
				r.ReservationDate = "2026-03-03"
			},
			message: "Restaurant is closed on Tuesdays",
		},
		{
			name:    "before opening",
			mutate:  func(r *dto.CreateReservationRequest) { r.ReservationTime = "10:29" },
			message: "restaurant is not open until 10:30AM",
		},
		{
			name:   "exactly at opening",
			mutate: func(r *dto.CreateReservationRequest) { r.ReservationTime = "10:30" },
		},
		{
			name:   "exactly at last seating",
			mutate: func(r *dto.CreateReservationRequest) { r.ReservationTime = "21:30" },
		},
		{
			name:    "after last seating",
			mutate:  func(r *dto.CreateReservationRequest) { r.ReservationTime = "21:31" },
			message: "cannot schedule a reservation after 9:30pm",
		},
		{
			name:    "created as seated",
			mutate:  func(r *dto.CreateReservationRequest) { r.Status = "seated" },
			message: "reservation cannot be created with status seated",
		},
		{
			name:    "created as finished",
			mutate:  func(r *dto.CreateReservationRequest) { r.Status = "finished" },
			message: "reservation cannot be created with status finished",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)

			err := req.Validate(fixedNow())

			if tc.message == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tc.message, err.Error())
			}
		})
	}
}

func TestCreateReservationRequestValidateOrder(t *testing.T) {
	// A payload broken in several ways reports the party size first.
	req := validCreateRequest()
	req.People = 0
	req.ReservationDate = "2026-03-03"
	req.ReservationTime = "23:00"

	err := req.Validate(fixedNow())
	require.Error(t, err)
	assert.Equal(t, "Invalid number of people", err.Error())
}

func TestCreateReservationRequestToModel(t *testing.T) {
	req := validCreateRequest()
	require.NoError(t, req.Validate(fixedNow()))

	reservation, err := req.ToModel()
	require.NoError(t, err)

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, "Rick", reservation.FirstName)
	assert.Equal(t, "Sanchez", reservation.LastName)
	assert.Equal(t, "(202) 555-0164", reservation.MobileNumber)
	assert.Equal(t, "2026-03-04", reservation.ReservationDate.Format("2006-01-02"))
	assert.Equal(t, "17:30:00", reservation.ReservationTime)
	assert.Equal(t, 4, reservation.People)
	assert.Equal(t, model.StatusBooked, reservation.Status)
	assert.False(t, reservation.CreatedAt.IsZero())
	assert.Equal(t, reservation.CreatedAt, reservation.ModifiedAt)
}

func TestCreateReservationRequestToModelKeepsSeconds(t *testing.T) {
	req := validCreateRequest()
	req.ReservationTime = "17:30:45"
	require.NoError(t, req.Validate(fixedNow()))

	reservation, err := req.ToModel()
	require.NoError(t, err)

	assert.Equal(t, "17:30:45", reservation.ReservationTime)

	var res dto.ReservationResponse
	res.FromModel(reservation)

	assert.Equal(t, "17:30:45", res.ReservationTime)
}

func TestUpdateReservationRequestValidate(t *testing.T) {
	req := dto.UpdateReservationRequest{
		FirstName:       "Morty",
		LastName:        "Smith",
		MobileNumber:    "202-555-0199",
		ReservationDate: "2026-03-04",
		ReservationTime: "18:00",
		People:          2,
	}

	assert.NoError(t, req.Validate(fixedNow()))

	req.Status = "cancelled"
	assert.NoError(t, req.Validate(fixedNow()))

	req.Status = "archived"
	err := req.Validate(fixedNow())
	require.Error(t, err)
	assert.Equal(t, "unknown status: archived", err.Error())
}

func TestUpdateReservationRequestFields(t *testing.T) {
	req := dto.UpdateReservationRequest{
		FirstName:       "Morty",
		LastName:        "Smith",
		MobileNumber:    "202-555-0199",
		ReservationDate: "2026-03-04",
		ReservationTime: "18:00",
		People:          2,
	}

	fields, err := req.Fields()
	require.NoError(t, err)

	assert.Equal(t, "Morty", fields[model.FieldFirstName])
	assert.Equal(t, "18:00:00", fields[model.FieldReservationTime])
	assert.Equal(t, 2, fields[model.FieldPeople])
	assert.NotContains(t, fields, model.FieldStatus)
	assert.Contains(t, fields, "modified_at")

	date, ok := fields[model.FieldReservationDate].(time.Time)
	require.True(t, ok)
	assert.Equal(t, "2026-03-04", date.Format("2006-01-02"))

	req.ReservationTime = "18:00:30"

	fields, err = req.Fields()
	require.NoError(t, err)
	assert.Equal(t, "18:00:30", fields[model.FieldReservationTime])
}

func TestReservationResponseFromModel(t *testing.T) {
	date, err := timezone.Parse("2006-01-02", "2026-03-04")
	require.NoError(t, err)

	reservation := model.Reservation{
		ID:              "res-1",
		FirstName:       "Rick",
		LastName:        "Sanchez",
		MobileNumber:    "2025550164",
		ReservationDate: date,
		ReservationTime: "17:30:00",
		People:          4,
		Status:          model.StatusBooked,
	}

	var res dto.ReservationResponse
	res.FromModel(reservation)

	assert.Equal(t, "res-1", res.ID)
	assert.Equal(t, "2026-03-04", res.ReservationDate)
	assert.Equal(t, "17:30:00", res.ReservationTime)
	assert.Equal(t, "booked", res.Status)
}
