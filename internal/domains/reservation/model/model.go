package model

import (
	"time"

	"tablebook/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID              = "id"
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldMobileNumber    = "mobile_number"
	FieldReservationDate = "reservation_date"
	FieldReservationTime = "reservation_time"
	FieldPeople          = "people"
	FieldStatus          = "status"
)

// Reservation represents a single dining party booked for a given date and time.
type Reservation struct {
	ID              string    `db:"id"`
	FirstName       string    `db:"first_name"`
	LastName        string    `db:"last_name"`
	MobileNumber    string    `db:"mobile_number"`
	ReservationDate time.Time `db:"reservation_date"`
	ReservationTime string    `db:"reservation_time"`
	People          int       `db:"people"`
	Status          Status    `db:"status"`
	model.Metadata
}
