package model

import (
	"tablebook/shared/model"
)

const (
	TableName  = "tables"
	EntityName = "table"

	FieldID            = "id"
	FieldTableName     = "table_name"
	FieldCapacity      = "capacity"
	FieldReservationID = "reservation_id"
)

// Table is a dining table. ReservationID points at the party currently seated
// there, or is nil when the table is free.
type Table struct {
	ID            string  `db:"id"`
	TableName     string  `db:"table_name"`
	Capacity      int     `db:"capacity"`
	ReservationID *string `db:"reservation_id"`
	model.Metadata
}

// Occupied reports whether a party is seated at the table.
func (t *Table) Occupied() bool {
	return t.ReservationID != nil
}
