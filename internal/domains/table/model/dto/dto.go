package dto

import (
	"tablebook/internal/domains/table/model"
	gDto "tablebook/shared/dto"
	"tablebook/shared/failure"
	"tablebook/shared/timezone"

	"github.com/google/uuid"
)

// AllowedFields is the set of payload fields accepted when creating a table.
// reservation_id is recognized but ignored: a new table always starts free.
var AllowedFields = map[string]struct{}{
	model.FieldTableName:     {},
	model.FieldCapacity:      {},
	model.FieldReservationID: {},
}

// AllowedSeatFields is the set of payload fields accepted when seating a party.
var AllowedSeatFields = map[string]struct{}{
	model.FieldReservationID: {},
}

type CreateTableRequest struct {
	TableName string `json:"table_name" validate:"required"`
	Capacity  int    `json:"capacity"`
}

func (r *CreateTableRequest) Validate() error {
	if len(r.TableName) < 2 {
		return failure.BadRequestFromString("table_name needs to be more than one character") //nolint:wrapcheck
	}

	if r.Capacity < 1 {
		return failure.BadRequestFromString("Invalid number for capacity") //nolint:wrapcheck
	}

	return nil
}

func (r *CreateTableRequest) ToModel() model.Table {
	now := timezone.Now()

	table := model.Table{
		ID:        uuid.New().String(),
		TableName: r.TableName,
		Capacity:  r.Capacity,
	}
	table.CreatedAt = now
	table.ModifiedAt = now

	return table
}

type SeatTableRequest struct {
	ReservationID string `json:"reservation_id" validate:"required"`
}

type TableResponse struct {
	ID            string  `json:"id"`
	TableName     string  `json:"table_name"`
	Capacity      int     `json:"capacity"`
	ReservationID *string `json:"reservation_id"`
	Occupied      bool    `json:"occupied"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(table model.Table) {
	r.ID = table.ID
	r.TableName = table.TableName
	r.Capacity = table.Capacity
	r.ReservationID = table.ReservationID
	r.Occupied = table.Occupied()
	r.Metadata.FromModel(table.Metadata)
}

func NewTableResponses(tables []model.Table) []TableResponse {
	responses := make([]TableResponse, len(tables))
	for i := range tables {
		responses[i].FromModel(tables[i])
	}

	return responses
}
