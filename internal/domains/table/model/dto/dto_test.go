package dto_test

import (
	"testing"

	"tablebook/internal/domains/table/model"
	"tablebook/internal/domains/table/model/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTableRequestValidate(t *testing.T) {
	cases := []struct {
		name    string
		req     dto.CreateTableRequest
		message string
	}{
		{name: "valid", req: dto.CreateTableRequest{TableName: "#1", Capacity: 6}},
		{name: "single character name", req: dto.CreateTableRequest{TableName: "A", Capacity: 6}, message: "table_name needs to be more than one character"},
		{name: "zero capacity", req: dto.CreateTableRequest{TableName: "Bar #1"}, message: "Invalid number for capacity"},
		{name: "negative capacity", req: dto.CreateTableRequest{TableName: "Bar #1", Capacity: -1}, message: "Invalid number for capacity"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()

			if tc.message == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tc.message, err.Error())
			}
		})
	}
}

func TestCreateTableRequestToModel(t *testing.T) {
	req := dto.CreateTableRequest{TableName: "Bar #1", Capacity: 6}

	table := req.ToModel()

	assert.NotEmpty(t, table.ID)
	assert.Equal(t, "Bar #1", table.TableName)
	assert.Equal(t, 6, table.Capacity)
	assert.Nil(t, table.ReservationID)
	assert.False(t, table.Occupied())
	assert.False(t, table.CreatedAt.IsZero())
}

func TestAllowedFieldsRecognizeReservationID(t *testing.T) {
	assert.Contains(t, dto.AllowedFields, model.FieldReservationID)
}

func TestTableResponseFromModel(t *testing.T) {
	reservationID := "res-1"

	table := model.Table{
		ID:            "table-1",
		TableName:     "Bar #1",
		Capacity:      6,
		ReservationID: &reservationID,
	}

	var res dto.TableResponse
	res.FromModel(table)

	assert.Equal(t, "table-1", res.ID)
	assert.True(t, res.Occupied)
	require.NotNil(t, res.ReservationID)
	assert.Equal(t, "res-1", *res.ReservationID)
}
