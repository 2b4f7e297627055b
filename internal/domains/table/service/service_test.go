package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tablebook/config"
	"tablebook/infras/otel/mocks"
	eventMocks "tablebook/internal/domains/reservation/events/mocks"
	reservationMocks "tablebook/internal/domains/reservation/mocks"
	resModel "tablebook/internal/domains/reservation/model"
	tableMocks "tablebook/internal/domains/table/mocks"
	"tablebook/internal/domains/table/model"
	"tablebook/internal/domains/table/model/dto"
	"tablebook/internal/domains/table/service"
	cacheMocks "tablebook/shared/cache/mocks"
	"tablebook/shared/failure"
	gDto "tablebook/shared/dto"
)

func newService(t *testing.T) (service.Table, *tableMocks.MockTable, *reservationMocks.MockReservation) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := tableMocks.NewMockTable(ctrl)
	mockResRepo := reservationMocks.NewMockReservation(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockResRepo, eventMocks.NewPublisher(), cfg, cacheMocks.NewCache(), mocks.NewOtel())

	return svc, mockRepo, mockResRepo
}

func freeTable() model.Table {
	return model.Table{
		ID:        "table-1",
		TableName: "Bar #1",
		Capacity:  4,
	}
}

func occupiedTable(reservationID string) model.Table {
	table := freeTable()
	table.ReservationID = &reservationID

	return table
}

func bookedReservation(people int) resModel.Reservation {
	return resModel.Reservation{
		ID:           "res-1",
		FirstName:    "Rick",
		LastName:     "Sanchez",
		MobileNumber: "2025550164",
		People:       people,
		Status:       resModel.StatusBooked,
	}
}

func TestTableService_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		var inserted model.Table

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, table model.Table) error {
				inserted = table

				return nil
			})

		res, err := svc.Create(context.Background(), dto.CreateTableRequest{TableName: "Bar #1", Capacity: 4})
		require.NoError(t, err)

		assert.NotEmpty(t, inserted.ID)
		assert.Equal(t, "Bar #1", res.TableName)
		assert.Equal(t, 4, res.Capacity)
		assert.False(t, res.Occupied)
	})

	t.Run("short name", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(context.Background(), dto.CreateTableRequest{TableName: "A", Capacity: 4})
		require.Error(t, err)
		assert.Equal(t, "table_name needs to be more than one character", err.Error())
	})

	t.Run("zero capacity", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(context.Background(), dto.CreateTableRequest{TableName: "Bar #1"})
		require.Error(t, err)
		assert.Equal(t, "Invalid number for capacity", err.Error())
	})
}

func TestTableService_GetAll(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Table, error) {
			assert.Equal(t, model.FieldTableName, params.SortBy)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Table{freeTable(), occupiedTable("res-9")}, nil
		})

	res, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.False(t, res[0].Occupied)
	assert.True(t, res[1].Occupied)
}

func TestTableService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freeTable(), nil)

		res, err := svc.Get(context.Background(), "table-1")
		require.NoError(t, err)
		assert.Equal(t, "table-1", res.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Table{}, nil)

		_, err := svc.Get(context.Background(), "missing-id")
		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.Equal(t, "table cannot be found. missing-id", err.Error())
	})
}

func TestTableService_Seat(t *testing.T) {
	req := dto.SeatTableRequest{ReservationID: "res-1"}

	t.Run("seats a booked reservation", func(t *testing.T) {
		svc, mockRepo, mockResRepo := newService(t)

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookedReservation(4), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freeTable(), nil)
		mockRepo.EXPECT().
			Seat(gomock.Any(), "table-1", "res-1").
			Return(nil)

		res, err := svc.Seat(context.Background(), "table-1", req)
		require.NoError(t, err)
		assert.True(t, res.Occupied)
		require.NotNil(t, res.ReservationID)
		assert.Equal(t, "res-1", *res.ReservationID)
	})

	t.Run("reservation not found", func(t *testing.T) {
		svc, _, mockResRepo := newService(t)

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(resModel.Reservation{}, nil)

		_, err := svc.Seat(context.Background(), "table-1", req)
		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
		assert.Equal(t, "res-1 not found", err.Error())
	})

	t.Run("table not found", func(t *testing.T) {
		svc, mockRepo, mockResRepo := newService(t)

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookedReservation(4), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Table{}, nil)

		_, err := svc.Seat(context.Background(), "missing-table", req)
		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("occupied table", func(t *testing.T) {
		svc, mockRepo, mockResRepo := newService(t)

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookedReservation(4), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(occupiedTable("res-9"), nil)

		_, err := svc.Seat(context.Background(), "table-1", req)
		require.Error(t, err)
		assert.Equal(t, "table is occupied", err.Error())
	})

	t.Run("party larger than capacity", func(t *testing.T) {
		svc, mockRepo, mockResRepo := newService(t)

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookedReservation(6), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freeTable(), nil)

		_, err := svc.Seat(context.Background(), "table-1", req)
		require.Error(t, err)
		assert.Equal(t, "reservation is greater than table capacity", err.Error())
	})

	t.Run("already seated reservation", func(t *testing.T) {
		svc, mockRepo, mockResRepo := newService(t)

		reservation := bookedReservation(4)
		reservation.Status = resModel.StatusSeated

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(reservation, nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freeTable(), nil)

		_, err := svc.Seat(context.Background(), "table-1", req)
		require.Error(t, err)
		assert.Equal(t, "reservation is already seated.", err.Error())
	})

	t.Run("cancelled reservation", func(t *testing.T) {
		svc, mockRepo, mockResRepo := newService(t)

		reservation := bookedReservation(4)
		reservation.Status = resModel.StatusCancelled

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(reservation, nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freeTable(), nil)

		_, err := svc.Seat(context.Background(), "table-1", req)
		require.Error(t, err)
		assert.Equal(t, "reservation is cancelled", err.Error())
	})

	t.Run("write failure surfaces", func(t *testing.T) {
		svc, mockRepo, mockResRepo := newService(t)

		mockResRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(bookedReservation(4), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freeTable(), nil)
		mockRepo.EXPECT().
			Seat(gomock.Any(), "table-1", "res-1").
			Return(errors.New("database error"))

		_, err := svc.Seat(context.Background(), "table-1", req)
		assert.Error(t, err)
	})
}

func TestTableService_Finish(t *testing.T) {
	t.Run("clears the table", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(occupiedTable("res-1"), nil)
		mockRepo.EXPECT().
			Finish(gomock.Any(), "table-1", "res-1").
			Return(nil)

		res, err := svc.Finish(context.Background(), "table-1")
		require.NoError(t, err)
		assert.False(t, res.Occupied)
		assert.Nil(t, res.ReservationID)
	})

	t.Run("free table", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(freeTable(), nil)

		_, err := svc.Finish(context.Background(), "table-1")
		require.Error(t, err)
		assert.Equal(t, "table is not occupied", err.Error())
	})

	t.Run("table not found", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Table{}, nil)

		_, err := svc.Finish(context.Background(), "missing-table")
		require.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
