package table_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tablebook/config"
	"tablebook/infras/otel/mocks"
	"tablebook/internal/domains/table/model/dto"
	serviceMocks "tablebook/internal/domains/table/service/mocks"
	"tablebook/internal/handlers/table"
	cacheMocks "tablebook/shared/cache/mocks"
	"tablebook/shared/failure"
	"tablebook/transport/http/middleware"
)

func newServer(t *testing.T, apiKey string) (*httptest.Server, *serviceMocks.MockTable) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := serviceMocks.NewMockTable(ctrl)

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	appMiddleware := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, cacheMocks.NewCache())
	handler := table.New(mockService, appMiddleware, mocks.NewOtel())

	mux := chi.NewRouter()
	mux.Route("/v1", func(r chi.Router) {
		handler.Router(r)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server, mockService
}

func TestCreateTable(t *testing.T) {
	payload := `{"table_name":"Bar #1","capacity":4}`

	t.Run("missing API key", func(t *testing.T) {
		server, _ := newServer(t, "secret-key")

		resp, err := http.Post(server.URL+"/v1/tables", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid API key", func(t *testing.T) {
		server, mockService := newServer(t, "secret-key")

		mockService.EXPECT().
			Create(gomock.Any(), dto.CreateTableRequest{TableName: "Bar #1", Capacity: 4}).
			Return(dto.TableResponse{ID: "table-1", TableName: "Bar #1", Capacity: 4}, nil)

		req, err := http.NewRequest(http.MethodPost, server.URL+"/v1/tables", strings.NewReader(payload))
		require.NoError(t, err)
		req.Header.Set("X-API-Key", "secret-key")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("no key configured leaves the endpoint open", func(t *testing.T) {
		server, mockService := newServer(t, "")

		mockService.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.TableResponse{ID: "table-1"}, nil)

		resp, err := http.Post(server.URL+"/v1/tables", "application/json", strings.NewReader(payload))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("reservation_id is a recognized field", func(t *testing.T) {
		server, mockService := newServer(t, "")

		mockService.EXPECT().
			Create(gomock.Any(), dto.CreateTableRequest{TableName: "Bar #1", Capacity: 4}).
			Return(dto.TableResponse{ID: "table-1"}, nil)

		resp, err := http.Post(server.URL+"/v1/tables", "application/json", strings.NewReader(`{"table_name":"Bar #1","capacity":4,"reservation_id":null}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		server, _ := newServer(t, "")

		resp, err := http.Post(server.URL+"/v1/tables", "application/json", strings.NewReader(`{"table_name":"Bar #1","capacity":4,"color":"red"}`))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var envelope struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, http.StatusBadRequest, envelope.Status)
		assert.Equal(t, "Invalid field(s): color", envelope.Message)
	})
}

func TestGetTables(t *testing.T) {
	server, mockService := newServer(t, "")

	mockService.EXPECT().
		GetAll(gomock.Any()).
		Return([]dto.TableResponse{{ID: "table-1"}}, nil)

	resp, err := http.Get(server.URL + "/v1/tables")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSeatTable(t *testing.T) {
	t.Run("seated", func(t *testing.T) {
		server, mockService := newServer(t, "")

		reservationID := "res-1"

		mockService.EXPECT().
			Seat(gomock.Any(), "table-1", dto.SeatTableRequest{ReservationID: "res-1"}).
			Return(dto.TableResponse{ID: "table-1", ReservationID: &reservationID, Occupied: true}, nil)

		req, err := http.NewRequest(http.MethodPut, server.URL+"/v1/tables/table-1/seat", strings.NewReader(`{"reservation_id":"res-1"}`))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("occupied table error envelope", func(t *testing.T) {
		server, mockService := newServer(t, "")

		mockService.EXPECT().
			Seat(gomock.Any(), "table-1", gomock.Any()).
			Return(dto.TableResponse{}, failure.BadRequestFromString("table is occupied"))

		req, err := http.NewRequest(http.MethodPut, server.URL+"/v1/tables/table-1/seat", strings.NewReader(`{"reservation_id":"res-1"}`))
		require.NoError(t, err)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var envelope struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, "table is occupied", envelope.Message)
	})
}

func TestFinishTable(t *testing.T) {
	server, mockService := newServer(t, "")

	mockService.EXPECT().
		Finish(gomock.Any(), "table-1").
		Return(dto.TableResponse{ID: "table-1"}, nil)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/v1/tables/table-1/seat", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
