package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablebook/infras/otel/mocks"
	"tablebook/infras/postgres"
	"tablebook/internal/domains/reservation/model"
	"tablebook/internal/domains/reservation/repository"
	gDto "tablebook/shared/dto"
)

func newRepository(t *testing.T) (repository.Reservation, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	conn := &postgres.Connection{Read: sqlxDB, Write: sqlxDB}

	return repository.New(conn, mocks.NewOtel()), mock
}

func TestReservationRepository_UpdateKeepsStatusGuard(t *testing.T) {
	// A status write scoped by a not-finished predicate binds the new status
	// in SET and finished in WHERE. When both sides share the arg name, the
	// SET value silently replaces the guard, so the bound values are asserted
	// here against the real named-query compilation.
	repo, mock := newRepository(t)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    "res-1",
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "current_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorNotEq,
				Value:    string(model.StatusFinished),
				Table:    model.TableName,
			},
		},
	}

	mock.ExpectExec(`UPDATE reservations SET status = .* WHERE \(reservations\.id = .* AND reservations\.status != .*\)`).
		WithArgs("seated", "res-1", "finished").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{model.FieldStatus: "seated"}, filter)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReservationRepository_Search(t *testing.T) {
	repo, mock := newRepository(t)

	rows := sqlmock.NewRows([]string{"id", "first_name", "last_name", "mobile_number", "people", "status"}).
		AddRow("res-1", "Rick", "Sanchez", "(202) 555-0164", 4, "booked")

	mock.ExpectPrepare(`SELECT .* FROM reservations WHERE translate\(mobile_number, '\(\) -', ''\) LIKE .* ORDER BY reservation_date`).
		ExpectQuery().
		WithArgs("%2025550164%").
		WillReturnRows(rows)

	reservations, err := repo.Search(context.Background(), "2025550164")
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "(202) 555-0164", reservations[0].MobileNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}
