package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinory/skinory-api/internal/models"
)

func newMockRepo(t *testing.T) (*RoutineRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRoutineRepository(db), mock
}

func TestFindEntry_Absent(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT user_id, product_id, category, period, applied, created_at").
		WithArgs("usr-1", "prd-10", "day").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "product_id", "category", "period", "applied", "created_at"}))

	entry, err := repo.FindEntry("usr-1", "prd-10", models.PeriodDay)
	require.NoError(t, err)
	assert.Nil(t, entry, "absent entry must be nil, not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindEntry_Present(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Now().UTC()

	mock.ExpectQuery("SELECT user_id, product_id, category, period, applied, created_at").
		WithArgs("usr-1", "prd-10", "night").
		WillReturnRows(sqlmock.
			NewRows([]string{"user_id", "product_id", "category", "period", "applied", "created_at"}).
			AddRow("usr-1", "prd-10", "serum", "night", true, created))

	entry, err := repo.FindEntry("usr-1", "prd-10", models.PeriodNight)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "serum", entry.Category)
	assert.True(t, entry.Applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_UniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO routines").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Insert(&models.RoutineEntry{
		UserID: "usr-1", ProductID: "prd-10", Category: "cleanser",
		Period: models.PeriodDay, CreatedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, models.ErrDuplicateEntry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_Success(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO routines").
		WithArgs("usr-1", "prd-10", "cleanser", "day", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Insert(&models.RoutineEntry{
		UserID: "usr-1", ProductID: "prd-10", Category: "cleanser",
		Period: models.PeriodDay, Applied: false, CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplied_ReportsAffectedRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE routines").
		WithArgs("usr-1", "prd-10", true).
		WillReturnResult(sqlmock.NewResult(0, 2))

	rows, err := repo.UpdateApplied("usr-1", "prd-10", true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateApplied_ZeroRows(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE routines").
		WithArgs("usr-1", "prd-99", false).
		WillReturnResult(sqlmock.NewResult(0, 0))

	rows, err := repo.UpdateApplied("usr-1", "prd-99", false)
	require.NoError(t, err)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAllForPeriod(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM routines").
		WithArgs("usr-1", "night").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo.DeleteAllForPeriod("usr-1", models.PeriodNight))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListViews_PreservesStoreOrder(t *testing.T) {
	repo, mock := newMockRepo(t)
	base := time.Now().UTC()

	mock.ExpectQuery("SELECT r.product_id, p.name").
		WithArgs("usr-1", "night").
		WillReturnRows(sqlmock.
			NewRows([]string{"product_id", "name", "category", "skin_type", "price", "rating", "image_url", "applied", "created_at"}).
			AddRow("prd-10", "Gentle Foam", "cleanser", "oily", 12.5, 4.6, nil, false, base).
			AddRow("prd-20", "Night Serum", "serum", "oily", 24.0, 4.8, "https://cdn.example.com/serum.png", true, base.Add(time.Minute)))

	views, err := repo.ListViews("usr-1", models.PeriodNight)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Gentle Foam", views[0].ProductName)
	assert.Equal(t, "Night Serum", views[1].ProductName)
	assert.Empty(t, views[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/serum.png", views[1].ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}
