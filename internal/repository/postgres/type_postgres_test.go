package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mydocs/internal/model"
)

var typeColumns = []string{"id", "title", "abbreviation", "created_at", "updated_at"}

func TestTypePostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTypePostgres(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("create", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO types").
			WithArgs("Identity Card", "ID").
			WillReturnRows(sqlmock.NewRows(typeColumns).AddRow(1, "Identity Card", "ID", now, now))

		tp, err := repo.Create(ctx, &model.Type{Title: "Identity Card", Abbreviation: "ID"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), tp.ID)
	})

	t.Run("find by id", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM types WHERE id = (.+) AND deleted_at IS NULL").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(typeColumns).AddRow(1, "Identity Card", "ID", now, now))

		tp, err := repo.FindByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Identity Card", tp.Title)
	})

	t.Run("find missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM types").
			WithArgs(int64(2)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, 2)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("list", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM types WHERE deleted_at IS NULL ORDER BY id").
			WillReturnRows(sqlmock.NewRows(typeColumns).
				AddRow(1, "Identity Card", "ID", now, now).
				AddRow(3, "Passport", "PP", now, now))

		items, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("update", func(t *testing.T) {
		mock.ExpectQuery("UPDATE types SET title").
			WithArgs("Passport", "PASS", int64(3)).
			WillReturnRows(sqlmock.NewRows(typeColumns).AddRow(3, "Passport", "PASS", now, now))

		tp, err := repo.Update(ctx, &model.Type{ID: 3, Title: "Passport", Abbreviation: "PASS"})
		require.NoError(t, err)
		assert.Equal(t, "PASS", tp.Abbreviation)
	})

	t.Run("soft delete", func(t *testing.T) {
		mock.ExpectExec("UPDATE types SET deleted_at").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, repo.SoftDelete(ctx, 3))

		mock.ExpectExec("UPDATE types SET deleted_at").
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		assert.ErrorIs(t, repo.SoftDelete(ctx, 3), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
