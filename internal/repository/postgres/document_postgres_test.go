package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mydocs/internal/model"
	"mydocs/internal/repository"
)

var documentTypeColumns = []string{
	"id", "user_id", "type_id", "file", "created_at", "updated_at",
	"id", "title", "abbreviation", "created_at", "updated_at",
}

var documentColumns = []string{"id", "user_id", "type_id", "file", "created_at", "updated_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		doc := &model.Document{UserID: 7, TypeID: 1, File: "abc.pdf"}

		mock.ExpectQuery("INSERT INTO my_docs").
			WithArgs(int64(7), int64(1), "abc.pdf").
			WillReturnRows(sqlmock.NewRows(documentColumns).AddRow(42, 7, 1, "abc.pdf", now, now))

		result, err := repo.Create(ctx, doc)

		require.NoError(t, err)
		assert.Equal(t, int64(42), result.ID)
		assert.Equal(t, "abc.pdf", result.File)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO my_docs").
			WithArgs(int64(999), int64(1), "abc.pdf").
			WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

		result, err := repo.Create(ctx, &model.Document{UserID: 999, TypeID: 1, File: "abc.pdf"})

		assert.Nil(t, result)
		assert.ErrorIs(t, err, repository.ErrReferenceViolation)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(documentTypeColumns).
			AddRow(5, 7, 1, "file.pdf", now, now, 1, "Identity", "ID", now, now)

		mock.ExpectQuery("SELECT (.+) FROM my_docs d JOIN types t (.+) WHERE d.id = (.+) AND d.deleted_at IS NULL").
			WithArgs(int64(5)).
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), doc.ID)
		assert.Equal(t, int64(7), doc.UserID)
		require.NotNil(t, doc.Type)
		assert.Equal(t, "ID", doc.Type.Abbreviation)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM my_docs").
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, 404)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(documentTypeColumns).
			AddRow(1, 7, 1, "a.pdf", now, now, 1, "Identity", "ID", now, now).
			AddRow(2, 7, 2, "b.png", now, now, 2, "Passport", "PP", now, now)

		mock.ExpectQuery("SELECT (.+) FROM my_docs d (.+) WHERE d.user_id = (.+) AND d.deleted_at IS NULL").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		docs, err := repo.ListByOwner(ctx, 7)

		require.NoError(t, err)
		assert.Len(t, docs, 2)
		assert.Equal(t, "PP", docs[1].Type.Abbreviation)
	})

	t.Run("empty", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM my_docs").
			WithArgs(int64(8)).
			WillReturnRows(sqlmock.NewRows(documentTypeColumns))

		docs, err := repo.ListByOwner(ctx, 8)

		require.NoError(t, err)
		assert.NotNil(t, docs)
		assert.Empty(t, docs)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM my_docs").
			WithArgs(int64(9)).
			WillReturnError(errors.New("db down"))

		_, err := repo.ListByOwner(ctx, 9)
		assert.EqualError(t, err, "db down")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	now := time.Now()

	mock.ExpectQuery("UPDATE my_docs SET type_id").
		WithArgs(int64(2), "new.png", int64(5)).
		WillReturnRows(sqlmock.NewRows(documentColumns).AddRow(5, 7, 2, "new.png", now, now))

	doc, err := repo.Update(context.Background(), &model.Document{ID: 5, TypeID: 2, File: "new.png"})

	require.NoError(t, err)
	assert.Equal(t, int64(2), doc.TypeID)
	assert.Equal(t, "new.png", doc.File)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE my_docs SET deleted_at").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, 5))
	})

	t.Run("already deleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE my_docs SET deleted_at").
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SoftDelete(ctx, 5), sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_ActiveFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)

	mock.ExpectQuery("SELECT file FROM my_docs WHERE deleted_at IS NULL").
		WillReturnRows(sqlmock.NewRows([]string{"file"}).AddRow("a.pdf").AddRow("b.png"))

	files, err := repo.ActiveFiles(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"a.pdf", "b.png"}, files)
	assert.NoError(t, mock.ExpectationsWereMet())
}
