package accounts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

var columns = []string{"id", "email", "first_name", "last_name", "phone", "timezone", "language", "currency", "avatar", "salt", "verifier", "is_demo", "created_at", "updated_at"}

func TestPostgresCreate_Success(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+accounts.*RETURNING\s+created_at,\s*updated_at$`).
		WithArgs("id-1", "a@example.com", "Ann", "", "", "", "", "", "", []byte("s"), []byte("v"), false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &Account{
		ID: "id-1", Email: "a@example.com", FirstName: "Ann", Salt: []byte("s"), Verifier: []byte("v"),
	})
	require.NoError(t, err)
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, now, got.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_GeneratesID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	got, err := repo.Create(context.Background(), &Account{Email: "a@example.com"})
	require.NoError(t, err)
	assert.Len(t, got.ID, 36)
}

func TestPostgresCreate_DuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &Account{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestPostgresCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT\s+INTO\s+accounts`).WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &Account{Email: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db down")
}

func TestPostgresGetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)^SELECT .* FROM accounts WHERE email = \$1$`).
		WithArgs("a@example.com").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("id-1", "a@example.com", "Ann", "Lee", "", "UTC", "en", "USD", "", []byte("s"), []byte("v"), true, now, now))

	a, err := repo.GetByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "id-1", a.ID)
	assert.Equal(t, "Ann Lee", a.Name())
	assert.True(t, a.IsDemo)
	assert.Equal(t, []byte("v"), a.Verifier)
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`FROM accounts WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPostgresUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	a := &Account{ID: "id-1", Email: "a@example.com", Salt: []byte("s"), Verifier: []byte("v")}

	mock.ExpectExec(`(?s)^UPDATE accounts.*WHERE id = \$1$`).
		WithArgs("id-1", "a@example.com", "", "", "", "", "", "", "", []byte("s"), []byte("v"), false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), a))

	mock.ExpectExec(`UPDATE accounts`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), a), common.ErrorNotFound)

	mock.ExpectExec(`UPDATE accounts`).WillReturnError(&pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, repo.Update(context.Background(), a), ErrEmailTaken)
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`DELETE FROM accounts WHERE id = \$1`).
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "id-1"))

	mock.ExpectExec(`DELETE FROM accounts`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "id-1"), common.ErrorNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
