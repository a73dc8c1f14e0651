package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "email", "password_hash", "role", "created_at"})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := userRows().
			AddRow("u-1", "Jane", "jane@example.com", "hash", "customer", time.Now())

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(sqlmock.AnyArg(), "Jane", "jane@example.com", "hash", RoleCustomer).
			WillReturnRows(rows)

		u, err := repo.Create(ctx, "Jane", "jane@example.com", "hash", RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, "jane@example.com", u.Email)
		assert.Equal(t, RoleCustomer, u.Role)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(errors.New("duplicate key value violates unique constraint \"users_email_key\""))

		_, err := repo.Create(ctx, "Jane", "jane@example.com", "hash", RoleCustomer)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "users_email_key")
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := userRows().
			AddRow("u-1", "Jane", "jane@example.com", "hash", "admin", time.Now())

		mock.ExpectQuery(`SELECT id, name, email, password_hash, role, created_at\s+FROM users WHERE email = \$1`).
			WithArgs("jane@example.com").
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
			WithArgs("ghost@example.com").
			WillReturnRows(userRows())

		_, err := repo.FindByEmail(ctx, "ghost@example.com")
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})
}

func TestRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		rows := userRows().
			AddRow("u-1", "Jane", "jane@example.com", "hash", "customer", time.Now())

		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs("u-1").
			WillReturnRows(rows)

		u, err := repo.FindByID(ctx, "u-1")
		require.NoError(t, err)
		assert.Equal(t, "u-1", u.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs("missing").
			WillReturnRows(userRows())

		_, err := repo.FindByID(ctx, "missing")
		assert.True(t, errors.Is(err, ErrUserNotFound))
	})
}
