package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"bachatagram/internal/apperrors"
	"bachatagram/internal/models"
)

func newUserRepoMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewUserRepository(sqlxDB), mock, func() { db.Close() }
}

func userColumns() []string {
	return []string{
		"user_id", "username", "email", "display_name", "bio",
		"avatar_url", "pass_hash", "is_admin", "created_at",
	}
}

func TestUserRepository_CreateUser(t *testing.T) {
	repo, mock, closeFn := newUserRepoMock(t)
	defer closeFn()

	ctx := context.Background()
	password := "password123"

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		user := &models.User{
			Username:    "ana",
			Email:       "ana@example.com",
			DisplayName: "Ana",
			CreatedAt:   time.Now(),
		}

		mock.ExpectExec(`
		INSERT INTO users (user_id, username, email, display_name, bio, avatar_url, pass_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`).
			WithArgs(
				sqlmock.AnyArg(), // user_id генерируется в репозитории
				"ana",
				"ana@example.com",
				"Ana",
				"",
				"",
				sqlmock.AnyArg(), // pass_hash
				false,
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := repo.CreateUser(ctx, user, password)

		assert.NoError(t, err)
		assert.NotEmpty(t, user.UserID)
		assert.NotEqual(t, password, user.PassHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)))

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дубликат логина отображается в ErrConflict", func(t *testing.T) {
		user := &models.User{
			Username:  "ana",
			Email:     "ana@example.com",
			CreatedAt: time.Now(),
		}

		mock.ExpectExec(`
		INSERT INTO users (user_id, username, email, display_name, bio, avatar_url, pass_hash, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`).
			WillReturnError(errors.New(`pq: duplicate key value violates unique constraint "users_username_key"`))

		err := repo.CreateUser(ctx, user, password)

		assert.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestUserRepository_GetUserByUsername(t *testing.T) {
	repo, mock, closeFn := newUserRepoMock(t)
	defer closeFn()

	ctx := context.Background()
	userID := uuid.New().String()

	t.Run("Успешное получение пользователя", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(userID, "ana", "ana@example.com", "Ana", "", "", "hash", false, time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("ana").
			WillReturnRows(rows)

		user, err := repo.GetUserByUsername(ctx, "ana")

		require.NoError(t, err)
		assert.Equal(t, userID, user.UserID)
		assert.Equal(t, "ana", user.Username)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("nobody").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.GetUserByUsername(ctx, "nobody")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestUserRepository_VerifyPassword(t *testing.T) {
	repo, mock, closeFn := newUserRepoMock(t)
	defer closeFn()

	ctx := context.Background()
	password := "secret123"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	t.Run("Верный пароль", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(uuid.New().String(), "ana", "ana@example.com", "Ana", "", "", string(hash), false, time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("ana").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "ana", password)

		require.NoError(t, err)
		assert.Equal(t, "ana", user.Username)
	})

	t.Run("Неверный пароль даёт общий ErrAuth", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns()).
			AddRow(uuid.New().String(), "ana", "ana@example.com", "Ana", "", "", string(hash), false, time.Now())

		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("ana").
			WillReturnRows(rows)

		user, err := repo.VerifyPassword(ctx, "ana", "wrong")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrAuth)
	})

	t.Run("Неизвестный логин даёт тот же ErrAuth", func(t *testing.T) {
		mock.ExpectQuery(`SELECT * FROM users WHERE username = $1`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.VerifyPassword(ctx, "ghost", password)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrAuth)
	})
}

func TestUserRepository_CountByUsernameOrEmail(t *testing.T) {
	repo, mock, closeFn := newUserRepoMock(t)
	defer closeFn()

	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT(*) FROM users WHERE username = $1 OR (email <> '' AND email = $2)`).
		WithArgs("ana", "ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := repo.CountByUsernameOrEmail(ctx, "ana", "ana@example.com")

	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
