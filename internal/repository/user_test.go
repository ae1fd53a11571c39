package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"warbler/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	tests := []struct {
		name          string
		userID        uint
		mockBehavior  func()
		expectedUser  *models.User
		expectedError bool
	}{
		{
			name:   "Success",
			userID: 1,
			mockBehavior: func() {
				rows := sqlmock.NewRows([]string{"id", "username", "email"}).
					AddRow(1, "chirpy", "chirpy@example.com")
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(1, 1).
					WillReturnRows(rows)
			},
			expectedUser: &models.User{ID: 1, Username: "chirpy", Email: "chirpy@example.com"},
		},
		{
			name:   "Not Found",
			userID: 99,
			mockBehavior: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE "users"."id" = $1 ORDER BY "users"."id" LIMIT $2`)).
					WithArgs(99, 1).
					WillReturnError(gorm.ErrRecordNotFound)
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockBehavior()
			user, err := repo.GetByID(ctx, tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.True(t, models.HasCode(err, models.CodeNotFound))
			} else if assert.NotNil(t, user) {
				assert.Equal(t, tt.expectedUser.Username, user.Username)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username"}).AddRow(1, "chirpy")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("chirpy", 1).
			WillReturnRows(rows)

		user, err := repo.GetByUsername(ctx, "chirpy")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "chirpy", user.Username)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1`)).
			WithArgs("ghost", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByUsername(ctx, "ghost")
		assert.NoError(t, err) // nil, nil per implementation
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		email := "chirpy@example.com"
		rows := sqlmock.NewRows([]string{"id", "email"}).AddRow(1, email)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs(email, 1).
			WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, email)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, email, user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
			WithArgs("ghost@example.com", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		user, err := repo.GetByEmail(ctx, "ghost@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		user := &models.User{Username: "newbird", Email: "new@example.com", Password: "hashed"}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectCommit()

		err := repo.Create(ctx, user)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		user := &models.User{Username: "taken", Email: "other@example.com", Password: "hashed"}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_username" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, user)
		assert.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeDuplicateUsername))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		user := &models.User{Username: "other", Email: "taken@example.com", Password: "hashed"}

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uni_users_email" (SQLSTATE 23505)`))
		mock.ExpectRollback()

		err := repo.Create(ctx, user)
		assert.Error(t, err)
		assert.True(t, models.HasCode(err, models.CodeDuplicateEmail))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Search(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(1, "chirpy").
		AddRow(2, "chirpmaster")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username LIKE $1 ORDER BY id LIMIT $2`)).
		WithArgs("%chirp%", 20).
		WillReturnRows(rows)

	users, err := repo.Search(ctx, "chirp", 20, 0)
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, isUniqueConstraintError(nil))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
	assert.True(t, isUniqueConstraintError(errors.New("duplicate key value violates unique constraint")))
	assert.True(t, isUniqueConstraintError(errors.New("SQLSTATE 23505")))
}
