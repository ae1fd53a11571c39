package repository

import (
	"context"
	"regexp"
	"testing"

	"warbler/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMessageRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE "messages"."id" = $1`)).
			WithArgs(99, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		msg, err := repo.GetByID(ctx, 99, 0)
		assert.Error(t, err)
		assert.Nil(t, msg)
		assert.True(t, models.HasCode(err, models.CodeNotFound))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMessageRepository_Feed_EmptyAuthors(t *testing.T) {
	db, _ := setupMockDB(t)
	repo := NewMessageRepository(db)

	// No authors means no query at all
	messages, err := repo.Feed(context.Background(), nil, 100, 0)
	assert.NoError(t, err)
	assert.Empty(t, messages)
}

func TestMessageRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	// Likes go first, then the message, in one transaction
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "likes" WHERE message_id = $1`)).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "messages" WHERE "messages"."id" = $1`)).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 10)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
