package repository_test

import (
	"context"
	"testing"
	"time"

	"cardflow/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func cardColumns() []string {
	return []string{
		"id", "workspace_id", "user_id", "title", "title_color",
		"description", "description_color", "content", "background_color",
		"position", "created_at", "updated_at",
	}
}

func TestCardRepository_GetByWorkspace_OrdersByPosition(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	userID := uuid.New()
	workspaceID := uuid.New()
	now := time.Now()

	// Reading order: y first, then x
	mock.ExpectQuery(`SELECT (.+) FROM "cards" WHERE workspace_id = (.+) AND user_id = (.+) ORDER BY \(position->>'y'\)::numeric ASC, \(position->>'x'\)::numeric ASC`).
		WithArgs(workspaceID, userID).
		WillReturnRows(sqlmock.NewRows(cardColumns()).
			AddRow(uuid.New().String(), workspaceID.String(), userID.String(), "First", "#FFFFFF",
				"desc", "#FFFFFF", "", "#3F51B5", []byte(`{"x":0,"y":0}`), now, now).
			AddRow(uuid.New().String(), workspaceID.String(), userID.String(), "Second", "#FFFFFF",
				"desc", "#FFFFFF", "", "#3F51B5", []byte(`{"x":1,"y":0}`), now, now))

	cards, err := cardRepo.GetByWorkspace(context.Background(), workspaceID, userID)

	assert.NoError(t, err)
	assert.Len(t, cards, 2)
	assert.Equal(t, "First", cards[0].Title)
	assert.Equal(t, float64(1), cards[1].Position.X)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_GetOwnedByID_NotOwned(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	userID := uuid.New()
	cardID := uuid.New()

	mock.ExpectQuery(`SELECT (.+) FROM "cards" WHERE id = (.+) AND user_id = (.+)`).
		WithArgs(cardID, userID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	card, err := cardRepo.GetOwnedByID(context.Background(), cardID, userID)

	assert.NoError(t, err)
	assert.Nil(t, card)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCardRepository_Delete_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	cardRepo := repository.NewCardRepository(gormDB)

	userID := uuid.New()
	cardID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "cards" WHERE id = (.+) AND user_id = (.+)`).
		WithArgs(cardID, userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := cardRepo.Delete(context.Background(), cardID, userID)

	assert.ErrorIs(t, err, repository.ErrCardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
