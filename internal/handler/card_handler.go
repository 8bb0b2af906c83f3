package handler

import (
	"errors"
	"net/http"
	"time"

	"cardflow/internal/model"
	"cardflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CardHandler struct {
	cardRepo      repository.CardRepositoryInterface
	workspaceRepo repository.WorkspaceRepositoryInterface
}

func NewCardHandler(cardRepo repository.CardRepositoryInterface, workspaceRepo repository.WorkspaceRepositoryInterface) *CardHandler {
	return &CardHandler{
		cardRepo:      cardRepo,
		workspaceRepo: workspaceRepo,
	}
}

type PositionRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

type CreateCardRequest struct {
	WorkspaceID      string           `json:"workspaceId" binding:"required"`
	Title            string           `json:"title" binding:"required"`
	Description      string           `json:"description" binding:"required"`
	TitleColor       *string          `json:"titleColor" binding:"omitempty,hexcolor"`
	DescriptionColor *string          `json:"descriptionColor" binding:"omitempty,hexcolor"`
	BackgroundColor  *string          `json:"backgroundColor" binding:"omitempty,hexcolor"`
	Content          *string          `json:"content"`
	Position         *PositionRequest `json:"position"`
}

type UpdateCardRequest struct {
	Title            *string          `json:"title" binding:"omitempty,min=1"`
	Description      *string          `json:"description" binding:"omitempty,min=1"`
	TitleColor       *string          `json:"titleColor" binding:"omitempty,hexcolor"`
	DescriptionColor *string          `json:"descriptionColor" binding:"omitempty,hexcolor"`
	BackgroundColor  *string          `json:"backgroundColor" binding:"omitempty,hexcolor"`
	Content          *string          `json:"content"`
	Position         *PositionRequest `json:"position"`
}

type UpdatePositionRequest struct {
	Position *PositionRequest `json:"position" binding:"required"`
}

type CardResponse struct {
	ID               string         `json:"id"`
	WorkspaceID      string         `json:"workspaceId"`
	UserID           string         `json:"userId"`
	Title            string         `json:"title"`
	TitleColor       string         `json:"titleColor"`
	Description      string         `json:"description"`
	DescriptionColor string         `json:"descriptionColor"`
	Content          string         `json:"content"`
	BackgroundColor  string         `json:"backgroundColor"`
	Position         model.Position `json:"position"`
	CreatedAt        string         `json:"createdAt"`
	UpdatedAt        string         `json:"updatedAt"`
}

func toCardResponse(card *model.Card) CardResponse {
	return CardResponse{
		ID:               card.ID.String(),
		WorkspaceID:      card.WorkspaceID.String(),
		UserID:           card.UserID.String(),
		Title:            card.Title,
		TitleColor:       card.TitleColor,
		Description:      card.Description,
		DescriptionColor: card.DescriptionColor,
		Content:          card.Content,
		BackgroundColor:  card.BackgroundColor,
		Position:         card.Position,
		CreatedAt:        card.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        card.UpdatedAt.Format(time.RFC3339),
	}
}

// ListByWorkspace returns the cards of one workspace in reading order
// (position y, then x). Workspace ownership is re-validated first.
func (h *CardHandler) ListByWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := uuid.Parse(c.Param("workspaceId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	workspace, err := h.workspaceRepo.GetOwnedByID(c.Request.Context(), workspaceID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspace"})
		return
	}
	if workspace == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		return
	}

	cards, err := h.cardRepo.GetByWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cards"})
		return
	}

	response := make([]CardResponse, len(cards))
	for i := range cards {
		response[i] = toCardResponse(&cards[i])
	}

	c.JSON(http.StatusOK, gin.H{"cards": response})
}

// Get returns a single card owned by the requester.
func (h *CardHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	card, err := h.cardRepo.GetOwnedByID(c.Request.Context(), cardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": toCardResponse(card)})
}

// Create adds a card to one of the requester's workspaces, applying
// defaults for omitted display attributes.
func (h *CardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	workspaceID, err := uuid.Parse(req.WorkspaceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	workspace, err := h.workspaceRepo.GetOwnedByID(c.Request.Context(), workspaceID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspace"})
		return
	}
	if workspace == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		return
	}

	card := &model.Card{
		ID:               uuid.New(),
		WorkspaceID:      workspaceID,
		UserID:           userID,
		Title:            req.Title,
		TitleColor:       model.DefaultTitleColor,
		Description:      req.Description,
		DescriptionColor: model.DefaultDescriptionColor,
		BackgroundColor:  model.DefaultBackgroundColor,
	}
	if req.TitleColor != nil {
		card.TitleColor = *req.TitleColor
	}
	if req.DescriptionColor != nil {
		card.DescriptionColor = *req.DescriptionColor
	}
	if req.BackgroundColor != nil {
		card.BackgroundColor = *req.BackgroundColor
	}
	if req.Content != nil {
		card.Content = *req.Content
	}
	if req.Position != nil {
		card.Position = model.Position{X: *req.Position.X, Y: *req.Position.Y}
	}

	if err := h.cardRepo.Create(c.Request.Context(), card); err != nil {
		// The workspace can disappear between the ownership check and
		// the insert; the foreign key reports that race.
		if repository.IsForeignKeyViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"card": toCardResponse(card)})
}

// Update applies a sparse merge: only fields present in the request change.
func (h *CardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	var req UpdateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	card, err := h.cardRepo.GetOwnedByID(c.Request.Context(), cardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.TitleColor != nil {
		card.TitleColor = *req.TitleColor
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.DescriptionColor != nil {
		card.DescriptionColor = *req.DescriptionColor
	}
	if req.Content != nil {
		card.Content = *req.Content
	}
	if req.BackgroundColor != nil {
		card.BackgroundColor = *req.BackgroundColor
	}
	if req.Position != nil {
		card.Position = model.Position{X: *req.Position.X, Y: *req.Position.Y}
	}

	if err := h.cardRepo.Update(c.Request.Context(), card); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": toCardResponse(card)})
}

// UpdatePosition is the restricted drag-and-drop variant of Update: only
// the position changes, and both coordinates are mandatory.
func (h *CardHandler) UpdatePosition(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	card, err := h.cardRepo.GetOwnedByID(c.Request.Context(), cardID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		return
	}
	if card == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		return
	}

	card.Position = model.Position{X: *req.Position.X, Y: *req.Position.Y}

	if err := h.cardRepo.Update(c.Request.Context(), card); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update card position"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"card": toCardResponse(card)})
}

// Delete removes a single card.
func (h *CardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid card ID format"})
		return
	}

	if err := h.cardRepo.Delete(c.Request.Context(), cardID, userID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
}
