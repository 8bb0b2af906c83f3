package handler

import (
	"net/http"
	"time"

	"cardflow/internal/model"
	"cardflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxWorkspacesPerUser caps how many workspaces a single user may own.
const MaxWorkspacesPerUser = 7

type WorkspaceHandler struct {
	workspaceRepo repository.WorkspaceRepositoryInterface
}

func NewWorkspaceHandler(workspaceRepo repository.WorkspaceRepositoryInterface) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceRepo: workspaceRepo}
}

type CreateWorkspaceRequest struct {
	Name  string `json:"name" binding:"required"`
	Order *int   `json:"order" binding:"required"`
}

type UpdateWorkspaceRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Order *int    `json:"order"`
}

type WorkspaceResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Order     int    `json:"order"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toWorkspaceResponse(workspace *model.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        workspace.ID.String(),
		UserID:    workspace.UserID.String(),
		Name:      workspace.Name,
		Order:     workspace.Order,
		CreatedAt: workspace.CreatedAt.Format(time.RFC3339),
		UpdatedAt: workspace.UpdatedAt.Format(time.RFC3339),
	}
}

// List returns the user's workspaces in display order.
func (h *WorkspaceHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaces, err := h.workspaceRepo.GetOwned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve workspaces"})
		return
	}

	response := make([]WorkspaceResponse, len(workspaces))
	for i := range workspaces {
		response[i] = toWorkspaceResponse(&workspaces[i])
	}

	c.JSON(http.StatusOK, gin.H{"workspaces": response})
}

// Get returns a single workspace. Workspaces owned by other users are
// reported as not found.
func (h *WorkspaceHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
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

	c.JSON(http.StatusOK, gin.H{"workspace": toWorkspaceResponse(workspace)})
}

// Create adds a workspace, enforcing the per-user cap.
func (h *WorkspaceHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	count, err := h.workspaceRepo.CountOwned(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check workspace count"})
		return
	}
	if count >= MaxWorkspacesPerUser {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum number of workspaces reached (7)"})
		return
	}

	workspace := &model.Workspace{
		ID:     uuid.New(),
		UserID: userID,
		Name:   req.Name,
		Order:  *req.Order,
	}

	if err := h.workspaceRepo.Create(c.Request.Context(), workspace); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create workspace"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"workspace": toWorkspaceResponse(workspace)})
}

// Update applies a partial update. Fields absent from the request are left
// untouched.
func (h *WorkspaceHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid workspace ID format"})
		return
	}

	var req UpdateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
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

	if req.Name != nil {
		workspace.Name = *req.Name
	}
	if req.Order != nil {
		workspace.Order = *req.Order
	}

	if err := h.workspaceRepo.Update(c.Request.Context(), workspace); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update workspace"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"workspace": toWorkspaceResponse(workspace)})
}

// Delete removes a workspace and all of its cards. The primary workspace
// (order 0) is protected.
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	workspaceID, err := uuid.Parse(c.Param("id"))
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

	if workspace.Order == model.PrimaryWorkspaceOrder {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete main workspace"})
		return
	}

	if err := h.workspaceRepo.DeleteWithCards(c.Request.Context(), workspace); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete workspace"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Workspace deleted"})
}
