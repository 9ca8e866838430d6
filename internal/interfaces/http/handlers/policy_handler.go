package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/interfaces/http/middleware"
	"policy-vault.backend/internal/interfaces/http/response"
	"policy-vault.backend/internal/usecases"
)

// DocumentsFormField is the multipart field carrying policy documents
const DocumentsFormField = "documents"

// PolicyHandler handles policy CRUD endpoints
type PolicyHandler struct {
	policyUsecase *usecases.PolicyUsecase
	maxUploads    int
}

// NewPolicyHandler creates a new policy handler. maxUploads bounds the number
// of document files accepted per create request.
func NewPolicyHandler(policyUsecase *usecases.PolicyUsecase, maxUploads int) *PolicyHandler {
	if maxUploads <= 0 {
		maxUploads = 5
	}
	return &PolicyHandler{
		policyUsecase: policyUsecase,
		maxUploads:    maxUploads,
	}
}

// Create handles policy creation with document uploads
// POST /api/policies
func (h *PolicyHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.CreatePolicyInput
	if err := c.ShouldBind(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	var uploads []usecases.DocumentUpload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File[DocumentsFormField]
		if len(files) > h.maxUploads {
			response.Error(c, domainerrors.BadRequest(fmt.Sprintf("at most %d documents are allowed", h.maxUploads)))
			return
		}
		for _, fileHeader := range files {
			file, err := fileHeader.Open()
			if err != nil {
				response.Error(c, domainerrors.BadRequest("failed to read uploaded file"))
				return
			}
			defer file.Close()
			uploads = append(uploads, usecases.DocumentUpload{
				Filename: fileHeader.Filename,
				Content:  file,
			})
		}
	}

	policy, err := h.policyUsecase.Create(c.Request.Context(), userID, &input, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, policy)
}

// List returns the authenticated user's policies, newest first
// GET /api/policies
func (h *PolicyHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	policies, err := h.policyUsecase.List(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, policies)
}

// GetByID returns a single policy owned by the authenticated user
// GET /api/policies/:id
func (h *PolicyHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid policy ID"))
		return
	}

	policy, err := h.policyUsecase.GetByID(c.Request.Context(), userID, policyID)
	if err != nil {
		respondPolicyError(c, err)
		return
	}

	response.Success(c, http.StatusOK, policy)
}

// Delete removes a policy and its stored documents
// DELETE /api/policies/:id
func (h *PolicyHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid policy ID"))
		return
	}

	if err := h.policyUsecase.Delete(c.Request.Context(), userID, policyID); err != nil {
		respondPolicyError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Policy deleted successfully",
	})
}

// respondPolicyError maps the ownership sentinels onto API errors; everything
// else passes through unchanged.
func respondPolicyError(c *gin.Context, err error) {
	switch err {
	case domainerrors.ErrNotFound:
		response.Error(c, domainerrors.NotFound("Policy not found"))
	case domainerrors.ErrForbidden:
		response.Error(c, domainerrors.Forbidden("You do not have access to this policy"))
	default:
		response.Error(c, err)
	}
}
