package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shelfcheck/backend/internal/domain"
	"github.com/shelfcheck/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	validator *usecase.ValidationService
	catalog   domain.IndexProvider
	store     domain.SubmissionStore
	cache     domain.CacheRepository
	cacheTTL  time.Duration
}

// NewHandler creates a new HTTP handler
func NewHandler(
	validator *usecase.ValidationService,
	catalog domain.IndexProvider,
	store domain.SubmissionStore,
	cache domain.CacheRepository,
	cacheTTL time.Duration,
) *Handler {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &Handler{
		validator: validator,
		catalog:   catalog,
		store:     store,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shelfcheck-backend",
		"version": "1.0.0",
	})
}

// Categories returns the distinct categories in the reference catalog,
// for the store portal's category picker.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": h.catalog.Index().Categories(),
	})
}

// validateResponse is a ValidationResult plus the display phrasing of the
// overall status.
type validateResponse struct {
	*domain.ValidationResult
	OverallLabel string `json:"overall_label"`
}

// Validate runs a submission through the validation engine. Identical
// payloads against an unchanged catalog are served from cache; the cache
// is flushed on catalog swap, so this never masks a refresh.
func (h *Handler) Validate(c *gin.Context) {
	var sub domain.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := validationCacheKey(&sub)
	if h.cache != nil {
		if cached, err := h.cache.Get(c.Request.Context(), key); err == nil {
			if result, ok := cached.(*domain.ValidationResult); ok {
				c.JSON(http.StatusOK, validateResponse{result, result.Overall.Label()})
				return
			}
		}
	}

	result, err := h.validator.Validate(c.Request.Context(), &sub)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSubmission) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}

	if h.cache != nil {
		// Best effort; a failed cache write never fails the request
		_ = h.cache.Set(c.Request.Context(), key, result, h.cacheTTL)
	}

	c.JSON(http.StatusOK, validateResponse{result, result.Overall.Label()})
}

// submitRequest carries a validated product into the review workflow.
type submitRequest struct {
	Product         domain.Submission       `json:"product" binding:"required"`
	Validation      domain.ValidationResult `json:"validation" binding:"required"`
	AcceptedChanges []string                `json:"accepted_changes"`
	Notes           string                  `json:"notes"`
	Flagged         bool                    `json:"flagged"`
}

// Submit stores a submission. Anything that cannot be auto-approved is
// held pending for head-office review regardless of what the client says.
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := usecase.RiskScore(&req.Validation)
	stored := &domain.StoredSubmission{
		Product:         req.Product,
		Validation:      req.Validation,
		AcceptedChanges: req.AcceptedChanges,
		Notes:           req.Notes,
		Flagged:         req.Flagged || usecase.NeedsReview(&req.Validation),
		RiskScore:       score,
		RiskLevel:       usecase.RiskLevel(score),
	}

	if err := h.store.Create(c.Request.Context(), stored); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store submission"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        stored.ID,
		"status":    stored.Status,
		"timestamp": stored.Timestamp,
	})
}

// ListSubmissions returns submissions grouped by workflow state. Pending
// ones are ordered for the review queue: highest risk first, then newest.
func (h *Handler) ListSubmissions(c *gin.Context) {
	pending, decided, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list submissions"})
		return
	}

	usecase.SortQueue(pending)

	c.JSON(http.StatusOK, gin.H{
		"pending":  pending,
		"approved": decided,
	})
}

// ApproveSubmission approves a pending submission.
func (h *Handler) ApproveSubmission(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Approve(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve submission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": domain.SubmissionApproved, "id": id})
}

// denyRequest optionally carries a denial reason.
type denyRequest struct {
	Reason string `json:"reason"`
}

// DenySubmission denies a pending submission.
func (h *Handler) DenySubmission(c *gin.Context) {
	id := c.Param("id")

	var req denyRequest
	// Body is optional; ignore bind errors for an empty body
	_ = c.ShouldBindJSON(&req)

	if err := h.store.Deny(c.Request.Context(), id, req.Reason); err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deny submission"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": domain.SubmissionDenied, "id": id})
}

// validationCacheKey normalises a submission into a cache key. Price is
// formatted with fixed precision so 1.5 and 1.50 share an entry.
func validationCacheKey(sub *domain.Submission) string {
	return fmt.Sprintf("validate:%s|%s|%.4f|%s",
		strings.ToLower(strings.TrimSpace(sub.Name)),
		strings.ToLower(strings.TrimSpace(sub.Category)),
		sub.Price,
		strings.ToLower(strings.TrimSpace(sub.AgeFlag)),
	)
}
