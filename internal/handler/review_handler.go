package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beautyhub/shop_api/internal/middleware"
	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/service"
	"github.com/beautyhub/shop_api/internal/utils"
)

// ReviewHandler handles review submission and the moderation endpoints.
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler constructs a ReviewHandler.
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Stars validation is left to the service so an out-of-range value,
// including zero, maps to INVALID_STARS rather than a generic bind error.
type submitReviewRequest struct {
	Stars int    `json:"stars"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// SubmitReview records a new review for a product. It stays hidden until
// moderation approves it.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Product id must be a number")
		return
	}

	var req submitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	review := &models.Review{
		ProductID: productID,
		Stars:     req.Stars,
		Title:     req.Title,
		Body:      req.Body,
	}

	sess := middleware.GetSession(c)
	if err := h.reviewService.Submit(sess, review); err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 201, "Review submitted for moderation", review)
}

// ListModeration returns every review with unapproved ones first.
func (h *ReviewHandler) ListModeration(c *gin.Context) {
	reviews, err := h.reviewService.ListModeration()
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Reviews retrieved", gin.H{"reviews": reviews})
}

// ApproveReview publishes a review and returns the recomputed product
// aggregates.
func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Review id must be a number")
		return
	}

	result, err := h.reviewService.Approve(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Review approved", result)
}

// DeleteReview removes a review. Aggregates are returned only when the
// deleted review was approved and the product rating changed.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Review id must be a number")
		return
	}

	result, err := h.reviewService.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.Success(c, 200, "Review deleted", result)
}

func (h *ReviewHandler) handleError(c *gin.Context, err error) {
	switch err {
	case utils.ErrUnauthorized:
		utils.Error(c, 401, "UNAUTHORIZED", "Sign in required")
	case utils.ErrInvalidStars:
		utils.Error(c, 400, "INVALID_STARS", "Stars must be between 1 and 5")
	case utils.ErrProductNotFound:
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case utils.ErrReviewNotFound:
		utils.Error(c, 404, "REVIEW_NOT_FOUND", "Review not found")
	case utils.ErrTransactionFailed:
		utils.Error(c, 500, "TRANSACTION_FAILED", "Review update could not be completed")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
