package service

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/repository"
	"github.com/beautyhub/shop_api/internal/utils"
)

// ReviewService handles review submission, moderation and the product
// rating aggregates. Only approved reviews feed the aggregates; the
// published rating for a product with no approved reviews is 5.
type ReviewService struct {
	reviews ReviewStore
	catalog CatalogStore
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews ReviewStore, catalog CatalogStore) *ReviewService {
	return &ReviewService{reviews: reviews, catalog: catalog}
}

// Submit records a new review. Reviews enter unapproved and do not affect
// the product rating until moderation approves them.
func (s *ReviewService) Submit(sess Session, review *models.Review) error {
	if !sess.Authenticated() {
		return utils.ErrUnauthorized
	}
	if review.Stars < 1 || review.Stars > 5 {
		return utils.ErrInvalidStars
	}

	if _, err := s.catalog.GetByID(review.ProductID); err != nil {
		if err == sql.ErrNoRows {
			return utils.ErrProductNotFound
		}
		return err
	}

	review.AccountID = *sess.AccountID
	review.Approved = false
	review.Title = strings.TrimSpace(review.Title)
	review.Body = strings.TrimSpace(review.Body)
	return s.reviews.Create(review)
}

// ListApproved returns a product's published reviews, newest first.
func (s *ReviewService) ListApproved(productID int) ([]models.Review, error) {
	return s.reviews.ListApprovedByProduct(productID)
}

// ListModeration returns every review with unapproved ones first.
func (s *ReviewService) ListModeration() ([]models.Review, error) {
	return s.reviews.ListModeration()
}

// RecomputeResult reports the product aggregates after a moderation action.
type RecomputeResult struct {
	ProductID   int `json:"productId"`
	Rating      int `json:"rating"`
	ReviewCount int `json:"reviewCount"`
}

// Approve flips a review to approved and recomputes the product's rating
// and review count, all inside one transaction. Approving an already
// approved review just re-reports the current aggregates.
func (s *ReviewService) Approve(ctx context.Context, id int) (*RecomputeResult, error) {
	tx, err := s.reviews.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open review transaction")
		return nil, utils.ErrTransactionFailed
	}
	defer tx.Rollback()

	review, err := tx.GetReview(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrReviewNotFound
		}
		return nil, err
	}

	if !review.Approved {
		if err := tx.MarkApproved(id); err != nil {
			log.Error().Err(err).Int("reviewId", id).Msg("failed to approve review")
			return nil, utils.ErrTransactionFailed
		}
	}

	result, err := recompute(tx, review.ProductID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Int("reviewId", id).Msg("failed to commit review approval")
		return nil, utils.ErrTransactionFailed
	}
	return result, nil
}

// Delete removes a review. Deleting an approved review recomputes the
// product aggregates in the same transaction; deleting an unapproved one
// leaves them untouched.
func (s *ReviewService) Delete(ctx context.Context, id int) (*RecomputeResult, error) {
	tx, err := s.reviews.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open review transaction")
		return nil, utils.ErrTransactionFailed
	}
	defer tx.Rollback()

	review, err := tx.GetReview(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrReviewNotFound
		}
		return nil, err
	}

	if err := tx.DeleteReview(id); err != nil {
		log.Error().Err(err).Int("reviewId", id).Msg("failed to delete review")
		return nil, utils.ErrTransactionFailed
	}

	var result *RecomputeResult
	if review.Approved {
		result, err = recompute(tx, review.ProductID)
		if err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error().Err(err).Int("reviewId", id).Msg("failed to commit review deletion")
		return nil, utils.ErrTransactionFailed
	}
	return result, nil
}

// recompute derives the published rating from the approved reviews and
// writes it back onto the product. No approved reviews means rating 5.
func recompute(tx repository.ReviewTx, productID int) (*RecomputeResult, error) {
	count, mean, err := tx.ApprovedStats(productID)
	if err != nil {
		log.Error().Err(err).Int("productId", productID).Msg("failed to read review stats")
		return nil, utils.ErrTransactionFailed
	}

	rating := 5
	if count > 0 {
		rating = int(math.Round(mean))
	}

	if err := tx.UpdateProductAggregates(productID, rating, count); err != nil {
		log.Error().Err(err).Int("productId", productID).Msg("failed to write product aggregates")
		return nil, utils.ErrTransactionFailed
	}

	return &RecomputeResult{ProductID: productID, Rating: rating, ReviewCount: count}, nil
}
