package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/utils"
)

func reviewFixture(reviews ...*models.Review) (*ReviewService, *fakeReviewStore) {
	store := newFakeReviewStore()
	for _, r := range reviews {
		_ = store.Create(r)
		store.reviews[r.ID].Approved = r.Approved
	}
	return NewReviewService(store, testCatalog()), store
}

func TestReviewSubmit(t *testing.T) {
	svc, store := reviewFixture()

	review := &models.Review{ProductID: 1, Stars: 4, Title: " Great ", Body: " Works well "}
	require.NoError(t, svc.Submit(accountSession(7), review))

	stored := store.reviews[review.ID]
	assert.False(t, stored.Approved)
	assert.Equal(t, 7, stored.AccountID)
	assert.Equal(t, "Great", stored.Title)
	assert.Equal(t, "Works well", stored.Body)
}

func TestReviewSubmitValidation(t *testing.T) {
	svc, _ := reviewFixture()

	err := svc.Submit(guestSession(), &models.Review{ProductID: 1, Stars: 4})
	assert.ErrorIs(t, err, utils.ErrUnauthorized)

	err = svc.Submit(accountSession(7), &models.Review{ProductID: 1, Stars: 0})
	assert.ErrorIs(t, err, utils.ErrInvalidStars)

	err = svc.Submit(accountSession(7), &models.Review{ProductID: 1, Stars: 6})
	assert.ErrorIs(t, err, utils.ErrInvalidStars)

	err = svc.Submit(accountSession(7), &models.Review{ProductID: 99, Stars: 4})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestReviewApproveRecomputesRating(t *testing.T) {
	svc, store := reviewFixture(
		&models.Review{ProductID: 1, Stars: 5, Approved: true},
		&models.Review{ProductID: 1, Stars: 4, Approved: true},
		&models.Review{ProductID: 1, Stars: 5, Approved: false},
	)

	result, err := svc.Approve(context.Background(), 3)
	require.NoError(t, err)

	// mean(5, 4, 5) = 4.67 rounds to 5.
	assert.Equal(t, 5, result.Rating)
	assert.Equal(t, 3, result.ReviewCount)
	assert.True(t, store.reviews[3].Approved)
	assert.True(t, store.lastTx.committed)
}

func TestReviewApproveIdempotent(t *testing.T) {
	svc, _ := reviewFixture(
		&models.Review{ProductID: 1, Stars: 4, Approved: true},
	)

	result, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, result.Rating)
	assert.Equal(t, 1, result.ReviewCount)

	again, err := svc.Approve(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestReviewApproveNotFound(t *testing.T) {
	svc, _ := reviewFixture()

	_, err := svc.Approve(context.Background(), 99)
	assert.ErrorIs(t, err, utils.ErrReviewNotFound)
}

func TestReviewDeleteApprovedRecomputes(t *testing.T) {
	svc, store := reviewFixture(
		&models.Review{ProductID: 1, Stars: 5, Approved: true},
		&models.Review{ProductID: 1, Stars: 4, Approved: true},
		&models.Review{ProductID: 1, Stars: 5, Approved: true},
	)

	result, err := svc.Delete(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, result)

	// mean(5, 5) = 5 over the two remaining approved reviews.
	assert.Equal(t, 5, result.Rating)
	assert.Equal(t, 2, result.ReviewCount)
	assert.NotContains(t, store.reviews, 2)
}

func TestReviewDeleteLastApprovedResetsRatingToFive(t *testing.T) {
	svc, _ := reviewFixture(
		&models.Review{ProductID: 1, Stars: 2, Approved: true},
	)

	result, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 5, result.Rating)
	assert.Equal(t, 0, result.ReviewCount)
}

func TestReviewDeleteUnapprovedSkipsRecompute(t *testing.T) {
	svc, store := reviewFixture(
		&models.Review{ProductID: 1, Stars: 1, Approved: false},
	)

	result, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NotContains(t, store.reviews, 1)
	assert.Empty(t, store.aggregates)
}

func TestReviewDeleteNotFound(t *testing.T) {
	svc, _ := reviewFixture()

	_, err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, utils.ErrReviewNotFound)
}
