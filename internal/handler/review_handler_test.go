package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/repository"
	"github.com/beautyhub/shop_api/internal/service"
)

type stubReviewStore struct {
	created []*models.Review
}

func (s *stubReviewStore) Create(review *models.Review) error {
	s.created = append(s.created, review)
	return nil
}

func (s *stubReviewStore) ListApprovedByProduct(productID int) ([]models.Review, error) {
	return nil, nil
}

func (s *stubReviewStore) ListModeration() ([]models.Review, error) {
	return nil, nil
}

func (s *stubReviewStore) Begin(ctx context.Context) (repository.ReviewTx, error) {
	return nil, sql.ErrConnDone
}

type stubCatalog struct{}

func (stubCatalog) GetByID(id int) (*models.Product, error) {
	if id != 1 {
		return nil, sql.ErrNoRows
	}
	return &models.Product{ID: 1, Name: "Vitamin C Serum"}, nil
}

func reviewRouter(store service.ReviewStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReviewHandler(service.NewReviewService(store, stubCatalog{}))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("account_id", 7)
		c.Set("cart_key", "test-cart")
	})
	r.POST("/v1/products/:id/reviews", h.SubmitReview)
	return r
}

func TestSubmitReviewZeroStars(t *testing.T) {
	store := &stubReviewStore{}
	r := reviewRouter(store)

	req := httptest.NewRequest("POST", "/v1/products/1/reviews",
		strings.NewReader(`{"stars":0,"title":"meh"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STARS")
	assert.Empty(t, store.created)
}

func TestSubmitReview(t *testing.T) {
	store := &stubReviewStore{}
	r := reviewRouter(store)

	req := httptest.NewRequest("POST", "/v1/products/1/reviews",
		strings.NewReader(`{"stars":4,"title":"Nice","body":"Absorbs fast"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, store.created, 1)
	assert.Equal(t, 7, store.created[0].AccountID)
	assert.False(t, store.created[0].Approved)
}
