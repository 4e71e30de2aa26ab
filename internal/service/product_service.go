package service

import (
	"database/sql"

	"github.com/beautyhub/shop_api/internal/models"
	"github.com/beautyhub/shop_api/internal/utils"
)

// ProductService is the read-only catalog surface: product detail with
// variations. Catalog writes happen elsewhere; nothing here mutates.
type ProductService struct {
	catalog CatalogStore
}

// NewProductService constructs a ProductService.
func NewProductService(catalog CatalogStore) *ProductService {
	return &ProductService{catalog: catalog}
}

// Get returns a product and its variations by id.
func (s *ProductService) Get(id int) (*models.Product, error) {
	product, err := s.catalog.GetByID(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
