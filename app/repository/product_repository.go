package repository

import (
	"gorm.io/gorm"

	"github.com/framelessmedia/payportal/app/models"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository backed by GORM.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ids []uint) ([]models.Product, error) {
	return models.FindProductsByIDs(r.db, ids)
}

func (r *productRepository) GetAccessGated() ([]models.Product, error) {
	return models.GetAccessGatedProducts(r.db)
}
