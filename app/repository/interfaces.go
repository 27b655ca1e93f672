package repository

import (
	"gorm.io/gorm"

	"github.com/framelessmedia/payportal/app/models"
	"github.com/framelessmedia/payportal/internal/pkg/purchases"
)

// PurchaseEventRepository defines read-only, user-scoped access to the
// stored purchase history. Events are supplied to the entitlement core,
// never written by it.
type PurchaseEventRepository interface {
	GetByUserID(userID uint) ([]models.PurchaseEvent, error)
	// ListEventsForUser returns the history already materialized as core
	// purchase values. A user with zero purchases yields an empty slice.
	ListEventsForUser(userID uint) ([]purchases.Event, error)
}

// ProductRepository defines product catalog database operations.
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetByIDs(ids []uint) ([]models.Product, error)
	GetAccessGated() ([]models.Product, error)
}

// UserRepository defines the user-related operations the portal needs.
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	Update(user *models.User) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	PurchaseEvent PurchaseEventRepository
	Product       ProductRepository
	User          UserRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		PurchaseEvent: NewPurchaseEventRepository(db),
		Product:       NewProductRepository(db),
		User:          NewUserRepository(db),
	}
}
