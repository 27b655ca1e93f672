package repository

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/framelessmedia/payportal/app/models"
	"github.com/framelessmedia/payportal/internal/pkg/purchases"
)

type purchaseEventRepository struct {
	db *gorm.DB
}

// NewPurchaseEventRepository creates a purchase event repository backed by GORM.
func NewPurchaseEventRepository(db *gorm.DB) PurchaseEventRepository {
	return &purchaseEventRepository{db: db}
}

func (r *purchaseEventRepository) GetByUserID(userID uint) ([]models.PurchaseEvent, error) {
	return models.FindPurchaseEventsByUser(r.db, userID)
}

func (r *purchaseEventRepository) ListEventsForUser(userID uint) ([]purchases.Event, error) {
	stored, err := r.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	events := make([]purchases.Event, 0, len(stored))
	for _, m := range stored {
		events = append(events, toPurchaseEvent(m))
	}
	return events, nil
}

// toPurchaseEvent materializes a stored row into the immutable core value.
func toPurchaseEvent(m models.PurchaseEvent) purchases.Event {
	id := m.ExternalID
	if id == "" {
		id = strconv.FormatUint(uint64(m.ID), 10)
	}
	return purchases.Event{
		ID:         id,
		CreatedAt:  m.CreatedAt.Unix(),
		ProductIDs: m.ProductIDList(),
		PeriodEnds: purchases.PeriodEndMap(m.PeriodEndMap()),
		Session:    m.ProviderSession(),
	}
}
