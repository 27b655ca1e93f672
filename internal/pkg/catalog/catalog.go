package catalog

import (
	"fmt"

	"github.com/framelessmedia/payportal/app/models"
	"github.com/framelessmedia/payportal/app/repository"
	"github.com/framelessmedia/payportal/internal/pkg/entitlements"
	"github.com/framelessmedia/payportal/internal/pkg/thumbnail"
)

// Service implements entitlements.ProductCatalog on top of the product
// repository. One IN-query per batch; unknown ids are simply absent from
// the result. A backend failure is reported alongside an empty map so the
// resolver can degrade instead of aborting.
type Service struct {
	products repository.ProductRepository
}

func NewService(products repository.ProductRepository) *Service {
	return &Service{products: products}
}

func (s *Service) BatchFetch(ids []int) (map[int]entitlements.CatalogProduct, error) {
	uids := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			uids = append(uids, uint(id))
		}
	}
	if len(uids) == 0 {
		return map[int]entitlements.CatalogProduct{}, nil
	}

	stored, err := s.products.GetByIDs(uids)
	if err != nil {
		return map[int]entitlements.CatalogProduct{}, fmt.Errorf("product batch fetch: %w", err)
	}

	byID := make(map[int]entitlements.CatalogProduct, len(stored))
	for _, p := range stored {
		byID[int(p.ID)] = Entry(p)
	}
	return byID, nil
}

// Entry builds the catalog view of a stored product. The access URL is only
// handed out for gated products; everything else renders without a link.
func Entry(p models.Product) entitlements.CatalogProduct {
	accessURL := ""
	if p.RequiresAccess {
		accessURL = p.PageURL
	}
	return entitlements.CatalogProduct{
		ID:        int(p.ID),
		Title:     p.Title,
		AccessURL: accessURL,
		Category:  p.CategoryLabel(),
		ThumbURL:  thumbnail.ProductThumbURL(p.FirstImagePath()),
	}
}
