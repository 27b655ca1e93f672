package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Product is one purchasable catalog entry. Access-gated products carry a
// page URL that only paying customers may open; the entitlement layer
// decides whether to hand it out.
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"type:varchar(255);not null" json:"title" validate:"required,min=1,max=255"`
	Slug           string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug" validate:"required,min=1,max=255"`
	PageURL        string         `gorm:"type:varchar(512)" json:"page_url" validate:"max=512"`
	RequiresAccess bool           `gorm:"default:false;index" json:"requires_access"`
	Category       string         `gorm:"type:varchar(100)" json:"category" validate:"max=100"`
	TemplateLabel  string         `gorm:"type:varchar(100)" json:"template_label" validate:"max=100"`
	TemplateName   string         `gorm:"type:varchar(100)" json:"template_name" validate:"max=100"`
	ImagesJSON     string         `gorm:"type:longtext" json:"-"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) Validate() error {
	v := validator.New()
	return v.Struct(p)
}

// ImagePaths decodes the stored image list. Malformed JSON yields an empty
// list, never an error.
func (p *Product) ImagePaths() []string {
	if strings.TrimSpace(p.ImagesJSON) == "" {
		return nil
	}
	var paths []string
	if err := json.Unmarshal([]byte(p.ImagesJSON), &paths); err != nil {
		return nil
	}
	return paths
}

// FirstImagePath returns the first non-empty image path, or "".
func (p *Product) FirstImagePath() string {
	for _, path := range p.ImagePaths() {
		if strings.TrimSpace(path) != "" {
			return path
		}
	}
	return ""
}

// CategoryLabel resolves the display category: explicit category first,
// then the template label, then the raw template name.
func (p *Product) CategoryLabel() string {
	if c := strings.TrimSpace(p.Category); c != "" {
		return c
	}
	if l := strings.TrimSpace(p.TemplateLabel); l != "" {
		return l
	}
	return strings.TrimSpace(p.TemplateName)
}

func FindProductsByIDs(db *gorm.DB, ids []uint) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []Product
	err := db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// GetAccessGatedProducts lists all gated products, newest first. Used for
// the "not yet purchased" section of the account grid.
func GetAccessGatedProducts(db *gorm.DB) ([]Product, error) {
	var products []Product
	err := db.Where("requires_access = ?", true).Order("created_at DESC").Find(&products).Error
	return products, err
}
