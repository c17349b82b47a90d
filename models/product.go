package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Category    string         `gorm:"not null;index" json:"category"`
	Stock       bool           `gorm:"default:true" json:"stock"`
	Sale        float64        `gorm:"-" json:"sale"` // no discounts; always 0
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Images      []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Thumbnail returns the image flagged as the product's cover, nil when the
// product has no images yet.
func (p *Product) Thumbnail() *ProductImage {
	for i := range p.Images {
		if p.Images[i].IsThumbnail {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// Categories is the fixed set of shop categories products belong to.
var Categories = []string{
	"Ramos",
	"Box Floral",
	"Plantas",
	"Canastas",
	"Desayunos",
	"Complementos",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
