package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	CategoryID        *primitive.ObjectID `bson:"categoryId,omitempty" json:"categoryId,omitempty"`
	Name              string              `bson:"name" json:"name"`
	Slug              string              `bson:"slug" json:"slug"`
	Description       string              `bson:"description,omitempty" json:"description,omitempty"`
	Price             float64             `bson:"price" json:"price"`
	ImageURL          string              `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ManufacturingDate *time.Time          `bson:"manufacturingDate,omitempty" json:"manufacturingDate,omitempty"`
	ExpiryDate        *time.Time          `bson:"expiryDate,omitempty" json:"expiryDate,omitempty"`
	Stock             int                 `bson:"stock" json:"stock"`
	IsAvailable       bool                `bson:"isAvailable" json:"isAvailable"`
	IsActive          bool                `bson:"isActive" json:"isActive"`
	InStock           bool                `bson:"-" json:"inStock"`
	IsExpired         bool                `bson:"-" json:"isExpired"`
	CreatedAt         time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// Derive fills the display-only flags that are never persisted. Expiry is
// advisory: an expired product stays listed, the storefront only stops
// offering the add-to-cart action.
func (p *Product) Derive(now time.Time) {
	p.InStock = p.Stock > 0
	p.IsExpired = p.ExpiryDate != nil && p.ExpiryDate.Before(now)
}
