package models

import "time"

// CategoryPercentage assigns a share of an admin-defined quiz to one
// category. Percentages across a quiz must sum to 100.
type CategoryPercentage struct {
	CategoryID string `bson:"category_id" json:"categoryId"`
	Percentage int    `bson:"percentage" json:"percentage"`
}

// Quiz is an admin-created quiz product with a price and a category mix.
type Quiz struct {
	ID                   string               `bson:"_id,omitempty" json:"id"`
	Name                 string               `bson:"name" json:"name"`
	Description          string               `bson:"description" json:"description"`
	Price                float64              `bson:"price" json:"price"`
	CategoryDistribution []CategoryPercentage `bson:"category_distribution" json:"categoryDistribution"`
	CreatedAt            time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time            `bson:"updated_at" json:"updatedAt"`
}
