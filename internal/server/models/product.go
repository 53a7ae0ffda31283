package models

import "time"

// Product is a catalog entry. Image holds the S3 object key, not a URL.
// Deletion is soft: DeletedAt is stamped and the row drops out of all reads.
type Product struct {
	ID              string
	Name            string
	Category        string
	ProductCode     string
	Image           string
	Price           float64
	MinimumQuantity int
	Discount        float64
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
}

func (p *Product) IsDeleted() bool { return p.DeletedAt != nil }
