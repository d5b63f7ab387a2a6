package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating and comment on a product. A user may review
// a product at most once.
type Review struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProductID uuid.UUID
	Rating    int
	Comment   string

	UserName string // denormalized for product detail responses

	CreatedAt time.Time
	UpdatedAt time.Time
}
