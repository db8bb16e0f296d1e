package models

import (
	"time"

	"github.com/lib/pq"
)

// Product represents a catalog entry. A non-nil DeletedAt marks the row as
// soft-deleted: it is invisible to normal reads and updates until recovered.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID          string         `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Price       float64        `db:"price" json:"price"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Category    *string        `db:"category" json:"category,omitempty"`
	Brand       *string        `db:"brand" json:"brand,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updatedAt"`
	DeletedAt   *time.Time     `db:"deleted_at" json:"deletedAt"`
}

// Cursor is the pagination boundary for product listings. It carries the
// creation timestamp of the first row of the next page; the comparison is
// inclusive, so the boundary row reappears as the first row of that page.
type Cursor struct {
	CreatedAt time.Time `json:"createdAt"`
}

// ListFilter holds the optional filters and pagination inputs for a listing.
// A zero Limit means "return every matching row, no next-page signal".
type ListFilter struct {
	Name   string
	Tag    string
	Cursor *Cursor
	Limit  int
}

// ListResult is one page of active products in reverse-chronological order.
type ListResult struct {
	Products   []Product `json:"products"`
	NextCursor *Cursor   `json:"nextCursor"`
	HasMore    bool      `json:"hasMore"`
}
