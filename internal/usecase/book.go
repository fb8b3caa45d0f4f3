package usecase

import (
	"context"
	"fmt"

	"bookcatalog/internal/entity"
)

// ListParams is the filter plus page window for listing books. Zero-value
// string fields and a nil MaxPrice contribute no predicate.
type ListParams struct {
	Title         string
	Author        string
	PublishedYear string
	Genre         string
	MaxPrice      *float64 // strict less-than
	Limit         int
	Offset        int
}

// PageWindow converts 1-based page numbers to an offset/limit pair.
func PageWindow(page, pageSize int) (offset, limit int, err error) {
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be >= 1, got %d", ErrInvalidArgument, page)
	}
	if pageSize < 1 {
		return 0, 0, fmt.Errorf("%w: page_size must be >= 1, got %d", ErrInvalidArgument, pageSize)
	}
	return (page - 1) * pageSize, pageSize, nil
}

// BookRepository defines the contract for book storage.
type BookRepository interface {
	// Create inserts the book and fills store-assigned fields.
	Create(ctx context.Context, b *entity.Book) error
	// List returns at most Limit books matching the params, skipping Offset.
	List(ctx context.Context, p ListParams) ([]entity.Book, error)
	// Patch merges the present patch fields onto the book with that title.
	// The returned bool is false when no field changed value; the
	// last-modified stamps advance either way.
	Patch(ctx context.Context, title string, p entity.BookPatch, modifiedBy string) (entity.Book, bool, error)
	// Delete removes at most one book by title; ErrNotFound when none matched.
	Delete(ctx context.Context, title string) error
}
