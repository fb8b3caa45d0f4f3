package entity

import "time"

// Book is the catalog record. Title is the lookup key for update and delete.
// The store-assigned ID never appears in response bodies.
type Book struct {
	ID             string    `json:"-"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Genre          string    `json:"genre"`
	Author         string    `json:"author"`
	PublishedYear  string    `json:"published_year"`
	Price          float64   `json:"price"`
	CreatedAt      time.Time `json:"created_at"`
	LastModifiedAt time.Time `json:"last_modified_at"`
	LastModifiedBy string    `json:"last_modified_by"`
}

// BookPatch carries a partial update. Nil fields leave the stored value
// untouched.
type BookPatch struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Genre         *string  `json:"genre"`
	Author        *string  `json:"author"`
	PublishedYear *string  `json:"published_year"`
	Price         *float64 `json:"price"`
}

// Apply merges the present patch fields onto the book and reports whether
// any field actually changed value. Timestamps are the caller's business.
func (b *Book) Apply(p BookPatch) bool {
	changed := false
	if p.Title != nil && *p.Title != b.Title {
		b.Title = *p.Title
		changed = true
	}
	if p.Description != nil && *p.Description != b.Description {
		b.Description = *p.Description
		changed = true
	}
	if p.Genre != nil && *p.Genre != b.Genre {
		b.Genre = *p.Genre
		changed = true
	}
	if p.Author != nil && *p.Author != b.Author {
		b.Author = *p.Author
		changed = true
	}
	if p.PublishedYear != nil && *p.PublishedYear != b.PublishedYear {
		b.PublishedYear = *p.PublishedYear
		changed = true
	}
	if p.Price != nil && *p.Price != b.Price {
		b.Price = *p.Price
		changed = true
	}
	return changed
}
