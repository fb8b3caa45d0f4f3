package store

// Repository implementation (Postgres)

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = "id, title, description, genre, author, published_year, price, created_at, last_modified_at, last_modified_by"

type BookPG struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewBookPG(db *pgxpool.Pool, timeout time.Duration) *BookPG {
	return &BookPG{db: db, timeout: timeout}
}

func (r *BookPG) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

// buildBookFilter turns the optional list parameters into WHERE clauses.
// Each present parameter contributes exactly one clause; all clauses are
// conjoined with AND by the caller. Placeholders start at $1.
func buildBookFilter(p usecase.ListParams) ([]string, []any) {
	var clauses []string
	var args []any
	argn := 1

	if p.Title != "" {
		clauses = append(clauses, fmt.Sprintf("title = $%d", argn))
		args = append(args, p.Title)
		argn++
	}
	if p.Author != "" {
		clauses = append(clauses, fmt.Sprintf("author = $%d", argn))
		args = append(args, p.Author)
		argn++
	}
	if p.PublishedYear != "" {
		clauses = append(clauses, fmt.Sprintf("published_year = $%d", argn))
		args = append(args, p.PublishedYear)
		argn++
	}
	if p.Genre != "" {
		clauses = append(clauses, fmt.Sprintf("genre = $%d", argn))
		args = append(args, p.Genre)
		argn++
	}
	if p.MaxPrice != nil {
		clauses = append(clauses, fmt.Sprintf("price < $%d", argn))
		args = append(args, *p.MaxPrice)
		argn++
	}
	return clauses, args
}

func scanBook(row pgx.Row, b *entity.Book) error {
	return row.Scan(&b.ID, &b.Title, &b.Description, &b.Genre, &b.Author,
		&b.PublishedYear, &b.Price, &b.CreatedAt, &b.LastModifiedAt, &b.LastModifiedBy)
}

func (r *BookPG) Create(ctx context.Context, b *entity.Book) error {
	now := time.Now().UTC()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.LastModifiedAt = now

	const query = `
	INSERT INTO books (id, title, description, genre, author, published_year, price, created_at, last_modified_at, last_modified_by)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query,
		b.Title, b.Description, b.Genre, b.Author, b.PublishedYear, b.Price,
		b.CreatedAt, b.LastModifiedAt, b.LastModifiedBy,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *BookPG) List(ctx context.Context, p usecase.ListParams) ([]entity.Book, error) {
	clauses, args := buildBookFilter(p)

	where := ""
	if len(clauses) > 0 {
		where = "WHERE " + strings.Join(clauses, " AND ")
	}

	query := fmt.Sprintf(`
	SELECT %s
	FROM books
	%s
	ORDER BY title
	LIMIT $%d OFFSET $%d`,
		bookColumns, where, len(args)+1, len(args)+2)
	args = append(args, p.Limit, p.Offset)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []entity.Book
	for rows.Next() {
		var b entity.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *BookPG) GetByTitle(ctx context.Context, title string) (entity.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE title = $1 LIMIT 1`, bookColumns)

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	var b entity.Book
	err := scanBook(r.db.QueryRow(timeoutCtx, query, title), &b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Book{}, usecase.ErrNotFound
		}
		return entity.Book{}, fmt.Errorf("get book %q: %w", title, err)
	}
	return b, nil
}

// Patch merges the present fields onto the stored record. The last-modified
// stamps advance even when the merge changes nothing, matching the write
// semantics of the create path.
func (r *BookPG) Patch(ctx context.Context, title string, p entity.BookPatch, modifiedBy string) (entity.Book, bool, error) {
	b, err := r.GetByTitle(ctx, title)
	if err != nil {
		return entity.Book{}, false, err
	}

	changed := b.Apply(p)
	b.LastModifiedAt = time.Now().UTC()
	b.LastModifiedBy = modifiedBy

	const query = `
	UPDATE books
	SET title = $2, description = $3, genre = $4, author = $5,
	    published_year = $6, price = $7, last_modified_at = $8, last_modified_by = $9
	WHERE id = $1
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query,
		b.ID, b.Title, b.Description, b.Genre, b.Author,
		b.PublishedYear, b.Price, b.LastModifiedAt, b.LastModifiedBy,
	)
	if err != nil {
		return entity.Book{}, false, fmt.Errorf("update book %q: %w", title, err)
	}
	if tag.RowsAffected() == 0 {
		return entity.Book{}, false, usecase.ErrNotFound
	}
	return b, changed, nil
}

func (r *BookPG) Delete(ctx context.Context, title string) error {
	const query = `
	DELETE FROM books
	WHERE id = (SELECT id FROM books WHERE title = $1 LIMIT 1)
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, title)
	if err != nil {
		return fmt.Errorf("delete book %q: %w", title, err)
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
