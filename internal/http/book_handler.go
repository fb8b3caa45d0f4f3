package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/usecase"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type BookHandler struct {
	repo usecase.BookRepository
}

func NewBookHandler(repo usecase.BookRepository) *BookHandler {
	return &BookHandler{repo: repo}
}

type createBookReq struct {
	Title         string  `json:"title" validate:"required,max=500"`
	Description   string  `json:"description"`
	Genre         string  `json:"genre" validate:"required"`
	Author        string  `json:"author" validate:"required"`
	PublishedYear string  `json:"published_year" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
}

// Create handles POST /book. Timestamps are assigned here, not by the
// caller: created_at and last_modified_at are set to now and
// last_modified_by to the authenticated subject.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)

	if validationErrors := ValidateStruct(req); len(validationErrors) > 0 {
		httpx.JSON(w, http.StatusBadRequest, map[string]any{
			"detail": "invalid input",
			"errors": validationErrors,
		})
		return
	}

	book := entity.Book{
		Title:          req.Title,
		Description:    req.Description,
		Genre:          req.Genre,
		Author:         req.Author,
		PublishedYear:  req.PublishedYear,
		Price:          req.Price,
		LastModifiedBy: httpx.UsernameFrom(r),
	}

	if err := h.repo.Create(r.Context(), &book); err != nil {
		log.Printf("create book failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusCreated, book)
}

// List handles GET /book. Absent filter parameters contribute no predicate;
// page defaults to 1 and page_size to 10 (capped at 100).
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httpx.JSONError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = parsed
	}

	pageSize := defaultPageSize
	if raw := q.Get("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			httpx.JSONError(w, http.StatusBadRequest, "page_size must be a positive integer")
			return
		}
		if parsed > maxPageSize {
			parsed = maxPageSize
		}
		pageSize = parsed
	}

	params := usecase.ListParams{
		Title:         q.Get("title"),
		Author:        q.Get("author"),
		PublishedYear: q.Get("published_year"),
		Genre:         q.Get("genre"),
	}
	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "max_price must be a number")
			return
		}
		params.MaxPrice = &maxPrice
	}

	offset, limit, err := usecase.PageWindow(page, pageSize)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	params.Offset = offset
	params.Limit = limit

	books, err := h.repo.List(r.Context(), params)
	if err != nil {
		log.Printf("list books failed request_id=%s err=%v", httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if books == nil {
		books = []entity.Book{}
	}

	httpx.JSON(w, http.StatusOK, books)
}

// Patch handles PATCH /book/{title}. Only fields present in the body change;
// last_modified_at and last_modified_by advance on every call, no-op or not.
func (h *BookHandler) Patch(w http.ResponseWriter, r *http.Request) {
	title, ok := titleFromPath(w, r)
	if !ok {
		return
	}

	var patch entity.BookPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	book, changed, err := h.repo.Patch(r.Context(), title, patch, httpx.UsernameFrom(r))
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "book not found")
			return
		}
		log.Printf("patch book failed request_id=%s title=%q err=%v", httpx.RequestIDFrom(r), title, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !changed {
		log.Printf("patch no-op request_id=%s title=%q", httpx.RequestIDFrom(r), title)
	}

	httpx.JSON(w, http.StatusOK, book)
}

// Delete handles DELETE /book/{title}.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	title, ok := titleFromPath(w, r)
	if !ok {
		return
	}

	if err := h.repo.Delete(r.Context(), title); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "book not found")
			return
		}
		log.Printf("delete book failed request_id=%s title=%q err=%v", httpx.RequestIDFrom(r), title, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]string{"message": "book deleted"})
}

// titleFromPath extracts the {title} path segment from /book/{title}.
func titleFromPath(w http.ResponseWriter, r *http.Request) (string, bool) {
	const prefix = "/book/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return "", false
	}
	title := strings.TrimPrefix(r.URL.Path, prefix)
	if title == "" || strings.Contains(title, "/") {
		http.NotFound(w, r)
		return "", false
	}
	return title, true
}
