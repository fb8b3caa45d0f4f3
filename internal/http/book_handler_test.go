package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookcatalog/internal/entity"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/store/mocks"
	"bookcatalog/internal/testutil"
	"bookcatalog/internal/usecase"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := httpx.ContextWithUsername(r.Context(), testutil.TestUser.Username)
	return r.WithContext(ctx)
}

func TestBookHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(m *mocks.MockBookRepository)
		expectedStatus int
	}{
		{
			name: "success",
			body: `{"title":"Dune","author":"Herbert","genre":"SciFi","published_year":"1965","price":9.99}`,
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *entity.Book) error {
						assert.Equal(t, "Dune", b.Title)
						assert.Equal(t, testutil.TestUser.Username, b.LastModifiedBy)
						return nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing required fields",
			body:           `{"title":"Dune"}`,
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "negative price",
			body:           `{"title":"Dune","author":"Herbert","genre":"SciFi","published_year":"1965","price":-1}`,
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid body",
			body:           `{not json`,
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "store failure",
			body: `{"title":"Dune","author":"Herbert","genre":"SciFi","published_year":"1965","price":9.99}`,
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockBookRepository(ctrl)
			handler := NewBookHandler(mockRepo)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			handler.Create(w, authedRequest(http.MethodPost, "/book", tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBookHandler_Create_ResponseExcludesID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockBookRepository(ctrl)
	handler := NewBookHandler(mockRepo)

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *entity.Book) error {
			b.ID = "store-assigned-id"
			return nil
		})

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(http.MethodPost, "/book",
		`{"title":"Dune","author":"Herbert","genre":"SciFi","published_year":"1965","price":9.99}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "store-assigned-id")

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, "Dune", body["title"])
	assert.Equal(t, "Herbert", body["author"])
}

func TestBookHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(m *mocks.MockBookRepository)
		expectedStatus int
	}{
		{
			name:        "defaults to page 1 size 10",
			queryParams: "",
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p usecase.ListParams) ([]entity.Book, error) {
						assert.Equal(t, 0, p.Offset)
						assert.Equal(t, 10, p.Limit)
						return nil, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "page 3 size 10",
			queryParams: "?page=3&page_size=10",
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p usecase.ListParams) ([]entity.Book, error) {
						assert.Equal(t, 20, p.Offset)
						assert.Equal(t, 10, p.Limit)
						return nil, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "filters forwarded",
			queryParams: "?genre=SciFi&author=Herbert&published_year=1965&title=Dune&max_price=10",
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p usecase.ListParams) ([]entity.Book, error) {
						assert.Equal(t, "SciFi", p.Genre)
						assert.Equal(t, "Herbert", p.Author)
						assert.Equal(t, "1965", p.PublishedYear)
						assert.Equal(t, "Dune", p.Title)
						require.NotNil(t, p.MaxPrice)
						assert.Equal(t, 10.0, *p.MaxPrice)
						return []entity.Book{testutil.TestBook}, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "page zero rejected",
			queryParams:    "?page=0",
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric page rejected",
			queryParams:    "?page=abc",
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric max_price rejected",
			queryParams:    "?max_price=cheap",
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "page size capped",
			queryParams: "?page_size=5000",
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p usecase.ListParams) ([]entity.Book, error) {
						assert.Equal(t, 100, p.Limit)
						return nil, nil
					})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:        "store failure",
			queryParams: "",
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					List(gomock.Any(), gomock.Any()).
					Return(nil, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockBookRepository(ctrl)
			handler := NewBookHandler(mockRepo)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/book"+tt.queryParams, nil)
			handler.List(w, r)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBookHandler_List_EmptyResultIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockBookRepository(ctrl)
	handler := NewBookHandler(mockRepo)

	mockRepo.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/book", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestBookHandler_Patch(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		body           string
		setupMock      func(m *mocks.MockBookRepository)
		expectedStatus int
	}{
		{
			name:   "success",
			target: "/book/Dune",
			body:   `{"price":12.5}`,
			setupMock: func(m *mocks.MockBookRepository) {
				updated := testutil.TestBook
				updated.Price = 12.5
				m.EXPECT().
					Patch(gomock.Any(), "Dune", gomock.Any(), testutil.TestUser.Username).
					Return(updated, true, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "no-op patch still succeeds",
			target: "/book/Dune",
			body:   `{"price":9.99}`,
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					Patch(gomock.Any(), "Dune", gomock.Any(), testutil.TestUser.Username).
					Return(testutil.TestBook, false, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "not found",
			target: "/book/Nonexistent%20Book",
			body:   `{"price":1}`,
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					Patch(gomock.Any(), "Nonexistent Book", gomock.Any(), testutil.TestUser.Username).
					Return(entity.Book{}, false, usecase.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid body",
			target:         "/book/Dune",
			body:           `{not json`,
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing title segment",
			target:         "/book/",
			body:           `{"price":1}`,
			setupMock:      func(m *mocks.MockBookRepository) {},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "store failure",
			target: "/book/Dune",
			body:   `{"price":1}`,
			setupMock: func(m *mocks.MockBookRepository) {
				m.EXPECT().
					Patch(gomock.Any(), "Dune", gomock.Any(), testutil.TestUser.Username).
					Return(entity.Book{}, false, context.DeadlineExceeded)
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			mockRepo := mocks.NewMockBookRepository(ctrl)
			handler := NewBookHandler(mockRepo)
			tt.setupMock(mockRepo)

			w := httptest.NewRecorder()
			handler.Patch(w, authedRequest(http.MethodPatch, tt.target, tt.body))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestBookHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockBookRepository(ctrl)
	handler := NewBookHandler(mockRepo)

	// first delete succeeds, second reports not found
	gomock.InOrder(
		mockRepo.EXPECT().Delete(gomock.Any(), "Dune").Return(nil),
		mockRepo.EXPECT().Delete(gomock.Any(), "Dune").Return(usecase.ErrNotFound),
	)

	w := httptest.NewRecorder()
	handler.Delete(w, authedRequest(http.MethodDelete, "/book/Dune", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "book deleted")

	w = httptest.NewRecorder()
	handler.Delete(w, authedRequest(http.MethodDelete, "/book/Dune", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookHandler_Delete_NonexistentTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockBookRepository(ctrl)
	handler := NewBookHandler(mockRepo)

	mockRepo.EXPECT().
		Delete(gomock.Any(), "Nonexistent Book").
		Return(usecase.ErrNotFound)

	w := httptest.NewRecorder()
	handler.Delete(w, authedRequest(http.MethodDelete, "/book/Nonexistent%20Book", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Create a book, then filter by genre and price bounds, mirroring the
// primary catalog flow end to end at the handler layer.
func TestBookHandler_CreateThenFilterScenario(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockRepo := mocks.NewMockBookRepository(ctrl)
	handler := NewBookHandler(mockRepo)

	var stored entity.Book
	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *entity.Book) error {
			stored = *b
			return nil
		})

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(http.MethodPost, "/book",
		`{"title":"Dune","author":"Herbert","genre":"SciFi","published_year":"1965","price":9.99}`))
	require.Equal(t, http.StatusCreated, w.Code)

	mockRepo.EXPECT().
		List(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p usecase.ListParams) ([]entity.Book, error) {
			if p.Genre == "SciFi" && p.MaxPrice != nil && stored.Price < *p.MaxPrice {
				return []entity.Book{stored}, nil
			}
			return nil, nil
		}).Times(2)

	w = httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/book?genre=SciFi&max_price=10", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dune")

	w = httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/book?genre=SciFi&max_price=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}
