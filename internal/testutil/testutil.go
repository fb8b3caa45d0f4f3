package testutil

import (
	"testing"
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/entity"
)

// TestSecret signs tokens in tests.
const TestSecret = "test-secret"

// TestPassword is the plaintext behind TestUser's hash.
const TestPassword = "CorrectHorse9!"

// TestUser is a fixture user; the bcrypt hash is computed once at package
// load so tests exercise the real comparison path.
var TestUser = entity.User{
	ID:        "test-user-id-123",
	Username:  "testuser",
	Role:      "USER",
	CreatedAt: time.Now(),
}

func init() {
	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		panic(err)
	}
	TestUser.HashedPassword = hash
}

// TestBook is a fixture catalog record.
var TestBook = entity.Book{
	ID:             "test-book-id-789",
	Title:          "Test Book Title",
	Genre:          "Fiction",
	Author:         "Test Author",
	PublishedYear:  "1999",
	Price:          9.99,
	Description:    "A test book description",
	CreatedAt:      time.Now(),
	LastModifiedAt: time.Now(),
	LastModifiedBy: "testuser",
}

// BearerHeader returns a valid Authorization header value for the user.
func BearerHeader(t *testing.T, username string) string {
	t.Helper()
	token, _, err := auth.GenerateToken(TestSecret, username, time.Hour)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return "Bearer " + token
}
