package storage

import (
	"context"

	"github.com/iudanet/leeroy/internal/models"
)

// BookStorage defines interface for book catalog persistence
type BookStorage interface {
	// CreateBook creates a new book record
	// Returns ErrISBNTaken if a book with the same ISBN exists
	CreateBook(ctx context.Context, book *models.Book) error

	// GetBookByID retrieves book by ID
	// Returns ErrBookNotFound if book doesn't exist
	GetBookByID(ctx context.Context, bookID string) (*models.Book, error)

	// GetBookByISBN retrieves book by ISBN
	// Returns ErrBookNotFound if book doesn't exist
	GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error)

	// ListBooks returns all books in the catalog
	ListBooks(ctx context.Context) ([]*models.Book, error)

	// DeleteBook deletes book by ID
	// Returns ErrBookNotFound if book doesn't exist
	DeleteBook(ctx context.Context, bookID string) error
}
