package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/iudanet/leeroy/internal/models"
	"github.com/iudanet/leeroy/internal/server/storage"
)

// CreateBook creates a new book record
func (s *Storage) CreateBook(ctx context.Context, book *models.Book) error {
	query := `
		INSERT INTO books (id, title, author, isbn)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.Author,
		book.ISBN,
	)
	if err != nil {
		// Проверяем на duplicate ISBN
		if strings.Contains(err.Error(), "UNIQUE constraint failed: books.isbn") {
			return storage.ErrISBNTaken
		}
		return fmt.Errorf("failed to insert book: %w", err)
	}

	return nil
}

// GetBookByID retrieves book by ID
func (s *Storage) GetBookByID(ctx context.Context, bookID string) (*models.Book, error) {
	query := `SELECT id, title, author, isbn FROM books WHERE id = ?`

	return s.scanBook(s.db.QueryRowContext(ctx, query, bookID))
}

// GetBookByISBN retrieves book by ISBN
func (s *Storage) GetBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	query := `SELECT id, title, author, isbn FROM books WHERE isbn = ?`

	return s.scanBook(s.db.QueryRowContext(ctx, query, isbn))
}

// ListBooks returns all books in the catalog
func (s *Storage) ListBooks(ctx context.Context) ([]*models.Book, error) {
	query := `SELECT id, title, author, isbn FROM books ORDER BY title`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var books []*models.Book

	for rows.Next() {
		book := &models.Book{}
		if err := rows.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN); err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, book)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return books, nil
}

// DeleteBook deletes book by ID
func (s *Storage) DeleteBook(ctx context.Context, bookID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrBookNotFound
	}

	return nil
}

// scanBook разбирает одну строку результата в модель книги
func (s *Storage) scanBook(row *sql.Row) (*models.Book, error) {
	book := &models.Book{}

	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.ISBN)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book: %w", err)
	}

	return book, nil
}
