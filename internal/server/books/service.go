// Package books реализует операции над каталогом книг.
// Изменяющие операции доступны только администраторам.
package books

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/iudanet/leeroy/internal/models"
	"github.com/iudanet/leeroy/internal/server/storage"
)

// AdminChecker проверяет права администратора у запрашивающего.
// Реализуется сервисом пользователей.
type AdminChecker interface {
	RequireAdmin(ctx context.Context, userID string) error
}

// Service реализует операции над каталогом книг
type Service struct {
	logger *slog.Logger
	books  storage.BookStorage
	admins AdminChecker
}

// NewService создает сервис каталога
func NewService(logger *slog.Logger, books storage.BookStorage, admins AdminChecker) *Service {
	return &Service{
		logger: logger,
		books:  books,
		admins: admins,
	}
}

// Create добавляет книгу в каталог. Доступно только администраторам.
// Возвращает storage.ErrISBNTaken, если книга с таким ISBN уже есть.
func (s *Service) Create(ctx context.Context, requesterID, title, author, isbn string) (string, error) {
	if err := s.admins.RequireAdmin(ctx, requesterID); err != nil {
		return "", err
	}

	book := &models.Book{
		ID:     uuid.NewString(),
		Title:  title,
		Author: author,
		ISBN:   isbn,
	}

	if err := s.books.CreateBook(ctx, book); err != nil {
		return "", err
	}

	s.logger.InfoContext(ctx, "book created",
		slog.String("book_id", book.ID),
		slog.String("isbn", book.ISBN))

	return book.ID, nil
}

// List возвращает все книги каталога
func (s *Service) List(ctx context.Context) ([]*models.Book, error) {
	return s.books.ListBooks(ctx)
}

// Get возвращает книгу по ID
func (s *Service) Get(ctx context.Context, bookID string) (*models.Book, error) {
	return s.books.GetBookByID(ctx, bookID)
}

// Delete удаляет книгу из каталога. Доступно только администраторам.
func (s *Service) Delete(ctx context.Context, requesterID, bookID string) error {
	if err := s.admins.RequireAdmin(ctx, requesterID); err != nil {
		return err
	}

	if _, err := s.books.GetBookByID(ctx, bookID); err != nil {
		return err
	}

	if err := s.books.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "book deleted", slog.String("book_id", bookID))

	return nil
}
