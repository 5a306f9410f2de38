package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iudanet/leeroy/internal/server/books"
	"github.com/iudanet/leeroy/internal/server/storage"
	"github.com/iudanet/leeroy/internal/server/users"
	"github.com/iudanet/leeroy/pkg/api"
)

// BooksHandler обрабатывает запросы каталога книг
type BooksHandler struct {
	logger *slog.Logger
	books  *books.Service
}

// NewBooksHandler создает новый handler для каталога
func NewBooksHandler(logger *slog.Logger, booksService *books.Service) *BooksHandler {
	return &BooksHandler{
		logger: logger,
		books:  booksService,
	}
}

// Create обрабатывает POST /books
// Добавление книги в каталог. Только для администраторов.
func (h *BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requesterID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "requester is not resolved", http.StatusInternalServerError)
		return
	}

	var req api.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create book request", slog.Any("error", err))
		sendError(h.logger, w, "BAD_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" || req.Author == "" || req.ISBN == "" {
		sendError(h.logger, w, "BAD_REQUEST", "title, author and isbn are required", http.StatusBadRequest)
		return
	}

	bookID, err := h.books.Create(ctx, requesterID, req.Title, req.Author, req.ISBN)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrNotAdmin):
			sendError(h.logger, w, "FORBIDDEN", "Only administrators can create new books", http.StatusForbidden)
		case errors.Is(err, storage.ErrISBNTaken):
			sendError(h.logger, w, "ISBN_IS_NOT_UNIQUE",
				fmt.Sprintf("Book with ISBN %s already exist", req.ISBN), http.StatusConflict)
		default:
			h.logger.ErrorContext(ctx, "failed to create book", slog.Any("error", err))
			sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	resp := api.CreateBookResponse{
		Status: "Book successfully created",
		BookID: bookID,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// List обрабатывает GET /books
// Возвращает все книги каталога.
func (h *BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	catalog, err := h.books.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list books", slog.Any("error", err))
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]api.BookResponse, 0, len(catalog))
	for _, book := range catalog {
		resp = append(resp, api.BookResponse{
			ID:     book.ID,
			Title:  book.Title,
			Author: book.Author,
			ISBN:   book.ISBN,
		})
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get обрабатывает GET /books/{book_id}
func (h *BooksHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	bookID := r.PathValue("book_id")

	book, err := h.books.Get(ctx, bookID)
	if err != nil {
		if errors.Is(err, storage.ErrBookNotFound) {
			sendError(h.logger, w, "NOT_FOUND",
				fmt.Sprintf("Book with ID %s is not found", bookID), http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get book", slog.Any("error", err))
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.BookResponse{
		ID:     book.ID,
		Title:  book.Title,
		Author: book.Author,
		ISBN:   book.ISBN,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete обрабатывает DELETE /books/{book_id}
// Удаление книги из каталога. Только для администраторов.
func (h *BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	requesterID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "requester is not resolved", http.StatusInternalServerError)
		return
	}

	bookID := r.PathValue("book_id")

	if err := h.books.Delete(ctx, requesterID, bookID); err != nil {
		switch {
		case errors.Is(err, users.ErrNotAdmin):
			sendError(h.logger, w, "FORBIDDEN", "Only administrators can delete books", http.StatusForbidden)
		case errors.Is(err, storage.ErrBookNotFound):
			sendError(h.logger, w, "NOT_FOUND",
				fmt.Sprintf("Book with ID %s is not found", bookID), http.StatusNotFound)
		default:
			h.logger.ErrorContext(ctx, "failed to delete book", slog.Any("error", err))
			sendError(h.logger, w, "INTERNAL_SERVER_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	sendJSON(h.logger, w, api.StatusResponse{Status: "Book successfully deleted"}, http.StatusOK)
}
