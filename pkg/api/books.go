package api

// CreateBookRequest представляет запрос на добавление книги в каталог
type CreateBookRequest struct {
	Title  string `json:"title"`  // название книги
	Author string `json:"author"` // автор
	ISBN   string `json:"isbn"`   // ISBN, должен быть уникален
}

// CreateBookResponse представляет ответ на успешное добавление книги
type CreateBookResponse struct {
	Status string `json:"status"`  // статусное сообщение
	BookID string `json:"book_id"` // UUID созданной книги
}

// BookResponse представляет одну книгу каталога
type BookResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}
