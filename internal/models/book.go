package models

// Book представляет книгу в каталоге
type Book struct {
	ID     string `json:"id"`     // UUID книги
	Title  string `json:"title"`  // название
	Author string `json:"author"` // автор
	ISBN   string `json:"isbn"`   // ISBN, уникален в каталоге
}
