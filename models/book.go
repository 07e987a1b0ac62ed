package models

type Book struct {
	Id     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type NewBook struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BookForm is what the UI submits for the book slice.
type BookForm struct {
	Id     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}
