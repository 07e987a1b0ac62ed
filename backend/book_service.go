package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"library-client/models"
)

// BookService maps each book action onto one backend call.
type BookService struct {
	client *Client
}

func NewBookService(client *Client) *BookService {
	return &BookService{client: client}
}

func (service *BookService) GetBook(ctx context.Context, id int64) *Pending[models.Book] {
	return start(ctx, func(ctx context.Context) (models.Book, error) {
		var book models.Book
		err := service.client.do(ctx, http.MethodGet, "/book_id/"+strconv.FormatInt(id, 10), nil, &book)
		return book, err
	})
}

func (service *BookService) AddBook(ctx context.Context, book models.NewBook) *Pending[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, service.client.do(ctx, http.MethodPost, "/books", book, nil)
	})
}

func (service *BookService) DeleteBook(ctx context.Context, id int64) *Pending[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, service.client.do(ctx, http.MethodDelete, "/delete/book/"+strconv.FormatInt(id, 10), nil, nil)
	})
}

func (service *BookService) GetAllBooks(ctx context.Context) *Pending[[]models.Book] {
	return start(ctx, func(ctx context.Context) ([]models.Book, error) {
		var books []models.Book
		err := service.client.do(ctx, http.MethodGet, "/books", nil, &books)
		return books, err
	})
}

// FindByAuthor leaves matching entirely to the backend.
func (service *BookService) FindByAuthor(ctx context.Context, author string) *Pending[[]models.Book] {
	return start(ctx, func(ctx context.Context) ([]models.Book, error) {
		var books []models.Book
		err := service.client.do(ctx, http.MethodGet, "/books_author/"+url.PathEscape(author), nil, &books)
		return books, err
	})
}
