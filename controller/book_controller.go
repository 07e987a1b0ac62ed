package controller

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"library-client/backend"
	"library-client/models"
)

const (
	BOOK_NOT_FOUND      = "Book not found!"
	BOOK_GET_FAILED     = "Error getting book!"
	BOOK_ADDED          = "Book added!"
	BOOK_ADD_FAILED     = "Error adding book!"
	BOOK_FIELDS_MISSING = "Please enter title and author!"
	BOOK_DELETED        = "Book deleted!"
	BOOK_DELETE_FAILED  = "Error deleting book!"
	BOOKS_GET_FAILED    = "Error getting books!"
)

type BookBackend interface {
	GetBook(ctx context.Context, id int64) *backend.Pending[models.Book]
	AddBook(ctx context.Context, book models.NewBook) *backend.Pending[struct{}]
	DeleteBook(ctx context.Context, id int64) *backend.Pending[struct{}]
	GetAllBooks(ctx context.Context) *backend.Pending[[]models.Book]
	FindByAuthor(ctx context.Context, author string) *backend.Pending[[]models.Book]
}

type BookState struct {
	View
	Book  *models.Book  `json:"book"`
	Books []models.Book `json:"books"`
}

// BookController keeps the book slice of the view, the same way
// UserController keeps the user slice.
type BookController struct {
	mu      sync.Mutex
	backend BookBackend
	logger  *zap.Logger
	state   BookState
}

func NewBookController(backend BookBackend, logger *zap.Logger) *BookController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookController{backend: backend, logger: logger}
}

func (controller *BookController) State() BookState {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	state := controller.state
	if state.Book != nil {
		book := *state.Book
		state.Book = &book
	}
	state.Books = append([]models.Book(nil), state.Books...)
	return state
}

func (controller *BookController) GetBook(ctx context.Context, id int64) Result[models.Book] {
	book, err := controller.backend.GetBook(ctx, id).Wait()
	result := settle(book, err, true)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch result.Outcome {
	case OutcomeOK:
		result.Data.Id = id
		current := result.Data
		controller.state.Book = &current
		controller.state.succeed("")
	case OutcomeNotFound:
		controller.state.fail(BOOK_NOT_FOUND)
	default:
		controller.logFailure("get book", err)
		controller.state.fail(BOOK_GET_FAILED)
	}

	return result
}

func (controller *BookController) AddBook(ctx context.Context, form models.BookForm) Result[struct{}] {
	if form.Title == "" || form.Author == "" {
		controller.mu.Lock()
		controller.state.fail(BOOK_FIELDS_MISSING)
		controller.mu.Unlock()
		return invalid[struct{}]()
	}

	_, err := controller.backend.AddBook(ctx, models.NewBook{Title: form.Title, Author: form.Author}).Wait()
	result := settle(struct{}{}, err, false)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if result.Outcome == OutcomeOK {
		controller.state.succeed(BOOK_ADDED)
	} else {
		controller.logFailure("add book", err)
		controller.state.fail(BOOK_ADD_FAILED)
	}

	return result
}

func (controller *BookController) DeleteBook(ctx context.Context, id int64) Result[struct{}] {
	_, err := controller.backend.DeleteBook(ctx, id).Wait()
	result := settle(struct{}{}, err, false)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if result.Outcome == OutcomeOK {
		controller.state.Book = nil
		controller.state.succeed(BOOK_DELETED)
	} else {
		controller.logFailure("delete book", err)
		controller.state.fail(BOOK_DELETE_FAILED)
	}

	return result
}

func (controller *BookController) GetAllBooks(ctx context.Context) Result[[]models.Book] {
	books, err := controller.backend.GetAllBooks(ctx).Wait()
	return controller.replaceBooks("get all books", books, err, "")
}

// FindByAuthor replaces the list with whatever the backend matched.
func (controller *BookController) FindByAuthor(ctx context.Context, author string) Result[[]models.Book] {
	books, err := controller.backend.FindByAuthor(ctx, author).Wait()
	return controller.replaceBooks("find books by author", books, err, fmt.Sprintf("Found %d book(s) by %s!", len(books), author))
}

func (controller *BookController) replaceBooks(operation string, books []models.Book, err error, message string) Result[[]models.Book] {
	result := settle(books, err, false)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if result.Outcome == OutcomeOK {
		controller.state.Books = result.Data
		controller.state.succeed(message)
	} else {
		controller.logFailure(operation, err)
		controller.state.fail(BOOKS_GET_FAILED)
	}

	return result
}

// Reject records an action that never reached the backend because its
// input could not be read.
func (controller *BookController) Reject(errorMessage string) Result[struct{}] {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.state.fail(errorMessage)
	return invalid[struct{}]()
}

func (controller *BookController) logFailure(operation string, err error) {
	controller.logger.Warn("book operation failed", zap.String("operation", operation), zap.Error(err))
}
