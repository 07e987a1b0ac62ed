package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"library-client/models"
)

type recordedRequest struct {
	Method    string
	Path      string
	Body      string
	RequestId string
}

type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.requests...)
}

func newTestBackend(t *testing.T, status int, response string) (*Client, *recorder) {
	t.Helper()

	recorded := &recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		recorded.mu.Lock()
		recorded.requests = append(recorded.requests, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Body:      string(body),
			RequestId: r.Header.Get(REQUEST_ID_HEADER),
		})
		recorded.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL+"/", server.Client(), zap.NewNop())
	require.NoError(t, err)

	return client, recorded
}

func Test_NewClient_RejectsEmptyBaseURL(t *testing.T) {
	_, err := NewClient("  ", nil, nil)

	assert.ErrorIs(t, err, ErrEmptyBaseURL)
}

func Test_UserService_Endpoints(t *testing.T) {
	ctx := context.Background()
	client, recorded := newTestBackend(t, http.StatusOK, `{}`)
	users := NewUserService(client)

	_, err := users.GetUser(ctx, 7).Await(ctx)
	require.NoError(t, err)
	_, err = users.AddUser(ctx, models.NewUser{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PasswordHash: "secret"}).Await(ctx)
	require.NoError(t, err)
	_, err = users.DeleteUser(ctx, 7).Await(ctx)
	require.NoError(t, err)
	_, err = users.UpdateUser(ctx, 7, models.UserUpdate{Email: "new@example.com"}).Await(ctx)
	require.NoError(t, err)

	requests := recorded.all()
	require.Len(t, requests, 4)
	assert.Equal(t, http.MethodGet, requests[0].Method)
	assert.Equal(t, "/pa165/rest/user_id/7", requests[0].Path)
	assert.Equal(t, http.MethodPost, requests[1].Method)
	assert.Equal(t, "/pa165/rest/users", requests[1].Path)
	assert.JSONEq(t, `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","passwordHash":"secret"}`, requests[1].Body)
	assert.Equal(t, http.MethodDelete, requests[2].Method)
	assert.Equal(t, "/pa165/rest/delete/user/7", requests[2].Path)
	assert.Equal(t, http.MethodPatch, requests[3].Method)
	assert.Equal(t, "/pa165/rest/user_id/7", requests[3].Path)
	assert.JSONEq(t, `{"email":"new@example.com"}`, requests[3].Body)
}

func Test_UserService_GetAllUsers_DecodesArray(t *testing.T) {
	ctx := context.Background()
	client, recorded := newTestBackend(t, http.StatusOK, `[{"id":1,"firstName":"Ada"},{"id":2,"firstName":"Alan"}]`)

	users, err := NewUserService(client).GetAllUsers(ctx).Await(ctx)

	require.NoError(t, err)
	requests := recorded.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "/pa165/rest/users", requests[0].Path)
	assert.Equal(t, []models.User{{Id: 1, FirstName: "Ada"}, {Id: 2, FirstName: "Alan"}}, users)
}

func Test_BookService_Endpoints(t *testing.T) {
	ctx := context.Background()
	client, recorded := newTestBackend(t, http.StatusOK, `[]`)
	books := NewBookService(client)

	_, err := books.AddBook(ctx, models.NewBook{Title: "The Hobbit", Author: "Tolkien"}).Await(ctx)
	require.NoError(t, err)
	_, err = books.DeleteBook(ctx, 3).Await(ctx)
	require.NoError(t, err)
	_, err = books.GetAllBooks(ctx).Await(ctx)
	require.NoError(t, err)
	_, err = books.FindByAuthor(ctx, "Tolkien").Await(ctx)
	require.NoError(t, err)

	requests := recorded.all()
	require.Len(t, requests, 4)
	assert.Equal(t, "/pa165/rest/books", requests[0].Path)
	assert.Equal(t, http.MethodPost, requests[0].Method)
	assert.JSONEq(t, `{"title":"The Hobbit","author":"Tolkien"}`, requests[0].Body)
	assert.Equal(t, "/pa165/rest/delete/book/3", requests[1].Path)
	assert.Equal(t, http.MethodDelete, requests[1].Method)
	assert.Equal(t, "/pa165/rest/books", requests[2].Path)
	assert.Equal(t, http.MethodGet, requests[2].Method)
	assert.Equal(t, "/pa165/rest/books_author/Tolkien", requests[3].Path)
	assert.Equal(t, http.MethodGet, requests[3].Method)
}

func Test_BookService_GetBook(t *testing.T) {
	ctx := context.Background()
	client, recorded := newTestBackend(t, http.StatusOK, `{"title":"Dune","author":"Herbert"}`)

	book, err := NewBookService(client).GetBook(ctx, 9).Await(ctx)

	require.NoError(t, err)
	requests := recorded.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "/pa165/rest/book_id/9", requests[0].Path)
	assert.Equal(t, models.Book{Title: "Dune", Author: "Herbert"}, book)
}

func Test_BookService_FindByAuthor_EscapesPathSegment(t *testing.T) {
	ctx := context.Background()
	client, recorded := newTestBackend(t, http.StatusOK, `[]`)

	_, err := NewBookService(client).FindByAuthor(ctx, "J. R. R. Tolkien").Await(ctx)

	require.NoError(t, err)
	requests := recorded.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "/pa165/rest/books_author/J. R. R. Tolkien", requests[0].Path)
}

func Test_Client_NotFoundIsClassified(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestBackend(t, http.StatusNotFound, ``)

	_, err := NewUserService(client).GetUser(ctx, 1).Await(ctx)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, "/user_id/1", statusErr.Path)
}

func Test_Client_OtherFailuresAreNotNotFound(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestBackend(t, http.StatusInternalServerError, `{"message":"boom"}`)

	_, err := NewBookService(client).GetBook(ctx, 1).Await(ctx)

	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func Test_Client_SendsRequestIdFromContext(t *testing.T) {
	ctx := WithRequestId(context.Background(), "req-42")
	client, recorded := newTestBackend(t, http.StatusOK, `[]`)

	_, err := NewBookService(client).GetAllBooks(ctx).Await(ctx)

	require.NoError(t, err)
	requests := recorded.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "req-42", requests[0].RequestId)
}

func Test_Client_GeneratesRequestIdWhenMissing(t *testing.T) {
	ctx := context.Background()
	client, recorded := newTestBackend(t, http.StatusOK, `[]`)

	_, err := NewBookService(client).GetAllBooks(ctx).Await(ctx)

	require.NoError(t, err)
	requests := recorded.all()
	require.Len(t, requests, 1)
	assert.NotEmpty(t, requests[0].RequestId)
}

func Test_Client_MalformedBodyIsAnError(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestBackend(t, http.StatusOK, `not json`)

	_, err := NewUserService(client).GetAllUsers(ctx).Await(ctx)

	assert.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func Test_Pending_AwaitReturnsContextErrorWithoutWaiting(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	pending := start(context.Background(), func(_ context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pending.Await(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Pending_SettlesOnce(t *testing.T) {
	pending := start(context.Background(), func(_ context.Context) (string, error) {
		return "done", nil
	})

	select {
	case <-pending.Done():
	case <-time.After(time.Second):
		t.Fatal("pending call never settled")
	}

	first, err := pending.Await(context.Background())
	require.NoError(t, err)
	second, err := pending.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", first)
	assert.Equal(t, first, second)
}

func Test_BookService_DeleteBook_CancelledCallerDoesNotAbortRequest(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	completed := make(chan bool, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		aborted := r.Context().Err() != nil
		w.WriteHeader(http.StatusOK)
		completed <- !aborted
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, server.Client(), zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(WithRequestId(context.Background(), "req-7"))
	pending := NewBookService(client).DeleteBook(ctx, 1)

	select {
	case <-arrived:
	case <-time.After(5 * time.Second):
		t.Fatal("delete never reached the backend")
	}
	cancel()

	_, err = pending.Await(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	close(release)

	_, err = pending.Wait()
	require.NoError(t, err)
	assert.True(t, <-completed)
}

func Test_Pending_CallKeepsContextValuesButNotCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(WithRequestId(context.Background(), "req-9"))
	cancel()

	pending := start(ctx, func(callCtx context.Context) (string, error) {
		return RequestId(callCtx), callCtx.Err()
	})

	id, err := pending.Wait()

	require.NoError(t, err)
	assert.Equal(t, "req-9", id)
}
