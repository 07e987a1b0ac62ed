package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

// BASE_PATH is the prefix of every backend resource.
const BASE_PATH = "pa165/rest"

const REQUEST_ID_HEADER = "X-Request-ID"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type requestIdKey struct{}

// WithRequestId attaches the id sent as X-Request-ID on backend calls made with ctx.
func WithRequestId(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIdKey{}, id)
}

// RequestId returns the id attached with WithRequestId, or a fresh one.
func RequestId(ctx context.Context) string {
	if id, ok := ctx.Value(requestIdKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// Client issues the JSON requests shared by UserService and BookService.
// It holds no per-call state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient builds a client rooted at baseURL + "/" + BASE_PATH. A nil
// httpClient means a plain http.Client without timeout.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}, nil
}

// do sends one request and decodes a 2xx body into out when out is non-nil.
func (client *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, client.baseURL+"/"+BASE_PATH+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	requestId := RequestId(ctx)
	request.Header.Set("Accept", "application/json")
	request.Header.Set(REQUEST_ID_HEADER, requestId)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	client.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestId))

	response, err := client.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		io.Copy(io.Discard, response.Body)
		return &StatusError{Method: method, Path: path, StatusCode: response.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, response.Body)
		return nil
	}

	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}

	return nil
}
