package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"library-client/backend"
	"library-client/cache"
	"library-client/controller"
	"library-client/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server binds the per-user view controllers and the activity log to gin
// routes. The session is picked by the username query parameter.
type Server struct {
	Sessions *Sessions
	Activity cache.RequestCacher
	Logger   *zap.Logger
}

func (s *Server) users(c *gin.Context) *controller.UserController {
	return s.Sessions.Users(c.Query("username"))
}

func (s *Server) books(c *gin.Context) *controller.BookController {
	return s.Sessions.Books(c.Query("username"))
}

func statusOf(outcome controller.Outcome) int {
	switch outcome {
	case controller.OutcomeOK:
		return http.StatusOK
	case controller.OutcomeNotFound:
		return http.StatusNotFound
	case controller.OutcomeInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

// rejectUser answers a request that never reached the backend with the user
// view, carrying errorMessage.
func (s *Server) rejectUser(c *gin.Context, errorMessage string) {
	users := s.users(c)
	result := users.Reject(errorMessage)
	c.AbortWithStatusJSON(statusOf(result.Outcome), users.State())
}

func (s *Server) rejectBook(c *gin.Context, errorMessage string) {
	books := s.books(c)
	result := books.Reject(errorMessage)
	c.AbortWithStatusJSON(statusOf(result.Outcome), books.State())
}

func (s *Server) GetUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.rejectUser(c, controller.USER_GET_FAILED)
		return
	}

	users := s.users(c)
	result := users.GetUser(c.Request.Context(), id)
	c.JSON(statusOf(result.Outcome), users.State())
}

func (s *Server) AddUser(c *gin.Context) {
	var form models.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		s.Logger.Debug("unreadable form", zap.String("route", c.FullPath()), zap.Error(err))
		s.rejectUser(c, controller.USER_FIELDS_MISSING)
		return
	}

	users := s.users(c)
	result := users.AddUser(c.Request.Context(), form)
	c.JSON(statusOf(result.Outcome), users.State())
}

func (s *Server) UpdateUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.rejectUser(c, controller.USER_UPDATE_FAILED)
		return
	}

	var form models.UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		s.Logger.Debug("unreadable form", zap.String("route", c.FullPath()), zap.Error(err))
		s.rejectUser(c, controller.USER_UPDATE_FAILED)
		return
	}
	form.Id = id

	users := s.users(c)
	result := users.UpdateUser(c.Request.Context(), form)
	c.JSON(statusOf(result.Outcome), users.State())
}

func (s *Server) DeleteUser(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.rejectUser(c, controller.USER_DELETE_FAILED)
		return
	}

	users := s.users(c)
	result := users.DeleteUser(c.Request.Context(), id)
	c.JSON(statusOf(result.Outcome), users.State())
}

func (s *Server) GetAllUsers(c *gin.Context) {
	users := s.users(c)
	result := users.GetAllUsers(c.Request.Context())
	c.JSON(statusOf(result.Outcome), users.State())
}

func (s *Server) GetBook(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.rejectBook(c, controller.BOOK_GET_FAILED)
		return
	}

	books := s.books(c)
	result := books.GetBook(c.Request.Context(), id)
	c.JSON(statusOf(result.Outcome), books.State())
}

func (s *Server) AddBook(c *gin.Context) {
	var form models.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		s.Logger.Debug("unreadable form", zap.String("route", c.FullPath()), zap.Error(err))
		s.rejectBook(c, controller.BOOK_FIELDS_MISSING)
		return
	}

	books := s.books(c)
	result := books.AddBook(c.Request.Context(), form)
	c.JSON(statusOf(result.Outcome), books.State())
}

func (s *Server) DeleteBook(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.rejectBook(c, controller.BOOK_DELETE_FAILED)
		return
	}

	books := s.books(c)
	result := books.DeleteBook(c.Request.Context(), id)
	c.JSON(statusOf(result.Outcome), books.State())
}

func (s *Server) GetAllBooks(c *gin.Context) {
	books := s.books(c)
	result := books.GetAllBooks(c.Request.Context())
	c.JSON(statusOf(result.Outcome), books.State())
}

func (s *Server) FindByAuthor(c *gin.Context) {
	books := s.books(c)
	result := books.FindByAuthor(c.Request.Context(), c.Param("author"))
	c.JSON(statusOf(result.Outcome), books.State())
}

func (s *Server) GetActivity(c *gin.Context) {
	username := c.Param("username")

	userRequests, err := s.Activity.Read(username)

	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"message": err.Error(),
		})
		return
	}

	userRequestsRaw := make([]models.UserRequest, 0, len(userRequests))

	for _, request := range userRequests {
		var userRequest models.UserRequest
		if err := json.Unmarshal([]byte(request), &userRequest); err != nil {
			s.Logger.Warn("skipping unreadable activity entry", zap.String("username", username), zap.Error(err))
			continue
		}
		userRequestsRaw = append(userRequestsRaw, userRequest)
	}

	c.JSON(http.StatusOK, userRequestsRaw)
}

// CacheUserRequest tags the action with a request id and, when a username is
// given, records it in the activity log. A failed write never fails the action.
func (s *Server) CacheUserRequest(c *gin.Context) {
	requestId := uuid.NewString()
	c.Request = c.Request.WithContext(backend.WithRequestId(c.Request.Context(), requestId))
	c.Header(backend.REQUEST_ID_HEADER, requestId)

	username, ok := c.GetQuery("username")

	if ok && username != "" {
		userRequest := models.UserRequest{
			Method:    c.Request.Method,
			Route:     c.Request.URL.Path,
			RequestId: requestId,
			At:        time.Now().UTC(),
		}

		request, err := json.Marshal(userRequest)
		if err == nil {
			err = s.Activity.Write(username, request)
		}
		if err != nil {
			s.Logger.Warn("caching user request failed", zap.String("username", username), zap.Error(err))
		}
	}

	c.Next()
}
