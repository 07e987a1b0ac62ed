package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"library-client/backend"
	"library-client/models"
)

const (
	USER_NOT_FOUND      = "User not found!"
	USER_GET_FAILED     = "Error getting user!"
	USER_ADDED          = "User added!"
	USER_ADD_FAILED     = "Error adding user!"
	USER_FIELDS_MISSING = "Please enter first name, last name, email and password!"
	USER_UPDATED        = "User data updated!"
	USER_UPDATE_FAILED  = "Error updating user!"
	USER_DELETED        = "User deleted!"
	USER_DELETE_FAILED  = "Error deleting user!"
	USERS_GET_FAILED    = "Error getting users!"
)

// UserBackend is the set of user calls the controller needs.
type UserBackend interface {
	GetUser(ctx context.Context, id int64) *backend.Pending[models.User]
	AddUser(ctx context.Context, user models.NewUser) *backend.Pending[struct{}]
	DeleteUser(ctx context.Context, id int64) *backend.Pending[struct{}]
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) *backend.Pending[struct{}]
	GetAllUsers(ctx context.Context) *backend.Pending[[]models.User]
}

// UserState is a snapshot of the user slice of the view.
type UserState struct {
	View
	User  *models.User  `json:"user"`
	Users []models.User `json:"users"`
}

// UserController keeps the user slice of the view. Overlapping calls are not
// deduplicated; whichever settles last writes the view last.
type UserController struct {
	mu      sync.Mutex
	backend UserBackend
	logger  *zap.Logger
	state   UserState
}

func NewUserController(backend UserBackend, logger *zap.Logger) *UserController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserController{backend: backend, logger: logger}
}

func (controller *UserController) State() UserState {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	state := controller.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	state.Users = append([]models.User(nil), state.Users...)
	return state
}

// GetUser replaces the current user. The id is stamped back onto the record
// because the backend may leave it out.
func (controller *UserController) GetUser(ctx context.Context, id int64) Result[models.User] {
	user, err := controller.backend.GetUser(ctx, id).Wait()
	result := settle(user, err, true)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	switch result.Outcome {
	case OutcomeOK:
		result.Data.Id = id
		current := result.Data
		controller.state.User = &current
		controller.state.succeed("")
	case OutcomeNotFound:
		controller.state.fail(USER_NOT_FOUND)
	default:
		controller.logFailure("get user", err)
		controller.state.fail(USER_GET_FAILED)
	}

	return result
}

func (controller *UserController) AddUser(ctx context.Context, form models.UserForm) Result[struct{}] {
	if form.FirstName == "" || form.LastName == "" || form.Email == "" || form.Password == "" {
		controller.mu.Lock()
		controller.state.fail(USER_FIELDS_MISSING)
		controller.mu.Unlock()
		return invalid[struct{}]()
	}

	_, err := controller.backend.AddUser(ctx, models.NewUser{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: form.Password,
	}).Wait()
	result := settle(struct{}{}, err, false)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if result.Outcome == OutcomeOK {
		controller.state.succeed(USER_ADDED)
	} else {
		controller.logFailure("add user", err)
		controller.state.fail(USER_ADD_FAILED)
	}

	return result
}

// UpdateUser only ever changes the email. The backend accepts names too, but
// this action deliberately sends nothing except the id and the email, no
// matter what else the form holds.
func (controller *UserController) UpdateUser(ctx context.Context, form models.UserForm) Result[struct{}] {
	_, err := controller.backend.UpdateUser(ctx, form.Id, models.UserUpdate{Email: form.Email}).Wait()
	result := settle(struct{}{}, err, false)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if result.Outcome == OutcomeOK {
		controller.state.succeed(USER_UPDATED)
	} else {
		controller.logFailure("update user", err)
		controller.state.fail(USER_UPDATE_FAILED)
	}

	return result
}

func (controller *UserController) DeleteUser(ctx context.Context, id int64) Result[struct{}] {
	_, err := controller.backend.DeleteUser(ctx, id).Wait()
	result := settle(struct{}{}, err, false)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if result.Outcome == OutcomeOK {
		controller.state.User = nil
		controller.state.succeed(USER_DELETED)
	} else {
		controller.logFailure("delete user", err)
		controller.state.fail(USER_DELETE_FAILED)
	}

	return result
}

func (controller *UserController) GetAllUsers(ctx context.Context) Result[[]models.User] {
	users, err := controller.backend.GetAllUsers(ctx).Wait()
	result := settle(users, err, false)

	controller.mu.Lock()
	defer controller.mu.Unlock()

	if result.Outcome == OutcomeOK {
		controller.state.Users = result.Data
		controller.state.succeed("")
	} else {
		controller.logFailure("get all users", err)
		controller.state.fail(USERS_GET_FAILED)
	}

	return result
}

// Reject records an action that never reached the backend because its
// input could not be read.
func (controller *UserController) Reject(errorMessage string) Result[struct{}] {
	controller.mu.Lock()
	defer controller.mu.Unlock()

	controller.state.fail(errorMessage)
	return invalid[struct{}]()
}

func (controller *UserController) logFailure(operation string, err error) {
	controller.logger.Warn("user operation failed", zap.String("operation", operation), zap.Error(err))
}
