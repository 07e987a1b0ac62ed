package models

// User is the user resource as returned by the backend.
type User struct {
	Id           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash,omitempty"`
	Librarian    bool   `json:"librarian,omitempty"`
}

// NewUser is the create payload. All four fields are always sent.
type NewUser struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// UserUpdate is the patch payload. Empty fields are left out of the body.
type UserUpdate struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// UserForm is what the UI submits for the user slice.
type UserForm struct {
	Id        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}
