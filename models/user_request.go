package models

import "time"

// UserRequest is one UI action recorded in the activity log.
type UserRequest struct {
	Method    string    `json:"method"`
	Route     string    `json:"route"`
	RequestId string    `json:"request_id"`
	At        time.Time `json:"at"`
}
