package services

import "errors"

var (
	// ErrDuplicateUsername is returned when a signup names a username that
	// already exists. Surfaced to clients as a conflict.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned for any failed signin. The message
	// never reveals whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("please check your credentials")
	// ErrTaskNotFound is returned when a task id does not exist or belongs
	// to another user. The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
)
