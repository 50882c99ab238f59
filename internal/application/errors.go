package application

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("please check your email and password")
	ErrUnauthorized       = errors.New("you do not have permission to modify")
	ErrStorageUnavailable = errors.New("object storage not configured")
)

// NotFoundError names the model and id that could not be loaded.
type NotFoundError struct {
	Model string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Model %s not found with given id: %d", e.Model, e.ID)
}

// ConflictError reports a unique value already taken.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: '%s' is already in use", e.Field, e.Value)
}
