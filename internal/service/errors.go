package service

import (
	"errors"
	"fmt"
)

var (
	ErrUserExists         = errors.New("account already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrNoHistory          = errors.New("no chat history found")
	ErrInvalidDate        = errors.New("date must be formatted as YYYY-MM-DD")
	ErrNotPDF             = errors.New("only PDF documents can be ingested")
	ErrInvalidPage        = errors.New("limit and offset must not be negative")
)

var (
	ErrUsernameTaken = fmt.Errorf("%w: username is taken", ErrUserExists)
	ErrEmailTaken    = fmt.Errorf("%w: email is taken", ErrUserExists)
)
