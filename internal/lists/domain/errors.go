package domain

import "errors"

var (
	ErrListNotFound = errors.New("list not found")
	ErrEmptyItem    = errors.New(EmptyItemMessage)
)
