package domain

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrPreferenceNotFound = errors.New("notification preference not found")
	ErrFailureNotFound    = errors.New("notification failure not found")
	ErrIllegalTransition  = errors.New("illegal status transition")
)
