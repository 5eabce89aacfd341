package service

import "errors"

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskExists    = errors.New("task already exists")
	ErrTaskCompleted = errors.New("task already completed")
	ErrInvalidTask   = errors.New("invalid task")
)
