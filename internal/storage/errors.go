package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken indicates that user with this username already exists
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken indicates that user with this email already exists
	ErrEmailTaken = errors.New("email already registered")

	// ErrSessionNotFound indicates that session was not found or is not valid
	ErrSessionNotFound = errors.New("session not found")

	// ErrExerciseNotFound indicates that exercise does not exist or belongs to another user
	ErrExerciseNotFound = errors.New("exercise not found")

	// ErrWorkoutNotFound indicates that workout does not exist or belongs to another user
	ErrWorkoutNotFound = errors.New("workout not found")

	// ErrSetOrder indicates that a set result was recorded out of order
	ErrSetOrder = errors.New("set number must be greater than the last recorded set")

	// ErrStorage marks an opaque failure of the underlying store (I/O, driver, constraint)
	ErrStorage = errors.New("storage error")
)

// ErrLastSessionNotFound indicates that no session was remembered between runs
var ErrLastSessionNotFound = errors.New("last session not found")
