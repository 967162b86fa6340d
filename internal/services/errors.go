package services

import "errors"

var (
	// ErrNotCreator rejects a task delete attempted by anyone but the
	// task's creator.
	ErrNotCreator = errors.New("only the task creator may delete it")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password so login failures are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
