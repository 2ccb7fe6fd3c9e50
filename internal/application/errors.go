package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound     = errors.New("not found")
	ErrNoActiveFile = errors.New("no file selected")
	ErrNotLoaded    = errors.New("no directory loaded")
)

// ValidationError represents a user-input validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DuplicateTriggerError signals that an edit or add would produce two matches
// with the same trigger in one file. The edit is rejected, never queued.
type DuplicateTriggerError struct {
	Trigger string
	File    string
}

func (e *DuplicateTriggerError) Error() string {
	return fmt.Sprintf("trigger %q already exists in %s", e.Trigger, e.File)
}

// ComplexMatchError signals an attempt to edit a match that carries fields
// beyond trigger/replace.
type ComplexMatchError struct {
	Trigger string
}

func (e *ComplexMatchError) Error() string {
	return fmt.Sprintf("match %q has extra fields and cannot be edited in place", e.Trigger)
}

// SaveFailure records one file that could not be persisted during a batch
// save. The batch continues past it.
type SaveFailure struct {
	Path string
	Err  error
}

func (e *SaveFailure) Error() string {
	return fmt.Sprintf("saving %s: %v", e.Path, e.Err)
}

func (e *SaveFailure) Unwrap() error {
	return e.Err
}
