package commands

import (
	"context"
	"fmt"

	"ezpanso/internal/application"
	"ezpanso/internal/domain"
)

// UpdateMatchResult contains the result of an in-place edit
type UpdateMatchResult struct {
	Match   *domain.Match
	Message string
}

// UpdateMatchCommand edits one match, located by the trigger value the table
// displayed. One submit is one mutating operation: a single snapshot, and
// validation before anything changes.
type UpdateMatchCommand struct {
	session        *application.Session
	FileName       string // display name; empty targets the active file
	DisplayTrigger string // the trigger as displayed (escaped form)
	NewTrigger     string // as typed; escapes parsed before applying
	NewReplace     string
}

// NewUpdateMatchCommand creates a new UpdateMatchCommand
func NewUpdateMatchCommand(session *application.Session, fileName, displayTrigger, newTrigger, newReplace string) *UpdateMatchCommand {
	return &UpdateMatchCommand{
		session:        session,
		FileName:       fileName,
		DisplayTrigger: displayTrigger,
		NewTrigger:     newTrigger,
		NewReplace:     newReplace,
	}
}

// Validate checks if the update operation is valid
func (c *UpdateMatchCommand) Validate() error {
	if c.DisplayTrigger == "" {
		return &application.ValidationError{
			Field:   "trigger",
			Message: "trigger to edit is required",
		}
	}
	if c.NewTrigger == "" {
		return &application.ValidationError{
			Field:   "newTrigger",
			Message: "new trigger must not be empty",
		}
	}
	return nil
}

// Execute runs the update command
func (c *UpdateMatchCommand) Execute(ctx context.Context) (*UpdateMatchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := selectFile(c.session, c.FileName); err != nil {
		return nil, err
	}

	m, _, err := c.session.FindByDisplayedTrigger(c.DisplayTrigger)
	if err != nil {
		return nil, err
	}

	err = c.session.UpdateMatch(m,
		domain.ParseEscapes(c.NewTrigger),
		domain.ParseEscapes(c.NewReplace),
	)
	if err != nil {
		return nil, err
	}

	return &UpdateMatchResult{
		Match:   m,
		Message: fmt.Sprintf("Updated %s", m.Trigger),
	}, nil
}
