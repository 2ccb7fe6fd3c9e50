package commands

import (
	"context"
	"fmt"

	"ezpanso/internal/application"
	"ezpanso/internal/domain"
)

// DeleteMatchesResult contains the result of a batch deletion
type DeleteMatchesResult struct {
	Removed int
	Message string
}

// DeleteMatchesCommand removes matches from a file by their displayed
// triggers. Triggers that resolve to nothing are skipped; the batch shares
// one undo snapshot.
type DeleteMatchesCommand struct {
	session         *application.Session
	FileName        string
	DisplayTriggers []string
}

// NewDeleteMatchesCommand creates a new DeleteMatchesCommand
func NewDeleteMatchesCommand(session *application.Session, fileName string, displayTriggers []string) *DeleteMatchesCommand {
	return &DeleteMatchesCommand{
		session:         session,
		FileName:        fileName,
		DisplayTriggers: displayTriggers,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteMatchesCommand) Validate() error {
	if len(c.DisplayTriggers) == 0 {
		return &application.ValidationError{
			Field:   "triggers",
			Message: "at least one trigger is required",
		}
	}
	return nil
}

// Execute runs the delete command
func (c *DeleteMatchesCommand) Execute(ctx context.Context) (*DeleteMatchesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := selectFile(c.session, c.FileName); err != nil {
		return nil, err
	}

	var targets []*domain.Match
	for _, displayTrigger := range c.DisplayTriggers {
		m, _, err := c.session.FindByDisplayedTrigger(displayTrigger)
		if err != nil {
			continue // already gone; a harmless race between UI events
		}
		targets = append(targets, m)
	}

	removed, err := c.session.DeleteMatches(targets)
	if err != nil {
		return nil, err
	}

	file := c.session.ActiveFile()
	return &DeleteMatchesResult{
		Removed: removed,
		Message: fmt.Sprintf("Removed %d match(es) from %s", removed, file.DisplayName()),
	}, nil
}
