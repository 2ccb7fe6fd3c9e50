package commands

import (
	"context"
	"fmt"

	"ezpanso/internal/application"
)

// SaveAllResult contains the result of a batch save
type SaveAllResult struct {
	Result  application.SaveResult
	Message string
}

// SaveAllCommand persists every dirty file. Callers gate it behind an
// explicit confirmation naming the number of files to overwrite.
type SaveAllCommand struct {
	session *application.Session
}

// NewSaveAllCommand creates a new SaveAllCommand
func NewSaveAllCommand(session *application.Session) *SaveAllCommand {
	return &SaveAllCommand{session: session}
}

// Execute runs the save command
func (c *SaveAllCommand) Execute(ctx context.Context) (*SaveAllResult, error) {
	if !c.session.HasUnsavedChanges() {
		return &SaveAllResult{Message: "Nothing to save"}, nil
	}

	result := c.session.SaveAll()

	msg := fmt.Sprintf("Saved %d file(s)", len(result.Saved))
	if len(result.Failed) > 0 {
		msg = fmt.Sprintf("Saved %d file(s), %d failed", len(result.Saved), len(result.Failed))
	}
	return &SaveAllResult{Result: result, Message: msg}, nil
}
