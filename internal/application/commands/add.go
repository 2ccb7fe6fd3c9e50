package commands

import (
	"context"
	"fmt"

	"ezpanso/internal/application"
	"ezpanso/internal/domain"
)

// AddMatchResult contains the result of adding a match
type AddMatchResult struct {
	Match   *domain.Match
	File    string
	Message string
}

// AddMatchCommand appends a new simple match to a file. Trigger and replace
// are taken as typed: \n and \t sequences are parsed into real characters.
type AddMatchCommand struct {
	session  *application.Session
	FileName string // display name; empty targets the active file
	Trigger  string
	Replace  string
}

// NewAddMatchCommand creates a new AddMatchCommand
func NewAddMatchCommand(session *application.Session, fileName, trigger, replace string) *AddMatchCommand {
	return &AddMatchCommand{
		session:  session,
		FileName: fileName,
		Trigger:  trigger,
		Replace:  replace,
	}
}

// Validate checks if the add operation is valid
func (c *AddMatchCommand) Validate() error {
	if c.Trigger == "" {
		return &application.ValidationError{
			Field:   "trigger",
			Message: "trigger is required",
		}
	}
	return nil
}

// Execute runs the add command
func (c *AddMatchCommand) Execute(ctx context.Context) (*AddMatchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := selectFile(c.session, c.FileName); err != nil {
		return nil, err
	}

	m, err := c.session.AddMatch(
		domain.ParseEscapes(c.Trigger),
		domain.ParseEscapes(c.Replace),
	)
	if err != nil {
		return nil, err
	}

	file := c.session.ActiveFile()
	return &AddMatchResult{
		Match:   m,
		File:    file.DisplayName(),
		Message: fmt.Sprintf("Added %s to %s", m.Trigger, file.DisplayName()),
	}, nil
}

// selectFile switches the session to the named file, keeping the active
// selection when name is empty.
func selectFile(session *application.Session, name string) error {
	if name == "" {
		if session.ActiveFile() == nil {
			return application.ErrNoActiveFile
		}
		return nil
	}
	file := session.FileByDisplayName(name)
	if file == nil {
		return fmt.Errorf("file %q: %w", name, application.ErrNotFound)
	}
	return session.SetActive(file.Path)
}
