package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"ezpanso/internal/application"
	"ezpanso/internal/domain"
)

// NewFileResult contains the result of creating a match file
type NewFileResult struct {
	File    *domain.FileEntry
	Message string
}

// NewFileCommand creates a fresh match file under the loaded root, seeded
// with a template match.
type NewFileCommand struct {
	session *application.Session
	Name    string // filename, .yml appended when no extension given
}

// NewNewFileCommand creates a new NewFileCommand
func NewNewFileCommand(session *application.Session, name string) *NewFileCommand {
	return &NewFileCommand{session: session, Name: name}
}

// Validate checks if the create operation is valid
func (c *NewFileCommand) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "file name is required",
		}
	}
	if strings.ContainsAny(name, `/\`) {
		return &application.ValidationError{
			Field:   "name",
			Message: "file name must not contain path separators",
		}
	}
	if strings.HasPrefix(name, "_") {
		return &application.ValidationError{
			Field:   "name",
			Message: "names starting with _ are reserved for package manifests",
		}
	}
	return nil
}

// Execute runs the create command
func (c *NewFileCommand) Execute(ctx context.Context) (*NewFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(c.Name)
	if ext := filepath.Ext(name); ext != ".yml" && ext != ".yaml" {
		name += ".yml"
	}

	entry, err := c.session.NewFile(filepath.Join(c.session.Root(), name))
	if err != nil {
		return nil, err
	}
	return &NewFileResult{
		File:    entry,
		Message: fmt.Sprintf("Created %s. Add matches and save.", entry.DisplayName()),
	}, nil
}

// DeleteFileResult contains the result of deleting a match file
type DeleteFileResult struct {
	Message string
}

// DeleteFileCommand permanently removes a loaded match file and its matches.
type DeleteFileCommand struct {
	session  *application.Session
	FileName string // display name
}

// NewDeleteFileCommand creates a new DeleteFileCommand
func NewDeleteFileCommand(session *application.Session, fileName string) *DeleteFileCommand {
	return &DeleteFileCommand{session: session, FileName: fileName}
}

// Validate checks if the delete operation is valid
func (c *DeleteFileCommand) Validate() error {
	if strings.TrimSpace(c.FileName) == "" {
		return &application.ValidationError{
			Field:   "file",
			Message: "file name is required",
		}
	}
	return nil
}

// Execute runs the delete command
func (c *DeleteFileCommand) Execute(ctx context.Context) (*DeleteFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	file := c.session.FileByDisplayName(c.FileName)
	if file == nil {
		return nil, fmt.Errorf("file %q: %w", c.FileName, application.ErrNotFound)
	}
	if err := c.session.DeleteFile(file.Path); err != nil {
		return nil, err
	}
	return &DeleteFileResult{
		Message: fmt.Sprintf("Deleted %s", c.FileName),
	}, nil
}
