package views

import "ezpanso/internal/application"

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching

// SwitchToEditorMsg returns to the match table. Message or Err, when set,
// is shown in the status line.
type SwitchToEditorMsg struct {
	Message string
	Err     error
}

// SwitchToFilesMsg opens the file list.
type SwitchToFilesMsg struct{}

// SwitchToFormMsg opens the match form. A nil Row means a new match.
type SwitchToFormMsg struct {
	Row *application.Row
}

// SwitchToNewFileMsg opens the new-file prompt.
type SwitchToNewFileMsg struct{}

// SwitchToHelpMsg opens the help screen.
type SwitchToHelpMsg struct{}

// ConfirmDeleteMsg asks for confirmation before deleting marked matches.
type ConfirmDeleteMsg struct {
	Triggers []string // displayed triggers
}

// ConfirmDeleteFileMsg asks for confirmation before deleting a whole file.
type ConfirmDeleteFileMsg struct {
	FileName string
}

// ConfirmSaveMsg asks for confirmation before writing the dirty files.
type ConfirmSaveMsg struct {
	DirtyCount int
}

// ConfirmQuitMsg asks what to do with unsaved changes before quitting.
type ConfirmQuitMsg struct {
	DirtyCount int
}

// errMsg carries a failure into the status line
type errMsg struct {
	err error
}
