package application

import (
	"strings"

	"ezpanso/internal/domain"
)

// ValidateTrigger checks a trigger value for an add or edit against the
// owning file. exclude is the match being edited (nil for adds); uniqueness
// is case-sensitive and spans the whole file.
func ValidateTrigger(trigger string, file *domain.FileEntry, exclude *domain.Match) error {
	if strings.TrimSpace(trigger) == "" {
		return &ValidationError{
			Field:   "trigger",
			Message: "trigger is required",
		}
	}
	if file.HasTrigger(trigger, exclude) {
		return &DuplicateTriggerError{Trigger: trigger, File: file.DisplayName()}
	}
	return nil
}

// ValidateEditable rejects in-place edits of complex matches. The table
// already renders them read-only; this is the second line of defense.
func ValidateEditable(m *domain.Match) error {
	if m.IsComplex() {
		return &ComplexMatchError{Trigger: m.Trigger}
	}
	return nil
}
