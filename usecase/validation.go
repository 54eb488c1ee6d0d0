package usecase

import (
	"fmt"

	"quicknotes/model"
	"quicknotes/utils"
)

// validateNote checks the full shape: title 1-100 chars, non-empty content,
// at most 5 tags of at most 20 chars each.
func validateNote(note *model.Note) error {
	if err := utils.GetValidator().Struct(note); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}
	return nil
}

// validatePatch applies the same rules to supplied fields only.
func validatePatch(patch model.NotePatch) error {
	var candidate model.Note
	fields := make([]string, 0, 3)

	if patch.Title != nil {
		candidate.Title = *patch.Title
		fields = append(fields, "Title")
	}
	if patch.Content != nil {
		candidate.Content = *patch.Content
		fields = append(fields, "Content")
	}
	if patch.Tags != nil {
		candidate.Tags = *patch.Tags
		fields = append(fields, "Tags")
	}
	if len(fields) == 0 {
		return nil
	}

	if err := utils.GetValidator().StructPartial(candidate, fields...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidNote, err)
	}
	return nil
}
