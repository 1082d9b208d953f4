package task

import "slices"

// Patch carries a partial update. Nil fields are left untouched.
type Patch struct {
	Title        *string
	Description  *string
	Status       *Status
	Priority     *Priority
	DueDate      *Date
	ClearDueDate bool
	Pinned       *bool
	Subtasks     *[]Subtask
	Files        *[]Attachment
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.Pinned == nil && p.Subtasks == nil && p.Files == nil
}

// Apply merges p into t and re-applies the field defaults.
func (t *Task) Apply(p Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.DueDate != nil {
		d := *p.DueDate
		t.DueDate = &d
	}
	if p.Pinned != nil {
		t.Pinned = *p.Pinned
	}
	if p.Subtasks != nil {
		t.Subtasks = slices.Clone(*p.Subtasks)
	}
	if p.Files != nil {
		t.Files = slices.Clone(*p.Files)
	}
	t.Normalize()
}

// StatusPatch is shorthand for a patch that only moves a task between columns.
func StatusPatch(s Status) Patch {
	return Patch{Status: &s}
}
