package model

// DraftText is a piece of writing that can exist as a saved draft, a
// confirmed final version, or both. A nil field means that version was
// never written (or was cleared).
type DraftText struct {
	Final *string `gorm:"column:content;type:text" json:"content,omitempty"`
	Draft *string `gorm:"column:temporary_content;type:text" json:"temporary_content,omitempty"`
}

// IsEmpty reports whether neither version exists.
func (d DraftText) IsEmpty() bool {
	return d.Final == nil && d.Draft == nil
}

// SetDraft stores the draft version. A blank value clears it; the final
// version is untouched.
func (d *DraftText) SetDraft(content string) {
	if content == "" {
		d.Draft = nil
		return
	}
	c := content
	d.Draft = &c
}

// Confirm stores the final version and discards any draft.
func (d *DraftText) Confirm(content string) {
	c := content
	d.Final = &c
	d.Draft = nil
}

// ClearDraft discards the draft version only.
func (d *DraftText) ClearDraft() {
	d.Draft = nil
}
