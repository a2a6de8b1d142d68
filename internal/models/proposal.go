package models

// Row is one raw record from a source file, as an ordered sequence of column values.
type Row []string

// Proposal is a parsed candidate submission keyed by field name.
type Proposal map[string]string

// FieldTitle is the field used for duplicate detection and as the issue title.
const FieldTitle = "title"

// Title returns the proposal title, or "" if the parser did not produce one.
func (p Proposal) Title() string {
	return p[FieldTitle]
}
