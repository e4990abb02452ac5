package repository

import "time"

// Submission represents an archived export. Selection and State hold the
// JSON encoding of the snapshot taken at export time.
type Submission struct {
	ID        string
	Taxpayer  string
	Selection []byte
	State     []byte
	PDFPath   string
	TakenAt   time.Time
	CreatedAt time.Time
}
