package summaryrepo

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("summary not found")

// Summary is a generated summary owned by one user. Text summaries keep their input in
// TextSource; document summaries keep a file reference in File.
type Summary struct {
	ID         uuid.UUID
	UserID     int64
	Title      string
	Text       string
	TextSource string
	File       *string
	Date       time.Time
}

type Repo interface {
	Create(summary Summary) error
	Get(id uuid.UUID) (Summary, error)
	// ListByUser returns the user's summaries oldest first.
	ListByUser(userID int64) ([]Summary, error)
	Delete(id uuid.UUID) error
}
