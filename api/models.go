package api

import (
	"io"
	"time"

	"github.com/jrsteele09/go-summary-client/internal/utils"
)

const (
	DefaultSummaryLen = 10
	MaxSummaryLen     = 50
)

// Credentials is the body of auth/token/.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenPair is the gateway's answer to a successful auth/token/ call.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterRequest is the sign-up form. PasswordConfirmation is checked locally and never sent.
type RegisterRequest struct {
	FullName             string `json:"fullName" validate:"notblank"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required"`
	PasswordConfirmation string `json:"-" validate:"eqfield=Password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// SummarizeTextRequest carries pasted text. A zero SummaryLen means DefaultSummaryLen.
type SummarizeTextRequest struct {
	Text       string `json:"text_to_summarize" validate:"notblank"`
	SummaryLen int    `json:"summary_len" validate:"min=1,max=50"`
}

// SummarizeDocumentRequest is sent as multipart form data: the file under "file" and the
// length under "summary_len".
type SummarizeDocumentRequest struct {
	FileName   string    `validate:"required,docext"`
	Content    io.Reader `validate:"-"`
	SummaryLen int       `validate:"min=1,max=50"`
}

// GeneratedSummary is what the summarize endpoints return.
type GeneratedSummary struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type generatedSummaryResponse struct {
	Summary GeneratedSummary `json:"summary"`
}

// Summary is a stored summary record. Text summaries carry TextSource, document summaries
// carry File.
type Summary struct {
	ID         string    `json:"id"`
	Title      *string   `json:"summary_title"`
	Text       *string   `json:"summary_text"`
	TextSource *string   `json:"text_source"`
	File       *string   `json:"pdf_or_word_file"`
	Date       time.Time `json:"summary_date"`
}

// TitleOrDefault returns the title, or a placeholder when the gateway stored none.
func (s Summary) TitleOrDefault() string {
	if t := utils.Value(s.Title); t != "" {
		return t
	}
	return "Untitled summary"
}

func (s Summary) Body() string {
	return utils.Value(s.Text)
}

// Source is the original text for text summaries, otherwise the uploaded file reference.
func (s Summary) Source() string {
	if src := utils.Value(s.TextSource); src != "" {
		return src
	}
	return utils.Value(s.File)
}

type summaryListResponse struct {
	Summaries []Summary `json:"summaries"`
}

type summaryDetailResponse struct {
	Summaries Summary `json:"summaries"`
}
