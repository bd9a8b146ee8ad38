package devserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-summary-client/devserver/summaryrepo"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
	"github.com/jrsteele09/go-summary-client/internal/utils"
	"github.com/rs/zerolog/log"
)

const (
	defaultSummaryLen = 10
	maxUploadSize     = 10 << 20
)

type summaryJSON struct {
	ID            string    `json:"id"`
	SummaryText   string    `json:"summary_text"`
	SummaryTitle  string    `json:"summary_title"`
	SummaryDate   time.Time `json:"summary_date"`
	PdfOrWordFile *string   `json:"pdf_or_word_file"`
	TextSource    string    `json:"text_source"`
}

func toSummaryJSON(s summaryrepo.Summary) summaryJSON {
	return summaryJSON{
		ID:            s.ID.String(),
		SummaryText:   s.Text,
		SummaryTitle:  s.Title,
		SummaryDate:   s.Date,
		PdfOrWordFile: s.File,
		TextSource:    s.TextSource,
	}
}

type generatedJSON struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type summarizeTextRequest struct {
	Text       string          `json:"text_to_summarize"`
	SummaryLen json.RawMessage `json:"summary_len"`
}

// parseSummaryLen accepts a number or a numeric string; anything else gives the default.
func parseSummaryLen(raw string) int {
	raw = strings.Trim(strings.TrimSpace(raw), `"`)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return defaultSummaryLen
	}
	return n
}

func (s *Server) storeSummary(w http.ResponseWriter, userID int64, text, textSource string, file *string, summaryLen int) {
	title, body := summarize(text, summaryLen)
	stored := summaryrepo.Summary{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Text:       body,
		TextSource: textSource,
		File:       file,
		Date:       NowTimeFunc().UTC(),
	}
	if err := s.repos.Summaries.Create(stored); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("Summarize: failed to store summary")
		writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]generatedJSON{"summary": {Title: title, Summary: body}})
}

// SummarizeTextHandler summarizes the posted text and stores the result
func (s *Server) SummarizeTextHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := userIDFromContext(r.Context())

		var req summarizeTextRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "No text provided")
			return
		}

		s.storeSummary(w, userID, req.Text, req.Text, nil, parseSummaryLen(string(req.SummaryLen)))
	}
}

// SummarizeDocumentHandler summarizes an uploaded .txt, .pdf or .docx file
func (s *Server) SummarizeDocumentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := userIDFromContext(r.Context())

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "No file provided")
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "No file provided")
			return
		}
		defer file.Close()

		text, err := extractText(header.Filename, file)
		if errors.Is(err, apperrors.ErrUnsupported) {
			writeError(w, http.StatusBadRequest, "Unsupported file type. Only PDF, DOCX and TXT are supported.")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to process the file: %v", err))
			return
		}

		s.storeSummary(w, userID, text, "", utils.Ptr("File: "+filepath.Base(header.Filename)), parseSummaryLen(r.FormValue("summary_len")))
	}
}

// extractText reads plain text files. PDF and Word files are accepted but not parsed here.
func extractText(name string, r io.Reader) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		b, err := io.ReadAll(r)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case ".pdf", ".docx":
		return fmt.Sprintf("Uploaded document %s. Text extraction is not available on the development gateway.", filepath.Base(name)), nil
	}
	return "", apperrors.ErrUnsupported
}

// ListSummariesHandler returns the caller's summaries
func (s *Server) ListSummariesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := userIDFromContext(r.Context())

		list, err := s.repos.Summaries.ListByUser(userID)
		if err != nil {
			log.Err(err).Int64("user_id", userID).Msg("List summaries failed")
			writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
			return
		}
		out := make([]summaryJSON, 0, len(list))
		for _, summary := range list {
			out = append(out, toSummaryJSON(summary))
		}
		writeJSON(w, http.StatusOK, map[string][]summaryJSON{"summaries": out})
	}
}

// ownedSummary loads the summary named by the {id} path value if it belongs to the caller.
// Anything else is reported as not found.
func (s *Server) ownedSummary(r *http.Request) (summaryrepo.Summary, bool) {
	userID, _ := userIDFromContext(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return summaryrepo.Summary{}, false
	}
	summary, err := s.repos.Summaries.Get(id)
	if err != nil || summary.UserID != userID {
		return summaryrepo.Summary{}, false
	}
	return summary, true
}

// GetSummaryHandler returns one of the caller's summaries
func (s *Server) GetSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, ok := s.ownedSummary(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Summary not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]summaryJSON{"summaries": toSummaryJSON(summary)})
	}
}

// DeleteSummaryHandler deletes one of the caller's summaries
func (s *Server) DeleteSummaryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, ok := s.ownedSummary(r)
		if !ok {
			writeMessage(w, http.StatusNotFound, "Summary not found")
			return
		}
		if err := s.repos.Summaries.Delete(summary.ID); err != nil {
			if errors.Is(err, summaryrepo.ErrNotFound) {
				writeMessage(w, http.StatusNotFound, "Summary not found")
				return
			}
			log.Err(err).Str("summary_id", summary.ID.String()).Msg("Delete summary failed")
			writeError(w, http.StatusInternalServerError, apperrors.DefaultMessage)
			return
		}
		writeMessage(w, http.StatusOK, "Summary deleted successfully")
	}
}
