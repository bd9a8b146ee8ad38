package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	apperrors "github.com/jrsteele09/go-summary-client/internal/errors"
)

const (
	pathSummarizeText     = "generate-summary/text/"
	pathSummarizeDocument = "generate-summary/document/"
	pathSummaries         = "generate-summary/summaries/"
	pathDeleteSummary     = "generate-summary/delete-summary/"
)

func invalidRequest(op string, err error) error {
	return &apperrors.UpstreamError{Op: op, Message: validationMessage(err), Err: apperrors.ErrInvalidRequest}
}

// SummarizeText asks the gateway to summarize r.Text. The summary list is invalidated on success.
func (c *Client) SummarizeText(ctx context.Context, r SummarizeTextRequest) (GeneratedSummary, error) {
	const op = "summarize text"
	if r.SummaryLen == 0 {
		r.SummaryLen = DefaultSummaryLen
	}
	if err := c.validate.Struct(r); err != nil {
		return GeneratedSummary{}, invalidRequest(op, err)
	}

	req, err := c.newJSONRequest(ctx, http.MethodPost, pathSummarizeText, r)
	if err != nil {
		return GeneratedSummary{}, upstreamError(op, err)
	}
	var resp generatedSummaryResponse
	if err := c.sendAuthenticated(req, &resp); err != nil {
		return GeneratedSummary{}, upstreamError(op, err)
	}
	c.invalidator.emit(ResourceSummaries)
	return resp.Summary, nil
}

// SummarizeDocument uploads r.Content as a multipart file and returns the generated summary.
func (c *Client) SummarizeDocument(ctx context.Context, r SummarizeDocumentRequest) (GeneratedSummary, error) {
	const op = "summarize document"
	if r.SummaryLen == 0 {
		r.SummaryLen = DefaultSummaryLen
	}
	if err := c.validate.Struct(r); err != nil {
		return GeneratedSummary{}, invalidRequest(op, err)
	}
	if r.Content == nil {
		return GeneratedSummary{}, &apperrors.UpstreamError{Op: op, Message: "No file selected.", Err: apperrors.ErrInvalidRequest}
	}

	body, contentType, err := documentForm(r)
	if err != nil {
		return GeneratedSummary{}, &apperrors.UpstreamError{Op: op, Message: "Could not read the file", Err: err}
	}
	req, err := c.newRequest(ctx, http.MethodPost, pathSummarizeDocument, body, contentType)
	if err != nil {
		return GeneratedSummary{}, upstreamError(op, err)
	}
	var resp generatedSummaryResponse
	if err := c.sendAuthenticated(req, &resp); err != nil {
		return GeneratedSummary{}, upstreamError(op, err)
	}
	c.invalidator.emit(ResourceSummaries)
	return resp.Summary, nil
}

// documentForm encodes the upload as multipart/form-data with fields file and summary_len.
func documentForm(r SummarizeDocumentRequest) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filepath.Base(r.FileName))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(fw, r.Content); err != nil {
		return nil, "", fmt.Errorf("copy %s: %w", r.FileName, err)
	}
	if err := mw.WriteField("summary_len", strconv.Itoa(r.SummaryLen)); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// ListSummaries returns every summary the signed-in user owns.
func (c *Client) ListSummaries(ctx context.Context) ([]Summary, error) {
	const op = "list summaries"
	req, err := c.newJSONRequest(ctx, http.MethodGet, pathSummaries, nil)
	if err != nil {
		return nil, upstreamError(op, err)
	}
	var resp summaryListResponse
	if err := c.sendAuthenticated(req, &resp); err != nil {
		return nil, upstreamError(op, err)
	}
	return resp.Summaries, nil
}

// GetSummary fetches one summary. A malformed id fails before any request is sent.
func (c *Client) GetSummary(ctx context.Context, id string) (Summary, error) {
	const op = "get summary"
	if err := validateSummaryID(op, id); err != nil {
		return Summary{}, err
	}
	req, err := c.newJSONRequest(ctx, http.MethodGet, pathSummaries+id+"/", nil)
	if err != nil {
		return Summary{}, upstreamError(op, err)
	}
	var resp summaryDetailResponse
	if err := c.sendAuthenticated(req, &resp); err != nil {
		return Summary{}, upstreamError(op, err)
	}
	return resp.Summaries, nil
}

// DeleteSummary removes a summary and returns the gateway's confirmation message.
func (c *Client) DeleteSummary(ctx context.Context, id string) (string, error) {
	const op = "delete summary"
	if err := validateSummaryID(op, id); err != nil {
		return "", err
	}
	req, err := c.newJSONRequest(ctx, http.MethodDelete, pathDeleteSummary+id+"/", nil)
	if err != nil {
		return "", upstreamError(op, err)
	}
	var resp MessageResponse
	if err := c.sendAuthenticated(req, &resp); err != nil {
		return "", upstreamError(op, err)
	}
	c.invalidator.emit(ResourceSummaries)
	return resp.Message, nil
}

func validateSummaryID(op, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &apperrors.UpstreamError{Op: op, Message: fmt.Sprintf("%q is not a summary id", id), Err: apperrors.ErrInvalidRequest}
	}
	return nil
}
