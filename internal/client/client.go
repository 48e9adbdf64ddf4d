package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/autointelli/intake/internal/domain"
)

// OutcomeKind classifies what the backend said about a submission.
type OutcomeKind uint8

const (
	// OutcomeSuccess means the request was recorded in full. The form resets.
	OutcomeSuccess OutcomeKind = iota
	// OutcomeWarning means the request was recorded with degraded effect.
	// Treated as success for reset purposes, flagged visually.
	OutcomeWarning
	// OutcomeError means the backend rejected the request, logically or with
	// a non-2xx status. The entered data stays on screen.
	OutcomeError
)

// Outcome is the classified result of one submission attempt. At most one of
// the backend's message/warning/error fields drives it, in that priority.
type Outcome struct {
	Kind      OutcomeKind
	Message   string
	ResultURL string
}

// Terminal reports whether the attempt ended well enough to reset the form.
func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeWarning
}

// Client talks to the intake backend. The zero value is not usable; use New.
type Client struct {
	baseURL    string
	submitPath string
	statusPath string
	http       *http.Client
	logger     *zap.Logger
}

// New returns a client for the backend at baseURL. submitPath is the
// variant's intake endpoint, statusPath the dashboard status-update prefix.
func New(baseURL, submitPath, statusPath string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		submitPath: submitPath,
		statusPath: statusPath,
		http:       &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// submitResponse covers both the 2xx and the error body shapes of the intake
// endpoints. Which fields are set decides the outcome.
type submitResponse struct {
	Message     string `json:"message"`
	Warning     string `json:"warning"`
	Error       string `json:"error"`
	Details     string `json:"details"`
	NotionURL   string `json:"notion_url"`
	NotionURL2  string `json:"notion_url_db2"`
	NotionError *struct {
		Message string `json:"message"`
	} `json:"notion_error"`
}

func (r *submitResponse) resultURL() string {
	if r.NotionURL != "" {
		return r.NotionURL
	}
	return r.NotionURL2
}

// Submit serializes the draft, posts it, and classifies the response.
// A returned error means the request never produced a classifiable answer
// (serialization or network failure); anything the backend actually said,
// including a non-2xx status, comes back as an Outcome.
func (c *Client) Submit(ctx context.Context, d *domain.Draft) (Outcome, error) {
	body, err := BuildPayload(d)
	if err != nil {
		return Outcome{}, err
	}

	resp, raw, err := c.postJSON(ctx, c.baseURL+c.submitPath, body)
	if err != nil {
		c.logger.Warn("submit failed", zap.String("folio", d.Folio), zap.Error(err))
		return Outcome{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome := Outcome{Kind: OutcomeError, Message: submitErrorMessage(resp.StatusCode, raw)}
		c.logger.Warn("submit rejected",
			zap.String("folio", d.Folio),
			zap.Int("status", resp.StatusCode),
			zap.String("message", outcome.Message))
		return outcome, nil
	}

	var parsed submitResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Outcome{Kind: OutcomeError, Message: "Respuesta inesperada del servidor."}, nil
	}

	var outcome Outcome
	switch {
	case parsed.Message != "":
		outcome = Outcome{Kind: OutcomeSuccess, Message: parsed.Message, ResultURL: parsed.resultURL()}
	case parsed.Warning != "":
		outcome = Outcome{Kind: OutcomeWarning, Message: parsed.Warning, ResultURL: parsed.resultURL()}
	case parsed.Error != "":
		outcome = Outcome{Kind: OutcomeError, Message: parsed.Error}
	default:
		outcome = Outcome{Kind: OutcomeError, Message: "Respuesta inesperada del servidor."}
	}
	c.logger.Info("submit answered",
		zap.String("folio", d.Folio),
		zap.String("mode", d.Mode.String()),
		zap.Uint8("kind", uint8(outcome.Kind)))
	return outcome, nil
}

// submitErrorMessage composes the display message for a non-2xx submission
// answer: the body's error text with any nested detail appended, or the bare
// status line when the body is not parseable JSON.
func submitErrorMessage(status int, raw []byte) string {
	var parsed submitResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Sprintf("Error %d: %s", status, http.StatusText(status))
	}
	msg := parsed.Error
	if msg == "" {
		msg = fmt.Sprintf("Error: %d", status)
	}
	switch {
	case parsed.NotionError != nil && parsed.NotionError.Message != "":
		msg += fmt.Sprintf(" (Notion: %s)", parsed.NotionError.Message)
	case parsed.Details != "":
		msg += ": " + parsed.Details
	}
	return msg
}

// statusUpdateResponse is the body of a dashboard status-update answer.
type statusUpdateResponse struct {
	Message           string          `json:"message"`
	Error             string          `json:"error"`
	NotionErrorDetail json.RawMessage `json:"notion_error_details"`
}

// UpdateStatus moves one dashboard row to a new status and returns the
// backend's confirmation message. Any failure comes back as an error whose
// text is ready for display; the caller rolls the row back.
func (c *Client) UpdateStatus(ctx context.Context, pageID, status string) (string, error) {
	body := map[string]any{
		"properties": map[string]any{
			"Estatus": map[string]any{
				"select": map[string]string{"name": status},
			},
		},
	}

	resp, raw, err := c.postJSON(ctx, c.baseURL+c.statusPath+"/"+pageID, body)
	if err != nil {
		c.logger.Warn("status update failed", zap.String("page_id", pageID), zap.Error(err))
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed statusUpdateResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", fmt.Errorf("Error de servidor (Status: %d). No se pudo obtener el detalle del error.", resp.StatusCode)
		}
		msg := parsed.Error
		if msg == "" {
			msg = fmt.Sprintf("Error de servidor (Status: %d)", resp.StatusCode)
		}
		if len(parsed.NotionErrorDetail) > 0 {
			msg += fmt.Sprintf(" Detalles: %s", parsed.NotionErrorDetail)
		}
		c.logger.Warn("status update rejected",
			zap.String("page_id", pageID),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg))
		return "", fmt.Errorf("%s", msg)
	}

	c.logger.Info("status updated", zap.String("page_id", pageID), zap.String("status", status))
	var parsed statusUpdateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Message == "" {
		return "Actualización exitosa.", nil
	}
	return parsed.Message, nil
}

// postJSON sends one JSON POST and returns the response with its body fully
// read, so callers decode from bytes and status handling stays in one place.
func (c *Client) postJSON(ctx context.Context, url string, body any) (*http.Response, []byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("encode request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return nil, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, raw, nil
}
