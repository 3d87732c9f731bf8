package taskflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	uuid "github.com/nu7hatch/gouuid"
	log "github.com/sirupsen/logrus"
)

// wireRecord is one line of the wire log.
type wireRecord struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id"`
	Method    string          `json:"method,omitempty"`
	URL       string          `json:"url,omitempty"`
	Code      int             `json:"code,omitempty"`
	Body      json.RawMessage `json:"body,omitempty"`
	Text      string          `json:"text,omitempty"`
}

func (c *Client) logWire(r wireRecord) {
	if len(r.Body) != 0 && !json.Valid(r.Body) {
		r.Text, r.Body = string(r.Body), nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return
	}
	_, _ = c.wlog.Write(append(b, '\n'))
}

func newRequestID() string {
	u, err := uuid.NewV4()
	if err != nil {
		return ""
	}
	return u.String()
}

// do performs a single request and returns the body of a 2xx response. Any other status is turned into an
// *HTTPError, and failures to get a response at all into a *NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte) ([]byte, error) {
	requestID := newRequestID()
	var rb io.Reader
	if body != nil {
		rb = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, rb)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}
	c.logWire(wireRecord{Type: "request", RequestID: requestID, Method: method, URL: req.URL.String(), Body: body})

	r, err := c.hc.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithFields(log.Fields{
				"op":         op,
				"request_id": requestID,
				"cause":      err,
			}).Warning("Could not close response body")
		}
	}()
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("read body: %w", err)}
	}
	c.logWire(wireRecord{Type: "response", RequestID: requestID, Code: r.StatusCode, Body: b})

	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return b, nil
	}
	log.WithFields(log.Fields{
		"op":         op,
		"request_id": requestID,
		"code":       r.StatusCode,
		"text":       string(b),
	}).Error("Unhandled response")
	return nil, &HTTPError{Op: op, StatusCode: r.StatusCode, Text: string(b)}
}
