package ocpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	headerContentType = "Content-Type"
	headerAccessToken = "access-token"
	headerRequestID   = "X-Request-Id"

	mimeApplicationJSON = "application/json"
)

// apiEnvelope is the common wrapper the gateway puts around every body.
// Success is a pointer because the gateway omits the flag on most successful
// responses; only an explicit false marks a gateway-reported failure.
type apiEnvelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		RequestID string `json:"requestId"`
	} `json:"meta"`
}

// doRequest performs one stateless HTTP exchange against the gateway and
// returns the envelope's data field. Every failure comes back as *APIError
// (or the before-hook's own error); the status-to-kind mapping is:
//
//	400 ErrValidationFailed, 403 ErrUnauthorized, 404 ErrNotFound,
//	410 ErrLinkExpired, anything else generic.
//
// A connection-level failure with no response at all is always generic with
// StatusCode 0, never a mapped kind.
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(headerContentType, mimeApplicationJSON)
	req.Header.Set(headerAccessToken, c.accessToken)

	requestID := uuid.NewString()
	req.Header.Set(headerRequestID, requestID)

	rc := RequestContext{
		Ctx:       ctx,
		Method:    method,
		Path:      path,
		RequestID: requestID,
		Timestamp: time.Now(),
	}
	if err := c.runBeforeHooks(rc); err != nil {
		return nil, fmt.Errorf("request aborted by hook: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := &APIError{
			Message:    err.Error(),
			StatusCode: 0,
			cause:      err,
		}
		c.runFailureHooks(rc, apiErr, start)
		return nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := &APIError{
			Message:    fmt.Sprintf("read response body: %v", err),
			StatusCode: resp.StatusCode,
			cause:      err,
		}
		c.runFailureHooks(rc, apiErr, start)
		return nil, apiErr
	}

	data, apiErr := decodeResponse(resp.StatusCode, resp.Status, raw)
	if apiErr != nil {
		c.runFailureHooks(rc, apiErr, start)
		return nil, apiErr
	}

	c.runAfterHooks(rc, resp.StatusCode, start)
	return data, nil
}

// decodeResponse turns a raw gateway response into either the data payload or
// an *APIError per the mapping rules above.
func decodeResponse(statusCode int, status string, raw []byte) (json.RawMessage, *APIError) {
	envelope, errorData, parseErr := parseEnvelope(raw)

	if statusCode < 200 || statusCode >= 300 {
		if parseErr != nil {
			// Unparseable failure body: keep the HTTP status line as the
			// message, nothing else to extract.
			return nil, newAPIError(statusCode, status, "", nil)
		}
		message := envelope.Message
		if message == "" {
			message = status
		}
		return nil, newAPIError(statusCode, message, envelope.Meta.RequestID, errorData)
	}

	if parseErr != nil {
		return nil, newAPIError(statusCode, fmt.Sprintf("decode response body: %v", parseErr), "", nil)
	}

	if envelope.Success != nil && !*envelope.Success {
		return nil, newAPIError(statusCode, envelope.Message, envelope.Meta.RequestID, errorData)
	}

	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return nil, newAPIError(statusCode, "missing data field in gateway response", envelope.Meta.RequestID, errorData)
	}

	return envelope.Data, nil
}

// parseEnvelope decodes the body twice: once into the typed envelope and once
// into a generic map so APIError.ErrorData can preserve fields the envelope
// does not model.
func parseEnvelope(raw []byte) (apiEnvelope, map[string]any, error) {
	var envelope apiEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return apiEnvelope{}, nil, err
	}

	var errorData map[string]any
	// Best effort; a non-object body (e.g. a bare JSON string) still counts
	// as parsed for envelope purposes.
	_ = json.Unmarshal(raw, &errorData)

	return envelope, errorData, nil
}
