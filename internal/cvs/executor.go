package cvs

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cvstools/cvs-operator/internal/retry"
)

// jobSlotMessage marks the one 500 the backend emits when its internal
// job-execution queue is full. Only this 500 is transient.
const jobSlotMessage = "Cannot spawn additional jobs"

// OperationRequest is one logical write against the API. Immutable once
// issued.
type OperationRequest struct {
	Method  string
	URL     string
	Region  string
	Payload any // marshalled to JSON when non-nil
}

// ProvisionalResult is the outcome of one accepted HTTP exchange.
// StatusCode 200/201 means the resource already reached a stable state;
// 202 means a background job was queued and must be polled.
type ProvisionalResult struct {
	StatusCode int
	Body       []byte
}

// Accepted reports whether the work was queued asynchronously.
func (r ProvisionalResult) Accepted() bool { return r.StatusCode == http.StatusAccepted }

// ResourceID extracts the new resource's id (volumeId, poolId, backupId)
// from the provisional-accept envelope.
func (r ProvisionalResult) ResourceID(field string) (string, error) {
	return acceptedResourceID(r.Body, field)
}

func isSuccess(status int) bool {
	return status == http.StatusOK || status == http.StatusCreated || status == http.StatusAccepted
}

// retryable classifies a response. 429 (rate limited) and 409 (resource
// mid-transition) always are; 500 only with the job-slot message.
func retryable(status int, body []byte) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusConflict:
		return true
	case http.StatusInternalServerError:
		return strings.Contains(apiMessage(body), jobSlotMessage)
	default:
		return false
	}
}

// execute sends req once and, within the budget, re-sends it after
// transient responses. Every outcome is logged as a structured event.
func (c *Client) execute(ctx context.Context, req OperationRequest, budget retry.Budget) (ProvisionalResult, error) {
	var payload []byte
	if req.Payload != nil {
		var err error
		payload, err = json.Marshal(req.Payload)
		if err != nil {
			return ProvisionalResult{}, &ValidationError{Reason: "marshal payload: " + err.Error()}
		}
	}

	deadline := budget.Deadline(time.Now())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	attempt := 0

	for {
		attempt++
		status, body, err := c.transport.Do(ctx, req.Method, req.URL, payload)
		if err != nil {
			log.Error().Err(err).
				Str("action", "api_request").
				Str("method", req.Method).
				Str("url", req.URL).
				Int("attempt", attempt).
				Msg("transport error")
			return ProvisionalResult{}, err
		}

		if isSuccess(status) {
			log.Debug().
				Str("action", "api_request").
				Str("method", req.Method).
				Str("url", req.URL).
				Int("status", status).
				Int("attempt", attempt).
				Msg("request OK")
			return ProvisionalResult{StatusCode: status, Body: body}, nil
		}

		// Single-attempt mode: any non-success is final, the body is not
		// inspected for transient markers.
		if budget.NoRetry {
			perr := &PermanentError{StatusCode: status, Message: apiMessage(body), URL: req.URL}
			log.Error().
				Str("action", "api_request").
				Str("method", req.Method).
				Str("url", req.URL).
				Int("status", status).
				Str("message", perr.Message).
				Msg("request failed")
			return ProvisionalResult{}, perr
		}

		if !retryable(status, body) {
			perr := &PermanentError{StatusCode: status, Message: apiMessage(body), URL: req.URL}
			log.Error().
				Str("action", "api_request").
				Str("method", req.Method).
				Str("url", req.URL).
				Int("status", status).
				Int("attempt", attempt).
				Str("message", perr.Message).
				Msg("permanent failure")
			return ProvisionalResult{}, perr
		}

		if !time.Now().Before(deadline) {
			terr := &TimeoutError{
				Op:         req.Method + " " + req.URL,
				LastStatus: status,
				LastDetail: apiMessage(body),
			}
			log.Error().
				Str("action", "api_request").
				Str("method", req.Method).
				Str("url", req.URL).
				Int("status", status).
				Int("attempt", attempt).
				Msg("retry budget exhausted")
			return ProvisionalResult{}, terr
		}

		log.Warn().
			Str("action", "api_request").
			Str("method", req.Method).
			Str("url", req.URL).
			Int("status", status).
			Int("attempt", attempt).
			Str("message", apiMessage(body)).
			Msg("transient failure, backing off")
		if err := retry.Wait(ctx, rng, budget); err != nil {
			return ProvisionalResult{}, err
		}
	}
}
