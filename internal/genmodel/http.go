package genmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/leandrodaf/piano/sdk/contracts"
)

// ErrModelStatus is returned when the model service answers with a
// non-success HTTP status.
var ErrModelStatus = errors.New("model service returned error status")

// DefaultTimeout bounds a single model call. The scheduler treats a timeout
// like any other failed invocation.
const DefaultTimeout = 10 * time.Second

// HTTPGenerator calls a remote model service over JSON/HTTP. Each call
// carries a fresh request ID so service logs can be correlated with ticks.
type HTTPGenerator struct {
	endpoint string
	client   *http.Client
}

// NewHTTPGenerator creates a generator posting to the given endpoint. A
// non-positive timeout falls back to DefaultTimeout.
func NewHTTPGenerator(endpoint string, timeout time.Duration) *HTTPGenerator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPGenerator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// GenerateNotes implements contracts.NoteGenerator. The context cancels the
// in-flight request when the scheduler stops.
func (g *HTTPGenerator) GenerateNotes(ctx context.Context, notes []contracts.Note, start, end, buffer contracts.Ticks) ([]contracts.Note, error) {
	body, err := json.Marshal(GenerateRequest{
		RequestID: uuid.NewString(),
		History:   ToWire(notes),
		Start:     start,
		End:       end,
		Buffer:    buffer,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding model request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building model request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling model service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrModelStatus, resp.StatusCode)
	}

	var wire []WireNote
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("decoding model response: %w", err)
	}
	return FromWire(wire), nil
}
