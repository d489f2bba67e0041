// internal/emotion/client.go
package emotion

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/chandra122/facialtimesheet-final/internal/vision"
)

// FaceChecker is an optional pre-flight gate: frames without a face are
// reported unavailable without calling the analyzer at all.
type FaceChecker interface {
	HasFace(img *vision.Image) bool
}

// Client submits frames to the external emotion analyzer over HTTP.
// Every failure mode collapses into ErrUnavailable; callers never see
// the underlying transport or analyzer error kinds.
type Client struct {
	endpoint string
	faces    FaceChecker
	client   *http.Client
}

// NewClient builds a client for the analyzer at endpoint. faces may be
// nil to skip the local face gate. timeout bounds the whole request.
func NewClient(endpoint string, faces FaceChecker, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpoint: endpoint,
		faces:    faces,
		client:   &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	RequestID string `json:"request_id"`
	Image     string `json:"image"`
}

type analyzeResponse struct {
	Emotions map[string]float64 `json:"emotions"`
}

// Classify JPEG-encodes the frame and posts it to the analyzer,
// returning its per-category confidences.
func (c *Client) Classify(ctx context.Context, img *vision.Image) (Scores, error) {
	if c.faces != nil && !c.faces.HasFace(img) {
		log.Println("no usable face in frame, skipping analyzer call")
		return nil, ErrUnavailable
	}

	jpeg, err := img.EncodeJPEG()
	if err != nil {
		log.Printf("frame encode failed: %v", err)
		return nil, ErrUnavailable
	}

	payload, err := json.Marshal(analyzeRequest{
		RequestID: uuid.NewString(),
		Image:     base64.StdEncoding.EncodeToString(jpeg),
	})
	if err != nil {
		return nil, ErrUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, ErrUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("analyzer request failed: %v", err)
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("analyzer returned status %d: %s", resp.StatusCode, string(body))
		return nil, ErrUnavailable
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("failed to parse analyzer response: %v", err)
		return nil, ErrUnavailable
	}
	if len(result.Emotions) == 0 {
		return nil, ErrUnavailable
	}

	scores := make(Scores, len(result.Emotions))
	for name, score := range result.Emotions {
		if score < 0 {
			return nil, fmt.Errorf("%w: negative confidence for %q", ErrUnavailable, name)
		}
		scores[Category(name)] = score
	}
	return scores, nil
}
