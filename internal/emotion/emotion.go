// Package emotion wraps the external emotion analyzer behind a stable
// interface and collapses its per-category confidences into a single
// mood label.
package emotion

import (
	"context"
	"errors"

	"github.com/chandra122/facialtimesheet-final/internal/vision"
)

// Category is one of the analyzer's fixed emotion classes.
type Category string

const (
	Angry    Category = "angry"
	Disgust  Category = "disgust"
	Fear     Category = "fear"
	Happy    Category = "happy"
	Sad      Category = "sad"
	Surprise Category = "surprise"
	Neutral  Category = "neutral"

	// Unknown is reported when the analyzer could not produce a reading.
	Unknown Category = "unknown"
)

// Categories lists the analyzer classes in their canonical order. The
// order is the tie-break for equal confidence scores.
var Categories = []Category{Angry, Disgust, Fear, Happy, Sad, Surprise, Neutral}

// Scores maps each category to a confidence in [0,100]. Confidences are
// independent and need not sum to 100.
type Scores map[Category]float64

// ErrUnavailable means the analyzer could not produce a usable reading
// (no face detected, service down, bad response). It is recoverable: a
// check-in degrades to the fallback mood instead of failing.
var ErrUnavailable = errors.New("emotion analysis unavailable")

// Classifier is the capability consumed by the check-in pipeline.
type Classifier interface {
	Classify(ctx context.Context, img *vision.Image) (Scores, error)
}
