// Package attendance runs the check-in pipeline: decode the uploaded
// frame, derive a mood label, and record the transition. Session
// invariants themselves are enforced by the store's transactional
// transitions.
package attendance

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/chandra122/facialtimesheet-final/internal/emotion"
	"github.com/chandra122/facialtimesheet-final/internal/models"
	"github.com/chandra122/facialtimesheet-final/internal/vision"
)

// EventStore is the durable side of the pipeline, implemented by
// storage.Store.
type EventStore interface {
	CheckIn(ctx context.Context, employeeID uint, now time.Time, mood string) (*models.Timesheet, error)
	CheckOut(ctx context.Context, employeeID uint, now time.Time) (*models.Timesheet, error)
	ListTimesheets(ctx context.Context) ([]models.Timesheet, error)
}

// CheckInResult is what a successful check-in reports back.
type CheckInResult struct {
	Record  *models.Timesheet
	Summary emotion.Summary
}

type Service struct {
	store      EventStore
	decoder    vision.Decoder
	classifier emotion.Classifier
	now        func() time.Time
}

func NewService(store EventStore, decoder vision.Decoder, classifier emotion.Classifier) *Service {
	return &Service{
		store:      store,
		decoder:    decoder,
		classifier: classifier,
		now:        time.Now,
	}
}

// CheckIn opens a session for the employee, tagging it with the mood
// read from the uploaded image. An unavailable classifier degrades to
// the fallback mood; a malformed image aborts the check-in.
func (s *Service) CheckIn(ctx context.Context, employeeID uint, image []byte) (*CheckInResult, error) {
	img, err := s.decoder.Decode(image)
	if err != nil {
		return nil, err
	}
	defer img.Close()

	var summary emotion.Summary
	scores, err := s.classifier.Classify(ctx, img)
	switch {
	case err == nil:
		summary = emotion.Summarize(scores)
	case errors.Is(err, emotion.ErrUnavailable):
		log.Printf("emotion analysis unavailable for employee %d: %v", employeeID, err)
		summary = emotion.Unclear()
	default:
		log.Printf("unexpected classifier error for employee %d: %v", employeeID, err)
		summary = emotion.Unclear()
	}

	row, err := s.store.CheckIn(ctx, employeeID, s.now(), summary.Label)
	if err != nil {
		return nil, fmt.Errorf("record check-in: %w", err)
	}

	return &CheckInResult{Record: row, Summary: summary}, nil
}

// CheckOut closes the employee's most recent open session.
func (s *Service) CheckOut(ctx context.Context, employeeID uint) (*models.Timesheet, error) {
	return s.store.CheckOut(ctx, employeeID, s.now())
}

// List returns all attendance records, newest first.
func (s *Service) List(ctx context.Context) ([]models.Timesheet, error) {
	return s.store.ListTimesheets(ctx)
}
