package attendance

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"

	"github.com/chandra122/facialtimesheet-final/internal/emotion"
	"github.com/chandra122/facialtimesheet-final/internal/models"
	"github.com/chandra122/facialtimesheet-final/internal/storage"
	"github.com/chandra122/facialtimesheet-final/internal/vision"
)

// --- fakes ---

type fakeDecoder struct {
	err error
}

func (d fakeDecoder) Decode(buf []byte) (*vision.Image, error) {
	if d.err != nil {
		return nil, d.err
	}
	return &vision.Image{Mat: gocv.NewMat()}, nil
}

type fakeClassifier struct {
	scores emotion.Scores
	err    error
}

func (c fakeClassifier) Classify(ctx context.Context, img *vision.Image) (emotion.Scores, error) {
	return c.scores, c.err
}

// memStore mimics the storage transitions in memory, including the
// single-open-session rule.
type memStore struct {
	nextID uint
	rows   []*models.Timesheet
}

func (m *memStore) CheckIn(ctx context.Context, employeeID uint, now time.Time, mood string) (*models.Timesheet, error) {
	for _, r := range m.rows {
		if r.EmployeeID == employeeID && r.CheckOut == nil {
			return nil, storage.ErrSessionAlreadyOpen
		}
	}
	m.nextID++
	row := &models.Timesheet{
		ID:          m.nextID,
		EmployeeID:  employeeID,
		CheckIn:     now,
		Mood:        &mood,
		EntryStatus: models.StatusCheckedIn,
	}
	m.rows = append(m.rows, row)
	return row, nil
}

func (m *memStore) CheckOut(ctx context.Context, employeeID uint, now time.Time) (*models.Timesheet, error) {
	var open *models.Timesheet
	for _, r := range m.rows {
		if r.EmployeeID != employeeID || r.CheckOut != nil {
			continue
		}
		if open == nil || r.CheckIn.After(open.CheckIn) ||
			(r.CheckIn.Equal(open.CheckIn) && r.ID > open.ID) {
			open = r
		}
	}
	if open == nil {
		return nil, storage.ErrNoOpenSession
	}
	t := now
	open.CheckOut = &t
	open.EntryStatus = models.StatusCheckedOut
	return open, nil
}

func (m *memStore) ListTimesheets(ctx context.Context) ([]models.Timesheet, error) {
	out := make([]models.Timesheet, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CheckIn.Equal(out[j].CheckIn) {
			return out[i].CheckIn.After(out[j].CheckIn)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func newTestService(store EventStore, dec vision.Decoder, cls emotion.Classifier) *Service {
	s := NewService(store, dec, cls)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return s
}

// --- tests ---

func TestCheckInRecordsMood(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, fakeDecoder{}, fakeClassifier{
		scores: emotion.Scores{emotion.Happy: 95, emotion.Neutral: 40, emotion.Sad: 10},
	})

	res, err := svc.CheckIn(context.Background(), 1, []byte("jpeg"))
	require.NoError(t, err)

	assert.Equal(t, "very Happy 😊", res.Summary.Label)
	assert.Equal(t, emotion.Happy, res.Summary.Dominant)
	assert.Equal(t, uint(1), res.Record.ID)
	require.NotNil(t, res.Record.Mood)
	assert.Equal(t, "very Happy 😊", *res.Record.Mood)
	assert.Equal(t, models.StatusCheckedIn, res.Record.EntryStatus)
}

func TestCheckInDegradesWhenClassifierUnavailable(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, fakeDecoder{}, fakeClassifier{err: emotion.ErrUnavailable})

	res, err := svc.CheckIn(context.Background(), 1, []byte("jpeg"))
	require.NoError(t, err, "an unavailable classifier must not fail the check-in")

	assert.Equal(t, emotion.FallbackLabel, res.Summary.Label)
	assert.Equal(t, emotion.Unknown, res.Summary.Dominant)
	require.NotNil(t, res.Record.Mood)
	assert.Equal(t, emotion.FallbackLabel, *res.Record.Mood)
}

func TestCheckInAbortsOnBadImage(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, fakeDecoder{err: vision.ErrDecode}, fakeClassifier{})

	_, err := svc.CheckIn(context.Background(), 1, []byte("garbage"))
	assert.ErrorIs(t, err, vision.ErrDecode)
	assert.Empty(t, store.rows, "no record may be created for an undecodable image")
}

func TestCheckInRejectsSecondOpenSession(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, fakeDecoder{}, fakeClassifier{scores: emotion.Scores{emotion.Neutral: 60}})

	_, err := svc.CheckIn(context.Background(), 1, []byte("jpeg"))
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), 1, []byte("jpeg"))
	assert.ErrorIs(t, err, storage.ErrSessionAlreadyOpen)
	assert.Len(t, store.rows, 1)
}

func TestCheckOutWithoutOpenSession(t *testing.T) {
	svc := newTestService(&memStore{}, fakeDecoder{}, fakeClassifier{})

	_, err := svc.CheckOut(context.Background(), 1)
	assert.ErrorIs(t, err, storage.ErrNoOpenSession)
}

func TestCheckOutClosesOpenSession(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, fakeDecoder{}, fakeClassifier{scores: emotion.Scores{emotion.Neutral: 60}})

	_, err := svc.CheckIn(context.Background(), 1, []byte("jpeg"))
	require.NoError(t, err)

	row, err := svc.CheckOut(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, row.CheckOut)
	assert.Equal(t, models.StatusCheckedOut, row.EntryStatus)

	// session closed, a fresh check-in is allowed again
	_, err = svc.CheckIn(context.Background(), 1, []byte("jpeg"))
	assert.NoError(t, err)
}

func TestInterleavedTransitionsKeepOneOpenSession(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, fakeDecoder{}, fakeClassifier{scores: emotion.Scores{emotion.Neutral: 60}})
	ctx := context.Background()

	employees := []uint{1, 2, 3}
	steps := []struct {
		emp uint
		in  bool
	}{
		{1, true}, {2, true}, {1, false}, {1, true}, {3, true},
		{2, false}, {1, true}, {3, false}, {2, true}, {1, false},
	}
	for _, step := range steps {
		if step.in {
			_, _ = svc.CheckIn(ctx, step.emp, []byte("jpeg"))
		} else {
			_, _ = svc.CheckOut(ctx, step.emp)
		}

		for _, emp := range employees {
			open := 0
			for _, r := range store.rows {
				if r.EmployeeID == emp && r.CheckOut == nil {
					open++
				}
			}
			assert.LessOrEqual(t, open, 1, "employee %d", emp)
		}
	}
}
