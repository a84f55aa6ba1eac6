package triage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicsense/classify"
	"civicsense/geospatial"
	"civicsense/realtime"
	"civicsense/types"
	"civicsense/urgency"
)

type fakeClassifier struct{ res classify.Result }

func (f *fakeClassifier) Classify(_ context.Context, _ string) classify.Result { return f.res }

type fakeScorer struct{ res urgency.Result }

func (f *fakeScorer) Score(_ context.Context, _ string) urgency.Result { return f.res }

type fakeDupes struct {
	groupID   string
	embedding []float64
}

func (f *fakeDupes) FindGroup(_ context.Context, _ string, _ types.Category) (string, []float64) {
	return f.groupID, f.embedding
}

type fakeVision struct{ detections []types.Detection }

func (f *fakeVision) Analyze(_ context.Context, _ io.Reader) []types.Detection {
	return f.detections
}

type fakeWards struct{ ward string }

func (f *fakeWards) Ward(_, _ float64) string { return f.ward }

type fakeAreas struct {
	area  string
	calls int
}

func (f *fakeAreas) Area(_ context.Context, _, _ float64) string {
	f.calls++
	return f.area
}

type fakeStore struct {
	inserted  *types.Complaint
	insertErr error
	dupeCount int
	countErr  error
}

func (f *fakeStore) InsertComplaint(_ context.Context, c *types.Complaint) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = c
	return nil
}

func (f *fakeStore) CountDuplicates(_ context.Context, _ string) (int, error) {
	return f.dupeCount, f.countErr
}

type fakeHub struct {
	channels []string
	events   []realtime.Event
}

func (f *fakeHub) Broadcast(channel string, event realtime.Event) {
	f.channels = append(f.channels, channel)
	f.events = append(f.events, event)
}

func newPipeline(store *fakeStore, hub *fakeHub) *Pipeline {
	return &Pipeline{
		Classifier: &fakeClassifier{res: classify.Result{Category: types.CategorySanitation, Confidence: 0.93}},
		Scorer:     &fakeScorer{res: urgency.Result{Urgency: types.UrgencyMedium, Reason: "Contains medium-urgency keyword: 'garbage'"}},
		Dupes:      &fakeDupes{},
		Vision:     &fakeVision{},
		Wards:      &fakeWards{ward: "Ward K/W"},
		Areas:      &fakeAreas{area: "Andheri West"},
		Store:      store,
		Hub:        hub,
	}
}

func TestProcessHappyPath(t *testing.T) {
	store := &fakeStore{}
	hub := &fakeHub{}
	p := newPipeline(store, hub)

	c, err := p.Process(context.Background(), Submission{
		Text:        "Garbage is piling up near the market",
		Coordinates: &types.Coordinates{Lat: 19.12, Lng: 72.83},
		UserID:      "user-1",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, types.CategorySanitation, c.Category)
	assert.Equal(t, 0.93, c.Confidence)
	assert.Equal(t, types.UrgencyMedium, c.Urgency)
	assert.Equal(t, "Sanitation & Waste", c.Department)
	assert.Equal(t, "Ward K/W", c.Ward)
	assert.Equal(t, "Andheri West", c.Area)
	assert.Equal(t, "24 Hours", c.SlaEta)
	assert.Equal(t, types.StatusSubmitted, c.Status)
	assert.Equal(t, "user-1", c.UserID)
	assert.False(t, c.Timestamp.IsZero())
	assert.Same(t, c, store.inserted)

	require.Len(t, hub.events, 1)
	assert.Equal(t, []string{"Sanitation & Waste"}, hub.channels)
	assert.Equal(t, realtime.EventNewComplaint, hub.events[0].Type)
	data, ok := hub.events[0].Data.(NewComplaintData)
	require.True(t, ok)
	assert.Equal(t, c.ID, data.ID)
	assert.Equal(t, types.CategorySanitation, data.Category)
	assert.Equal(t, "Ward K/W", data.Ward)
	assert.Equal(t, types.UrgencyMedium, data.Urgency)
}

func TestProcessEmptyTextIsFatal(t *testing.T) {
	store := &fakeStore{}
	p := newPipeline(store, &fakeHub{})

	_, err := p.Process(context.Background(), Submission{Text: "   \n\t "})

	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Nil(t, store.inserted)
}

func TestProcessInsertFailureAbortsWithoutBroadcast(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("firestore unavailable")}
	hub := &fakeHub{}
	p := newPipeline(store, hub)

	_, err := p.Process(context.Background(), Submission{Text: "Garbage everywhere"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create complaint record")
	assert.Empty(t, hub.events, "nothing may be announced for an unpersisted complaint")
}

func TestProcessWithoutCoordinates(t *testing.T) {
	store := &fakeStore{}
	areas := &fakeAreas{area: "Andheri West"}
	p := newPipeline(store, &fakeHub{})
	p.Areas = areas

	c, err := p.Process(context.Background(), Submission{Text: "Streetlight is out"})

	require.NoError(t, err)
	assert.Equal(t, geospatial.DefaultWard, c.Ward)
	assert.Empty(t, c.Area)
	assert.Equal(t, 0, areas.calls, "geo stages must be skipped entirely without a fix")
}

func TestProcessVisionBoostRaisesLowToHigh(t *testing.T) {
	store := &fakeStore{}
	p := newPipeline(store, &fakeHub{})
	p.Scorer = &fakeScorer{res: urgency.Result{Urgency: types.UrgencyLow, Reason: "No urgent keywords or sufficient negative sentiment detected"}}
	p.Vision = &fakeVision{detections: []types.Detection{{Object: "fire hydrant", Confidence: 0.9}}}

	c, err := p.Process(context.Background(), Submission{
		Text:  "Something is off here",
		Image: strings.NewReader("img"),
	})

	require.NoError(t, err)
	assert.Equal(t, types.UrgencyHigh, c.Urgency)
	assert.Contains(t, c.UrgencyReason, "escalated by visual triage")
	assert.Equal(t, "2 Hours", c.SlaEta)
}

func TestProcessVisionBoostNeverLowersCritical(t *testing.T) {
	store := &fakeStore{}
	p := newPipeline(store, &fakeHub{})
	p.Scorer = &fakeScorer{res: urgency.Result{Urgency: types.UrgencyCritical, Reason: "Contains critical keyword: 'fire'"}}
	p.Vision = &fakeVision{detections: []types.Detection{{Object: "fire hydrant", Confidence: 0.9}}}

	c, err := p.Process(context.Background(), Submission{
		Text:  "A fire broke out in the building",
		Image: strings.NewReader("img"),
	})

	require.NoError(t, err)
	assert.Equal(t, types.UrgencyCritical, c.Urgency)
	assert.NotContains(t, c.UrgencyReason, "escalated")
}

func TestProcessVisionIgnoredWithoutImage(t *testing.T) {
	store := &fakeStore{}
	p := newPipeline(store, &fakeHub{})
	p.Scorer = &fakeScorer{res: urgency.Result{Urgency: types.UrgencyLow, Reason: "nothing"}}
	p.Vision = &fakeVision{detections: []types.Detection{{Object: "fire hydrant", Confidence: 0.9}}}

	c, err := p.Process(context.Background(), Submission{Text: "All quiet"})

	require.NoError(t, err)
	assert.Equal(t, types.UrgencyLow, c.Urgency)
}

func TestProcessDuplicateSnapshot(t *testing.T) {
	store := &fakeStore{dupeCount: 3}
	p := newPipeline(store, &fakeHub{})
	p.Dupes = &fakeDupes{groupID: "group-9", embedding: []float64{0.1, 0.2}}

	c, err := p.Process(context.Background(), Submission{Text: "Garbage again"})

	require.NoError(t, err)
	assert.Equal(t, "group-9", c.DuplicateGroupID)
	assert.Equal(t, 3, c.DuplicateCount)
	assert.Equal(t, []float64{0.1, 0.2}, c.Embedding)
}

func TestProcessDuplicateCountFailureDegrades(t *testing.T) {
	store := &fakeStore{countErr: errors.New("query failed")}
	p := newPipeline(store, &fakeHub{})
	p.Dupes = &fakeDupes{groupID: "group-9", embedding: []float64{0.1}}

	c, err := p.Process(context.Background(), Submission{Text: "Garbage again"})

	require.NoError(t, err)
	assert.Equal(t, "group-9", c.DuplicateGroupID)
	assert.Equal(t, 0, c.DuplicateCount)
}

func TestProcessCriticalSafetyRoutesToEmergencyDesk(t *testing.T) {
	store := &fakeStore{}
	hub := &fakeHub{}
	p := newPipeline(store, hub)
	p.Classifier = &fakeClassifier{res: classify.Result{Category: types.CategorySafety, Confidence: 0.88}}
	p.Scorer = &fakeScorer{res: urgency.Result{Urgency: types.UrgencyCritical, Reason: "Contains critical keyword: 'weapon'"}}

	c, err := p.Process(context.Background(), Submission{Text: "Man with a weapon outside the school"})

	require.NoError(t, err)
	assert.Equal(t, "Public Safety", c.Department)
	assert.Equal(t, []string{"Public Safety"}, hub.channels)
}

func TestSlaEta(t *testing.T) {
	assert.Equal(t, "2 Hours", SlaEta(types.UrgencyCritical))
	assert.Equal(t, "2 Hours", SlaEta(types.UrgencyHigh))
	assert.Equal(t, "24 Hours", SlaEta(types.UrgencyMedium))
	assert.Equal(t, "3 Days", SlaEta(types.UrgencyLow))
	assert.Equal(t, "24 Hours", SlaEta(types.Urgency("bogus")))
}
