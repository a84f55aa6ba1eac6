package vision

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"civicsense/types"
)

type fakeAnnotator struct {
	detections []types.Detection
	err        error
}

func (f *fakeAnnotator) DetectObjects(_ context.Context, _ io.Reader) ([]types.Detection, error) {
	return f.detections, f.err
}

func TestAnalyzeFiltersLowConfidence(t *testing.T) {
	triage := NewTriage(&fakeAnnotator{detections: []types.Detection{
		{Object: "fire hydrant", Confidence: 0.91},
		{Object: "bench", Confidence: 0.12},
		{Object: "traffic light", Confidence: 0.30}, // not strictly above the floor
	}})

	detections := triage.Analyze(context.Background(), strings.NewReader("img"))

	assert.Equal(t, []types.Detection{{Object: "fire hydrant", Confidence: 0.91}}, detections)
}

func TestAnalyzeRoundsConfidence(t *testing.T) {
	triage := NewTriage(&fakeAnnotator{detections: []types.Detection{
		{Object: "stop sign", Confidence: 0.87654},
	}})

	detections := triage.Analyze(context.Background(), strings.NewReader("img"))

	assert.Equal(t, 0.88, detections[0].Confidence)
}

func TestAnalyzeDegradesOnFailure(t *testing.T) {
	triage := NewTriage(&fakeAnnotator{err: errors.New("model unavailable")})

	assert.Empty(t, triage.Analyze(context.Background(), strings.NewReader("img")))
}

func TestUrgencyBoost(t *testing.T) {
	assert.Positive(t, UrgencyBoost([]types.Detection{{Object: "fire hydrant", Confidence: 0.8}}))
	assert.Positive(t, UrgencyBoost([]types.Detection{
		{Object: "bench", Confidence: 0.9},
		{Object: "stop sign", Confidence: 0.5},
	}))
	assert.Zero(t, UrgencyBoost([]types.Detection{{Object: "bench", Confidence: 0.9}}))
	assert.Zero(t, UrgencyBoost(nil))
}
