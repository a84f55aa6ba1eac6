// Package vision runs object detection over uploaded complaint images and
// turns the detections into an urgency signal.
package vision

import (
	"context"
	"io"
	"log"
	"math"

	"civicsense/types"
)

// minConfidence filters out low-confidence detections before they influence
// triage.
const minConfidence = 0.3

// priorityObjects are labels whose presence in a report suggests affected
// public infrastructure worth a priority bump.
var priorityObjects = map[string]bool{
	"fire hydrant":  true,
	"traffic light": true,
	"stop sign":     true,
}

// Annotator is the slice of the image annotation client triage needs.
type Annotator interface {
	DetectObjects(ctx context.Context, image io.Reader) ([]types.Detection, error)
}

type Triage struct {
	annotator Annotator
}

func NewTriage(annotator Annotator) *Triage {
	return &Triage{annotator: annotator}
}

// Analyze returns detections above the confidence floor. Any detection
// failure yields an empty list; the complaint proceeds without a visual
// signal.
func (t *Triage) Analyze(ctx context.Context, image io.Reader) []types.Detection {
	raw, err := t.annotator.DetectObjects(ctx, image)
	if err != nil {
		log.Printf("Vision analysis error: %v", err)
		return nil
	}

	var detections []types.Detection
	for _, d := range raw {
		if d.Confidence > minConfidence {
			d.Confidence = math.Round(d.Confidence*100) / 100
			detections = append(detections, d)
		}
	}
	return detections
}

// UrgencyBoost returns a positive boost when any detection is a priority
// object.
func UrgencyBoost(detections []types.Detection) float64 {
	for _, d := range detections {
		if priorityObjects[d.Object] {
			return 2.0
		}
	}
	return 0.0
}
