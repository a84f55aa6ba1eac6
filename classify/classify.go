// Package classify maps complaint text to one of the fixed categories using
// the hosted zero-shot model.
package classify

import (
	"context"
	"log"

	"civicsense/mlmodel"
	"civicsense/types"
)

// Model is the slice of the inference client the classifier needs.
type Model interface {
	Classify(ctx context.Context, text string, labels []string) (mlmodel.ClassifyResponse, error)
}

// Result is the top prediction for a complaint.
type Result struct {
	Category   types.Category `json:"category"`
	Confidence float64        `json:"confidence"`
}

type Classifier struct {
	model Model
}

func New(model Model) *Classifier {
	return &Classifier{model: model}
}

var candidateLabels = func() []string {
	labels := make([]string, 0, len(types.AllCategories))
	for _, c := range types.AllCategories {
		labels = append(labels, string(c))
	}
	return labels
}()

// Classify returns the top category and its confidence. Model failures never
// propagate: the complaint falls back to "other" with confidence 0.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	resp, err := c.model.Classify(ctx, text, candidateLabels)
	if err != nil {
		log.Printf("Error during classification: %v", err)
		return Result{Category: types.CategoryOther, Confidence: 0.0}
	}

	if len(resp.Labels) == 0 || len(resp.Scores) != len(resp.Labels) {
		log.Printf("Classifier returned malformed response: %d labels, %d scores", len(resp.Labels), len(resp.Scores))
		return Result{Category: types.CategoryOther, Confidence: 0.0}
	}

	// Labels arrive sorted by confidence; the first is the prediction.
	top := types.Category(resp.Labels[0])
	if !top.Valid() {
		log.Printf("Classifier returned unknown label %q, falling back to other", resp.Labels[0])
		return Result{Category: types.CategoryOther, Confidence: 0.0}
	}

	return Result{Category: top, Confidence: resp.Scores[0]}
}
