package vision

import (
	"context"
	"fmt"
	"io"

	visionapi "cloud.google.com/go/vision/apiv1"
	"google.golang.org/api/option"

	"civicsense/types"
)

// GoogleAnnotator wraps the Cloud Vision image annotation client.
type GoogleAnnotator struct {
	client *visionapi.ImageAnnotatorClient
}

// NewGoogleAnnotator creates the Vision client from service-account JSON.
func NewGoogleAnnotator(ctx context.Context, credsJSON []byte) (*GoogleAnnotator, error) {
	client, err := visionapi.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create Vision client: %w", err)
	}
	return &GoogleAnnotator{client: client}, nil
}

func (g *GoogleAnnotator) DetectObjects(ctx context.Context, image io.Reader) ([]types.Detection, error) {
	img, err := visionapi.NewImageFromReader(image)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	annotations, err := g.client.LocalizeObjects(ctx, img, nil)
	if err != nil {
		return nil, fmt.Errorf("LocalizeObjects error: %w", err)
	}

	detections := make([]types.Detection, 0, len(annotations))
	for _, a := range annotations {
		detections = append(detections, types.Detection{
			Object:     a.Name,
			Confidence: float64(a.Score),
		})
	}
	return detections, nil
}

func (g *GoogleAnnotator) Close() error {
	return g.client.Close()
}
