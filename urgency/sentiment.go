package urgency

import (
	"context"
	"fmt"

	language "cloud.google.com/go/language/apiv2"
	"cloud.google.com/go/language/apiv2/languagepb"
	"google.golang.org/api/option"

	"civicsense/types"
)

// GoogleAnalyzer wraps the Cloud Natural Language client as a
// SentimentAnalyzer.
type GoogleAnalyzer struct {
	client *language.Client
}

// NewGoogleAnalyzer creates the Natural Language client from service-account
// JSON.
func NewGoogleAnalyzer(ctx context.Context, credsJSON []byte) (*GoogleAnalyzer, error) {
	client, err := language.NewClient(ctx, option.WithCredentialsJSON(credsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create Natural Language client: %w", err)
	}
	return &GoogleAnalyzer{client: client}, nil
}

func (g *GoogleAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (types.Sentiment, error) {
	var sentiment types.Sentiment
	req := &languagepb.AnalyzeSentimentRequest{
		Document: &languagepb.Document{
			Source: &languagepb.Document_Content{
				Content: text,
			},
			Type: languagepb.Document_PLAIN_TEXT,
		},
		EncodingType: languagepb.EncodingType_UTF8,
	}

	resp, err := g.client.AnalyzeSentiment(ctx, req)
	if err != nil {
		return sentiment, fmt.Errorf("AnalyzeSentiment error: %w", err)
	}

	sentiment.Score = resp.DocumentSentiment.Score
	sentiment.Magnitude = resp.DocumentSentiment.Magnitude

	return sentiment, nil
}

func (g *GoogleAnalyzer) Close() error {
	return g.client.Close()
}
