// Package mlmodel is the HTTP client for the hosted zero-shot classification
// endpoint. The model itself is a black box; this package only speaks its
// request/response contract.
package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// ClassifyRequest follows the hosted inference API: one input text plus the
// candidate labels the model scores it against.
type ClassifyRequest struct {
	Inputs     string `json:"inputs"`
	Parameters struct {
		CandidateLabels []string `json:"candidate_labels"`
	} `json:"parameters"`
}

// ClassifyResponse carries labels and scores sorted by descending confidence.
type ClassifyResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Classify sends the text and candidate labels to the model endpoint.
func (c *Client) Classify(ctx context.Context, text string, labels []string) (ClassifyResponse, error) {
	var out ClassifyResponse

	reqBody := ClassifyRequest{Inputs: text}
	reqBody.Parameters.CandidateLabels = labels

	payloadBytes, err := json.Marshal(reqBody)
	if err != nil {
		return out, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return out, errors.New("ML model returned status: " + resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}

	return out, nil
}
