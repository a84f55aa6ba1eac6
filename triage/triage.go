// Package triage runs the per-submission pipeline that turns raw complaint
// text (plus optional image and coordinates) into a classified, prioritized,
// geolocated, deduplicated and routed record, then announces it to the
// responsible department's dashboard.
package triage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"civicsense/classify"
	"civicsense/geospatial"
	"civicsense/realtime"
	"civicsense/routing"
	"civicsense/types"
	"civicsense/urgency"
	"civicsense/vision"
)

// ErrEmptyText is submission-fatal: a complaint must carry text.
var ErrEmptyText = errors.New("complaint text is required")

// Collaborator slices. Each inference stage degrades internally; only the
// store can fail a submission.
type (
	Classifier interface {
		Classify(ctx context.Context, text string) classify.Result
	}

	Scorer interface {
		Score(ctx context.Context, text string) urgency.Result
	}

	DuplicateFinder interface {
		FindGroup(ctx context.Context, text string, category types.Category) (groupID string, embedding []float64)
	}

	ImageAnalyzer interface {
		Analyze(ctx context.Context, image io.Reader) []types.Detection
	}

	WardResolver interface {
		Ward(lat, lng float64) string
	}

	AreaResolver interface {
		Area(ctx context.Context, lat, lng float64) string
	}

	Store interface {
		InsertComplaint(ctx context.Context, c *types.Complaint) error
		CountDuplicates(ctx context.Context, groupID string) (int, error)
	}

	Broadcaster interface {
		Broadcast(channel string, event realtime.Event)
	}
)

// Pipeline wires the triage stages together. All fields are required.
type Pipeline struct {
	Classifier Classifier
	Scorer     Scorer
	Dupes      DuplicateFinder
	Vision     ImageAnalyzer
	Wards      WardResolver
	Areas      AreaResolver
	Store      Store
	Hub        Broadcaster
}

// Submission is the citizen input to one pipeline run.
type Submission struct {
	Text        string
	Location    string
	Coordinates *types.Coordinates
	Image       io.Reader
	ImageURL    string
	AudioURL    string
	UserID      string
}

// Process runs the full pipeline for one submission. Classification and
// urgency scoring have no ordering dependency and run concurrently; the
// remaining stages are sequential. Inference and geo stages degrade to safe
// defaults; persistence failure aborts the submission with no partial record.
func (p *Pipeline) Process(ctx context.Context, sub Submission) (*types.Complaint, error) {
	text := strings.TrimSpace(sub.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	var (
		wg     sync.WaitGroup
		catRes classify.Result
		urgRes urgency.Result
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		catRes = p.Classifier.Classify(ctx, text)
	}()
	go func() {
		defer wg.Done()
		urgRes = p.Scorer.Score(ctx, text)
	}()
	wg.Wait()

	tier := urgRes.Urgency
	reason := urgRes.Reason
	department := routing.Route(catRes.Category, tier)

	// Visual triage can raise urgency but never lowers it, and never past
	// the text-derived critical tier.
	if sub.Image != nil {
		detections := p.Vision.Analyze(ctx, sub.Image)
		if vision.UrgencyBoost(detections) > 0 && tier.Rank() < types.UrgencyHigh.Rank() {
			tier = types.UrgencyHigh
			reason = fmt.Sprintf("%s; escalated by visual triage (%d detections)", reason, len(detections))
		}
	}

	ward := geospatial.DefaultWard
	area := ""
	if sub.Coordinates != nil {
		ward = p.Wards.Ward(sub.Coordinates.Lat, sub.Coordinates.Lng)
		area = p.Areas.Area(ctx, sub.Coordinates.Lat, sub.Coordinates.Lng)
	}

	groupID, embedding := p.Dupes.FindGroup(ctx, text, catRes.Category)

	// Duplicate count is a snapshot at creation time; later joins to the
	// cluster do not rewrite it.
	duplicateCount := 0
	if groupID != "" {
		n, err := p.Store.CountDuplicates(ctx, groupID)
		if err != nil {
			log.Printf("Failed to count duplicates for group %s: %v", groupID, err)
		} else {
			duplicateCount = n
		}
	}

	complaint := &types.Complaint{
		ID:               uuid.NewString(),
		Text:             text,
		Location:         sub.Location,
		Coordinates:      sub.Coordinates,
		ImageURL:         sub.ImageURL,
		AudioURL:         sub.AudioURL,
		UserID:           sub.UserID,
		Category:         catRes.Category,
		Confidence:       catRes.Confidence,
		Urgency:          tier,
		UrgencyReason:    reason,
		Department:       department,
		Ward:             ward,
		Area:             area,
		DuplicateGroupID: groupID,
		DuplicateCount:   duplicateCount,
		SlaEta:           SlaEta(tier),
		Embedding:        embedding,
		Timestamp:        time.Now().UTC(),
		Status:           types.StatusSubmitted,
	}

	if err := p.Store.InsertComplaint(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint record: %w", err)
	}

	p.Hub.Broadcast(complaint.Department, realtime.Event{
		Type: realtime.EventNewComplaint,
		Data: NewComplaintData{
			ID:       complaint.ID,
			Category: complaint.Category,
			Ward:     complaint.Ward,
			Urgency:  complaint.Urgency,
		},
	})

	return complaint, nil
}

// NewComplaintData is the broadcast payload for a freshly triaged complaint.
type NewComplaintData struct {
	ID       string         `json:"id"`
	Category types.Category `json:"category"`
	Ward     string         `json:"ward"`
	Urgency  types.Urgency  `json:"urgency"`
}

// SlaEta maps an urgency tier to the promised response-time label.
func SlaEta(tier types.Urgency) string {
	switch tier {
	case types.UrgencyCritical, types.UrgencyHigh:
		return "2 Hours"
	case types.UrgencyMedium:
		return "24 Hours"
	case types.UrgencyLow:
		return "3 Days"
	default:
		return "24 Hours"
	}
}

// SlaWindow is the SLA as a duration, used by the breach sweep.
func SlaWindow(tier types.Urgency) time.Duration {
	switch tier {
	case types.UrgencyCritical, types.UrgencyHigh:
		return 2 * time.Hour
	case types.UrgencyMedium:
		return 24 * time.Hour
	case types.UrgencyLow:
		return 72 * time.Hour
	default:
		return 24 * time.Hour
	}
}
