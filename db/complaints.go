package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"civicsense/types"
)

// ComplaintFilter narrows complaint queries. Zero values mean "no filter".
type ComplaintFilter struct {
	Department string
	Urgency    types.Urgency
	Status     types.Status
	UserID     string
}

// InsertComplaint writes a fully triaged complaint under its assigned ID.
func (s *Store) InsertComplaint(ctx context.Context, c *types.Complaint) error {
	_, err := s.client.Collection(complaintsCollection).Doc(c.ID).Create(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to create complaint document: %w", err)
	}
	return nil
}

// GetComplaint fetches a single complaint by ID.
func (s *Store) GetComplaint(ctx context.Context, id string) (*types.Complaint, error) {
	doc, err := s.client.Collection(complaintsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error getting complaint %s: %w", id, err)
	}

	var c types.Complaint
	if err := doc.DataTo(&c); err != nil {
		return nil, fmt.Errorf("error decoding complaint %s: %w", id, err)
	}
	c.ID = doc.Ref.ID
	return &c, nil
}

// QueryComplaints returns complaints matching the filter, newest first.
func (s *Store) QueryComplaints(ctx context.Context, f ComplaintFilter) ([]types.Complaint, error) {
	q := s.client.Collection(complaintsCollection).Query
	if f.Department != "" {
		q = q.Where("department", "==", f.Department)
	}
	if f.Urgency != "" {
		q = q.Where("urgency", "==", string(f.Urgency))
	}
	if f.Status != "" {
		q = q.Where("status", "==", string(f.Status))
	}
	if f.UserID != "" {
		q = q.Where("userId", "==", f.UserID)
	}
	q = q.OrderBy("timestamp", firestore.Desc)

	return s.collectComplaints(ctx, q)
}

// RecentByCategory returns the most recent complaints in a category, newest
// first, bounded by limit. Used by duplicate detection.
func (s *Store) RecentByCategory(ctx context.Context, category types.Category, limit int) ([]types.Complaint, error) {
	q := s.client.Collection(complaintsCollection).
		Where("category", "==", string(category)).
		OrderBy("timestamp", firestore.Desc).
		Limit(limit)

	return s.collectComplaints(ctx, q)
}

// CountDuplicates counts complaints already assigned to a duplicate group.
func (s *Store) CountDuplicates(ctx context.Context, groupID string) (int, error) {
	docs, err := s.client.Collection(complaintsCollection).
		Where("duplicateGroupId", "==", groupID).
		Select(). // key-only, we just need the count
		Documents(ctx).
		GetAll()
	if err != nil {
		return 0, fmt.Errorf("error counting duplicates for group %s: %w", groupID, err)
	}
	return len(docs), nil
}

// OpenComplaints returns every complaint that has not reached a terminal
// status. Used by the SLA sweep.
func (s *Store) OpenComplaints(ctx context.Context) ([]types.Complaint, error) {
	q := s.client.Collection(complaintsCollection).
		Where("status", "in", []string{
			string(types.StatusSubmitted),
			string(types.StatusAssigned),
			string(types.StatusInProgress),
		})

	return s.collectComplaints(ctx, q)
}

// UpdateComplaint applies officer updates to an existing complaint.
func (s *Store) UpdateComplaint(ctx context.Context, id string, updates []firestore.Update) error {
	_, err := s.client.Collection(complaintsCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return fmt.Errorf("error updating complaint %s: %w", id, err)
	}
	return nil
}

func (s *Store) collectComplaints(ctx context.Context, q firestore.Query) ([]types.Complaint, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("complaint query failed: %w", err)
	}

	complaints := make([]types.Complaint, 0, len(docs))
	for _, doc := range docs {
		var c types.Complaint
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("error decoding complaint %s: %w", doc.Ref.ID, err)
		}
		c.ID = doc.Ref.ID
		complaints = append(complaints, c)
	}
	return complaints, nil
}
