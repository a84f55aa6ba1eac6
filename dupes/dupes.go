// Package dupes detects semantically duplicate complaints by comparing text
// embeddings against recent records in the same category.
package dupes

import (
	"context"
	"log"
	"math"

	"civicsense/types"
)

const (
	// DefaultThreshold is the cosine similarity a candidate must strictly
	// exceed to count as a duplicate.
	DefaultThreshold = 0.85

	// candidateLimit bounds how many recent same-category complaints are
	// scanned per submission.
	candidateLimit = 20
)

// Embedder turns text into a fixed-length vector. Identical input must
// produce an identical vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// CandidateStore fetches the most recent complaints in a category,
// newest first.
type CandidateStore interface {
	RecentByCategory(ctx context.Context, category types.Category, limit int) ([]types.Complaint, error)
}

type Detector struct {
	embedder  Embedder
	store     CandidateStore
	threshold float64
}

func NewDetector(embedder Embedder, store CandidateStore) *Detector {
	return &Detector{embedder: embedder, store: store, threshold: DefaultThreshold}
}

// WithThreshold overrides the similarity threshold.
func (d *Detector) WithThreshold(threshold float64) *Detector {
	d.threshold = threshold
	return d
}

// FindGroup embeds the text and scans recent complaints in the same category
// for a similar one. On a match it returns the candidate's existing duplicate
// group, or the candidate's own ID when it has none (the candidate becomes
// the head of a new cluster). The embedding is returned either way so the
// caller can persist it without embedding twice.
//
// Every failure path degrades to "no duplicate": dedup must never block a
// submission.
func (d *Detector) FindGroup(ctx context.Context, text string, category types.Category) (groupID string, embedding []float64) {
	embedding, err := d.embedder.Embed(ctx, text)
	if err != nil {
		log.Printf("Deduplication: embedding failed: %v", err)
		return "", nil
	}

	candidates, err := d.store.RecentByCategory(ctx, category, candidateLimit)
	if err != nil {
		log.Printf("Deduplication: candidate fetch failed: %v", err)
		return "", embedding
	}

	for _, cand := range candidates {
		// Skip records with missing or mismatched stored vectors; scanning
		// continues with the rest.
		if len(cand.Embedding) == 0 || len(cand.Embedding) != len(embedding) {
			continue
		}

		if cosineSimilarity(embedding, cand.Embedding) > d.threshold {
			if cand.DuplicateGroupID != "" {
				return cand.DuplicateGroupID, embedding
			}
			return cand.ID, embedding
		}
	}

	return "", embedding
}

func cosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
