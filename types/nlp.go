package types

// Sentiment is the document-level result from the Natural Language API.
// Score ranges -1.0 (negative) to 1.0 (positive); magnitude is the overall
// strength of emotion regardless of sign.
type Sentiment struct {
	Magnitude float32 `firestore:"magnitude" json:"magnitude"`
	Score     float32 `firestore:"score" json:"score"`
}
