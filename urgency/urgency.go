// Package urgency assigns a severity tier to complaint text.
//
// Scoring is an ordered cascade: critical keywords, high keywords, strongly
// negative sentiment, medium keywords, then low. Keyword hits are
// deterministic and auditable, so they take precedence over the statistical
// sentiment signal, which only catches text with no matched vocabulary.
package urgency

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"civicsense/types"
)

// Keyword tiers. Critical covers life safety and immediate hazards, high
// covers service breakdowns and crime, medium covers routine nuisances.
var (
	criticalKeywords = []string{
		"fire", "explosion", "spark", "electric shock", "wire exposed",
		"blood", "injury", "accident", "collapse", "drowning", "flood",
		"gas leak", "attack", "fight", "weapon", "emergency",
	}

	highKeywords = []string{
		"blocked", "stuck", "broken", "overflow", "sewage", "stench",
		"dark", "unsafe", "robbery", "theft", "crash", "urgent", "immediate",
	}

	mediumKeywords = []string{
		"pothole", "garbage", "litter", "water leak", "no water",
		"streetlight", "sign", "traffic jam", "noise", "dirty",
	}
)

// negativeSentimentThreshold is how negative the document score must be
// before sentiment alone bumps urgency to high.
const negativeSentimentThreshold = 0.95

// SentimentAnalyzer is the slice of the Natural Language client the scorer
// needs.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (types.Sentiment, error)
}

// Result is the tier plus the specific signal that triggered it, kept for
// auditability.
type Result struct {
	Urgency types.Urgency `json:"urgency"`
	Reason  string        `json:"reason"`
}

// rule evaluates one step of the cascade. ok is false when the rule passes
// and the next one should run.
type rule func(ctx context.Context, text string) (res Result, ok bool)

type Scorer struct {
	sentiment SentimentAnalyzer
	rules     []rule
}

func NewScorer(sentiment SentimentAnalyzer) *Scorer {
	s := &Scorer{sentiment: sentiment}
	s.rules = []rule{
		keywordRule(criticalKeywords, types.UrgencyCritical, "Critical keyword detected"),
		keywordRule(highKeywords, types.UrgencyHigh, "High urgency keyword detected"),
		s.negativeSentimentRule,
		keywordRule(mediumKeywords, types.UrgencyMedium, "Medium urgency keyword detected"),
	}
	return s
}

// Score runs the cascade; the first rule that matches wins.
func (s *Scorer) Score(ctx context.Context, text string) Result {
	for _, r := range s.rules {
		if res, ok := r(ctx, text); ok {
			return res
		}
	}
	return Result{
		Urgency: types.UrgencyLow,
		Reason:  "No urgent keywords or sufficient negative sentiment detected",
	}
}

// keywordRule builds a whole-word, case-insensitive matcher over a keyword
// tier. Patterns are compiled once at construction.
func keywordRule(keywords []string, tier types.Urgency, label string) rule {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(kw)+`\b`))
	}
	return func(_ context.Context, text string) (Result, bool) {
		for i, p := range patterns {
			if p.MatchString(text) {
				return Result{
					Urgency: tier,
					Reason:  fmt.Sprintf("%s: '%s'", label, keywords[i]),
				}, true
			}
		}
		return Result{}, false
	}
}

// negativeSentimentRule bumps urgency to high when the text is overwhelmingly
// negative. An analyzer failure is a logged pass-through, never fatal to the
// submission.
func (s *Scorer) negativeSentimentRule(ctx context.Context, text string) (Result, bool) {
	sentiment, err := s.sentiment.AnalyzeSentiment(ctx, text)
	if err != nil {
		log.Printf("Sentiment analysis failed, skipping sentiment rule: %v", err)
		return Result{}, false
	}

	if sentiment.Score <= -negativeSentimentThreshold {
		return Result{
			Urgency: types.UrgencyHigh,
			Reason:  fmt.Sprintf("Extremely negative sentiment (%.2f)", sentiment.Score),
		}, true
	}
	return Result{}, false
}
