package types

import "time"

// Category is the fixed set of labels the zero-shot classifier chooses from.
type Category string

const (
	CategorySanitation  Category = "sanitation"
	CategoryRoadsInfra  Category = "roads_infra"
	CategoryWater       Category = "water"
	CategoryElectricity Category = "electricity"
	CategorySafety      Category = "safety"
	CategoryTraffic     Category = "traffic"
	CategoryOther       Category = "other"
)

// AllCategories lists every valid category, in classifier label order.
var AllCategories = []Category{
	CategorySanitation,
	CategoryRoadsInfra,
	CategoryWater,
	CategoryElectricity,
	CategorySafety,
	CategoryTraffic,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Urgency is the ordered severity tier driving routing and SLA.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

var urgencyRank = map[Urgency]int{
	UrgencyLow:      0,
	UrgencyMedium:   1,
	UrgencyHigh:     2,
	UrgencyCritical: 3,
}

// Rank returns the position of the tier in the low < medium < high < critical
// ordering. Unknown tiers rank below low.
func (u Urgency) Rank() int {
	if r, ok := urgencyRank[u]; ok {
		return r
	}
	return -1
}

func (u Urgency) Valid() bool {
	_, ok := urgencyRank[u]
	return ok
}

// Status is the officer-driven lifecycle state of a complaint.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

var statusTransitions = map[Status][]Status{
	StatusSubmitted:  {StatusAssigned},
	StatusAssigned:   {StatusInProgress, StatusResolved, StatusRejected},
	StatusInProgress: {StatusResolved, StatusRejected},
}

// CanTransition reports whether moving from one status to another is allowed.
// Resolved and rejected are terminal.
func CanTransition(from, to Status) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Coordinates is a citizen-supplied GPS fix.
type Coordinates struct {
	Lat float64 `firestore:"lat" json:"lat"`
	Lng float64 `firestore:"lng" json:"lng"`
}

// Detection is a single object the vision model found in an uploaded image.
type Detection struct {
	Object     string  `json:"object"`
	Confidence float64 `json:"confidence"`
}

// Complaint is the central entity: citizen input plus everything the triage
// pipeline derived at creation time. Derived fields are immutable after
// creation; only the officer-facing fields (status, rejection/resolution) are
// updated later.
type Complaint struct {
	ID string `firestore:"-" json:"id"` // Firestore document ID

	// Citizen input
	Text        string       `firestore:"text" json:"text"`
	Location    string       `firestore:"location,omitempty" json:"location,omitempty"`
	Coordinates *Coordinates `firestore:"coordinates,omitempty" json:"coordinates,omitempty"`
	ImageURL    string       `firestore:"imageUrl,omitempty" json:"image_url,omitempty"`
	AudioURL    string       `firestore:"audioUrl,omitempty" json:"audio_url,omitempty"`
	UserID      string       `firestore:"userId" json:"user_id"`

	// Derived by the triage pipeline
	Category         Category  `firestore:"category" json:"category"`
	Confidence       float64   `firestore:"confidence" json:"confidence"`
	Urgency          Urgency   `firestore:"urgency" json:"urgency"`
	UrgencyReason    string    `firestore:"urgencyReason" json:"urgency_reason"`
	Department       string    `firestore:"department" json:"department"`
	Ward             string    `firestore:"ward" json:"ward"`
	Area             string    `firestore:"area,omitempty" json:"area,omitempty"`
	DuplicateGroupID string    `firestore:"duplicateGroupId,omitempty" json:"duplicate_group_id,omitempty"`
	DuplicateCount   int       `firestore:"duplicateCount" json:"duplicate_count"`
	SlaEta           string    `firestore:"slaEta" json:"sla_eta"`
	Embedding        []float64 `firestore:"embedding" json:"-"`
	Timestamp        time.Time `firestore:"timestamp" json:"timestamp"`

	// Officer-mutable
	Status             Status `firestore:"status" json:"status"`
	RejectionReason    string `firestore:"rejectionReason,omitempty" json:"rejection_reason,omitempty"`
	ResolutionNote     string `firestore:"resolutionNote,omitempty" json:"resolution_note,omitempty"`
	ResolutionImageURL string `firestore:"resolutionImageUrl,omitempty" json:"resolution_image_url,omitempty"`
}
