package domain

import (
	"errors"
	"time"
)

// IssueStatus is the triage state of a reported issue.
type IssueStatus string

const (
	IssueNew          IssueStatus = "new"
	IssueAcknowledged IssueStatus = "acknowledged"
	IssueInProgress   IssueStatus = "in_progress"
	IssueResolved     IssueStatus = "resolved"
	IssueRejected     IssueStatus = "rejected"
)

// IssueCategory classifies what kind of civic problem is being reported.
type IssueCategory string

const (
	CategoryRoads           IssueCategory = "roads"
	CategoryStreetlights    IssueCategory = "streetlights"
	CategoryWaterSupply     IssueCategory = "water_supply"
	CategoryWasteManagement IssueCategory = "waste_management"
	CategoryPublicTransport IssueCategory = "public_transport"
	CategoryParks           IssueCategory = "parks"
	CategoryDrainage        IssueCategory = "drainage"
	CategoryElectricity     IssueCategory = "electricity"
	CategoryOther           IssueCategory = "other"
)

// IssuePriority orders issues for triage.
type IssuePriority string

const (
	PriorityLow      IssuePriority = "low"
	PriorityMedium   IssuePriority = "medium"
	PriorityHigh     IssuePriority = "high"
	PriorityCritical IssuePriority = "critical"
)

// Vote types.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

var (
	ErrIssueNotFound = errors.New("issue not found")
	ErrDuplicateVote = errors.New("already voted on this issue")
	ErrInvalidInput  = errors.New("invalid input")
)

// Location is the geographic point an issue was reported at.
type Location struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address,omitempty"`
}

// Issue is a citizen-reported civic problem.
type Issue struct {
	ID              string        `json:"id"`
	ReporterID      string        `json:"user_id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Category        IssueCategory `json:"category"`
	Priority        IssuePriority `json:"priority"`
	Status          IssueStatus   `json:"status"`
	Location        Location      `json:"location"`
	ImageURLs       []string      `json:"image_urls"`
	ResolutionNotes string        `json:"resolution_notes,omitempty"`
	AssignedTo      string        `json:"assigned_to,omitempty"`
	VoteCount       int           `json:"vote_count"`
	ReporterName    string        `json:"reporter_name,omitempty"`
	ReporterPhone   string        `json:"reporter_phone,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Comment is a discussion entry attached to an issue.
type Comment struct {
	ID            string    `json:"id"`
	IssueID       string    `json:"issue_id"`
	UserID        string    `json:"user_id"`
	Content       string    `json:"content"`
	CommenterName string    `json:"commenter_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Vote records a single user's vote on an issue. One vote per user per issue.
type Vote struct {
	IssueID   string    `json:"issue_id"`
	UserID    string    `json:"user_id"`
	VoteType  string    `json:"vote_type"`
	CreatedAt time.Time `json:"created_at"`
}

// IssueActivity is an audit-trail entry recorded asynchronously when an issue
// is created, voted on, commented on, or has its status changed.
type IssueActivity struct {
	IssueID   string    `json:"issue_id"`
	Kind      string    `json:"kind"`
	ActorID   string    `json:"actor_id"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Activity kinds.
const (
	ActivityCreated      = "created"
	ActivityStatusChange = "status_change"
	ActivityVote         = "vote"
	ActivityComment      = "comment"
)

// ValidIssueStatus reports whether s is a known triage state.
func ValidIssueStatus(s IssueStatus) bool {
	switch s {
	case IssueNew, IssueAcknowledged, IssueInProgress, IssueResolved, IssueRejected:
		return true
	}
	return false
}

// ValidVoteType reports whether v is a supported vote direction.
func ValidVoteType(v string) bool {
	return v == VoteUp || v == VoteDown
}
