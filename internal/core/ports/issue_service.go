package ports

import (
	"context"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

// CreateIssueInput is the DTO passed from the transport layer when a citizen
// reports a new issue.
type CreateIssueInput struct {
	Title       string
	Description string
	Category    domain.IssueCategory
	Priority    domain.IssuePriority
	Location    domain.Location
	ImageURLs   []string
}

// IssueView pairs an issue with viewer-specific data. ViewerVote is empty for
// anonymous callers and for issues the viewer has not voted on.
type IssueView struct {
	Issue      domain.Issue
	ViewerVote string
}

// IssueService implements issue reporting, triage, voting, and comments.
type IssueService interface {
	Create(ctx context.Context, reporterID string, in CreateIssueInput) (*domain.Issue, error)
	List(ctx context.Context, filter IssueFilter, viewerID string) ([]IssueView, error)
	Get(ctx context.Context, id string) (*domain.Issue, error)
	ListMine(ctx context.Context, reporterID string) ([]domain.Issue, error)
	Update(ctx context.Context, id, actorID string, patch IssuePatch) (*domain.Issue, error)
	Vote(ctx context.Context, issueID, userID, voteType string) error
	AddComment(ctx context.Context, issueID, userID, content string) (*domain.Comment, error)
	ListComments(ctx context.Context, issueID string) ([]domain.Comment, error)
}
