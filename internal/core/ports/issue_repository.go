package ports

import (
	"context"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

// IssueFilter narrows issue listings. Empty fields match everything.
type IssueFilter struct {
	Category string
	Status   string
	Priority string
}

// IssuePatch is a partial update applied by employees during triage.
// Nil fields are left untouched.
type IssuePatch struct {
	Status          *domain.IssueStatus
	Priority        *domain.IssuePriority
	ResolutionNotes *string
	AssignedTo      *string
}

// IssueRepository persists reported issues.
type IssueRepository interface {
	Insert(ctx context.Context, issue *domain.Issue) (*domain.Issue, error)
	FindByID(ctx context.Context, id string) (*domain.Issue, error)
	List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error)
	ListByReporter(ctx context.Context, userID string) ([]domain.Issue, error)
	Update(ctx context.Context, id string, patch IssuePatch) (*domain.Issue, error)
	AdjustVoteCount(ctx context.Context, id string, delta int) error
}

// CommentRepository persists issue comments.
type CommentRepository interface {
	Insert(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	ListByIssue(ctx context.Context, issueID string) ([]domain.Comment, error)
}

// VoteRepository persists votes. The store holds a unique index on
// (issue_id, user_id); Insert surfaces a duplicate as ErrDuplicateVote.
type VoteRepository interface {
	Insert(ctx context.Context, vote *domain.Vote) error
	ListByUser(ctx context.Context, userID string) ([]domain.Vote, error)
}

// ActivityRepository appends entries to the issue audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, activity *domain.IssueActivity) error
}
