package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

// VoteDedup is the fast-path duplicate-vote check (Redis). The vote
// collection's unique index remains the authority; this only saves a
// round trip for the common repeat-click case.
type VoteDedup interface {
	HasVoted(ctx context.Context, issueID, userID string) (bool, error)
	MarkVoted(ctx context.Context, issueID, userID string) error
}

// ActivityDispatcher enqueues audit-trail entries for asynchronous processing.
type ActivityDispatcher interface {
	Enqueue(in ports.IssueActivityInput)
}

type issueService struct {
	issues   ports.IssueRepository
	comments ports.CommentRepository
	votes    ports.VoteRepository
	users    ports.UserRepository
	dedup    VoteDedup
	activity ActivityDispatcher
	log      zerolog.Logger
}

// NewIssueService returns an IssueService implementation.
func NewIssueService(
	issues ports.IssueRepository,
	comments ports.CommentRepository,
	votes ports.VoteRepository,
	users ports.UserRepository,
	dedup VoteDedup,
	activity ActivityDispatcher,
	log zerolog.Logger,
) ports.IssueService {
	return &issueService{
		issues:   issues,
		comments: comments,
		votes:    votes,
		users:    users,
		dedup:    dedup,
		activity: activity,
		log:      log,
	}
}

func (s *issueService) Create(ctx context.Context, reporterID string, in ports.CreateIssueInput) (*domain.Issue, error) {
	now := time.Now().UTC()
	issue := &domain.Issue{
		ReporterID:  reporterID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Priority:    in.Priority,
		Status:      domain.IssueNew,
		Location:    in.Location,
		ImageURLs:   in.ImageURLs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if issue.Priority == "" {
		issue.Priority = domain.PriorityMedium
	}

	// Denormalise reporter info onto the issue so listings don't need a join.
	if reporter, err := s.users.FindByID(ctx, reporterID); err == nil {
		issue.ReporterName = reporter.FullName
		issue.ReporterPhone = reporter.PhoneNumber
	} else {
		s.log.Warn().Err(err).Str("user_id", reporterID).Msg("reporter lookup failed")
	}

	created, err := s.issues.Insert(ctx, issue)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}

	s.activity.Enqueue(ports.IssueActivityInput{
		IssueID:   created.ID,
		Kind:      domain.ActivityCreated,
		ActorID:   reporterID,
		Timestamp: now,
	})

	return created, nil
}

func (s *issueService) List(ctx context.Context, filter ports.IssueFilter, viewerID string) ([]ports.IssueView, error) {
	issues, err := s.issues.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	// For authenticated viewers, annotate each issue with their own vote.
	var voted map[string]string
	if viewerID != "" {
		votes, err := s.votes.ListByUser(ctx, viewerID)
		if err != nil {
			s.log.Warn().Err(err).Str("user_id", viewerID).Msg("viewer vote lookup failed")
		} else {
			voted = make(map[string]string, len(votes))
			for _, v := range votes {
				voted[v.IssueID] = v.VoteType
			}
		}
	}

	views := make([]ports.IssueView, 0, len(issues))
	for _, issue := range issues {
		views = append(views, ports.IssueView{Issue: issue, ViewerVote: voted[issue.ID]})
	}
	return views, nil
}

func (s *issueService) Get(ctx context.Context, id string) (*domain.Issue, error) {
	return s.issues.FindByID(ctx, id)
}

func (s *issueService) ListMine(ctx context.Context, reporterID string) ([]domain.Issue, error) {
	return s.issues.ListByReporter(ctx, reporterID)
}

func (s *issueService) Update(ctx context.Context, id, actorID string, patch ports.IssuePatch) (*domain.Issue, error) {
	if patch.Status != nil && !domain.ValidIssueStatus(*patch.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", *patch.Status, domain.ErrInvalidInput)
	}

	prev, err := s.issues.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.issues.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update issue: %w", err)
	}

	if patch.Status != nil && *patch.Status != prev.Status {
		s.activity.Enqueue(ports.IssueActivityInput{
			IssueID:   id,
			Kind:      domain.ActivityStatusChange,
			ActorID:   actorID,
			Detail:    fmt.Sprintf("%s -> %s", prev.Status, *patch.Status),
			Timestamp: time.Now().UTC(),
		})
	}

	return updated, nil
}

func (s *issueService) Vote(ctx context.Context, issueID, userID, voteType string) error {
	if !domain.ValidVoteType(voteType) {
		return fmt.Errorf("unknown vote type %q: %w", voteType, domain.ErrInvalidInput)
	}

	if _, err := s.issues.FindByID(ctx, issueID); err != nil {
		return err
	}

	// Fast path: a Redis hit skips the insert attempt entirely. On dedup
	// errors we fall through and let the unique index decide.
	dup, err := s.dedup.HasVoted(ctx, issueID, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("issue_id", issueID).Msg("vote dedup check failed, falling back to store")
	} else if dup {
		return domain.ErrDuplicateVote
	}

	vote := &domain.Vote{
		IssueID:   issueID,
		UserID:    userID,
		VoteType:  voteType,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.votes.Insert(ctx, vote); err != nil {
		return err
	}

	if err := s.dedup.MarkVoted(ctx, issueID, userID); err != nil {
		s.log.Warn().Err(err).Str("issue_id", issueID).Msg("failed to set vote dedup key")
	}

	delta := 1
	if voteType == domain.VoteDown {
		delta = -1
	}
	if err := s.issues.AdjustVoteCount(ctx, issueID, delta); err != nil {
		s.log.Warn().Err(err).Str("issue_id", issueID).Msg("vote count adjustment failed")
	}

	s.activity.Enqueue(ports.IssueActivityInput{
		IssueID:   issueID,
		Kind:      domain.ActivityVote,
		ActorID:   userID,
		Detail:    voteType,
		Timestamp: vote.CreatedAt,
	})
	return nil
}

func (s *issueService) AddComment(ctx context.Context, issueID, userID, content string) (*domain.Comment, error) {
	if _, err := s.issues.FindByID(ctx, issueID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		IssueID:   issueID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if commenter, err := s.users.FindByID(ctx, userID); err == nil {
		comment.CommenterName = commenter.FullName
	}

	created, err := s.comments.Insert(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("add comment: %w", err)
	}

	s.activity.Enqueue(ports.IssueActivityInput{
		IssueID:   issueID,
		Kind:      domain.ActivityComment,
		ActorID:   userID,
		Timestamp: created.CreatedAt,
	})
	return created, nil
}

func (s *issueService) ListComments(ctx context.Context, issueID string) ([]domain.Comment, error) {
	return s.comments.ListByIssue(ctx, issueID)
}
