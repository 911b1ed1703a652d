package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the worker-side ActivityService that persists
// audit-trail entries.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Process(ctx context.Context, in ports.IssueActivityInput) error {
	entry := &domain.IssueActivity{
		IssueID:   in.IssueID,
		Kind:      in.Kind,
		ActorID:   in.ActorID,
		Detail:    in.Detail,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, entry); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}

	s.log.Debug().
		Str("issue_id", in.IssueID).
		Str("kind", in.Kind).
		Msg("activity recorded")
	return nil
}
