package ports

import (
	"context"
	"time"
)

// IssueActivityInput is the DTO handed to the activity pipeline when something
// noteworthy happens to an issue.
type IssueActivityInput struct {
	IssueID   string
	Kind      string
	ActorID   string
	Detail    string
	Timestamp time.Time
}

// ActivityService persists audit-trail entries. It runs on dispatcher workers,
// never on the request path.
type ActivityService interface {
	Process(ctx context.Context, in IssueActivityInput) error
}
