package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Vote keys outlive any realistic repeat-click window; the vote collection's
// unique index remains the long-term authority.
const voteKeyTTL = 30 * 24 * time.Hour

// VoteDedup is the fast-path duplicate-vote check.
// Key format: vote:<issue_id>:<user_id>
type VoteDedup struct {
	client *redis.Client
}

func NewVoteDedup(client *redis.Client) *VoteDedup {
	return &VoteDedup{client: client}
}

// HasVoted reports whether this user has already voted on this issue.
func (d *VoteDedup) HasVoted(ctx context.Context, issueID, userID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(issueID, userID)).Result()
	if err != nil {
		return false, fmt.Errorf("vote dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkVoted records the vote so subsequent attempts short-circuit.
func (d *VoteDedup) MarkVoted(ctx context.Context, issueID, userID string) error {
	return d.client.Set(ctx, d.key(issueID, userID), "1", voteKeyTTL).Err()
}

func (d *VoteDedup) key(issueID, userID string) string {
	return fmt.Sprintf("vote:%s:%s", issueID, userID)
}
