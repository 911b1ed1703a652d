package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

const voteCollection = "issue_votes"

// MongoVoteRepository persists votes. The unique (issue_id, user_id) index is
// the authority on the one-vote-per-user rule.
type MongoVoteRepository struct {
	coll *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *MongoVoteRepository {
	return &MongoVoteRepository{coll: db.Collection(voteCollection)}
}

type mongoVote struct {
	IssueID   string    `bson:"issue_id"`
	UserID    string    `bson:"user_id"`
	VoteType  string    `bson:"vote_type"`
	CreatedAt time.Time `bson:"created_at"`
}

func (r *MongoVoteRepository) Insert(ctx context.Context, vote *domain.Vote) error {
	doc := mongoVote{
		IssueID:   vote.IssueID,
		UserID:    vote.UserID,
		VoteType:  vote.VoteType,
		CreatedAt: vote.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateVote
		}
		return fmt.Errorf("insert vote: %w", err)
	}
	return nil
}

func (r *MongoVoteRepository) ListByUser(ctx context.Context, userID string) ([]domain.Vote, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer cursor.Close(ctx)

	var votes []domain.Vote
	for cursor.Next(ctx) {
		var mv mongoVote
		if err := cursor.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode vote: %w", err)
		}
		votes = append(votes, domain.Vote{
			IssueID:   mv.IssueID,
			UserID:    mv.UserID,
			VoteType:  mv.VoteType,
			CreatedAt: mv.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	return votes, nil
}
