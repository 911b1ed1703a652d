package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

const activityCollection = "issue_activity"

// MongoActivityRepository is the append-only audit trail written by the
// dispatcher workers.
type MongoActivityRepository struct {
	coll *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *MongoActivityRepository {
	return &MongoActivityRepository{coll: db.Collection(activityCollection)}
}

type mongoActivity struct {
	IssueID   string    `bson:"issue_id"`
	Kind      string    `bson:"kind"`
	ActorID   string    `bson:"actor_id"`
	Detail    string    `bson:"detail,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}

func (r *MongoActivityRepository) Insert(ctx context.Context, activity *domain.IssueActivity) error {
	doc := mongoActivity{
		IssueID:   activity.IssueID,
		Kind:      activity.Kind,
		ActorID:   activity.ActorID,
		Detail:    activity.Detail,
		Timestamp: activity.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
