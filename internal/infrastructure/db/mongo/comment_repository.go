package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

const commentCollection = "issue_comments"

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{coll: db.Collection(commentCollection)}
}

type mongoComment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	IssueID       string             `bson:"issue_id"`
	UserID        string             `bson:"user_id"`
	Content       string             `bson:"content"`
	CommenterName string             `bson:"commenter_name,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

func (r *MongoCommentRepository) Insert(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	doc := mongoComment{
		IssueID:       comment.IssueID,
		UserID:        comment.UserID,
		Content:       comment.Content,
		CommenterName: comment.CommenterName,
		CreatedAt:     comment.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoCommentRepository) ListByIssue(ctx context.Context, issueID string) ([]domain.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"issue_id": issueID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []domain.Comment
	for cursor.Next(ctx) {
		var mc mongoComment
		if err := cursor.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, domain.Comment{
			ID:            mc.ID.Hex(),
			IssueID:       mc.IssueID,
			UserID:        mc.UserID,
			Content:       mc.Content,
			CommenterName: mc.CommenterName,
			CreatedAt:     mc.CreatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
