package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
	"github.com/urbaneye/civic-issue-system/internal/core/ports"
)

const issueCollection = "issues"

type MongoIssueRepository struct {
	coll *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *MongoIssueRepository {
	return &MongoIssueRepository{coll: db.Collection(issueCollection)}
}

type mongoLocation struct {
	Lat     float64 `bson:"lat"`
	Lng     float64 `bson:"lng"`
	Address string  `bson:"address,omitempty"`
}

type mongoIssue struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ReporterID      string             `bson:"user_id"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Category        string             `bson:"category"`
	Priority        string             `bson:"priority"`
	Status          string             `bson:"status"`
	Location        mongoLocation      `bson:"location"`
	ImageURLs       []string           `bson:"image_urls,omitempty"`
	ResolutionNotes string             `bson:"resolution_notes,omitempty"`
	AssignedTo      string             `bson:"assigned_to,omitempty"`
	VoteCount       int                `bson:"vote_count"`
	ReporterName    string             `bson:"reporter_name,omitempty"`
	ReporterPhone   string             `bson:"reporter_phone,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (mi *mongoIssue) toDomain() domain.Issue {
	return domain.Issue{
		ID:              mi.ID.Hex(),
		ReporterID:      mi.ReporterID,
		Title:           mi.Title,
		Description:     mi.Description,
		Category:        domain.IssueCategory(mi.Category),
		Priority:        domain.IssuePriority(mi.Priority),
		Status:          domain.IssueStatus(mi.Status),
		Location:        domain.Location{Lat: mi.Location.Lat, Lng: mi.Location.Lng, Address: mi.Location.Address},
		ImageURLs:       mi.ImageURLs,
		ResolutionNotes: mi.ResolutionNotes,
		AssignedTo:      mi.AssignedTo,
		VoteCount:       mi.VoteCount,
		ReporterName:    mi.ReporterName,
		ReporterPhone:   mi.ReporterPhone,
		CreatedAt:       mi.CreatedAt,
		UpdatedAt:       mi.UpdatedAt,
	}
}

func toMongoIssue(issue *domain.Issue) mongoIssue {
	return mongoIssue{
		ReporterID:      issue.ReporterID,
		Title:           issue.Title,
		Description:     issue.Description,
		Category:        string(issue.Category),
		Priority:        string(issue.Priority),
		Status:          string(issue.Status),
		Location:        mongoLocation{Lat: issue.Location.Lat, Lng: issue.Location.Lng, Address: issue.Location.Address},
		ImageURLs:       issue.ImageURLs,
		ResolutionNotes: issue.ResolutionNotes,
		AssignedTo:      issue.AssignedTo,
		VoteCount:       issue.VoteCount,
		ReporterName:    issue.ReporterName,
		ReporterPhone:   issue.ReporterPhone,
		CreatedAt:       issue.CreatedAt,
		UpdatedAt:       issue.UpdatedAt,
	}
}

func (r *MongoIssueRepository) Insert(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	res, err := r.coll.InsertOne(ctx, toMongoIssue(issue))
	if err != nil {
		return nil, fmt.Errorf("insert issue: %w", err)
	}

	created := *issue
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoIssueRepository) FindByID(ctx context.Context, id string) (*domain.Issue, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIssueNotFound
	}

	var mi mongoIssue
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mi); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}

	issue := mi.toDomain()
	return &issue, nil
}

func (r *MongoIssueRepository) List(ctx context.Context, filter ports.IssueFilter) ([]domain.Issue, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	return r.list(ctx, query)
}

func (r *MongoIssueRepository) ListByReporter(ctx context.Context, userID string) ([]domain.Issue, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoIssueRepository) list(ctx context.Context, query bson.M) ([]domain.Issue, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer cursor.Close(ctx)

	var issues []domain.Issue
	for cursor.Next(ctx) {
		var mi mongoIssue
		if err := cursor.Decode(&mi); err != nil {
			return nil, fmt.Errorf("decode issue: %w", err)
		}
		issues = append(issues, mi.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	return issues, nil
}

func (r *MongoIssueRepository) Update(ctx context.Context, id string, patch ports.IssuePatch) (*domain.Issue, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIssueNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}
	if patch.ResolutionNotes != nil {
		set["resolution_notes"] = *patch.ResolutionNotes
	}
	if patch.AssignedTo != nil {
		set["assigned_to"] = *patch.AssignedTo
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mi mongoIssue
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mi)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("update issue: %w", err)
	}

	issue := mi.toDomain()
	return &issue, nil
}

func (r *MongoIssueRepository) AdjustVoteCount(ctx context.Context, id string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrIssueNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$inc": bson.M{"vote_count": delta}})
	if err != nil {
		return fmt.Errorf("adjust vote count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}
