package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/urbaneye/civic-issue-system/internal/core/domain"
)

const (
	userCollection      = "user_profiles"
	defaultStoreTimeout = 5 * time.Second
)

// MongoUserRepository is the credential store adapter. Every call is bounded
// by an explicit timeout so authentication can never hang on a slow store;
// reads get a single retry, writes none.
type MongoUserRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewUserRepository(db *mongo.Database, timeout time.Duration) *MongoUserRepository {
	if timeout <= 0 {
		timeout = defaultStoreTimeout
	}
	return &MongoUserRepository{coll: db.Collection(userCollection), timeout: timeout}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	PhoneNumber  string             `bson:"phone_number"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Department   string             `bson:"department,omitempty"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:           mu.ID.Hex(),
		FullName:     mu.FullName,
		PhoneNumber:  mu.PhoneNumber,
		PasswordHash: mu.PasswordHash,
		Role:         mu.Role,
		Department:   mu.Department,
		Status:       mu.Status,
		CreatedAt:    mu.CreatedAt,
		UpdatedAt:    mu.UpdatedAt,
	}
}

func (r *MongoUserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"phone_number": phone})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

// findOne runs a bounded lookup with one retry. Reads are idempotent, so a
// single immediate retry on a transient failure is safe.
func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	mu, err := r.decodeOne(ctx, filter)
	if err == nil {
		return mu.toDomain(), nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrUserNotFound
	}

	mu, err = r.decodeOne(ctx, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStoreUnavailable, err)
	}
	return mu.toDomain(), nil
}

func (r *MongoUserRepository) decodeOne(ctx context.Context, filter bson.M) (*mongoUser, error) {
	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(callCtx, filter).Decode(&mu); err != nil {
		return nil, err
	}
	return &mu, nil
}

// Insert writes a new identity record. No retry: the write is not idempotent
// and the unique phone index already guards against double submission.
func (r *MongoUserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	doc := mongoUser{
		FullName:     user.FullName,
		PhoneNumber:  user.PhoneNumber,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Department:   user.Department,
		Status:       user.Status,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	callCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.InsertOne(callCtx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("%w: insert user: %v", domain.ErrStoreUnavailable, err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}
