package owners

import (
	"context"
	"time"

	"github.com/sanrasta/psychology/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OwnerRepositoryInterface is the interface for an OwnerRepository
type OwnerRepositoryInterface interface {
	Add(ctx context.Context, owner *Owner) error
	FindByID(ctx context.Context, id string) (*Owner, error)
	FindByGoogleStateToken(ctx context.Context, stateToken string) (*Owner, error)
	Update(ctx context.Context, owner *Owner) error
	Remove(ctx context.Context, id string) error
}

// OwnerRepository does everything related to owner storing
type OwnerRepository struct {
	DB     *mongo.Collection
	Logger logger.Interface
}

// Add adds an owner
func (s OwnerRepository) Add(ctx context.Context, owner *Owner) error {
	owner.CreatedAt = time.Now()
	owner.LastModifiedAt = time.Now()
	owner.ID = primitive.NewObjectID()
	_, err := s.DB.InsertOne(ctx, owner)
	return err
}

// FindByID finds an owner by ID
func (s OwnerRepository) FindByID(ctx context.Context, id string) (*Owner, error) {
	var o = Owner{}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := s.DB.FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByGoogleStateToken finds an owner by its Google state token
func (s OwnerRepository) FindByGoogleStateToken(ctx context.Context, stateToken string) (*Owner, error) {
	var o = Owner{}

	result := s.DB.FindOne(ctx, bson.M{"googleCalendarConnection.stateToken": stateToken})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err := result.Decode(&o)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update updates an owner
func (s OwnerRepository) Update(ctx context.Context, owner *Owner) error {
	owner.LastModifiedAt = time.Now()

	result, err := s.DB.UpdateOne(ctx, bson.M{"_id": owner.ID}, bson.M{"$set": owner})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

// Remove removes an owner
func (s OwnerRepository) Remove(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = s.DB.DeleteOne(ctx, bson.M{"_id": objectID})
	return err
}
