package scheduling

import (
	"context"
	"time"

	"github.com/sanrasta/psychology/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ScheduleRepositoryInterface is the interface for a ScheduleRepository.
// FindByOwner returns (nil, nil) when the owner has no persisted schedule;
// absent is not an error.
type ScheduleRepositoryInterface interface {
	FindByOwner(ctx context.Context, ownerID string) (*Schedule, error)
	Save(ctx context.Context, schedule *Schedule) error
}

// ScheduleRepository does everything related to schedule storing
type ScheduleRepository struct {
	DB     *mongo.Collection
	Logger logger.Interface
}

// FindByOwner finds the schedule of an owner
func (s ScheduleRepository) FindByOwner(ctx context.Context, ownerID string) (*Schedule, error) {
	var schedule = Schedule{}

	result := s.DB.FindOne(ctx, bson.M{"ownerId": ownerID})
	if result.Err() != nil {
		if result.Err() == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, result.Err()
	}

	err := result.Decode(&schedule)
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

// Save persists a schedule; the window set replaces the previous one wholesale
func (s ScheduleRepository) Save(ctx context.Context, schedule *Schedule) error {
	if schedule.ID.IsZero() {
		schedule.ID = primitive.NewObjectID()
		schedule.CreatedAt = time.Now()
	}
	schedule.LastModifiedAt = time.Now()

	upsert := true
	_, err := s.DB.ReplaceOne(ctx, bson.M{"ownerId": schedule.OwnerID}, schedule,
		&options.ReplaceOptions{Upsert: &upsert})

	return err
}
