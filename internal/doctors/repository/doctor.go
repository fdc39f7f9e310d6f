package repository

import (
	"context"
	"fmt"

	doctorserrors "github.com/Farhatmahi/dentist-spa-server/internal/doctors/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "doctors"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	FindAll(ctx context.Context) ([]*model.Doctor, error)
	Delete(ctx context.Context, id string) error
}

type mongoDoctorRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDoctorRepository(cfg *config.Config) DoctorRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDoctorRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoDoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, doctor)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		doctor.ID = oid.Hex()
	}
	return nil
}

func (r *mongoDoctorRepository) FindAll(ctx context.Context) ([]*model.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []*model.Doctor
	if err = cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}

	return doctors, nil
}

func (r *mongoDoctorRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", doctorserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	if result.DeletedCount == 0 {
		return doctorserrors.ErrNotFound
	}

	return nil
}
