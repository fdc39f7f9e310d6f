package repository

import (
	"context"
	"errors"
	"fmt"

	appointmentserrors "github.com/Farhatmahi/dentist-spa-server/internal/appointments/errors"
	"github.com/Farhatmahi/dentist-spa-server/pkg/config"
	"github.com/Farhatmahi/dentist-spa-server/pkg/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "appointmentOptions"
)

// AppointmentOptionRepository reads the treatment catalog. The catalog is
// seeded administratively and never written through this interface.
type AppointmentOptionRepository interface {
	FindAll(ctx context.Context) ([]*model.AppointmentOption, error)
	FindByName(ctx context.Context, name string) (*model.AppointmentOption, error)
	DistinctNames(ctx context.Context) ([]string, error)
}

type mongoAppointmentOptionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAppointmentOptionRepository(cfg *config.Config) AppointmentOptionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentOptionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoAppointmentOptionRepository) FindAll(ctx context.Context) ([]*model.AppointmentOption, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find appointment options: %w", err)
	}
	defer cursor.Close(ctx)

	var appointmentOptions []*model.AppointmentOption
	if err = cursor.All(ctx, &appointmentOptions); err != nil {
		return nil, fmt.Errorf("failed to decode appointment options: %w", err)
	}

	return appointmentOptions, nil
}

func (r *mongoAppointmentOptionRepository) FindByName(ctx context.Context, name string) (*model.AppointmentOption, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var option model.AppointmentOption
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&option)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, appointmentserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find appointment option: %w", err)
	}

	return &option, nil
}

func (r *mongoAppointmentOptionRepository) DistinctNames(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	values, err := r.collection.Distinct(ctx, "name", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list treatment names: %w", err)
	}

	names := make([]string, 0, len(values))
	for _, value := range values {
		if name, ok := value.(string); ok {
			names = append(names, name)
		}
	}

	return names, nil
}
