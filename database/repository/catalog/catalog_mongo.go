package catalogRepo

import (
	"context"
	"fmt"
	"time"

	"glowtheory/database"
	"glowtheory/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	services       *mongo.Collection
	stylists       *mongo.Collection
	breaks         *mongo.Collection
	unavailability *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database("glowtheory")
	repo := &MongoCatalogRepo{
		services:       db.Collection("services"),
		stylists:       db.Collection("stylists"),
		breaks:         db.Collection("breaks"),
		unavailability: db.Collection("unavailability"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.services.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	if _, err := r.stylists.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "service_ids", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create stylist indexes: %w", err)
	}
	if _, err := r.breaks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "stylist_id", Value: 1}, {Key: "date", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create break indexes: %w", err)
	}
	if _, err := r.unavailability.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "stylist_id", Value: 1}, {Key: "date", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create unavailability indexes: %w", err)
	}
	return nil
}

// GetServiceByID retrieves a service by its unique ID.
func (r *MongoCatalogRepo) GetServiceByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var svc models.Service
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return &svc, nil
}

// GetActiveServices retrieves all active services.
func (r *MongoCatalogRepo) GetActiveServices() ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, bson.M{"active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	for cursor.Next(ctx) {
		var svc models.Service
		if err := cursor.Decode(&svc); err != nil {
			return nil, fmt.Errorf("failed to decode service: %w", err)
		}
		services = append(services, svc)
	}
	return services, nil
}

// GetStylistByID retrieves a stylist by its unique ID.
func (r *MongoCatalogRepo) GetStylistByID(id string) (*models.Stylist, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var st models.Stylist
	if err := r.stylists.FindOne(ctx, bson.M{"id": id}).Decode(&st); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch stylist with id %s: %w", id, err)
	}
	return &st, nil
}

// GetStylistsForService retrieves the stylists qualified for a service.
func (r *MongoCatalogRepo) GetStylistsForService(serviceID string) ([]models.Stylist, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.stylists.Find(ctx, bson.M{"service_ids": serviceID})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stylists for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var stylists []models.Stylist
	for cursor.Next(ctx) {
		var st models.Stylist
		if err := cursor.Decode(&st); err != nil {
			return nil, fmt.Errorf("failed to decode stylist: %w", err)
		}
		stylists = append(stylists, st)
	}
	return stylists, nil
}

// GetBreaks retrieves a stylist's breaks on a date.
func (r *MongoCatalogRepo) GetBreaks(stylistID, date string) ([]models.Break, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.breaks.Find(ctx, bson.M{"stylist_id": stylistID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve breaks for stylist %s on %s: %w", stylistID, date, err)
	}
	defer cursor.Close(ctx)

	var breaks []models.Break
	for cursor.Next(ctx) {
		var b models.Break
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode break: %w", err)
		}
		breaks = append(breaks, b)
	}
	return breaks, nil
}

// GetUnavailability retrieves a stylist's unavailability windows on a date.
func (r *MongoCatalogRepo) GetUnavailability(stylistID, date string) ([]models.Unavailability, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cursor, err := r.unavailability.Find(ctx, bson.M{"stylist_id": stylistID, "date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve unavailability for stylist %s on %s: %w", stylistID, date, err)
	}
	defer cursor.Close(ctx)

	var windows []models.Unavailability
	for cursor.Next(ctx) {
		var u models.Unavailability
		if err := cursor.Decode(&u); err != nil {
			return nil, fmt.Errorf("failed to decode unavailability: %w", err)
		}
		windows = append(windows, u)
	}
	return windows, nil
}
