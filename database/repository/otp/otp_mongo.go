package otpRepo

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

// MongoOtpRepo implements OtpRepository using MongoDB.
type MongoOtpRepo struct {
	coll *mongo.Collection
}

// NewMongoOtpRepo creates a new instance of OtpRepository using MongoDB.
func NewMongoOtpRepo() OtpRepository {
	coll := database.MongoClient.Database("glowtheory").Collection("otps")
	repo := &MongoOtpRepo{coll: coll}

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
func (r *MongoOtpRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new OTP record.
func (r *MongoOtpRepo) Create(rec *models.OtpRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create otp record: %w", err)
	}
	return nil
}

// LatestActive retrieves the most recent unverified, unexpired record for a phone.
func (r *MongoOtpRepo) LatestActive(phone string, now time.Time) (*models.OtpRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"phone":      phone,
		"verified":   false,
		"expires_at": bson.M{"$gt": now},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var rec models.OtpRecord
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch otp record for phone %s: %w", phone, err)
	}
	return &rec, nil
}

// LatestVerified retrieves the most recent verified, unexpired record for a phone.
func (r *MongoOtpRepo) LatestVerified(phone string, now time.Time) (*models.OtpRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"phone":      phone,
		"verified":   true,
		"expires_at": bson.M{"$gt": now},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var rec models.OtpRecord
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch otp record for phone %s: %w", phone, err)
	}
	return &rec, nil
}

// IncrementAttempts adds one check to the record's attempt count.
func (r *MongoOtpRepo) IncrementAttempts(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$inc": bson.M{"attempts": 1}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to increment attempts for otp %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("otp record with id %s not found", id)
	}
	return nil
}

// MarkVerified flags the record as consumed.
func (r *MongoOtpRepo) MarkVerified(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	update := bson.M{"$set": bson.M{"verified": true}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark otp %s verified: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("otp record with id %s not found", id)
	}
	return nil
}
