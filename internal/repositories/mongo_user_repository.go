package repositories

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepository implements UserRepository on the "users" collection,
// with GIFs embedded in the owner's document.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique indexes on id and email.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	return err
}

func (r *MongoUserRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) UpsertUser(ctx context.Context, id, name, email string) (*models.User, error) {
	update := bson.M{
		"$set": bson.M{"name": name, "email": email},
		"$setOnInsert": bson.M{
			"id":        id,
			"gifs":      bson.A{},
			"following": bson.A{},
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// SearchUsers matches name or email case-insensitively. GIFs are not projected.
func (r *MongoUserRepository) SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"email": pattern},
	}}
	findOptions := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"gifs": 0})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepository) AppendGif(ctx context.Context, userID string, gif models.Gif) (*models.Gif, error) {
	if gif.ID.IsZero() {
		gif.ID = primitive.NewObjectID()
	}
	if gif.DateAdded.IsZero() {
		gif.DateAdded = time.Now().UTC()
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": userID}, bson.M{"$push": bson.M{"gifs": gif}})
	if err != nil {
		return nil, fmt.Errorf("push gif: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrUserNotFound
	}
	return &gif, nil
}

func (r *MongoUserRepository) DeleteGif(ctx context.Context, userID, gifID string) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(gifID)
	if err != nil {
		return false, nil
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"id": userID}, bson.M{"$pull": bson.M{"gifs": bson.M{"_id": objID}}})
	if err != nil {
		return false, fmt.Errorf("pull gif: %w", err)
	}
	if res.MatchedCount == 0 {
		return false, ErrUserNotFound
	}
	return res.ModifiedCount > 0, nil
}

func (r *MongoUserRepository) AddFollow(ctx context.Context, userID, targetID string) (bool, error) {
	return r.updateFollowing(ctx, userID, bson.M{"$addToSet": bson.M{"following": targetID}})
}

func (r *MongoUserRepository) RemoveFollow(ctx context.Context, userID, targetID string) (bool, error) {
	return r.updateFollowing(ctx, userID, bson.M{"$pull": bson.M{"following": targetID}})
}

func (r *MongoUserRepository) updateFollowing(ctx context.Context, userID string, update bson.M) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"id": userID}, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, ErrUserNotFound
	}
	return res.ModifiedCount > 0, nil
}
