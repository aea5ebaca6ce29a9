package db

import (
	"context"
	"errors"
	"fmt"

	"exercise-tracker/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoUser is the stored shape of a user document
type mongoUser struct {
	ID        primitive.ObjectID `bson:"_id"`
	Username  string             `bson:"username"`
	Exercises []models.Exercise  `bson:"exercises,omitempty"`
}

func (u *mongoUser) toModel() *models.User {
	exercises := u.Exercises
	if exercises == nil {
		exercises = []models.Exercise{}
	}
	return &models.User{
		ID:        u.ID.Hex(),
		Username:  u.Username,
		Exercises: exercises,
	}
}

// MongoUserRepository implements the UserRepository interface for MongoDB
type MongoUserRepository struct {
	client     *mongo.Client
	database   string
	collection string
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(client *mongo.Client, database, collection string) *MongoUserRepository {
	return &MongoUserRepository{
		client:     client,
		database:   database,
		collection: collection,
	}
}

func (r *MongoUserRepository) coll() *mongo.Collection {
	return r.client.Database(r.database).Collection(r.collection)
}

// Ping checks the MongoDB connection
func (r *MongoUserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection
func (r *MongoUserRepository) Close() error {
	return r.client.Disconnect(context.Background())
}

// FindByID finds a user by ID. Identifiers that are not valid ObjectIDs
// cannot name any user and are reported as ErrNotFound.
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": objectID})
}

// FindByUsername finds a user by exact username
func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user mongoUser
	err := r.coll().FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user.toModel(), nil
}

// FindAll returns every user projected to its ID and username
func (r *MongoUserRepository) FindAll(ctx context.Context) ([]models.UserSummary, error) {
	opts := options.Find().SetProjection(bson.M{"username": 1})
	cursor, err := r.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []mongoUser
	if err = cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, models.UserSummary{ID: u.ID.Hex(), Username: u.Username})
	}
	return summaries, nil
}

// FindAllUsers returns every user with its full exercise log
func (r *MongoUserRepository) FindAllUsers(ctx context.Context) ([]*models.User, error) {
	cursor, err := r.coll().Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error finding users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoUser
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error decoding users: %w", err)
	}

	users := make([]*models.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toModel())
	}
	return users, nil
}

// Create inserts a new user with an empty exercise log
func (r *MongoUserRepository) Create(ctx context.Context, username string) (*models.User, error) {
	doc := bson.M{
		"_id":       primitive.NewObjectID(),
		"username":  username,
		"exercises": bson.A{},
	}

	_, err := r.coll().InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return &models.User{
		ID:        doc["_id"].(primitive.ObjectID).Hex(),
		Username:  username,
		Exercises: []models.Exercise{},
	}, nil
}

// AppendExercise pushes the exercise onto the user's exercises array
func (r *MongoUserRepository) AppendExercise(ctx context.Context, userID string, exercise models.Exercise) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"username": 1})
	filter := bson.M{"_id": objectID}
	update := bson.M{"$push": bson.M{"exercises": exercise}}

	var user mongoUser
	err = r.coll().FindOneAndUpdate(ctx, filter, update, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error appending exercise: %w", err)
	}

	return &models.User{ID: user.ID.Hex(), Username: user.Username}, nil
}
