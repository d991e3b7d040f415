package repository

import (
	"context"
	"errors"
	"time"

	"elitepainters/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	adminsCollection    = "admins"
	customersCollection = "customers"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository serves both account collections; admins and customers
// share a shape but never a collection.
type UserRepository interface {
	Get(ctx context.Context, userId string) (entity.User, error)
	GetByEmail(ctx context.Context, email string) (entity.User, error)
	GetFirst(ctx context.Context) (entity.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user entity.User) (string, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	db         mongo.Database
	collection string
}

func NewAdminRepository(db mongo.Database) UserRepository {
	return &userRepository{
		db:         db,
		collection: adminsCollection,
	}
}

func NewCustomerRepository(db mongo.Database) UserRepository {
	return &userRepository{
		db:         db,
		collection: customersCollection,
	}
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (entity.User, error) {
	collection := r.db.Collection(r.collection)

	var user entity.User
	err := collection.FindOne(ctx, filter, opts...).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.User{}, ErrUserNotFound
		}
		return entity.User{}, err
	}

	return user, nil
}

func (r *userRepository) Get(ctx context.Context, userId string) (entity.User, error) {
	return r.findOne(ctx, bson.M{"_id": userId})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetFirst returns the earliest registered account.
func (r *userRepository) GetFirst(ctx context.Context) (entity.User, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	return r.findOne(ctx, bson.M{}, opts)
}

func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	collection := r.db.Collection(r.collection)

	count, err := collection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user entity.User) (string, error) {
	collection := r.db.Collection(r.collection)
	user.Id = uuid.New().String()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := collection.InsertOne(ctx, user)
	if err != nil {
		return "", err
	}

	return user.Id, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	collection := r.db.Collection(r.collection)
	return collection.CountDocuments(ctx, bson.M{})
}
