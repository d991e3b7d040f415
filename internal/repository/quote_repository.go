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

var ErrQuoteNotFound = errors.New("quote not found")

type QuoteRepository interface {
	Index(ctx context.Context) ([]entity.Quote, error)
	Create(ctx context.Context, quote entity.Quote) (entity.Quote, error)
	Delete(ctx context.Context, quoteId string) error
	Count(ctx context.Context) (int64, error)
}

type quoteRepository struct {
	db mongo.Database
}

func NewQuoteRepository(db mongo.Database) QuoteRepository {
	return &quoteRepository{
		db: db,
	}
}

// Index returns every quote, newest first.
func (r *quoteRepository) Index(ctx context.Context) ([]entity.Quote, error) {
	collection := r.db.Collection("quotes")

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	quotes := make([]entity.Quote, 0)
	if err := cursor.All(ctx, &quotes); err != nil {
		return nil, err
	}

	return quotes, nil
}

func (r *quoteRepository) Create(ctx context.Context, quote entity.Quote) (entity.Quote, error) {
	collection := r.db.Collection("quotes")
	quote.Id = uuid.New().String()
	quote.CreatedAt = time.Now().UTC()

	_, err := collection.InsertOne(ctx, quote)
	if err != nil {
		return entity.Quote{}, err
	}

	return quote, nil
}

func (r *quoteRepository) Delete(ctx context.Context, quoteId string) error {
	collection := r.db.Collection("quotes")

	result, err := collection.DeleteOne(ctx, bson.M{"_id": quoteId})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrQuoteNotFound
	}

	return nil
}

func (r *quoteRepository) Count(ctx context.Context) (int64, error) {
	collection := r.db.Collection("quotes")
	return collection.CountDocuments(ctx, bson.M{})
}
