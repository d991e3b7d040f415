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

var ErrImageNotFound = errors.New("gallery image not found")

type GalleryRepository interface {
	Index(ctx context.Context) ([]entity.GalleryImage, error)
	Create(ctx context.Context, image entity.GalleryImage) (entity.GalleryImage, error)
	Delete(ctx context.Context, imageId string) (entity.GalleryImage, error)
}

type galleryRepository struct {
	db mongo.Database
}

func NewGalleryRepository(db mongo.Database) GalleryRepository {
	return &galleryRepository{
		db: db,
	}
}

func (r *galleryRepository) Index(ctx context.Context) ([]entity.GalleryImage, error) {
	collection := r.db.Collection("galleries")

	opts := options.Find().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	images := make([]entity.GalleryImage, 0)
	if err := cursor.All(ctx, &images); err != nil {
		return nil, err
	}

	return images, nil
}

func (r *galleryRepository) Create(ctx context.Context, image entity.GalleryImage) (entity.GalleryImage, error) {
	collection := r.db.Collection("galleries")
	image.Id = uuid.New().String()
	image.UploadedAt = time.Now().UTC()

	_, err := collection.InsertOne(ctx, image)
	if err != nil {
		return entity.GalleryImage{}, err
	}

	return image, nil
}

func (r *galleryRepository) Delete(ctx context.Context, imageId string) (entity.GalleryImage, error) {
	collection := r.db.Collection("galleries")

	var image entity.GalleryImage
	err := collection.FindOneAndDelete(ctx, bson.M{"_id": imageId}).Decode(&image)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return entity.GalleryImage{}, ErrImageNotFound
		}
		return entity.GalleryImage{}, err
	}

	return image, nil
}
