package usecase

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"

	"elitepainters/infrastructure/storage"
	"elitepainters/internal/entity"
	"elitepainters/internal/repository"

	"github.com/rs/zerolog"
)

type GalleryUsecase interface {
	Index(ctx context.Context) ([]entity.GalleryImage, error)
	Upload(ctx context.Context, caption string, image *multipart.FileHeader) (entity.GalleryImage, error)
	Delete(ctx context.Context, imageId string) error
}

type galleryUsecase struct {
	galleryRepo repository.GalleryRepository
	images      storage.ImageStorage
	logger      zerolog.Logger
}

func NewGalleryUsecase(galleryRepo repository.GalleryRepository, images storage.ImageStorage, logger zerolog.Logger) GalleryUsecase {
	return &galleryUsecase{
		galleryRepo: galleryRepo,
		images:      images,
		logger:      logger,
	}
}

func (u *galleryUsecase) Index(ctx context.Context) ([]entity.GalleryImage, error) {
	images, err := u.galleryRepo.Index(ctx)
	if err != nil {
		return nil, storeError(err)
	}

	for i := range images {
		url, err := u.images.URL(ctx, images[i].Image)
		if err != nil {
			u.logger.Warn().Err(err).Str("image_id", images[i].Id).Msg("resolve image url")
			continue
		}
		images[i].URL = url
	}
	return images, nil
}

func (u *galleryUsecase) Upload(ctx context.Context, caption string, image *multipart.FileHeader) (entity.GalleryImage, error) {
	if err := storage.ValidateImage(image); err != nil {
		return entity.GalleryImage{}, validationError("%s", err.Error())
	}

	key, err := u.images.Save(ctx, image)
	if err != nil {
		return entity.GalleryImage{}, storeError(err)
	}

	created, err := u.galleryRepo.Create(ctx, entity.GalleryImage{
		Image:   key,
		Caption: strings.TrimSpace(caption),
	})
	if err != nil {
		if delErr := u.images.Delete(ctx, key); delErr != nil {
			u.logger.Warn().Err(delErr).Str("key", key).Msg("delete orphaned image")
		}
		return entity.GalleryImage{}, storeError(err)
	}

	if url, err := u.images.URL(ctx, key); err == nil {
		created.URL = url
	}
	return created, nil
}

// Delete removes the record first, then the stored object.
func (u *galleryUsecase) Delete(ctx context.Context, imageId string) error {
	image, err := u.galleryRepo.Delete(ctx, imageId)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return notFoundError(err)
		}
		return storeError(err)
	}

	if err := u.images.Delete(ctx, image.Image); err != nil {
		u.logger.Warn().Err(err).Str("key", image.Image).Msg("delete stored image")
	}
	return nil
}
