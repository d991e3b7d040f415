package http

import (
	"net/http"

	"elitepainters/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type GalleryHandler struct {
	galleryUc usecase.GalleryUsecase
	logger    zerolog.Logger
}

func NewGalleryHandler(galleryUc usecase.GalleryUsecase, logger zerolog.Logger) *GalleryHandler {
	return &GalleryHandler{
		galleryUc: galleryUc,
		logger:    logger,
	}
}

// Method Get /gallery
func (h *GalleryHandler) Index(w http.ResponseWriter, r *http.Request) {
	images, err := h.galleryUc.Index(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// Method Post /admin/gallery (multipart "image", "caption")
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	image, err := formFile(w, r, "image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.galleryUc.Upload(r.Context(), r.FormValue("caption"), image)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Method Delete /admin/gallery/{id}
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.galleryUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "image deleted")
}
