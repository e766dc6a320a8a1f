package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/JuniorCesarMarques/ecommerce/internal/apierror"
	"github.com/JuniorCesarMarques/ecommerce/internal/dto"
	"github.com/JuniorCesarMarques/ecommerce/internal/infra"
	"github.com/JuniorCesarMarques/ecommerce/internal/model"
	"github.com/JuniorCesarMarques/ecommerce/internal/repository"
	"github.com/JuniorCesarMarques/ecommerce/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// allowedImageExts mirrors the client-side validation; the server re-checks
// because clients cannot be trusted.
var allowedImageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type UploadsHandler struct {
	storage    *infra.ObjectStorage
	cb         *infra.CircuitBreaker
	orphans    repository.OrphanUploadRepository
	dispatcher *worker.Dispatcher
	maxBytes   int64
}

func NewUploadsHandler(storage *infra.ObjectStorage, cb *infra.CircuitBreaker, orphans repository.OrphanUploadRepository, dispatcher *worker.Dispatcher, maxBytes int64) *UploadsHandler {
	return &UploadsHandler{storage: storage, cb: cb, orphans: orphans, dispatcher: dispatcher, maxBytes: maxBytes}
}

// Upload godoc
// @Summary  Upload a product image to the bucket
// @Tags     uploads
// @Accept   multipart/form-data
// @Produce  json
// @Param    file formData file true "image (jpg, jpeg, png, webp; max 5MB)"
// @Success  201 {object} dto.UploadResponse
// @Failure  413 {object} apierror.APIError
// @Failure  422 {object} apierror.ValidationError
// @Security BearerAuth
// @Router   /api/uploads [post]
func (h *UploadsHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		c.JSON(http.StatusServiceUnavailable, apierror.New("object storage is not configured"))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("multipart field 'file' is required"))
		return
	}
	if header.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("file exceeds the maximum allowed size"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType, ok := allowedImageExts[ext]
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(map[string]string{
			"file": "unsupported image type",
		}))
		return
	}

	src, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to read upload"))
		return
	}
	defer src.Close()

	// Random object name — original filenames are never trusted or preserved.
	path := "products/" + uuid.NewString() + ext

	uploadErr := h.cb.Execute(func() error {
		return h.storage.Upload(c.Request.Context(), path, src, header.Size, contentType)
	})
	if uploadErr != nil {
		if errors.Is(uploadErr, infra.ErrCircuitOpen) {
			c.JSON(http.StatusServiceUnavailable, apierror.New("storage temporarily unavailable"))
			return
		}
		c.JSON(http.StatusBadGateway, apierror.New("failed to store image"))
		return
	}

	c.JSON(http.StatusCreated, dto.UploadResponse{
		Path:      path,
		PublicURL: h.storage.PublicURL(path),
	})
}

// ReportOrphan registers an uploaded object whose product row never committed.
// The cleanup job is enqueued immediately; on enqueue failure the retry cron
// will still pick the row up.
func (h *UploadsHandler) ReportOrphan(c *gin.Context) {
	var req dto.ReportOrphanRequest
	if !bindAndValidate(c, &req) {
		return
	}

	orphan := &model.OrphanUpload{Path: req.Path, Reason: req.Reason}
	if err := h.orphans.Create(c.Request.Context(), orphan); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to record orphaned upload"))
		return
	}

	payload := worker.CleanupJobPayload{OrphanID: orphan.ID.String()}
	if err := h.dispatcher.EnqueueCleanup(c.Request.Context(), payload); err != nil {
		log.Error().Err(err).Str("path", req.Path).Msg("failed to enqueue cleanup job")
		// Leave a due retry timestamp so the cron picks the row up anyway.
		next := time.Now().Add(time.Minute)
		orphan.NextRetryAt = &next
		if uerr := h.orphans.Update(c.Request.Context(), orphan); uerr != nil {
			log.Error().Err(uerr).Str("path", req.Path).Msg("failed to schedule orphan retry")
		}
	}

	c.JSON(http.StatusAccepted, gin.H{"id": orphan.ID.String()})
}
