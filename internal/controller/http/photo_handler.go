package http

import (
	"errors"
	"net/http"

	"github.com/waltonseymour/Bazaar/internal/usecase"
	"github.com/waltonseymour/Bazaar/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PhotoHandler struct {
	listing usecase.ListingUseCase
	logger  *logger.Logger
}

func NewPhotoHandler(listing usecase.ListingUseCase, logger *logger.Logger) *PhotoHandler {
	return &PhotoHandler{
		listing: listing,
		logger:  logger,
	}
}

// IssueUploadURLs godoc
// @Summary      Issue photo upload URLs
// @Description  Create one photo record per requested upload and return signed PUT URLs, positionally matched to the request body. Uploads happen directly against object storage.
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body []usecase.PhotoUpload true "One entry per file: contentType required, id optional"
// @Success      200  {array}  string
// @Failure      401  "Malformed id or missing content type"
// @Failure      403  "Not the owner"
// @Failure      404  "Post not found"
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/photos [post]
func (h *PhotoHandler) IssueUploadURLs(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	if _, err := uuid.Parse(postID); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	var uploads []usecase.PhotoUpload
	if err := c.ShouldBindJSON(&uploads); err != nil || len(uploads) == 0 {
		c.Status(http.StatusUnauthorized)
		return
	}

	urls, err := h.listing.IssueUploadURLs(postID, userID, uploads)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, usecase.ErrNotOwner):
			c.Status(http.StatusForbidden)
		case errors.Is(err, usecase.ErrInvalidInput):
			c.Status(http.StatusUnauthorized)
		default:
			h.logger.Error("Failed to issue upload urls for post %s: %v", postID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue upload urls"})
		}
		return
	}

	c.JSON(http.StatusOK, urls)
}

// ListPhotoURLs godoc
// @Summary      List photo download URLs
// @Description  Return a signed GET URL for every photo of a post
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {array}  string
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/photos [get]
func (h *PhotoHandler) ListPhotoURLs(c *gin.Context) {
	postID := c.Param("id")

	urls, err := h.listing.PhotoURLs(postID)
	if err != nil {
		h.logger.Error("Failed to list photo urls for post %s: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photo urls"})
		return
	}

	c.JSON(http.StatusOK, urls)
}

// GetPhoto godoc
// @Summary      Redirect to a photo
// @Description  Redirect the caller to a signed GET URL for one photo
// @Tags         photos
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        photoID path string true "Photo ID"
// @Success      301  "Redirect to signed URL"
// @Failure      404  "Photo not found"
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/photos/{photoID} [get]
func (h *PhotoHandler) GetPhoto(c *gin.Context) {
	postID := c.Param("id")
	photoID := c.Param("photoID")

	url, err := h.listing.PhotoURL(postID, photoID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to presign photo %s: %v", photoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch photo"})
		return
	}

	c.Redirect(http.StatusMovedPermanently, url)
}

// DeletePhoto godoc
// @Summary      Delete a photo
// @Description  Remove a photo record and best-effort delete its stored object. Only the post owner can delete.
// @Tags         photos
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        photoID path string true "Photo ID"
// @Success      204  "Deleted"
// @Failure      403  "Not the owner"
// @Failure      404  "Photo not found"
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id}/photos/{photoID} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	postID := c.Param("id")
	photoID := c.Param("photoID")
	userID := c.GetString("user_id")

	if err := h.listing.DeletePhoto(postID, photoID, userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, usecase.ErrNotOwner):
			c.Status(http.StatusForbidden)
		default:
			h.logger.Error("Failed to delete photo %s: %v", photoID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
