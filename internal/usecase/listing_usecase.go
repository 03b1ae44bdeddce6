package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/waltonseymour/Bazaar/internal/entity"
	"github.com/waltonseymour/Bazaar/internal/repo/persistent"
	"github.com/waltonseymour/Bazaar/pkg/logger"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errors.New("post not found")
	ErrNotOwner         = errors.New("you can only modify your own posts")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateID      = errors.New("post with this id already exists")
	ErrCategoryNotFound = errors.New("category not found")
)

// orderColumns is the allow-list of sortable columns, keyed by the wire-level
// order parameter. Anything else falls back to creation time.
var orderColumns = map[string]string{
	"createdAt": "created_at",
	"price":     "price",
}

const DefaultOrder = "createdAt"

// Signer issues time-limited upload/download URLs for storage keys and
// deletes stored objects. Satisfied by pkg/s3.Client.
type Signer interface {
	PresignUpload(key, contentType string, expiry time.Duration) (string, error)
	PresignDownload(key string, expiry time.Duration) (string, error)
	DeleteObject(key string) error
}

// PhotoUpload is one requested upload slot: an optional client-generated
// photo id plus the content type the URL will be signed with.
type PhotoUpload struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType"`
}

// UpdateFields is the full editable field set of a post. Updates are
// all-or-nothing: every field must be present and valid or nothing is written.
type UpdateFields struct {
	Title       string
	Description string
	Price       float64
	CategoryID  string
}

type ListingUseCase interface {
	List(order, category string, page, perPage int) ([]*entity.Post, error)
	Search(query string) ([]*entity.Post, error)
	GetByID(id string) (*entity.Post, error)
	Create(userID string, post *entity.Post) error
	Update(postID, userID string, fields UpdateFields) (*entity.Post, error)
	Delete(postID, userID string) error
	IssueUploadURLs(postID, userID string, uploads []PhotoUpload) ([]string, error)
	PhotoURLs(postID string) ([]string, error)
	PhotoURL(postID, photoID string) (string, error)
	DeletePhoto(postID, photoID, userID string) error
	Categories() ([]*entity.Category, error)
}

type listingUseCase struct {
	postRepo     persistent.PostRepository
	photoRepo    persistent.PhotoRepository
	categoryRepo persistent.CategoryRepository
	signer       Signer
	presignTTL   time.Duration
	logger       *logger.Logger
}

func NewListingUseCase(
	postRepo persistent.PostRepository,
	photoRepo persistent.PhotoRepository,
	categoryRepo persistent.CategoryRepository,
	signer Signer,
	presignTTL time.Duration,
	log *logger.Logger,
) ListingUseCase {
	return &listingUseCase{
		postRepo:     postRepo,
		photoRepo:    photoRepo,
		categoryRepo: categoryRepo,
		signer:       signer,
		presignTTL:   presignTTL,
		logger:       log,
	}
}

// photoKey derives the storage key for a photo id.
func photoKey(photoID string) string {
	return "bazaar/" + photoID
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func (uc *listingUseCase) List(order, category string, page, perPage int) ([]*entity.Post, error) {
	column, ok := orderColumns[order]
	if !ok {
		column = orderColumns[DefaultOrder]
	}

	// A category filter that is not a well-formed id is ignored, not an error.
	categoryID := ""
	if isUUID(category) {
		categoryID = category
	}

	offset := 0
	if page > 1 {
		offset = (page - 1) * perPage
	}

	return uc.postRepo.List(column, categoryID, perPage, offset)
}

// Search returns posts whose title or description contains the query,
// newest first. A blank query is invalid; the client reloads the full
// list instead of searching for nothing.
func (uc *listingUseCase) Search(query string) ([]*entity.Post, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	return uc.postRepo.Search(query)
}

func (uc *listingUseCase) GetByID(id string) (*entity.Post, error) {
	post, err := uc.postRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// Create stores a new post owned by userID. The owner always comes from the
// session; any owner in the payload is discarded. A client-generated id that
// already exists is a conflict, never an upsert.
func (uc *listingUseCase) Create(userID string, post *entity.Post) error {
	if post.Title == "" || post.Description == "" || !isUUID(post.CategoryID) || post.Price < 0 {
		return ErrInvalidInput
	}

	if post.ID != "" {
		exists, err := uc.postRepo.Exists(post.ID)
		if err != nil {
			return fmt.Errorf("failed to check post existence: %w", err)
		}
		if exists {
			return ErrDuplicateID
		}
	}

	post.UserID = userID
	post.User = nil
	post.Category = nil
	post.Photos = nil

	if err := uc.postRepo.Create(post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// Update applies the full editable field set or nothing. A changed category
// is re-validated against the category table before commit.
func (uc *listingUseCase) Update(postID, userID string, fields UpdateFields) (*entity.Post, error) {
	post, err := uc.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}

	if fields.Title == "" || fields.Description == "" || fields.Price < 0 || !isUUID(fields.CategoryID) {
		return nil, ErrInvalidInput
	}

	if fields.CategoryID != post.CategoryID {
		if _, err := uc.categoryRepo.GetByID(fields.CategoryID); err != nil {
			if errors.Is(err, persistent.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	if err := uc.postRepo.UpdateFields(postID, fields.Title, fields.Description, fields.Price, fields.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	return uc.GetByID(postID)
}

// Delete removes a post and its photo records. Stored photo objects are
// purged best-effort in the background; a failed purge leaves an orphaned
// object but never blocks or fails the delete.
func (uc *listingUseCase) Delete(postID, userID string) error {
	post, err := uc.GetByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	photos, err := uc.photoRepo.ListByPost(postID)
	if err != nil {
		return fmt.Errorf("failed to list photos: %w", err)
	}

	go func() {
		for _, photo := range photos {
			if err := uc.signer.DeleteObject(photoKey(photo.ID)); err != nil {
				uc.logger.Warn("Failed to purge photo object %s: %v", photo.ID, err)
			}
		}
	}()

	if err := uc.postRepo.Delete(postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// IssueUploadURLs creates one photo record per requested upload and returns
// signed PUT URLs, positionally matched to the input. Records are committed
// before the client uploads anything; an upload that never completes leaves
// an orphaned record behind (no reconciliation is performed).
func (uc *listingUseCase) IssueUploadURLs(postID, userID string, uploads []PhotoUpload) ([]string, error) {
	post, err := uc.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, ErrNotOwner
	}

	urls := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		if upload.ContentType == "" {
			return nil, ErrInvalidInput
		}

		photoID := upload.ID
		if !isUUID(photoID) {
			photoID = uuid.New().String()
		}

		photo := &entity.Photo{ID: photoID, PostID: postID}
		if err := uc.photoRepo.Create(photo); err != nil {
			return nil, fmt.Errorf("failed to create photo record: %w", err)
		}

		url, err := uc.signer.PresignUpload(photoKey(photoID), upload.ContentType, uc.presignTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign upload: %w", err)
		}
		urls = append(urls, url)
	}

	return urls, nil
}

func (uc *listingUseCase) PhotoURLs(postID string) ([]string, error) {
	photos, err := uc.photoRepo.ListByPost(postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}

	urls := make([]string, 0, len(photos))
	for _, photo := range photos {
		url, err := uc.signer.PresignDownload(photoKey(photo.ID), uc.presignTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to presign download: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (uc *listingUseCase) PhotoURL(postID, photoID string) (string, error) {
	photo, err := uc.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	if photo.PostID != postID {
		return "", ErrNotFound
	}

	return uc.signer.PresignDownload(photoKey(photo.ID), uc.presignTTL)
}

func (uc *listingUseCase) DeletePhoto(postID, photoID, userID string) error {
	post, err := uc.GetByID(postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return ErrNotOwner
	}

	photo, err := uc.photoRepo.GetByID(photoID)
	if err != nil {
		if errors.Is(err, persistent.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if photo.PostID != postID {
		return ErrNotFound
	}

	go func() {
		if err := uc.signer.DeleteObject(photoKey(photoID)); err != nil {
			uc.logger.Warn("Failed to purge photo object %s: %v", photoID, err)
		}
	}()

	return uc.photoRepo.Delete(photoID)
}

func (uc *listingUseCase) Categories() ([]*entity.Category, error) {
	return uc.categoryRepo.List()
}
