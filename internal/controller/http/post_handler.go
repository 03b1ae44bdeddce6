package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/waltonseymour/Bazaar/internal/entity"
	"github.com/waltonseymour/Bazaar/internal/usecase"
	"github.com/waltonseymour/Bazaar/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const defaultPostsPerPage = 5

type PostHandler struct {
	listing usecase.ListingUseCase
	logger  *logger.Logger
}

func NewPostHandler(listing usecase.ListingUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		listing: listing,
		logger:  logger,
	}
}

type CreatePostRequest struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  string   `json:"category_id"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type UpdatePostRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  string   `json:"category_id"`
}

// ListPosts godoc
// @Summary      List posts
// @Description  Get posts joined with owner, category and photos, sorted descending by the given order with page-based offsets
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order query string false "Sort order (createdAt or price)" Enums(createdAt, price)
// @Param        category query string false "Category id filter (ignored if malformed)"
// @Param        page query int false "Page number, starting at 1"
// @Param        postsPerPage query int false "Page size (default 5)"
// @Success      200  {array}   entity.Post
// @Failure      403  "Unauthenticated"
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) ListPosts(c *gin.Context) {
	order := c.DefaultQuery("order", usecase.DefaultOrder)
	category := c.Query("category")

	page := 1
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	perPage := defaultPostsPerPage
	if perPageStr := c.Query("postsPerPage"); perPageStr != "" {
		if n, err := strconv.Atoi(perPageStr); err == nil && n > 0 {
			perPage = n
		}
	}

	posts, err := h.listing.List(order, category, page, perPage)
	if err != nil {
		h.logger.Error("Failed to list posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// SearchPosts godoc
// @Summary      Search posts
// @Description  Find posts whose title or description contains the query, newest first, with the same joins as the list endpoint
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        query path string true "Search text"
// @Success      200  {array}   entity.Post
// @Failure      401  "Blank query"
// @Failure      403  "Unauthenticated"
// @Failure      500  {object}  map[string]string
// @Router       /search/{query} [get]
func (h *PostHandler) SearchPosts(c *gin.Context) {
	query := c.Param("query")

	posts, err := h.listing.Search(query)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			c.Status(http.StatusUnauthorized)
			return
		}
		h.logger.Error("Failed to search posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary      Get post by ID
// @Description  Get a single post with owner, category and photo joins
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.Post
// @Failure      401  "Malformed id"
// @Failure      404  "Not found"
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	post, err := h.listing.GetByID(postID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get post %s: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post with a client-generated id. The owner comes from the session; a reused id is rejected.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreatePostRequest true "Post fields"
// @Success      204  "Created"
// @Failure      401  "Invalid payload or duplicate id"
// @Failure      403  "Unauthenticated"
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	if req.Title == "" || req.Description == "" || req.CategoryID == "" ||
		req.Price == nil || req.Latitude == nil || req.Longitude == nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	if req.ID != "" {
		if _, err := uuid.Parse(req.ID); err != nil {
			c.Status(http.StatusUnauthorized)
			return
		}
	}

	post := &entity.Post{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		CategoryID:  req.CategoryID,
	}

	if err := h.listing.Create(userID, post); err != nil {
		switch {
		case errors.Is(err, usecase.ErrDuplicateID), errors.Is(err, usecase.ErrInvalidInput):
			c.Status(http.StatusUnauthorized)
		default:
			h.logger.Error("Failed to create post: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Update title, description, price and category together. Only the owner can update; partial payloads are rejected with no write.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        request body UpdatePostRequest true "All editable fields"
// @Success      200  {object}  entity.Post
// @Failure      401  "Invalid payload or unknown category"
// @Failure      403  "Not the owner"
// @Failure      404  "Not found"
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	if req.Title == "" || req.Description == "" || req.Price == nil || req.CategoryID == "" {
		c.Status(http.StatusUnauthorized)
		return
	}

	post, err := h.listing.Update(postID, userID, usecase.UpdateFields{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, usecase.ErrNotOwner):
			c.Status(http.StatusForbidden)
		case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrCategoryNotFound):
			c.Status(http.StatusUnauthorized)
		default:
			h.logger.Error("Failed to update post %s: %v", postID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		}
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post and its photos. Stored photo objects are purged best-effort. Only the owner can delete.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      204  "Deleted"
// @Failure      401  "Malformed id"
// @Failure      403  "Not the owner"
// @Failure      404  "Not found"
// @Failure      500  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("id")
	userID := c.GetString("user_id")

	if _, err := uuid.Parse(postID); err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	if err := h.listing.Delete(postID, userID); err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, usecase.ErrNotOwner):
			c.Status(http.StatusForbidden)
		default:
			h.logger.Error("Failed to delete post %s: %v", postID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  entity.Category
// @Failure      500  {object} map[string]string
// @Router       /categories [get]
func (h *PostHandler) ListCategories(c *gin.Context) {
	categories, err := h.listing.Categories()
	if err != nil {
		h.logger.Error("Failed to list categories: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, categories)
}
