package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPost_BeforeCreate(t *testing.T) {
	post := &PostModel{
		UserID:     "user-123",
		Title:      "Road bike",
		CategoryID: "category-123",
	}

	// BeforeCreate should set ID if empty
	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)

	_, parseErr := uuid.Parse(post.ID)
	assert.NoError(t, parseErr)
}

func TestPost_BeforeCreate_WithID(t *testing.T) {
	existingID := uuid.New().String()
	post := &PostModel{
		ID:         existingID,
		UserID:     "user-123",
		Title:      "Road bike",
		CategoryID: "category-123",
	}

	err := post.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, post.ID)
}

func TestPhoto_BeforeCreate(t *testing.T) {
	photo := &PhotoModel{PostID: "post-123"}

	err := photo.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, photo.ID)
}

func TestPhoto_BeforeCreate_WithID(t *testing.T) {
	existingID := uuid.New().String()
	photo := &PhotoModel{ID: existingID, PostID: "post-123"}

	err := photo.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, photo.ID)
}

func TestCategory_BeforeCreate(t *testing.T) {
	category := &CategoryModel{Name: "Bikes"}

	err := category.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, category.ID)
}

func TestUser_BeforeCreate(t *testing.T) {
	user := &UserModel{Email: "test@example.com", Password: "hashed"}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}
