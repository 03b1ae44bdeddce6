package persistent

import (
	"github.com/waltonseymour/Bazaar/internal/entity"
	"github.com/waltonseymour/Bazaar/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Price:       m.Price,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		CategoryID:  m.CategoryID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if m.User != nil {
		post.User = ToUserEntity(m.User)
	}
	if m.Category != nil {
		post.Category = ToCategoryEntity(m.Category)
	}

	post.Photos = make([]entity.Photo, len(m.Photos))
	for i := range m.Photos {
		post.Photos[i] = ToPhotoEntity(&m.Photos[i])
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	return &model.PostModel{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Description: e.Description,
		Price:       e.Price,
		Latitude:    e.Latitude,
		Longitude:   e.Longitude,
		CategoryID:  e.CategoryID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToPhotoEntity(m *model.PhotoModel) entity.Photo {
	if m == nil {
		return entity.Photo{}
	}

	return entity.Photo{
		ID:        m.ID,
		PostID:    m.PostID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToPhotoModel(e *entity.Photo) *model.PhotoModel {
	if e == nil {
		return nil
	}

	return &model.PhotoModel{
		ID:        e.ID,
		PostID:    e.PostID,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToCategoryEntity(m *model.CategoryModel) *entity.Category {
	if m == nil {
		return nil
	}

	return &entity.Category{
		ID:   m.ID,
		Name: m.Name,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:    m.ID,
		Email: m.Email,
	}
}
