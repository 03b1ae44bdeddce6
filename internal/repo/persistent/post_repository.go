package persistent

import (
	"errors"

	"github.com/waltonseymour/Bazaar/internal/entity"
	"github.com/waltonseymour/Bazaar/internal/model"

	"gorm.io/gorm"
)

// ErrRecordNotFound is returned when a lookup matches no row.
var ErrRecordNotFound = errors.New("record not found")

type PostRepository interface {
	Create(post *entity.Post) error
	Exists(id string) (bool, error)
	GetByID(id string) (*entity.Post, error)
	List(order, categoryID string, limit, offset int) ([]*entity.Post, error)
	Search(query string) ([]*entity.Post, error)
	UpdateFields(id, title, description string, price float64, categoryID string) error
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Create(postModel).Error; err != nil {
		return err
	}
	*post = *ToPostEntity(postModel)
	return nil
}

func (r *postRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Preload("User").Preload("Category").Preload("Photos").
		Where("id = ?", id).First(&postModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// List returns posts joined with their owner, category and photos, sorted by
// the given column descending. order must be a known column name; the
// usecase enforces the allow-list before calling.
func (r *postRepository) List(order, categoryID string, limit, offset int) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.db.Preload("User").Preload("Category").Preload("Photos").
		Order(order + " DESC")

	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// Search matches the query against title and description, case-insensitive,
// newest first, with the same joins as List.
func (r *postRepository) Search(query string) ([]*entity.Post, error) {
	var postModels []model.PostModel
	pattern := "%" + query + "%"
	err := r.db.Preload("User").Preload("Category").Preload("Photos").
		Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&postModels).Error
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

// UpdateFields writes the full editable field set in one statement, so a
// rejected update never leaves a partial write behind.
func (r *postRepository) UpdateFields(id, title, description string, price float64, categoryID string) error {
	result := r.db.Model(&model.PostModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"title":       title,
		"description": description,
		"price":       price,
		"category_id": categoryID,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.PhotoModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PostModel{}, "id = ?", id).Error
	})
}
