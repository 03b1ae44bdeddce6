package persistent

import (
	"errors"

	"github.com/waltonseymour/Bazaar/internal/entity"
	"github.com/waltonseymour/Bazaar/internal/model"

	"gorm.io/gorm"
)

type PhotoRepository interface {
	Create(photo *entity.Photo) error
	GetByID(id string) (*entity.Photo, error)
	ListByPost(postID string) ([]*entity.Photo, error)
	Delete(id string) error
}

type photoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) PhotoRepository {
	return &photoRepository{db: db}
}

func (r *photoRepository) Create(photo *entity.Photo) error {
	photoModel := ToPhotoModel(photo)
	if err := r.db.Create(photoModel).Error; err != nil {
		return err
	}
	*photo = ToPhotoEntity(photoModel)
	return nil
}

func (r *photoRepository) GetByID(id string) (*entity.Photo, error) {
	var photoModel model.PhotoModel
	if err := r.db.Where("id = ?", id).First(&photoModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	photo := ToPhotoEntity(&photoModel)
	return &photo, nil
}

func (r *photoRepository) ListByPost(postID string) ([]*entity.Photo, error) {
	var photoModels []model.PhotoModel
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&photoModels).Error; err != nil {
		return nil, err
	}

	photos := make([]*entity.Photo, len(photoModels))
	for i := range photoModels {
		photo := ToPhotoEntity(&photoModels[i])
		photos[i] = &photo
	}
	return photos, nil
}

func (r *photoRepository) Delete(id string) error {
	return r.db.Delete(&model.PhotoModel{}, "id = ?", id).Error
}
