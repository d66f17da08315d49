package persistent

import (
	"errors"
	"time"

	"swarmpost/internal/entity"
	"swarmpost/internal/model"
	"swarmpost/internal/repo"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a PostRepository over the posts table. The
// table itself is auto-created at boot (see app.Run); every operation
// here is a single statement with no retries.
func NewPostRepository(db *gorm.DB) repo.PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) GetAll() ([]*entity.Post, error) {
	var postModels []model.PostModel
	if err := r.db.Find(&postModels).Error; err != nil {
		return nil, err
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Where("id = ?", id).First(&postModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

// Create inserts the post, upserting on id collision: unlike the
// in-memory backend this store does not report a conflict, the last
// write wins.
func (r *postRepository) Create(post *entity.Post) (*entity.Post, error) {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	postModel.CreatedAt = now
	postModel.UpdatedAt = now

	err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(postModel).Error
	if err != nil {
		return nil, err
	}
	return ToPostEntity(postModel), nil
}

func (r *postRepository) Update(post *entity.Post) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Where("id = ?", post.ID).First(&postModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	postModel.Title = post.Title
	postModel.Content = post.Content
	postModel.ImagePath = post.ImagePath
	postModel.UpdatedAt = time.Now().UTC()

	if err := r.db.Save(&postModel).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) Delete(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Where("id = ?", id).First(&postModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.Delete(&model.PostModel{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return ToPostEntity(&postModel), nil
}
