package usecase

import (
	"context"
	"fmt"
	"mime/multipart"

	"swarmpost/internal/entity"
	"swarmpost/internal/repo"
	"swarmpost/internal/storage"
	"swarmpost/pkg/logger"
)

type PostUseCase interface {
	CreatePost(ctx context.Context, id, title, content string, image *multipart.FileHeader) (*entity.Post, error)
	GetPost(id string) (*entity.Post, error)
	ListPosts() ([]*entity.Post, error)
	UpdatePost(id string, title, content *string) (*entity.Post, error)
	DeletePost(id string) (*entity.Post, error)
}

type postUseCase struct {
	postRepo repo.PostRepository
	storage  storage.ImageStorage
	logger   *logger.Logger
}

func NewPostUseCase(postRepo repo.PostRepository, imageStorage storage.ImageStorage, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		storage:  imageStorage,
		logger:   logger,
	}
}

// CreatePost saves the attached image (when one was uploaded and is
// non-empty) before handing the record to the repository, which assigns
// the id and timestamps. An explicit id is passed through so backends
// that enforce uniqueness can reject a duplicate.
func (uc *postUseCase) CreatePost(ctx context.Context, id, title, content string, image *multipart.FileHeader) (*entity.Post, error) {
	var imagePath string
	if image != nil && image.Size > 0 {
		src, err := image.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer src.Close()

		imagePath, err = uc.storage.Save(ctx, src, image)
		if err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		uc.logger.Info("Saved image to %s", imagePath)
	}

	post := &entity.Post{
		ID:        id,
		Title:     title,
		Content:   content,
		ImagePath: imagePath,
	}
	return uc.postRepo.Create(post)
}

func (uc *postUseCase) GetPost(id string) (*entity.Post, error) {
	return uc.postRepo.GetByID(id)
}

func (uc *postUseCase) ListPosts() ([]*entity.Post, error) {
	return uc.postRepo.GetAll()
}

// UpdatePost merges the provided fields into the stored record; nil
// fields keep their current value. Returns (nil, nil) when the id is
// unknown.
func (uc *postUseCase) UpdatePost(id string, title, content *string) (*entity.Post, error) {
	existing, err := uc.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if title != nil {
		existing.Title = *title
	}
	if content != nil {
		existing.Content = *content
	}
	return uc.postRepo.Update(existing)
}

func (uc *postUseCase) DeletePost(id string) (*entity.Post, error) {
	return uc.postRepo.Delete(id)
}
