package repo

import (
	"errors"

	"swarmpost/internal/entity"
)

// ErrPostExists is returned by Create on backends that enforce id
// uniqueness when the caller supplies an id that is already stored.
var ErrPostExists = errors.New("post already exists")

// PostRepository is the uniform CRUD contract over Post. Absence is a
// normal outcome: GetByID, Update and Delete return (nil, nil) for a
// missing id, never an error. Update replaces title, content and image
// path and refreshes UpdatedAt on every backend.
type PostRepository interface {
	GetAll() ([]*entity.Post, error)
	GetByID(id string) (*entity.Post, error)
	Create(post *entity.Post) (*entity.Post, error)
	Update(post *entity.Post) (*entity.Post, error)
	Delete(id string) (*entity.Post, error)
}
