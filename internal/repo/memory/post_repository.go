package memory

import (
	"sync"
	"time"

	"swarmpost/internal/entity"
	"swarmpost/internal/repo"

	"github.com/google/uuid"
)

// PostRepository is a process-local, mutex-guarded map of posts. Stored
// records are copied on the way in and out, and Update replaces the
// stored value wholesale, so readers holding a previously returned post
// never observe a concurrent write.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*entity.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]*entity.Post)}
}

func (r *PostRepository) GetAll() ([]*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*entity.Post, 0, len(r.posts))
	for _, post := range r.posts {
		copied := *post
		posts = append(posts, &copied)
	}
	return posts, nil
}

func (r *PostRepository) GetByID(id string) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

// Create inserts the post if its id is absent and returns ErrPostExists
// otherwise. An empty id is replaced with a fresh uuid; both timestamps
// are stamped to the same instant.
func (r *PostRepository) Create(post *entity.Post) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if _, ok := r.posts[post.ID]; ok {
		return nil, repo.ErrPostExists
	}

	now := time.Now().UTC()
	stored := *post
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.posts[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *PostRepository) Update(post *entity.Post) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[post.ID]
	if !ok {
		return nil, nil
	}

	updated := *existing
	updated.Title = post.Title
	updated.Content = post.Content
	updated.ImagePath = post.ImagePath
	updated.UpdatedAt = time.Now().UTC()
	r.posts[post.ID] = &updated

	copied := updated
	return &copied, nil
}

func (r *PostRepository) Delete(id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	delete(r.posts, id)
	return post, nil
}
