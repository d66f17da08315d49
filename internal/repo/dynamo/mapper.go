package dynamo

import (
	"time"

	"swarmpost/internal/entity"
)

// postItem is the wire shape of a post in the table. Timestamps are
// stored as RFC 3339 strings so items stay readable in the console.
type postItem struct {
	ID        string `dynamodbav:"id"`
	Title     string `dynamodbav:"title,omitempty"`
	Content   string `dynamodbav:"content,omitempty"`
	ImagePath string `dynamodbav:"image_path,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

func toPostItem(e *entity.Post) *postItem {
	if e == nil {
		return nil
	}

	return &postItem{
		ID:        e.ID,
		Title:     e.Title,
		Content:   e.Content,
		ImagePath: e.ImagePath,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toPostEntity(item *postItem) *entity.Post {
	if item == nil {
		return nil
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)

	return &entity.Post{
		ID:        item.ID,
		Title:     item.Title,
		Content:   item.Content,
		ImagePath: item.ImagePath,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
