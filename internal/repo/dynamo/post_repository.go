package dynamo

import (
	"fmt"
	"time"

	"swarmpost/internal/entity"
	"swarmpost/internal/repo"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/google/uuid"
)

type postRepository struct {
	client    dynamodbiface.DynamoDBAPI
	tableName string
}

// NewPostRepository returns a PostRepository over a DynamoDB table. The
// table must already be ACTIVE; callers run EnsureTable and
// WaitForTableActive before serving (see app.Run).
func NewPostRepository(client dynamodbiface.DynamoDBAPI, tableName string) repo.PostRepository {
	if tableName == "" {
		tableName = DefaultTableName
	}
	return &postRepository{client: client, tableName: tableName}
}

// GetAll scans the whole table in one unpaginated request. Cost grows
// linearly with table size; fine for the small data sets this serves.
func (r *postRepository) GetAll() ([]*entity.Post, error) {
	out, err := r.client.Scan(&dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan table %s: %w", r.tableName, err)
	}

	var items []postItem
	if err := dynamodbattribute.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}

	posts := make([]*entity.Post, len(items))
	for i := range items {
		posts[i] = toPostEntity(&items[i])
	}
	return posts, nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	out, err := r.client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}

	var item postItem
	if err := dynamodbattribute.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal post %s: %w", id, err)
	}
	return toPostEntity(&item), nil
}

// Create writes the post unconditionally: unlike the in-memory backend,
// PutItem overwrites any existing item with the same id.
func (r *postRepository) Create(post *entity.Post) (*entity.Post, error) {
	stored := *post
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	if err := r.putItem(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// Update loads the existing item, merges the caller's fields and writes
// the whole item back; not a partial patch at the wire level.
func (r *postRepository) Update(post *entity.Post) (*entity.Post, error) {
	existing, err := r.GetByID(post.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	existing.Title = post.Title
	existing.Content = post.Content
	existing.ImagePath = post.ImagePath
	existing.UpdatedAt = time.Now().UTC()

	if err := r.putItem(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *postRepository) Delete(id string) (*entity.Post, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	_, err = r.client.DeleteItem(&dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]*dynamodb.AttributeValue{
			"id": {S: aws.String(id)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return existing, nil
}

func (r *postRepository) putItem(post *entity.Post) error {
	item, err := dynamodbattribute.MarshalMap(toPostItem(post))
	if err != nil {
		return fmt.Errorf("failed to marshal post %s: %w", post.ID, err)
	}

	_, err = r.client.PutItem(&dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put post %s: %w", post.ID, err)
	}
	return nil
}
