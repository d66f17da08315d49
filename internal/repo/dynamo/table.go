package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

const (
	// DefaultTableName is used when no table name override is configured.
	DefaultTableName = "posts"

	// DefaultWaitTimeout bounds the readiness wait after table creation.
	DefaultWaitTimeout = 60 * time.Second

	pollInterval = time.Second
)

// EnsureTable checks for the table and creates it when missing: a single
// string hash key `id`, on-demand billing. It returns whether a create
// was issued; a freshly created table is not usable until
// WaitForTableActive reports it ACTIVE.
func EnsureTable(client dynamodbiface.DynamoDBAPI, tableName string) (bool, error) {
	_, err := client.DescribeTable(&dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err == nil {
		return false, nil
	}

	aerr, ok := err.(awserr.Error)
	if !ok || aerr.Code() != dynamodb.ErrCodeResourceNotFoundException {
		return false, fmt.Errorf("failed to describe table %s: %w", tableName, err)
	}

	_, err = client.CreateTable(&dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String("id"),
				KeyType:       aws.String(dynamodb.KeyTypeHash),
			},
		},
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String("id"),
				AttributeType: aws.String(dynamodb.ScalarAttributeTypeS),
			},
		},
		BillingMode: aws.String(dynamodb.BillingModePayPerRequest),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}
	return true, nil
}

// WaitForTableActive polls the table status every second until it is
// ACTIVE or the timeout elapses. The caller must not serve traffic
// until this returns nil.
func WaitForTableActive(ctx context.Context, client dynamodbiface.DynamoDBAPI, tableName string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		out, err := client.DescribeTable(&dynamodb.DescribeTableInput{
			TableName: aws.String(tableName),
		})
		if err != nil {
			return fmt.Errorf("failed to describe table %s: %w", tableName, err)
		}
		if aws.StringValue(out.Table.TableStatus) == dynamodb.TableStatusActive {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pollInterval):
		}
	}
	return fmt.Errorf("table %s not ACTIVE after %s", tableName, timeout)
}
