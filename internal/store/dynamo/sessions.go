package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/robuddie/robuddie/internal/domain"
)

// SessionStore manages pending verification sessions.
// PK: user_id
type SessionStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewSessionStore(client *dynamodb.Client, tableName string) *SessionStore {
	return &SessionStore{client: client, tableName: tableName}
}

func (s *SessionStore) Put(ctx context.Context, v *domain.VerificationSession) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	return err
}

func (s *SessionStore) Get(ctx context.Context, userID string) (*domain.VerificationSession, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("user_id", userID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("session for user %s: %w", userID, domain.ErrNotFound)
	}
	var v domain.VerificationSession
	if err := attributevalue.UnmarshalMap(out.Item, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("user_id", userID),
	})
	return err
}

func (s *SessionStore) Count(ctx context.Context) (int, error) {
	return scanCount(ctx, s.client, s.tableName)
}

// strKey builds a DynamoDB primary key map with a single string attribute.
func strKey(name, value string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		name: &types.AttributeValueMemberS{Value: value},
	}
}

// scanCount runs a COUNT scan across all pages of the table.
func scanCount(ctx context.Context, client *dynamodb.Client, tableName string) (int, error) {
	var total int
	var startKey map[string]types.AttributeValue
	for {
		out, err := client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(tableName),
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if out.LastEvaluatedKey == nil {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
}
