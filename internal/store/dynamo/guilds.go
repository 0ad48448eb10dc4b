package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/robuddie/robuddie/internal/domain"
)

// GuildStore manages per-guild verification configuration.
// PK: guild_id
type GuildStore struct {
	client    *dynamodb.Client
	tableName string
}

func NewGuildStore(client *dynamodb.Client, tableName string) *GuildStore {
	return &GuildStore{client: client, tableName: tableName}
}

func (s *GuildStore) Put(ctx context.Context, g *domain.GuildConfig) error {
	item, err := attributevalue.MarshalMap(g)
	if err != nil {
		return fmt.Errorf("marshal guild config: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	return err
}

func (s *GuildStore) Get(ctx context.Context, guildID string) (*domain.GuildConfig, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       strKey("guild_id", guildID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("config for guild %s: %w", guildID, domain.ErrNotFound)
	}
	var g domain.GuildConfig
	if err := attributevalue.UnmarshalMap(out.Item, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *GuildStore) Count(ctx context.Context) (int, error) {
	return scanCount(ctx, s.client, s.tableName)
}
