package dynamo

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/robuddie/robuddie/internal/config"
)

// Bootstrap creates both tables if they don't already exist.
// Safe to call on every startup — skips tables that already exist.
func Bootstrap(ctx context.Context, client *dynamodb.Client, tables config.DynamoTables) {
	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Sessions),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("user_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("user_id"), KeyType: types.KeyTypeHash},
		},
	})

	createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tables.Guilds),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("guild_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("guild_id"), KeyType: types.KeyTypeHash},
		},
	})
}

func createTable(ctx context.Context, client *dynamodb.Client, input *dynamodb.CreateTableInput) {
	_, err := client.CreateTable(ctx, input)
	if err != nil {
		// ResourceInUseException means the table already exists — that's fine.
		var riue *types.ResourceInUseException
		if !errors.As(err, &riue) {
			slog.Warn("could not create table", "table", *input.TableName, "err", err)
		}
	} else {
		slog.Info("created table", "table", *input.TableName)
	}
}
