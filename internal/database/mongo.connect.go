package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dungeon_talk/config"
	"dungeon_talk/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrEmptyConnectionURI: chưa cấu hình MONGODB_CONNECTION_URI
var ErrEmptyConnectionURI = errors.New("database connection URL is empty")

// clientOptions trả về options kết nối cho một lần chạy công cụ
func clientOptions(c *config.Configuration) *options.ClientOptions {
	// Công cụ chạy tuần tự nên pool nhỏ là đủ
	return options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetAppName("dungeon_talk-indexer").
		SetMaxPoolSize(2).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(c.Timeout())
}

// GetInstance initializes and returns a *mongo.Client object.
// This function uses the database connection URL from the provided configuration.
//
// Parameters:
// - c: Pointer to the config.Configuration object containing configuration information.
//
// Returns:
// - *mongo.Client: The connected MongoDB client object.
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c == nil || c.MongoDB_ConnectionURI == "" {
		return nil, ErrEmptyConnectionURI
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(c))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Kiểm tra kết nối
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := client.Ping(ctxPing, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GetAppLogger().Info("Successfully connected to MongoDB")
	return client, nil
}

// CloseInstance closes the MongoDB client connection.
func CloseInstance(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logger.GetAppLogger().WithError(err).Error("Failed to disconnect MongoDB client")
		return err
	}
	logger.GetAppLogger().Info("Successfully disconnected from MongoDB")
	return nil
}
