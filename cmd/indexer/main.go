// Command indexer tạo và kiểm tra index cho collection tin nhắn game AI.
//
// Chạy: go run ./cmd/indexer [ensure|list|verify]
package main

import (
	"os"

	"dungeon_talk/internal/logger"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		logger.GetAppLogger().WithError(err).Error("indexer failed")
		os.Exit(1)
	}
}
