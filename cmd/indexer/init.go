package main

import (
	"fmt"

	"dungeon_talk/config"
	"dungeon_talk/internal/database"
	"dungeon_talk/internal/global"
	"dungeon_talk/internal/logger"
)

// initLogger khởi tạo logger cho toàn bộ công cụ
func initLogger() error {
	if err := logger.Init(nil); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal(envFiles ...string) error {
	initValidator()
	if err := initConfig(envFiles...); err != nil {
		return err
	}
	// Khởi tạo lại logger để áp dụng LOG_* từ file env vừa nạp
	if err := initLogger(); err != nil {
		return err
	}
	initColNames()
	return nil
}

// Hàm khởi tạo validator
func initValidator() {
	global.InitValidator()
}

// Hàm khởi tạo cấu hình, dừng ngay nếu thiếu hoặc sai
func initConfig(envFiles ...string) error {
	cfg, err := config.NewConfig(envFiles...)
	if err != nil {
		return err
	}
	if err := global.Validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	global.MongoDB_ServerConfig = cfg
	return nil
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.AiGameMessages = global.MongoDB_ServerConfig.MongoDB_ColAiGameMessages
	logger.GetAppLogger().WithField("aiGameMessages", global.MongoDB_ColNames.AiGameMessages).Debug("Initialized collection names")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() error {
	client, err := database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		return err
	}
	global.MongoDB_Session = client
	return nil
}

// closeDatabase_MongoDB đóng kết nối nếu đã mở
func closeDatabase_MongoDB() {
	if global.MongoDB_Session == nil {
		return
	}
	_ = database.CloseInstance(global.MongoDB_Session)
	global.MongoDB_Session = nil
}
