package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy công cụ tạo index
type Configuration struct {
	MongoDB_ConnectionURI     string `env:"MONGODB_CONNECTION_URI,required" validate:"required,mongo_uri"`                                          // URL kết nối cơ sở dữ liệu
	MongoDB_DBName            string `env:"MONGODB_DBNAME,required" validate:"required,mongo_dbname"`                                               // Tên cơ sở dữ liệu chứa tin nhắn game AI
	MongoDB_ColAiGameMessages string `env:"MONGODB_COLLECTION_AI_GAME_MESSAGES" envDefault:"ai_game_messages" validate:"required,mongo_collection"` // Collection tin nhắn game AI
	MongoDB_TimeoutSeconds    int    `env:"MONGODB_TIMEOUT_SECONDS" envDefault:"60" validate:"gt=0,lte=3600"`                                       // Timeout cho toàn bộ một lần chạy (giây)
}

// Timeout trả về MongoDB_TimeoutSeconds dưới dạng time.Duration
func (c *Configuration) Timeout() time.Duration {
	return time.Duration(c.MongoDB_TimeoutSeconds) * time.Second
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường.
// Trả về chuỗi rỗng nếu không tìm thấy thư mục config/env.
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Đi lên dần cho tới khi gặp thư mục config/env
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if info, err := os.Stat(envDir); err == nil && info.IsDir() {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc cấu hình từ biến môi trường.
// Nếu có file config/env/<GO_ENV>.env thì nạp trước; các file truyền vào qua files được nạp thay thế.
// Biến đã có sẵn trong môi trường không bị ghi đè.
func NewConfig(files ...string) (*Configuration, error) {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				// Không có file env: dùng biến môi trường của process
				continue
			}
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
