package global

import (
	"dungeon_talk/config"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	AiGameMessages string // Tên collection cho tin nhắn game AI theo lượt
}

// Các biến toàn cục
var (
	Validate             *validator.Validate    // Biến để xác thực dữ liệu
	MongoDB_Session      *mongo.Client          // Phiên kết nối tới MongoDB
	MongoDB_ServerConfig *config.Configuration  // Cấu hình đã nạp
	MongoDB_ColNames     MongoDB_CollectionName // Tên các collection
)
