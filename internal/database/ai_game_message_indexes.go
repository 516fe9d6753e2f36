// Package database - Index cho collection tin nhắn game AI theo lượt.
package database

import (
	"context"
	"io"

	"go.mongodb.org/mongo-driver/mongo"
)

// Tên index cố định để chạy lại là no-op
const (
	IndexRoomCreatedDesc = "idx_room_created_desc"
	IndexRoomTurnOrder   = "idx_room_turn_order"
)

// AiGameMessageIndexes trả về các index của collection tin nhắn game AI, theo thứ tự tạo
func AiGameMessageIndexes() []IndexSpec {
	return []IndexSpec{
		{
			// Tin nhắn gần nhất của một phòng (context cho AI)
			Name:        IndexRoomCreatedDesc,
			Description: "recent messages of a game room",
			Fields: []IndexField{
				{Name: "aiGameRoomId", Order: 1},
				{Name: "createdAt", Order: -1},
			},
			Background: true,
		},
		{
			// Tin nhắn theo lượt và thứ tự trong lượt
			Name:        IndexRoomTurnOrder,
			Description: "messages of a room in turn and message order",
			Fields: []IndexField{
				{Name: "aiGameRoomId", Order: 1},
				{Name: "turnNumber", Order: 1},
				{Name: "messageOrder", Order: 1},
			},
			Background: true,
		},
	}
}

// ProvisionAiGameMessageIndexes tạo các index tin nhắn game AI trên db.collection và in kết quả ra w
func ProvisionAiGameMessageIndexes(ctx context.Context, db *mongo.Database, collection string, w io.Writer) error {
	view := db.Collection(collection).Indexes()
	return ProvisionIndexes(ctx, view, collection, AiGameMessageIndexes(), w)
}
