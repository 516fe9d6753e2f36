package database

import (
	"context"
	"fmt"
	"io"

	"dungeon_talk/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexCatalog là phần của mongo.IndexView mà công cụ dùng tới
type IndexCatalog interface {
	CreateOne(ctx context.Context, model mongo.IndexModel, opts ...*options.CreateIndexesOptions) (string, error)
	List(ctx context.Context, opts ...*options.ListIndexesOptions) (*mongo.Cursor, error)
}

var _ IndexCatalog = mongo.IndexView{}

// EnsureIndexes gửi lần lượt từng yêu cầu tạo index theo thứ tự của specs.
// Lỗi đầu tiên dừng toàn bộ, các index phía sau không được gửi.
// Index đã tồn tại với đúng định nghĩa là no-op phía server.
func EnsureIndexes(ctx context.Context, view IndexCatalog, specs []IndexSpec) error {
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("invalid index spec: %w", err)
		}
	}

	log := logger.GetAppLogger()
	for _, spec := range specs {
		name, err := view.CreateOne(ctx, spec.Model())
		if err != nil {
			if IsIndexConflictError(err) {
				return fmt.Errorf("không thể tạo index %s: %w: %w", spec.Name, ErrIndexConflict, err)
			}
			return fmt.Errorf("không thể tạo index %s: %w", spec.Name, err)
		}
		log.WithFields(logrus.Fields{
			"index": name,
			"key":   FormatKey(spec.Keys()),
		}).Info("Index ensured")
	}
	return nil
}

// ForEachIndex duyệt lazy danh sách index của collection qua cursor listIndexes.
// Gọi lại sẽ truy vấn lại catalog. fn trả lỗi thì dừng và trả lỗi đó.
func ForEachIndex(ctx context.Context, view IndexCatalog, fn func(IndexInfo) error) error {
	cursor, err := view.List(ctx)
	if err != nil {
		return fmt.Errorf("không thể lấy danh sách index: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var info IndexInfo
		if err := cursor.Decode(&info); err != nil {
			return fmt.Errorf("không thể giải mã thông tin index: %w", err)
		}
		if err := fn(info); err != nil {
			return err
		}
	}
	return cursor.Err()
}

// ListIndexes trả về toàn bộ index của collection theo thứ tự server trả về
func ListIndexes(ctx context.Context, view IndexCatalog) ([]IndexInfo, error) {
	var indexes []IndexInfo
	err := ForEachIndex(ctx, view, func(info IndexInfo) error {
		indexes = append(indexes, info)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return indexes, nil
}

// PrintIndexes in danh sách index dạng text cho người vận hành
func PrintIndexes(w io.Writer, collection string, indexes []IndexInfo) error {
	if _, err := fmt.Fprintf(w, "=== Indexes on %s ===\n", collection); err != nil {
		return err
	}
	for _, idx := range indexes {
		if _, err := fmt.Fprintf(w, "index: %s | key: %s\n", idx.Name, FormatKey(idx.Key)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "total: %d\n", len(indexes))
	return err
}

// ProvisionIndexes đảm bảo specs tồn tại trên collection rồi in danh sách index hiện có ra w
func ProvisionIndexes(ctx context.Context, view IndexCatalog, collection string, specs []IndexSpec, w io.Writer) error {
	log := logger.GetAppLogger().WithField("collection", collection)
	log.Info("Bắt đầu tạo index")

	// Kiểm tra index hiện có trước khi tạo
	existing := make(map[string]bool)
	if err := ForEachIndex(ctx, view, func(info IndexInfo) error {
		existing[info.Name] = true
		return nil
	}); err != nil {
		return err
	}
	log.WithField("count", len(existing)).Info("Existing indexes")
	for _, spec := range specs {
		if existing[spec.Name] {
			log.WithField("index", spec.Name).Debug("Index đã tồn tại, gửi lại để server xác nhận định nghĩa")
		}
	}

	if err := EnsureIndexes(ctx, view, specs); err != nil {
		return err
	}

	indexes, err := ListIndexes(ctx, view)
	if err != nil {
		return err
	}
	log.WithField("count", len(indexes)).Info("Hoàn tất tạo index")

	return PrintIndexes(w, collection, indexes)
}
