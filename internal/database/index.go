package database

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexField là một khóa của index
type IndexField struct {
	Name  string // Tên field trong document
	Order int    // 1 tăng dần, -1 giảm dần
}

// IndexSpec mô tả một index cần tồn tại trên collection
type IndexSpec struct {
	Name        string       // Tên index, cố định để chạy lại không tạo trùng
	Description string       // Mô tả truy vấn mà index phục vụ
	Fields      []IndexField // Các khóa theo đúng thứ tự
	Background  bool         // Build nền, không chặn đọc/ghi trên collection
}

// IndexInfo là một bản ghi trong danh sách index của collection (listIndexes)
type IndexInfo struct {
	Name       string `bson:"name"`
	Key        bson.D `bson:"key"`
	Version    int32  `bson:"v,omitempty"`
	Unique     bool   `bson:"unique,omitempty"`
	Sparse     bool   `bson:"sparse,omitempty"`
	Background bool   `bson:"background,omitempty"`
}

// Keys trả về key specification theo đúng thứ tự khai báo
func (s IndexSpec) Keys() bson.D {
	keys := make(bson.D, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, bson.E{Key: f.Name, Value: f.Order})
	}
	return keys
}

// Model chuyển IndexSpec thành mongo.IndexModel để gửi createIndexes
func (s IndexSpec) Model() mongo.IndexModel {
	opts := options.Index().SetName(s.Name)
	if s.Background {
		opts = opts.SetBackground(true)
	}
	return mongo.IndexModel{
		Keys:    s.Keys(),
		Options: opts,
	}
}

// Validate kiểm tra IndexSpec trước khi gửi lên server
func (s IndexSpec) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return errors.New("index name is empty")
	}
	if len(s.Fields) == 0 {
		return fmt.Errorf("index %s has no fields", s.Name)
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("index %s has a field with empty name", s.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("index %s repeats field %s", s.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Order != 1 && f.Order != -1 {
			return fmt.Errorf("index %s field %s: order must be 1 or -1, got %d", s.Name, f.Name, f.Order)
		}
	}
	return nil
}

// FormatKey in key specification dạng {"field":1,"other":-1}, giữ nguyên thứ tự khóa
func FormatKey(key bson.D) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range key {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Quote(e.Key))
		b.WriteByte(':')
		b.WriteString(formatKeyValue(e.Value))
	}
	b.WriteByte('}')
	return b.String()
}

func formatKeyValue(v interface{}) string {
	if s, ok := v.(string); ok {
		// text, 2dsphere, hashed ...
		return strconv.Quote(s)
	}
	if f, ok := keyDirection(v); ok {
		if f == math.Trunc(f) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// keyDirection chuyển giá trị hướng sắp xếp về float64.
// Server có thể trả int32, int64 hoặc double tùy cách index được tạo.
func keyDirection(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
