package database

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Mã lỗi server khi index trùng tên/khóa nhưng khác định nghĩa
const (
	codeIndexOptionsConflict  = 85
	codeIndexKeySpecsConflict = 86
)

// ErrIndexConflict: đã có index cùng tên (hoặc cùng khóa) nhưng định nghĩa khác
var ErrIndexConflict = errors.New("index definition conflict")

// IsIndexConflictError kiểm tra lỗi từ driver có phải xung đột định nghĩa index không
func IsIndexConflictError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrIndexConflict) {
		return true
	}

	var se mongo.ServerError
	if errors.As(err, &se) {
		if se.HasErrorCode(codeIndexOptionsConflict) || se.HasErrorCode(codeIndexKeySpecsConflict) {
			return true
		}
	}

	s := err.Error()
	return strings.Contains(s, "already exists with different") ||
		strings.Contains(s, "already exists with a different")
}
