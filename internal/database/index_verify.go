package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// IndexMismatch mô tả một index không khớp với định nghĩa
type IndexMismatch struct {
	Name   string
	Reason string
	Want   string // key mong muốn
	Got    string // key hiện có, rỗng nếu index không tồn tại
}

func (m IndexMismatch) String() string {
	if m.Got == "" {
		return fmt.Sprintf("%s: %s (want %s)", m.Name, m.Reason, m.Want)
	}
	return fmt.Sprintf("%s: %s (want %s, got %s)", m.Name, m.Reason, m.Want, m.Got)
}

// VerifyIndexes so sánh specs với catalog, trả về danh sách index thiếu hoặc sai khóa
func VerifyIndexes(specs []IndexSpec, catalog []IndexInfo) []IndexMismatch {
	byName := make(map[string]IndexInfo, len(catalog))
	for _, info := range catalog {
		byName[info.Name] = info
	}

	var mismatches []IndexMismatch
	for _, spec := range specs {
		want := spec.Keys()
		info, ok := byName[spec.Name]
		if !ok {
			mismatches = append(mismatches, IndexMismatch{
				Name:   spec.Name,
				Reason: "missing",
				Want:   FormatKey(want),
			})
			continue
		}
		if !compareKeys(info.Key, want) {
			mismatches = append(mismatches, IndexMismatch{
				Name:   spec.Name,
				Reason: "key mismatch",
				Want:   FormatKey(want),
				Got:    FormatKey(info.Key),
			})
		}
	}
	return mismatches
}

// compareKeys so sánh hai key specification, tính cả thứ tự field
func compareKeys(existing, want bson.D) bool {
	if len(existing) != len(want) {
		return false
	}
	for i, key := range want {
		if existing[i].Key != key.Key {
			return false
		}

		// Xử lý cho trường hợp 1 / -1
		wantDir, wantNum := keyDirection(key.Value)
		gotDir, gotNum := keyDirection(existing[i].Value)
		if wantNum || gotNum {
			if !wantNum || !gotNum || wantDir != gotDir {
				return false
			}
			continue
		}

		// fallback cho index kiểu "text", "hashed"...
		wantStr, ok1 := key.Value.(string)
		gotStr, ok2 := existing[i].Value.(string)
		if !ok1 || !ok2 || wantStr != gotStr {
			return false
		}
	}
	return true
}

// CheckIndexes đọc catalog hiện tại của collection và so với specs
func CheckIndexes(ctx context.Context, view IndexCatalog, specs []IndexSpec) ([]IndexMismatch, error) {
	catalog, err := ListIndexes(ctx, view)
	if err != nil {
		return nil, err
	}
	return VerifyIndexes(specs, catalog), nil
}
