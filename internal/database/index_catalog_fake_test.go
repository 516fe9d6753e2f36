package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeIndexCatalog giả lập listIndexes/createIndexes của server trong bộ nhớ
type fakeIndexCatalog struct {
	indexes   []IndexInfo
	requested []string         // tên index theo thứ tự CreateOne được gọi
	createErr map[string]error // lỗi trả về cho CreateOne theo tên index
	listErr   error
	listCalls int
}

func newFakeIndexCatalog(existing ...IndexInfo) *fakeIndexCatalog {
	f := &fakeIndexCatalog{
		indexes: []IndexInfo{{
			Name:    "_id_",
			Key:     bson.D{{Key: "_id", Value: int32(1)}},
			Version: 2,
		}},
		createErr: map[string]error{},
	}
	f.indexes = append(f.indexes, existing...)
	return f
}

func (f *fakeIndexCatalog) CreateOne(_ context.Context, model mongo.IndexModel, _ ...*options.CreateIndexesOptions) (string, error) {
	keys, ok := model.Keys.(bson.D)
	if !ok {
		return "", fmt.Errorf("unexpected keys type %T", model.Keys)
	}
	name := ""
	if model.Options != nil && model.Options.Name != nil {
		name = *model.Options.Name
	}
	f.requested = append(f.requested, name)

	if err, ok := f.createErr[name]; ok {
		return "", err
	}

	for _, idx := range f.indexes {
		if idx.Name == name {
			if compareKeys(idx.Key, keys) {
				return name, nil
			}
			return "", mongo.CommandError{
				Code:    86,
				Name:    "IndexKeySpecsConflict",
				Message: "An existing index has the same name as the requested index. Requested index: " + name,
			}
		}
		if compareKeys(idx.Key, keys) {
			return "", mongo.CommandError{
				Code:    85,
				Name:    "IndexOptionsConflict",
				Message: "Index already exists with a different name: " + idx.Name,
			}
		}
	}

	// Server lưu hướng sắp xếp dạng int32
	stored := make(bson.D, 0, len(keys))
	for _, e := range keys {
		v := e.Value
		if n, ok := v.(int); ok {
			v = int32(n)
		}
		stored = append(stored, bson.E{Key: e.Key, Value: v})
	}
	background := model.Options != nil && model.Options.Background != nil && *model.Options.Background
	f.indexes = append(f.indexes, IndexInfo{Name: name, Key: stored, Version: 2, Background: background})
	return name, nil
}

func (f *fakeIndexCatalog) List(_ context.Context, _ ...*options.ListIndexesOptions) (*mongo.Cursor, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	docs := make([]interface{}, 0, len(f.indexes))
	for _, idx := range f.indexes {
		doc := bson.D{
			{Key: "v", Value: idx.Version},
			{Key: "key", Value: idx.Key},
			{Key: "name", Value: idx.Name},
		}
		if idx.Background {
			doc = append(doc, bson.E{Key: "background", Value: true})
		}
		docs = append(docs, doc)
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *fakeIndexCatalog) names() []string {
	out := make([]string, 0, len(f.indexes))
	for _, idx := range f.indexes {
		out = append(out, idx.Name)
	}
	return out
}

func (f *fakeIndexCatalog) find(name string) (IndexInfo, bool) {
	for _, idx := range f.indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return IndexInfo{}, false
}
