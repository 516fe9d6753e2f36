package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"dungeon_talk/internal/database"
	"dungeon_talk/internal/global"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listOnlyCatalog trả về danh sách index cố định
type listOnlyCatalog struct {
	docs []interface{}
}

func (c listOnlyCatalog) CreateOne(context.Context, mongo.IndexModel, ...*options.CreateIndexesOptions) (string, error) {
	return "", mongo.CommandError{Code: 13, Name: "Unauthorized"}
}

func (c listOnlyCatalog) List(context.Context, ...*options.ListIndexesOptions) (*mongo.Cursor, error) {
	return mongo.NewCursorFromDocuments(c.docs, nil, nil)
}

func indexDoc(name string, key bson.D) bson.D {
	return bson.D{{Key: "v", Value: int32(2)}, {Key: "key", Value: key}, {Key: "name", Value: name}}
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := rootCommand()

	for _, name := range []string{"ensure", "list", "verify"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("collection"))
	assert.NotNil(t, root.PersistentFlags().Lookup("env-file"))
}

func TestPrintIndexList(t *testing.T) {
	catalog := listOnlyCatalog{docs: []interface{}{
		indexDoc("_id_", bson.D{{Key: "_id", Value: int32(1)}}),
		indexDoc(database.IndexRoomCreatedDesc, bson.D{{Key: "aiGameRoomId", Value: int32(1)}, {Key: "createdAt", Value: int32(-1)}}),
	}}

	var buf bytes.Buffer
	require.NoError(t, printIndexList(context.Background(), catalog, "ai_game_messages", &buf))
	assert.Contains(t, buf.String(), "index: _id_ | key: {\"_id\":1}\n")
	assert.Contains(t, buf.String(), "total: 2\n")
}

func TestVerifyCatalog(t *testing.T) {
	complete := listOnlyCatalog{docs: []interface{}{
		indexDoc("_id_", bson.D{{Key: "_id", Value: int32(1)}}),
		indexDoc(database.IndexRoomCreatedDesc, bson.D{{Key: "aiGameRoomId", Value: int32(1)}, {Key: "createdAt", Value: int32(-1)}}),
		indexDoc(database.IndexRoomTurnOrder, bson.D{{Key: "aiGameRoomId", Value: int32(1)}, {Key: "turnNumber", Value: int32(1)}, {Key: "messageOrder", Value: int32(1)}}),
	}}

	var buf bytes.Buffer
	require.NoError(t, verifyCatalog(context.Background(), complete, "ai_game_messages", &buf))
	assert.Equal(t, "all 2 indexes on ai_game_messages match\n", buf.String())

	partial := listOnlyCatalog{docs: complete.docs[:2]}
	buf.Reset()
	err := verifyCatalog(context.Background(), partial, "ai_game_messages", &buf)
	assert.ErrorIs(t, err, errIndexesMismatch)
	assert.Contains(t, buf.String(), database.IndexRoomTurnOrder+": missing")
}

func TestApplyCollectionOverride(t *testing.T) {
	global.InitValidator()
	global.MongoDB_ColNames.AiGameMessages = "ai_game_messages"
	t.Cleanup(func() { global.MongoDB_ColNames = global.MongoDB_CollectionName{} })

	require.NoError(t, applyCollectionOverride(""))
	assert.Equal(t, "ai_game_messages", global.MongoDB_ColNames.AiGameMessages)

	for _, bad := range []string{"system.x", "a$b"} {
		err := applyCollectionOverride(bad)
		require.Error(t, err, bad)
		assert.Contains(t, err.Error(), "invalid --collection")
		assert.Equal(t, "ai_game_messages", global.MongoDB_ColNames.AiGameMessages)
	}

	require.NoError(t, applyCollectionOverride("ai_game_messages_v2"))
	assert.Equal(t, "ai_game_messages_v2", global.MongoDB_ColNames.AiGameMessages)
}

func TestInitGlobal(t *testing.T) {
	for _, k := range []string{"MONGODB_CONNECTION_URI", "MONGODB_DBNAME", "MONGODB_COLLECTION_AI_GAME_MESSAGES", "MONGODB_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
	t.Cleanup(func() {
		global.MongoDB_ServerConfig = nil
		global.MongoDB_ColNames = global.MongoDB_CollectionName{}
	})

	dir := t.TempDir()
	good := filepath.Join(dir, "good.env")
	require.NoError(t, os.WriteFile(good, []byte(
		"MONGODB_CONNECTION_URI=mongodb://localhost:27017\nMONGODB_DBNAME=dungeontalk\nMONGODB_COLLECTION_AI_GAME_MESSAGES=ai_msgs\n"), 0o600))

	require.NoError(t, InitGlobal(good))
	assert.Equal(t, "dungeontalk", global.MongoDB_ServerConfig.MongoDB_DBName)
	assert.Equal(t, "ai_msgs", global.MongoDB_ColNames.AiGameMessages)
}

func TestInitGlobal_InvalidURI(t *testing.T) {
	t.Setenv("MONGODB_CONNECTION_URI", "postgres://localhost/db")
	t.Setenv("MONGODB_DBNAME", "dungeontalk")
	t.Cleanup(func() { global.MongoDB_ServerConfig = nil })

	err := InitGlobal(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Nil(t, global.MongoDB_ServerConfig)
}
