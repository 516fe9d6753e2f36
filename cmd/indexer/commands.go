package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"dungeon_talk/internal/database"
	"dungeon_talk/internal/global"
	"dungeon_talk/internal/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
)

var errIndexesMismatch = errors.New("indexes do not match the expected definitions")

var (
	envFile    string
	collection string
)

// rootCommand dựng cây lệnh; chạy không có subcommand tương đương "ensure"
func rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "indexer",
		Short:         "Provision indexes for the AI game message collection",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, runEnsure)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load instead of config/env/<GO_ENV>.env")
	root.PersistentFlags().StringVar(&collection, "collection", "", "override MONGODB_COLLECTION_AI_GAME_MESSAGES")

	root.AddCommand(
		&cobra.Command{
			Use:   "ensure",
			Short: "Create the AI game message indexes and print the index catalog",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(cmd, runEnsure)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Print every index on the collection",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(cmd, runList)
			},
		},
		&cobra.Command{
			Use:   "verify",
			Short: "Check that the AI game message indexes exist with the expected keys",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withDatabase(cmd, runVerify)
			},
		},
	)
	return root
}

type databaseFunc func(ctx context.Context, db *mongo.Database, collection string, w io.Writer) error

// withDatabase nạp cấu hình, kết nối MongoDB rồi chạy fn trên database đích
func withDatabase(cmd *cobra.Command, fn databaseFunc) error {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	if err := InitGlobal(files...); err != nil {
		return err
	}
	if err := applyCollectionOverride(collection); err != nil {
		return err
	}

	if err := initDatabase_MongoDB(); err != nil {
		return err
	}
	defer closeDatabase_MongoDB()

	cfg := global.MongoDB_ServerConfig
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	coll := global.MongoDB_ColNames.AiGameMessages
	logger.GetAppLogger().WithFields(logrus.Fields{
		"database":   cfg.MongoDB_DBName,
		"collection": coll,
		"command":    cmd.Name(),
	}).Info("Running")

	db := global.MongoDB_Session.Database(cfg.MongoDB_DBName)
	return fn(ctx, db, coll, cmd.OutOrStdout())
}

// applyCollectionOverride áp dụng --collection sau khi kiểm tra cùng luật với cấu hình
func applyCollectionOverride(name string) error {
	if name == "" {
		return nil
	}
	if err := global.Validate.Var(name, "required,mongo_collection"); err != nil {
		return fmt.Errorf("invalid --collection %q: %w", name, err)
	}
	global.MongoDB_ColNames.AiGameMessages = name
	return nil
}

func runEnsure(ctx context.Context, db *mongo.Database, coll string, w io.Writer) error {
	return database.ProvisionAiGameMessageIndexes(ctx, db, coll, w)
}

func runList(ctx context.Context, db *mongo.Database, coll string, w io.Writer) error {
	return printIndexList(ctx, db.Collection(coll).Indexes(), coll, w)
}

func runVerify(ctx context.Context, db *mongo.Database, coll string, w io.Writer) error {
	return verifyCatalog(ctx, db.Collection(coll).Indexes(), coll, w)
}

func printIndexList(ctx context.Context, view database.IndexCatalog, coll string, w io.Writer) error {
	indexes, err := database.ListIndexes(ctx, view)
	if err != nil {
		return err
	}
	return database.PrintIndexes(w, coll, indexes)
}

func verifyCatalog(ctx context.Context, view database.IndexCatalog, coll string, w io.Writer) error {
	mismatches, err := database.CheckIndexes(ctx, view, database.AiGameMessageIndexes())
	if err != nil {
		return err
	}
	return printVerifyResult(w, coll, mismatches)
}

func printVerifyResult(w io.Writer, coll string, mismatches []database.IndexMismatch) error {
	if len(mismatches) == 0 {
		_, err := fmt.Fprintf(w, "all %d indexes on %s match\n", len(database.AiGameMessageIndexes()), coll)
		return err
	}
	for _, m := range mismatches {
		if _, err := fmt.Fprintln(w, m.String()); err != nil {
			return err
		}
	}
	return fmt.Errorf("%w: %d problem(s) on %s", errIndexesMismatch, len(mismatches), coll)
}
