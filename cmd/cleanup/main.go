// Command cleanup removes orphaned objects from the blob store: objects
// whose media row is gone, typically left behind when a best-effort blob
// delete failed after its metadata delete succeeded. It is intended to be
// invoked by an external cron job, not as an in-process goroutine.
//
// Objects with a key date within the grace period are skipped so an upload
// racing the cleanup is never collected.
//
// Flags:
//
//	--dry-run      list orphans without deleting
//	--grace-days   skip objects dated within the last N days (default: 2)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/family-timeline/internal/adapter/blob"
	"github.com/heartmarshall/family-timeline/internal/adapter/postgres"
	"github.com/heartmarshall/family-timeline/internal/adapter/postgres/media"
	"github.com/heartmarshall/family-timeline/internal/app"
	"github.com/heartmarshall/family-timeline/internal/config"
)

func main() {
	dryRunFlag := flag.Bool("dry-run", false, "list orphans without deleting")
	graceDaysFlag := flag.Int("grace-days", 2, "skip objects dated within the last N days")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	blobs, err := blob.NewStore(ctx, cfg.Storage)
	if err != nil {
		logger.Error("connect to object store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	mediaRepo := media.New(pool)

	referenced, err := mediaRepo.ListStorageKeys(ctx)
	if err != nil {
		logger.Error("list storage keys", slog.String("error", err.Error()))
		os.Exit(1)
	}

	keys, err := blobs.Keys(ctx)
	if err != nil {
		logger.Error("list bucket", slog.String("error", err.Error()))
		os.Exit(1)
	}

	known := make(map[string]struct{}, len(referenced))
	for _, k := range referenced {
		known[k] = struct{}{}
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -*graceDaysFlag)

	var orphans, skipped, failed int
	for _, key := range keys {
		if _, ok := known[key]; ok {
			continue
		}
		if day, ok := keyDate(key); ok && day.After(cutoff) {
			skipped++
			continue
		}

		orphans++
		if *dryRunFlag {
			logger.Info("orphan found", slog.String("key", key))
			continue
		}

		if err := blobs.Delete(ctx, key); err != nil {
			failed++
			logger.Error("delete orphan",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		logger.Info("orphan deleted", slog.String("key", key))
	}

	logger.Info("cleanup completed",
		slog.Int("orphans", orphans),
		slog.Int("skipped_recent", skipped),
		slog.Int("failed", failed),
		slog.Bool("dry_run", *dryRunFlag),
	)

	if failed > 0 {
		os.Exit(1)
	}
}

// keyDate parses the YYYY-MM-DD prefix of a storage key.
func keyDate(key string) (time.Time, bool) {
	prefix, _, ok := strings.Cut(key, "/")
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, prefix)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
