package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"casa_portal_go/apiclient"
	"casa_portal_go/config"
	"casa_portal_go/db"
	"casa_portal_go/services"
	"casa_portal_go/services/formcache"

	"go.uber.org/zap"
)

const usage = `Usage: formcache <command>

Commands:
  warm    fetch field metadata for every configured form into the cache
  list    show cached forms
  clear   remove every cached form`

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(2)
	}

	// Load configuration
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Open the same database the server uses for FORM_META_CACHE=sqlite
	conn, err := db.Open(cfg.DBPath, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close(conn)

	cache, err := formcache.NewGormCache(conn, cfg.FormMetaCacheTTL)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch os.Args[1] {
	case "warm":
		warm(ctx, cfg, logger, cache)
	case "list":
		list(ctx, cache)
	case "clear":
		n, err := cache.Clear(ctx)
		if err != nil {
			log.Fatalf("Failed to clear cache: %v", err)
		}
		fmt.Printf("✓ Removed %d cached forms\n", n)
	default:
		fmt.Println(usage)
		os.Exit(2)
	}
}

func warm(ctx context.Context, cfg *config.Config, logger *zap.Logger, cache *formcache.GormCache) {
	api := apiclient.New(cfg, logger)
	forms := services.NewFormService(api, logger, cache, cfg.FormIDs)

	failed := 0
	for _, name := range forms.FormNames() {
		def, _ := forms.Definition(name)
		meta, err := forms.GetFormMeta(ctx, def.FormID)
		if err != nil {
			failed++
			fmt.Printf("✗ %s (form %d): %v\n", name, def.FormID, err)
			continue
		}
		fmt.Printf("✓ %s (form %d): %q, %d fields\n", name, def.FormID, meta.Title, len(meta.Fields))
	}

	if failed > 0 {
		log.Fatalf("%d forms could not be fetched", failed)
	}
}

func list(ctx context.Context, cache *formcache.GormCache) {
	entries, err := cache.List(ctx)
	if err != nil {
		log.Fatalf("Failed to list cache: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("Cache is empty")
		return
	}
	for _, e := range entries {
		fmt.Printf("  %4d  %-40s %3d fields  fetched %s\n", e.FormID, e.Title, e.Fields, e.FetchedAt.Format(time.RFC3339))
	}
}
