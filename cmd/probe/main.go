// Command probe prints the store connectivity report that the API serves on /test.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"io"
	"os"
	"time"

	"github.com/pawshearts/pawshearts/backend/go-services/internal/config"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/database"
	"github.com/pawshearts/pawshearts/backend/go-services/internal/diagnostics"
	"github.com/pawshearts/pawshearts/backend/go-services/pkg/logger"
)

func main() {
	strict := flag.Bool("strict", false, "exit non-zero unless the database is connected and working")
	flag.Parse()
	os.Exit(run(*strict, os.Stdout))
}

func run(strict bool, out io.Writer) int {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Errorf("failed to load config: %v", err)
		return 1
	}
	logger.Init(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout+5*time.Second)
	defer cancel()

	// the listing inside Probe is the reachability check, no separate ping
	var db diagnostics.Inspector
	if cfg.Database.URL != "" {
		h, err := database.OpenMongo(cfg.Database)
		if err != nil {
			logger.Warnf("could not create MongoDB client: %v", err)
		} else {
			defer func() { _ = h.Close(context.Background()) }()
			db = h.DB
		}
	}

	report := diagnostics.Probe(ctx, db, cfg.Database.URL != "")
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		logger.Errorf("encode report: %v", err)
		return 1
	}
	if strict && report.Database != diagnostics.DatabaseWorking {
		return 1
	}
	return 0
}
