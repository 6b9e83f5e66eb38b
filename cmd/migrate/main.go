// migrate applies the local preferences-store schema from embedded SQL; run via go run ./cmd/migrate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"serviflex/mobile/internal/config"
	"serviflex/mobile/internal/store/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		fmt.Fprintln(os.Stderr, "data dir:", err)
		os.Exit(1)
	}

	dbPath := filepath.Join(cfg.DataDir, "prefs.db")
	if err := migrate.Run(dbPath, *direction); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			// Already at target version; success.
			return
		}
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}
