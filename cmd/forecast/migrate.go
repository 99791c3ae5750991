package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andresuchdata/popar-tracker/pkg/logger"
	"github.com/urfave/cli/v2"
)

// migrate executes every *.sql file of the directory in name order. The
// bundled migrations are idempotent, so re-running them is safe.
func migrate(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	files, err := filepath.Glob(filepath.Join(c.String("dir"), "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no migrations found in %s", c.String("dir"))
	}
	sort.Strings(files)

	for _, path := range files {
		script, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if _, err := db.ExecContext(c.Context, string(script)); err != nil {
			return fmt.Errorf("failed to apply %s: %w", filepath.Base(path), err)
		}
		logger.Log.Info().Str("file", filepath.Base(path)).Msg("migrate: applied")
	}

	return nil
}
