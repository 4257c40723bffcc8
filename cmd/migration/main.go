package main

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
)

var defaultMigrationDirs = []string{"./db/migrations", "/app/db/migrations"}

func main() {
	_ = godotenv.Load()
	logger := logging.NewJSON(logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	if err := run(os.Args[1:], logger); err != nil {
		logger.Error("migration failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func run(args []string, logger *logging.Logger) error {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	if disable, _ := strconv.ParseBool(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")); disable {
		dbURL = withPreparedBinaryDisabled(dbURL)
	}

	dir, err := resolveMigrationsDir(os.Getenv("MIGRATIONS_DIR"))
	if err != nil {
		return err
	}
	sourceURL := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(sourceURL, dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("close migrator failed", "source_error", srcErr, "db_error", dbErr)
		}
	}()

	command := strings.ToLower(strings.TrimSpace(args[0]))
	switch command {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return err
		}
	case "down":
		steps, err := parsePositive(args[1:], 1)
		if err != nil {
			return fmt.Errorf("down steps: %w", err)
		}
		if err := ignoreNoChange(m.Steps(-steps)); err != nil {
			return err
		}
	case "goto":
		if len(args) < 2 {
			return errors.New("goto requires a target version")
		}
		target, err := strconv.ParseUint(strings.TrimSpace(args[1]), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target version %q: %w", args[1], err)
		}
		if err := ignoreNoChange(m.Migrate(uint(target))); err != nil {
			return err
		}
	case "force":
		if len(args) < 2 {
			return errors.New("force requires a version")
		}
		version, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil || version < -1 {
			return fmt.Errorf("invalid force version %q", args[1])
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			logger.Info("schema version", "version", "none", "dirty", false)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		logger.Info("schema version", "version", version, "dirty", dirty)
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}

	logger.Info("migration finished", "command", command, "source", sourceURL)
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func parsePositive(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", args[0], err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be > 0, got %d", n)
	}
	return n, nil
}

func resolveMigrationsDir(override string) (string, error) {
	candidates := defaultMigrationDirs
	if override = strings.TrimSpace(override); override != "" {
		candidates = append([]string{override}, candidates...)
	}

	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}

	return "", fmt.Errorf("migration directory not found in %v", candidates)
}

// withPreparedBinaryDisabled mirrors the API's connection string handling so
// migrations run through the same pooler settings.
func withPreparedBinaryDisabled(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: migration <up|down [n]|goto <version>|force <version>|version>")
}
