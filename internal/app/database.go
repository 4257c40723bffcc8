package app

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/nfl-draft-league/internal/config"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/logging"
	"github.com/riskibarqy/nfl-draft-league/internal/platform/resilience"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

// openDatabase opens an instrumented postgres handle and pings it, retrying
// with a fixed delay until the configured attempts are used up.
func openDatabase(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	target := parseDatabaseTarget(cfg.DBURL, cfg.DBDisablePreparedBinary)
	policy := resilience.RetryPolicy{
		MaxAttempts: cfg.DBConnectMaxAttempts,
		Delay:       cfg.DBConnectRetryDelay,
	}

	var db *sqlx.DB
	err := resilience.Retry(ctx, policy, func(ctx context.Context, attempt int) error {
		conn, err := otelsqlx.Open("postgres", target.dsn,
			otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
			otelsql.WithDBName(target.name),
			otelsql.WithQueryFormatter(formatQueryForTrace),
		)
		if err != nil {
			logger.WarnContext(ctx, "open database failed", "attempt", attempt, "error", err)
			return err
		}
		if err := conn.PingContext(ctx); err != nil {
			_ = conn.Close()
			logger.WarnContext(ctx, "ping database failed", "attempt", attempt, "max_attempts", policy.MaxAttempts, "error", err)
			return err
		}
		db = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	logger.InfoContext(ctx, "database connected", "db_name", target.name, "max_open_conns", cfg.DBMaxOpenConns)

	return db, nil
}

const maxTracedQueryLength = 512

var (
	queryWhitespace = regexp.MustCompile(`\s+`)
	queryLiteral    = regexp.MustCompile(`'(?:[^']|'')*'`)
)

type databaseTarget struct {
	dsn  string
	name string
}

// parseDatabaseTarget accepts URL and key=value DSNs. With disableBinary set,
// URL DSNs get disable_prepared_binary_result=yes unless the caller already
// chose a value, which keeps lib/pq usable behind transaction poolers.
func parseDatabaseTarget(raw string, disableBinary bool) databaseTarget {
	raw = strings.TrimSpace(raw)
	target := databaseTarget{dsn: raw}

	parsed, err := url.Parse(raw)
	if err == nil && parsed.Scheme != "" {
		target.name = strings.TrimPrefix(parsed.Path, "/")
		if disableBinary {
			query := parsed.Query()
			if query.Get("disable_prepared_binary_result") == "" {
				query.Set("disable_prepared_binary_result", "yes")
				parsed.RawQuery = query.Encode()
			}
			target.dsn = parsed.String()
		}
		return target
	}

	for _, field := range strings.Fields(raw) {
		if name, ok := strings.CutPrefix(field, "dbname="); ok {
			target.name = strings.Trim(name, `"'`)
			break
		}
	}
	return target
}

// formatQueryForTrace collapses whitespace and masks string literals so seed
// and upsert statements do not leak values into spans.
func formatQueryForTrace(query string) string {
	query = queryWhitespace.ReplaceAllString(strings.TrimSpace(query), " ")
	query = queryLiteral.ReplaceAllString(query, "'?'")
	if len(query) > maxTracedQueryLength {
		cut := maxTracedQueryLength
		for cut > 0 && !utf8.RuneStart(query[cut]) {
			cut--
		}
		return query[:cut] + "..."
	}
	return query
}
