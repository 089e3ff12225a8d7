package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"

	"github.com/jhoicas/categorias-api/pkg/config"
	"github.com/jhoicas/categorias-api/pkg/logger"
)

// NewPool abre el pool de PostgreSQL (DATABASE_URL o DSN armado con DB_*) y verifica la conexión.
// Las consultas se trazan en el logger a nivel debug; los errores de consulta a nivel error.
func NewPool(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = 10
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   queryLogger(log),
		LogLevel: tracelog.LogLevelInfo,
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// queryLogger adapta el tracer de pgx a zerolog. Info de pgx (una línea por consulta) baja a debug.
func queryLogger(log *logger.Logger) tracelog.Logger {
	return tracelog.LoggerFunc(func(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
		var ev *zerolog.Event
		switch level {
		case tracelog.LogLevelError:
			ev = log.Error()
		case tracelog.LogLevelWarn:
			ev = log.Warn()
		case tracelog.LogLevelInfo, tracelog.LogLevelDebug:
			ev = log.Debug()
		default:
			ev = log.Trace()
		}
		if sql, ok := data["sql"].(string); ok {
			ev = ev.Str("sql", sql)
		}
		if d, ok := data["time"].(time.Duration); ok {
			ev = ev.Dur("took", d)
		}
		if err, ok := data["err"].(error); ok {
			ev = ev.Err(err)
		}
		ev.Msg("pgx: " + msg)
	})
}
