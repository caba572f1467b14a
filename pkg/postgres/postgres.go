package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/mobility_map/internal/config"
)

const defaultConnectTimeout = 5 * time.Second

// NewPostgresDB создает пул соединений PostgreSQL и проверяет, что PostGIS доступен
func NewPostgresDB(ctx context.Context, appCfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(appCfg)
	if err != nil {
		return nil, err
	}

	dbpool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать пул соединений: %w", err)
	}

	timeout := appCfg.DBConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("не удалось выполнить ping к postgres: %w", err)
	}

	// маркеры и выборки читают координаты через ST_X/ST_Y
	var postgisVersion string
	if err := dbpool.QueryRow(pingCtx, "SELECT postgis_version()").Scan(&postgisVersion); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("расширение postgis недоступно: %w", err)
	}

	return dbpool, nil
}

// PoolConfig разбирает DATABASE_URL и применяет настройки пула из конфигурации
func PoolConfig(appCfg *config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(appCfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка при разборе конфигурации postgres: %w", err)
	}

	if appCfg.DBMaxConns > 0 {
		poolCfg.MaxConns = appCfg.DBMaxConns
	}
	if appCfg.DBMinConns > 0 {
		poolCfg.MinConns = appCfg.DBMinConns
	}
	if appCfg.DBMaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = appCfg.DBMaxConnIdleTime
	}
	if appCfg.DBConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = appCfg.DBConnectTimeout
	}
	return poolCfg, nil
}
