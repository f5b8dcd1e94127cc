/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/uptrace/bun"
)

// AbstractDatabaseManager defines the operations for managing a database
// connection, running migrations, seeding data, and reporting health.
type AbstractDatabaseManager interface {
	Connect(ctx context.Context) error
	Disconnect() error
	Reconnect(ctx context.Context) error
	Ping(ctx context.Context) error
	HealthCheck(ctx context.Context) *HealthStatus
	GetDB() *bun.DB
	GetSQLDB() *sql.DB
	RunMigrations(ctx context.Context) error
	InitData(ctx context.Context) error
	GetStats() *DBStats
	SetLogger(logger Logger)
}

// HealthStatus holds the result of a health check against the database.
type HealthStatus struct {
	Healthy       bool          `json:"healthy"`
	Connected     bool          `json:"connected"`
	ResponseTime  time.Duration `json:"response_time"`
	ActiveConns   int           `json:"active_conns"`
	IdleConns     int           `json:"idle_conns"`
	MaxOpenConns  int           `json:"max_open_conns"`
	LastError     string        `json:"last_error,omitempty"`
	LastCheckTime time.Time     `json:"last_check_time"`
}

// DBStats mirrors database/sql pool stats.
type DBStats struct {
	MaxOpenConns      int           `json:"max_open_conns"`
	OpenConns         int           `json:"open_conns"`
	InUse             int           `json:"in_use"`
	Idle              int           `json:"idle"`
	WaitCount         int64         `json:"wait_count"`
	WaitDuration      time.Duration `json:"wait_duration"`
	MaxIdleClosed     int64         `json:"max_idle_closed"`
	MaxIdleTimeClosed int64         `json:"max_idle_time_closed"`
	MaxLifetimeClosed int64         `json:"max_lifetime_closed"`
}

// ConnectionConfig describes how to connect to a database and tune its pool.
type ConnectionConfig struct {
	Type                string        `json:"type" yaml:"type" env:"DB_TYPE, overwrite" validate:"required,oneof=mysql postgres sqlite"`
	Host                string        `json:"host" yaml:"host" env:"DB_HOST, overwrite" validate:"required_unless=Type sqlite"`
	Port                int           `json:"port" yaml:"port" env:"DB_PORT, overwrite" validate:"gte=0,lte=65535"`
	Username            string        `json:"username" yaml:"username" env:"DB_USERNAME, overwrite"`
	Password            string        `json:"-" yaml:"password" env:"DB_PASSWORD, overwrite"`
	DBName              string        `json:"dbname" yaml:"dbname" env:"DB_NAME, overwrite" validate:"required"`
	SSLMode             string        `json:"sslmode" yaml:"sslmode" env:"DB_SSLMODE, overwrite" validate:"omitempty,oneof=disable require verify-ca verify-full"`
	MaxIdleConns        int           `json:"max_idle_conns" yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS, overwrite" validate:"gte=0"`
	MaxOpenConns        int           `json:"max_open_conns" yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS, overwrite" validate:"gte=0"`
	ConnMaxLifetime     time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME, overwrite"`
	ConnMaxIdleTime     time.Duration `json:"conn_max_idle_time" yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME, overwrite"`
	ConnectTimeout      time.Duration `json:"connect_timeout" yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT, overwrite"`
	ReadTimeout         time.Duration `json:"read_timeout" yaml:"read_timeout" env:"DB_READ_TIMEOUT, overwrite"`
	WriteTimeout        time.Duration `json:"write_timeout" yaml:"write_timeout" env:"DB_WRITE_TIMEOUT, overwrite"`
	EnableReconnect     bool          `json:"enable_reconnect" yaml:"enable_reconnect" env:"DB_ENABLE_RECONNECT, overwrite"`
	ReconnectInterval   time.Duration `json:"reconnect_interval" yaml:"reconnect_interval" env:"DB_RECONNECT_INTERVAL, overwrite"`
	MaxReconnectTries   int           `json:"max_reconnect_tries" yaml:"max_reconnect_tries" env:"DB_MAX_RECONNECT_TRIES, overwrite" validate:"gte=0"`
	HealthCheckInterval time.Duration `json:"health_check_interval" yaml:"health_check_interval" env:"DB_HEALTH_CHECK_INTERVAL, overwrite"`
	EnableQueryLog      bool          `json:"enable_query_log" yaml:"enable_query_log" env:"DB_ENABLE_QUERY_LOG, overwrite"`
	SlowQueryTime       time.Duration `json:"slow_query_time" yaml:"slow_query_time" env:"DB_SLOW_QUERY_TIME, overwrite"`
	EnableMetrics       bool          `json:"enable_metrics" yaml:"enable_metrics" env:"DB_ENABLE_METRICS, overwrite"`
	AutoCreate          bool          `json:"auto_create" yaml:"auto_create" env:"DB_AUTO_CREATE, overwrite"`
	Charset             string        `json:"charset" yaml:"charset" env:"DB_CHARSET, overwrite"` // MySQL: utf8mb4, Postgres: UTF8
}

// DataMigrateConfig controls schema migration behavior on startup.
type DataMigrateConfig struct {
	EnableMigrateOnStartup bool   `json:"enable_migrate_on_startup" yaml:"enable_migrate_on_startup" env:"DB_MIGRATE_ON_STARTUP, overwrite"`
	EnableForeignKey       bool   `json:"enable_foreign_key" yaml:"enable_foreign_key" env:"DB_ENABLE_FOREIGN_KEY, overwrite"`
	ForeignKeyFile         string `json:"foreign_key_file" yaml:"foreign_key_file" env:"DB_FOREIGN_KEY_FILE, overwrite"`
}

// DataInitConfig controls seeding behavior and environment selection.
type DataInitConfig struct {
	AutoInitOnMigration bool   `json:"auto_init_on_migration" yaml:"auto_init_on_migration" env:"DB_INIT_ON_MIGRATION, overwrite"`
	Filepath            string `json:"filepath" yaml:"filepath" env:"DB_INIT_SQL_PATH, overwrite"`
	Environment         string `json:"environment" yaml:"environment" env:"DB_INIT_ENVIRONMENT, overwrite"`
}

// LogConfig sets the level and console format of the named loggers. Empty
// values keep the LOG_LEVEL and CONSOLE_LOG_FORMAT process defaults.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" env:"DB_LOG_LEVEL, overwrite" validate:"omitempty,oneof=trace debug info warn warning error fatal panic"`
	Format string `json:"format" yaml:"format" env:"DB_LOG_FORMAT, overwrite" validate:"omitempty,oneof=text json"`
}

// Config aggregates connection, migration, and data initialization settings.
type Config struct {
	ConnectionConfig  ConnectionConfig  `json:"connection_config" yaml:"connection_config"`
	DataMigrateConfig DataMigrateConfig `json:"data_migrate_config" yaml:"data_migrate_config"`
	DataInitConfig    DataInitConfig    `json:"data_init_config" yaml:"data_init_config"`
	LogConfig         LogConfig         `json:"log_config" yaml:"log_config"`
}

const (
	defaultSQLRootPath    = "configs/sql"
	defaultForeignKeyFile = "configs/foreign_keys.yaml"
	defaultEnvironment    = "prod"
)

// DefaultConnectionConfig returns a connection config with pool defaults and
// no target database.
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		MaxIdleConns:        10,
		MaxOpenConns:        100,
		ConnMaxLifetime:     time.Hour,
		ConnMaxIdleTime:     time.Minute * 30,
		ConnectTimeout:      time.Second * 10,
		ReadTimeout:         time.Second * 30,
		WriteTimeout:        time.Second * 30,
		EnableReconnect:     true,
		ReconnectInterval:   time.Second * 5,
		MaxReconnectTries:   3,
		HealthCheckInterval: time.Minute * 5,
		SlowQueryTime:       time.Second * 2,
	}
}

// DefaultConfig returns a SQLite configuration that migrates on startup.
func DefaultConfig() *Config {
	conn := DefaultConnectionConfig()
	conn.Type = "sqlite"
	conn.DBName = "gameaccounts"
	return &Config{
		ConnectionConfig: *conn,
		DataMigrateConfig: DataMigrateConfig{
			EnableMigrateOnStartup: true,
			ForeignKeyFile:         defaultForeignKeyFile,
		},
		DataInitConfig: DataInitConfig{
			Filepath:    defaultSQLRootPath,
			Environment: defaultEnvironment,
		},
	}
}
