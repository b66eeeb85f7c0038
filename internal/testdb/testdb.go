// Package testdb starts throwaway MariaDB containers for integration tests
// and local development.
package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/moodscribe/moodscribe/data"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mariadbImage = "mariadb:11"
	mariadbPort  = "3306/tcp"
)

// MariaDB is a running MariaDB test container.
type MariaDB struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Database  string
	User      string
	Password  string
}

// DSN returns the go-sql-driver DSN for the container.
func (m *MariaDB) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		m.User, m.Password, m.Host, m.Port, m.Database)
}

// Terminate stops and removes the container.
func (m *MariaDB) Terminate(ctx context.Context) error {
	if m.Container == nil {
		return nil
	}
	return m.Container.Terminate(ctx)
}

// DockerAvailable reports whether a Docker daemon is reachable, so callers
// can skip container-backed tests on hosts without Docker.
func DockerAvailable(ctx context.Context) bool {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false
	}
	defer cli.Close()

	_, err = cli.Ping(ctx)
	return err == nil
}

// StartMariaDB starts a MariaDB container, waits for it to accept
// connections and applies the schema DDL.
func StartMariaDB(ctx context.Context, database, user, password string) (*MariaDB, error) {
	req := testcontainers.ContainerRequest{
		Image:        mariadbImage,
		ExposedPorts: []string{mariadbPort},
		Env: map[string]string{
			"MARIADB_ROOT_PASSWORD": password,
			"MARIADB_DATABASE":      database,
			"MARIADB_USER":          user,
			"MARIADB_PASSWORD":      password,
		},
		WaitingFor: wait.ForListeningPort(nat.Port(mariadbPort)).WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start mariadb container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	mapped, err := container.MappedPort(ctx, nat.Port(mariadbPort))
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	m := &MariaDB{
		Container: container,
		Host:      host,
		Port:      mapped.Port(),
		Database:  database,
		User:      user,
		Password:  password,
	}

	if err := m.applySchema(ctx); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return m, nil
}

// applySchema pings the database with the raw driver until it is ready, then
// executes the embedded DDL.
func (m *MariaDB) applySchema(ctx context.Context) error {
	db, err := sql.Open("mysql", m.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	deadline := time.Now().Add(time.Minute)
	for {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("database did not become ready: %w", err)
		}
		time.Sleep(time.Second)
	}

	// Drop comment lines, then split into statements
	var lines []string
	for _, line := range strings.Split(data.InitdbMariaDBTables, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	return nil
}
