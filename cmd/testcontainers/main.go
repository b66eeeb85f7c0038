package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/moodscribe/moodscribe/internal/testdb"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway MariaDB container for local moodscribe development.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load env file %s: %v", envFilename, err)
		}
	}

	ctx := context.Background()

	if !testdb.DockerAvailable(ctx) {
		log.Fatal("Docker daemon is not reachable")
	}

	dbName := envOr("DB_DATABASE", "moodscribe")
	dbUser := envOr("DB_USER", "moodscribe")
	dbPassword := envOr("DB_PASSWORD", "moodscribe")

	m, err := testdb.StartMariaDB(ctx, dbName, dbUser, dbPassword)
	if err != nil {
		log.Fatalf("Failed to start MariaDB: %v", err)
	}

	fmt.Printf("MariaDB running at %s:%s\n", m.Host, m.Port)
	fmt.Printf("DSN: %s\n", m.DSN())
	fmt.Println("Press Ctrl+C to stop...")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Terminating container...")
	if err := m.Terminate(ctx); err != nil {
		log.Fatalf("Failed to terminate container: %v", err)
	}
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
