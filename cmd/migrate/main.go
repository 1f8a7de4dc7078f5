package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/avalosmendoza/wedding-backend/pkg/config"
	"github.com/avalosmendoza/wedding-backend/pkg/migrate"
)

func main() {
	command := flag.String("cmd", "up", "goose command (up, down, status, version)")
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	if err := run(*command, *dir, flag.Args()...); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run(command, dir string, args ...string) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return migrate.Run(context.Background(), db, dir, command, args...)
}
