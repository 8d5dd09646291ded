// Command dbinit creates the database schema. Safe to re-run; every
// statement is idempotent.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/j1progress/progress-api/pkg/config"
	"github.com/j1progress/progress-api/pkg/database"
)

var statements = []string{
	`CREATE TABLE IF NOT EXISTS units (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	short_name TEXT NOT NULL,
	username   TEXT NOT NULL DEFAULT '',
	password   TEXT NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS project_groups (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS projects (
	id          TEXT PRIMARY KEY,
	unit_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	fiscal_year TEXT NOT NULL DEFAULT '2569',
	group_id    TEXT,
	deleted_at  BIGINT
)`,
	`CREATE TABLE IF NOT EXISTS reports (
	id                TEXT PRIMARY KEY,
	unit_id           TEXT NOT NULL,
	project_id        TEXT NOT NULL,
	project_name      TEXT NOT NULL DEFAULT '',
	report_date_start TEXT,
	report_date_end   TEXT,
	past_performance  TEXT,
	next_plan         TEXT,
	progress          DOUBLE PRECISION,
	obstacles         TEXT,
	remarks           TEXT,
	file_link         TEXT,
	submitted_at      BIGINT NOT NULL DEFAULT 0
)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_unit ON projects (unit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_group ON projects (group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_deleted ON projects (deleted_at) WHERE deleted_at IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_reports_project ON reports (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_unit ON reports (unit_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reports_submitted ON reports (submitted_at)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS reports`,
	`DROP TABLE IF EXISTS projects`,
	`DROP TABLE IF EXISTS project_groups`,
	`DROP TABLE IF EXISTS units`,
}

func main() {
	var (
		drop    bool
		timeout time.Duration
	)
	flag.BoolVar(&drop, "drop", false, "drop existing tables before creating them")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "overall execution timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if drop {
		for _, stmt := range dropStatements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				log.Fatalf("drop failed: %v", err)
			}
		}
		log.Println("dropped existing tables")
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			log.Fatalf("schema statement failed: %v", err)
		}
	}
	log.Println("schema ready")
}
