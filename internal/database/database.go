package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func Connect() (*sql.DB, error) {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "toefl_user")
	password := getEnv("DB_PASSWORD", "toefl_password")
	dbname := getEnv("DB_NAME", "toefl_prep")
	sslmode := getEnv("DB_SSLMODE", "disable")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func Migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		name VARCHAR(255) NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);

	CREATE TABLE IF NOT EXISTS submissions (
		id              BIGSERIAL PRIMARY KEY,
		prompt_id       VARCHAR(120) NOT NULL,
		student_id      VARCHAR(120) NOT NULL,
		task_type       VARCHAR(40) NOT NULL,
		user_text       TEXT NOT NULL,
		scores          JSONB NOT NULL,
		prompt_snapshot JSONB,
		created_at      TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_student ON submissions(student_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_submissions_task ON submissions(task_type);

	CREATE TABLE IF NOT EXISTS sentence_set_cache (
		set_id     VARCHAR(60) PRIMARY KEY,
		payload    JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS prompt_usage (
		id               BIGSERIAL PRIMARY KEY,
		student_id       VARCHAR(120) NOT NULL DEFAULT '',
		task_type        VARCHAR(40) NOT NULL,
		prompt_id        VARCHAR(160) NOT NULL,
		source_prompt_id VARCHAR(160) NOT NULL,
		used_at          TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(student_id, task_type, source_prompt_id)
	);

	CREATE INDEX IF NOT EXISTS idx_prompt_usage_student ON prompt_usage(student_id, task_type);
	`

	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
