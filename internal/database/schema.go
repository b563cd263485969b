package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/etkinlikhub/event-platform/internal/model"
	"github.com/etkinlikhub/event-platform/internal/utils"
)

// schema holds the DDL executed at startup. Statements are idempotent so
// the server can be restarted against an existing database. Deleting an
// event intentionally leaves its registrations behind; there is no
// cascade on event_registrations.event_id.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(64) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		role VARCHAR(16) NOT NULL DEFAULT 'user',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS events (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NULL,
		location VARCHAR(255) NULL,
		event_date DATETIME NOT NULL,
		capacity INT NULL,
		registered_count INT NOT NULL DEFAULT 0,
		status VARCHAR(16) NOT NULL DEFAULT 'active',
		author_id BIGINT UNSIGNED NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_events_status_date (status, event_date)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS event_registrations (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		event_id BIGINT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(32) NULL,
		notes TEXT NULL,
		registered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_registrations_event (event_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS contents (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		content TEXT NULL,
		category VARCHAR(100) NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'draft',
		author_id BIGINT UNSIGNED NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_contents_category (category),
		KEY idx_contents_status (status)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// InitSchema creates the application tables when they do not exist yet.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin provisions the default admin account from configuration. An
// empty password disables seeding entirely, and an existing username is
// left untouched, so the seed never overwrites a live credential.
func SeedAdmin(ctx context.Context, db *sql.DB, username, email, password string, bcryptCost int) error {
	if password == "" {
		log.Printf("admin seed skipped: ADMIN_PASSWORD not set")
		return nil
	}
	var id uint64
	err := db.QueryRowContext(ctx, "SELECT id FROM users WHERE username=? LIMIT 1", username).Scan(&id)
	if err == nil {
		return nil // already provisioned
	}
	if err != sql.ErrNoRows {
		return err
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, role) VALUES (?,?,?,?)",
		username, email, hash, model.RoleAdmin)
	if err != nil {
		return err
	}
	log.Printf("admin account %q provisioned", username)
	return nil
}
