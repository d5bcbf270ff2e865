package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode and foreign keys enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enforce the cascade and set-null rules declared below
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS category (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS course (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category_id TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		image_file TEXT NOT NULL DEFAULT 'default.jpg',
		instructor_id TEXT,
		status TEXT NOT NULL DEFAULT 'Proposed',
		created_at TEXT NOT NULL,
		FOREIGN KEY (category_id) REFERENCES category(id) ON DELETE CASCADE,
		FOREIGN KEY (instructor_id) REFERENCES account(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS lesson (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		video_file TEXT,
		notes_file TEXT,
		lesson_order INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (course_id) REFERENCES course(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS quiz (
		id TEXT PRIMARY KEY,
		course_id TEXT NOT NULL,
		title TEXT NOT NULL,
		questions_data TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (course_id) REFERENCES course(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS quiz_result (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		quiz_id TEXT NOT NULL,
		score REAL NOT NULL,
		passed INTEGER NOT NULL DEFAULT 0,
		attempted_at TEXT NOT NULL,
		FOREIGN KEY (student_id) REFERENCES account(id) ON DELETE CASCADE,
		FOREIGN KEY (quiz_id) REFERENCES quiz(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS enrollment (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		course_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active',
		progress REAL NOT NULL DEFAULT 0,
		certificate_id TEXT UNIQUE,
		created_at TEXT NOT NULL,
		completed_at TEXT,
		UNIQUE (student_id, course_id),
		FOREIGN KEY (student_id) REFERENCES account(id) ON DELETE CASCADE,
		FOREIGN KEY (course_id) REFERENCES course(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS lesson_completion (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		lesson_id TEXT NOT NULL,
		completed_at TEXT NOT NULL,
		UNIQUE (student_id, lesson_id),
		FOREIGN KEY (student_id) REFERENCES account(id) ON DELETE CASCADE,
		FOREIGN KEY (lesson_id) REFERENCES lesson(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS notification (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		message TEXT NOT NULL,
		is_read INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		FOREIGN KEY (student_id) REFERENCES account(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS internship (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		duration TEXT NOT NULL DEFAULT '',
		instructor_id TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (instructor_id) REFERENCES account(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS internship_material (
		id TEXT PRIMARY KEY,
		internship_id TEXT NOT NULL,
		title TEXT NOT NULL,
		resource_type TEXT NOT NULL DEFAULT 'pdf',
		file_path TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (internship_id) REFERENCES internship(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS internship_quiz (
		id TEXT PRIMARY KEY,
		internship_id TEXT NOT NULL,
		title TEXT NOT NULL,
		questions_data TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (internship_id) REFERENCES internship(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS internship_project (
		id TEXT PRIMARY KEY,
		internship_id TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		FOREIGN KEY (internship_id) REFERENCES internship(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS internship_enrollment (
		id TEXT PRIMARY KEY,
		student_id TEXT NOT NULL,
		internship_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'Active',
		project_submission TEXT,
		project_status TEXT NOT NULL DEFAULT 'Pending',
		certificate_id TEXT UNIQUE,
		created_at TEXT NOT NULL,
		completed_at TEXT,
		UNIQUE (student_id, internship_id),
		FOREIGN KEY (student_id) REFERENCES account(id) ON DELETE CASCADE,
		FOREIGN KEY (internship_id) REFERENCES internship(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS audit_event (
		id TEXT PRIMARY KEY,
		timestamp TEXT NOT NULL,
		category TEXT NOT NULL,
		action TEXT NOT NULL,
		severity TEXT NOT NULL DEFAULT 'info',
		actor_id TEXT NOT NULL,
		actor_name TEXT NOT NULL DEFAULT '',
		actor_role TEXT NOT NULL DEFAULT '',
		resource_id TEXT NOT NULL DEFAULT '',
		resource_type TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		ip_address TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS outbox (
		id TEXT PRIMARY KEY,
		action_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		attempts INTEGER NOT NULL DEFAULT 0,
		max_attempts INTEGER NOT NULL DEFAULT 5,
		last_attempted_at TEXT,
		created_at TEXT NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
