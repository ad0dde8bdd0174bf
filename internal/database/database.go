package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT NOT NULL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		phone TEXT NOT NULL UNIQUE,
		first_name TEXT,
		last_name TEXT,
		password_hash TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS roles (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS user_roles (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id TEXT NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		PRIMARY KEY (user_id, role_id)
	);

	CREATE TABLE IF NOT EXISTS reset_tokens (
		token TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
		expires_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS classes (
		id TEXT NOT NULL PRIMARY KEY,
		grade INTEGER NOT NULL,
		title TEXT NOT NULL,
		classroom TEXT,
		teacher_id TEXT REFERENCES employees(id),
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (grade, title)
	);

	CREATE TABLE IF NOT EXISTS students (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id),
		class_id TEXT REFERENCES classes(id),
		birthday DATETIME,
		parent_name TEXT,
		parent_phone TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT NOT NULL PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE REFERENCES users(id),
		position TEXT NOT NULL,
		salary INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS subjects (
		id TEXT NOT NULL PRIMARY KEY,
		title TEXT NOT NULL UNIQUE,
		description TEXT
	);

	CREATE TABLE IF NOT EXISTS employee_subjects (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		subject_id TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		PRIMARY KEY (employee_id, subject_id)
	);

	CREATE TABLE IF NOT EXISTS schedules (
		id TEXT NOT NULL PRIMARY KEY,
		class_id TEXT NOT NULL REFERENCES classes(id),
		subject_id TEXT NOT NULL REFERENCES subjects(id),
		teacher_id TEXT NOT NULL REFERENCES employees(id),
		day_of_week INTEGER NOT NULL,
		lesson_number INTEGER NOT NULL,
		quarter INTEGER NOT NULL,
		school_year TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS marks (
		id TEXT NOT NULL PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id),
		schedule_id TEXT NOT NULL REFERENCES schedules(id),
		grade INTEGER NOT NULL,
		comment TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT NOT NULL PRIMARY KEY,
		student_id TEXT NOT NULL REFERENCES students(id),
		schedule_id TEXT NOT NULL REFERENCES schedules(id),
		attended BOOLEAN NOT NULL,
		attended_on DATETIME NOT NULL,
		note TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS homework (
		id TEXT NOT NULL PRIMARY KEY,
		schedule_id TEXT NOT NULL REFERENCES schedules(id),
		description TEXT NOT NULL,
		due_date DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS announcements (
		id TEXT NOT NULL PRIMARY KEY,
		author_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		audience_role TEXT,
		publish_at DATETIME,
		recurrence TEXT,
		published BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS messages (
		id TEXT NOT NULL PRIMARY KEY,
		sender_id TEXT NOT NULL REFERENCES users(id),
		recipient_id TEXT NOT NULL REFERENCES users(id),
		body TEXT NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		entity_id TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := db.Exec(sqlStmt)
	return err
}

// SeedRoles inserts the built-in roles if they are not present yet.
func SeedRoles(db *sql.DB, ids func() string, names ...string) error {
	stmt, err := db.Prepare("INSERT OR IGNORE INTO roles (id, name) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, name := range names {
		if _, err := stmt.Exec(ids(), name); err != nil {
			return err
		}
	}
	return nil
}
