package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/chrono-task/backend/internal/auth"
	"github.com/chrono-task/backend/internal/db/models"
)

type Database struct {
	db *sql.DB
}

func NewSQLite(path string) (*Database, error) {
	sqlDB, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	d := &Database{db: sqlDB}
	if err := d.migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS courses (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL,
		video_id TEXT NOT NULL,
		title TEXT NOT NULL,
		concepts TEXT NOT NULL DEFAULT '[]',
		tasks TEXT NOT NULL DEFAULT '[]',
		transcript TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (user_id) REFERENCES users(id),
		UNIQUE(user_id, video_id)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := d.db.Exec(schema)
	return err
}

func (d *Database) EnsureAdmin(username, password string) error {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM users WHERE role = 'admin'").Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		"INSERT INTO users (username, password, role) VALUES (?, ?, 'admin')",
		username, hash,
	)
	return err
}

func (d *Database) GetUserByUsername(username string) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE username = ?",
		username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (d *Database) GetUserByID(id int64) (*models.User, error) {
	u := &models.User{}
	err := d.db.QueryRow(
		"SELECT id, username, password, role, created_at, updated_at FROM users WHERE id = ?",
		id,
	).Scan(&u.ID, &u.Username, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// ListCourses returns a user's saved courses, newest first.
func (d *Database) ListCourses(userID int64) ([]models.Course, error) {
	rows, err := d.db.Query(`
		SELECT id, video_id, title, concepts, tasks, transcript, created_at, updated_at
		FROM courses WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	return courses, rows.Err()
}

func scanCourse(rows *sql.Rows) (*models.Course, error) {
	c := &models.Course{}
	var concepts, tasks string
	if err := rows.Scan(&c.ID, &c.VideoID, &c.Title, &concepts, &tasks, &c.Transcript, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(concepts), &c.Concepts); err != nil {
		return nil, fmt.Errorf("decode course concepts: %w", err)
	}
	if err := json.Unmarshal([]byte(tasks), &c.Tasks); err != nil {
		return nil, fmt.Errorf("decode course tasks: %w", err)
	}
	return c, nil
}

// UpsertCourse saves a course keyed on (user, videoId): an existing
// course keeps its id and creation time, a new one gets fresh ones.
func (d *Database) UpsertCourse(userID int64, course models.Course) (*models.Course, error) {
	concepts, err := json.Marshal(course.Concepts)
	if err != nil {
		return nil, err
	}
	tasks, err := json.Marshal(course.Tasks)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	var existingID string
	var createdAt time.Time
	err = d.db.QueryRow(
		"SELECT id, created_at FROM courses WHERE user_id = ? AND video_id = ?",
		userID, course.VideoID,
	).Scan(&existingID, &createdAt)

	switch {
	case err == sql.ErrNoRows:
		course.ID = uuid.NewString()
		course.CreatedAt = now
		course.UpdatedAt = now
		_, err = d.db.Exec(`
			INSERT INTO courses (id, user_id, video_id, title, concepts, tasks, transcript, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			course.ID, userID, course.VideoID, course.Title, string(concepts), string(tasks), course.Transcript, now, now,
		)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		course.ID = existingID
		course.CreatedAt = createdAt
		course.UpdatedAt = now
		_, err = d.db.Exec(`
			UPDATE courses SET title = ?, concepts = ?, tasks = ?, transcript = ?, updated_at = ?
			WHERE id = ?`,
			course.Title, string(concepts), string(tasks), course.Transcript, now, existingID,
		)
		if err != nil {
			return nil, err
		}
	}

	return &course, nil
}

func (d *Database) DeleteCourse(userID int64, id string) error {
	_, err := d.db.Exec("DELETE FROM courses WHERE user_id = ? AND id = ?", userID, id)
	return err
}

// UpdateCourseProgress replaces the task checklist of an existing
// course. Unknown videoIds are a no-op, matching the client behavior.
func (d *Database) UpdateCourseProgress(userID int64, videoID string, tasks []models.Task) error {
	encoded, err := json.Marshal(tasks)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(`
		UPDATE courses SET tasks = ?, updated_at = ? WHERE user_id = ? AND video_id = ?`,
		string(encoded), time.Now().UTC(), userID, videoID,
	)
	return err
}

// GetSetting returns a setting value by key, or defaultVal if not found
func (d *Database) GetSetting(key, defaultVal string) string {
	var val string
	err := d.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&val)
	if err != nil {
		return defaultVal
	}
	return val
}

// SetSetting upserts a setting
func (d *Database) SetSetting(key, value string) error {
	_, err := d.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP`,
		key, value, value,
	)
	return err
}

// GetAllSettings returns all settings as a map
func (d *Database) GetAllSettings() (map[string]string, error) {
	rows, err := d.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		result[k] = v
	}
	return result, rows.Err()
}

func (d *Database) Close() error {
	return d.db.Close()
}
