package db

import (
	"path/filepath"
	"testing"

	"github.com/chrono-task/backend/internal/db/models"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	d, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestEnsureAdmin(t *testing.T) {
	d := newTestDB(t)

	if err := d.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}
	// Second call is a no-op, not a duplicate
	if err := d.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatalf("EnsureAdmin() second call error = %v", err)
	}

	user, err := d.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if user.Role != "admin" {
		t.Errorf("role = %q, want admin", user.Role)
	}
	if user.Password == "secret" {
		t.Error("password stored in plaintext")
	}

	byID, err := d.GetUserByID(user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if byID.Username != "admin" {
		t.Errorf("GetUserByID() username = %q", byID.Username)
	}
}

func TestCourseLifecycle(t *testing.T) {
	d := newTestDB(t)
	if err := d.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatal(err)
	}
	user, _ := d.GetUserByUsername("admin")

	course := models.Course{
		VideoID:  "vid1",
		Title:    "Intro to Go",
		Concepts: []string{"goroutines", "channels"},
		Tasks: []models.Task{
			{ID: "1", Title: "Read the tour", Duration: "15 min"},
		},
		Transcript: "hello world",
	}

	saved, err := d.UpsertCourse(user.ID, course)
	if err != nil {
		t.Fatalf("UpsertCourse() error = %v", err)
	}
	if saved.ID == "" {
		t.Error("UpsertCourse() returned empty id")
	}

	// Upsert again for the same video updates, not duplicates
	course.Title = "Intro to Go, revised"
	again, err := d.UpsertCourse(user.ID, course)
	if err != nil {
		t.Fatalf("UpsertCourse() second call error = %v", err)
	}
	if again.ID != saved.ID {
		t.Errorf("second upsert changed id: %q vs %q", again.ID, saved.ID)
	}

	courses, err := d.ListCourses(user.ID)
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("ListCourses() returned %d courses, want 1", len(courses))
	}
	if courses[0].Title != "Intro to Go, revised" {
		t.Errorf("title = %q, want revised title", courses[0].Title)
	}
	if len(courses[0].Concepts) != 2 || courses[0].Concepts[0] != "goroutines" {
		t.Errorf("concepts = %v", courses[0].Concepts)
	}

	// Progress update flips task state in place
	err = d.UpdateCourseProgress(user.ID, "vid1", []models.Task{
		{ID: "1", Title: "Read the tour", Duration: "15 min", Completed: true},
	})
	if err != nil {
		t.Fatalf("UpdateCourseProgress() error = %v", err)
	}
	courses, _ = d.ListCourses(user.ID)
	if !courses[0].Tasks[0].Completed {
		t.Error("task not marked completed after progress update")
	}

	// Progress for an unknown video is a silent no-op
	if err := d.UpdateCourseProgress(user.ID, "missing", nil); err != nil {
		t.Errorf("UpdateCourseProgress(unknown) error = %v", err)
	}

	if err := d.DeleteCourse(user.ID, saved.ID); err != nil {
		t.Fatalf("DeleteCourse() error = %v", err)
	}
	courses, _ = d.ListCourses(user.ID)
	if len(courses) != 0 {
		t.Errorf("ListCourses() after delete returned %d courses", len(courses))
	}
}

func TestCoursesAreScopedPerUser(t *testing.T) {
	d := newTestDB(t)
	if err := d.EnsureAdmin("admin", "secret"); err != nil {
		t.Fatal(err)
	}
	user, _ := d.GetUserByUsername("admin")

	if _, err := d.UpsertCourse(user.ID, models.Course{VideoID: "vid1", Title: "Mine"}); err != nil {
		t.Fatal(err)
	}

	otherUserCourses, err := d.ListCourses(user.ID + 1)
	if err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
	if len(otherUserCourses) != 0 {
		t.Errorf("other user sees %d courses, want 0", len(otherUserCourses))
	}

	// Deleting through the wrong user leaves the course alone
	mine, _ := d.ListCourses(user.ID)
	if err := d.DeleteCourse(user.ID+1, mine[0].ID); err != nil {
		t.Fatal(err)
	}
	mine, _ = d.ListCourses(user.ID)
	if len(mine) != 1 {
		t.Errorf("course deleted by a different user")
	}
}

func TestSettings(t *testing.T) {
	d := newTestDB(t)

	if got := d.GetSetting("llm_model", "fallback"); got != "fallback" {
		t.Errorf("GetSetting() = %q, want fallback", got)
	}

	if err := d.SetSetting("llm_model", "MiniMax-M2"); err != nil {
		t.Fatalf("SetSetting() error = %v", err)
	}
	if err := d.SetSetting("llm_model", "MiniMax-M3"); err != nil {
		t.Fatalf("SetSetting() upsert error = %v", err)
	}

	if got := d.GetSetting("llm_model", "fallback"); got != "MiniMax-M3" {
		t.Errorf("GetSetting() = %q, want upserted value", got)
	}

	all, err := d.GetAllSettings()
	if err != nil {
		t.Fatalf("GetAllSettings() error = %v", err)
	}
	if all["llm_model"] != "MiniMax-M3" {
		t.Errorf("GetAllSettings() = %v", all)
	}
}
