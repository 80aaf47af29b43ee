package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chrono-task/backend/internal/db"
)

func newTestSettingsHandler(t *testing.T) (*SettingsHandler, *db.Database) {
	t.Helper()
	database, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewSettingsHandler(database), database
}

func TestSettingsRoundTrip(t *testing.T) {
	h, database := newTestSettingsHandler(t)

	putReq := httptest.NewRequest(http.MethodPut, "/api/settings",
		strings.NewReader(`{"minimax_model":"MiniMax-Text-01","unknown_key":"ignored"}`))
	putRec := httptest.NewRecorder()
	h.UpdateSettings(putRec, putReq)

	if putRec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, want 204", putRec.Code)
	}

	// Unknown keys never reach the database
	if got := database.GetSetting("unknown_key", ""); got != "" {
		t.Errorf("unknown_key = %q, want unset", got)
	}

	getRec := httptest.NewRecorder()
	h.GetSettings(getRec, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getRec.Code)
	}
	var settings []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(getRec.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	values := make(map[string]string)
	for _, s := range settings {
		values[s.Key] = s.Value
	}
	if values["minimax_model"] != "MiniMax-Text-01" {
		t.Errorf("minimax_model = %q", values["minimax_model"])
	}
	if _, ok := values["openai_model"]; !ok {
		t.Error("openai_model missing from response")
	}
}

func TestSettingsUpdateInvalidBody(t *testing.T) {
	h, _ := newTestSettingsHandler(t)

	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, httptest.NewRequest(http.MethodPut, "/api/settings", strings.NewReader("not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
