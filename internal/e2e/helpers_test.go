package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"admind/internal/console"
	"admind/internal/httpapi"
	"admind/internal/notify"
	"admind/internal/upstream"
	"admind/pkg/types"
)

// fakeBackend is an httptest server speaking the records backend's admin API.
// State is mutable so action handlers can change what subsequent loads return.
type fakeBackend struct {
	mu      sync.Mutex
	backups types.BackupList
	trash   types.TrashList
	stats   types.DashboardStats

	deleteFails bool
	calls       map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		backups: types.BackupList{
			Backups: []types.Backup{
				{ID: 1, Filename: "backup_a.sql.gz", SizeBytes: 1024, Verified: true},
				{ID: 2, Filename: "backup_b.sql.gz", SizeBytes: 2048},
			},
			TotalSizeBytes: 3072,
		},
		trash: types.TrashList{
			Items: []types.TrashItem{{ID: 9, Model: "patients", Label: "Doe, Jane"}},
			Total: 1,
		},
		stats: types.DashboardStats{TotalUsers: 3, BackupCount: 2, SystemHealth: "ok"},
		calls: map[string]int{},
	}
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/admin/backups", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls[r.Method+" /backups"]++
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, f.backups)
		case http.MethodPost:
			b := types.Backup{ID: 3, Filename: "backup_c.sql.gz", SizeBytes: 4096}
			f.backups.Backups = append(f.backups.Backups, b)
			f.backups.TotalSizeBytes += b.SizeBytes
			writeJSON(w, http.StatusOK, map[string]any{"filename": b.Filename, "size_bytes": b.SizeBytes})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/admin/backups/1", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls["DELETE /backups/1"]++
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if f.deleteFails {
			writeJSON(w, http.StatusConflict, map[string]any{"error": "backup is the active safety backup"})
			return
		}
		f.backups.Backups = f.backups.Backups[1:]
		writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
	})
	mux.HandleFunc("/api/v1/admin/trash", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, f.trash)
		case http.MethodDelete:
			n := f.trash.Total
			f.trash = types.TrashList{Items: []types.TrashItem{}}
			writeJSON(w, http.StatusOK, map[string]any{"deleted": n})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/admin/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeJSON(w, http.StatusOK, f.stats)
	})
	return mux
}

func (f *fakeBackend) callCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// stack wires the full daemon in-process: fake records backend, real upstream
// client, console, and HTTP mux.
type stack struct {
	backend *fakeBackend
	center  *notify.Center
	console *console.Console
	srv     *httptest.Server
}

func newStack(t *testing.T) *stack {
	t.Helper()

	fb := newFakeBackend()
	backendSrv := httptest.NewServer(fb.handler())
	t.Cleanup(backendSrv.Close)

	client, err := upstream.New(upstream.Config{
		BaseURL: backendSrv.URL,
		Token:   "test-token",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("upstream client: %v", err)
	}

	center := notify.NewCenter(nil)
	cons, err := console.New(console.Config{
		Backend:  client,
		Notifier: notify.NewNotifier(center),
	})
	if err != nil {
		t.Fatalf("console: %v", err)
	}
	cons.Activate(context.Background())
	t.Cleanup(cons.Deactivate)

	srv := httptest.NewServer(httpapi.NewMux(cons, center))
	t.Cleanup(srv.Close)

	return &stack{backend: fb, center: center, console: cons, srv: srv}
}
