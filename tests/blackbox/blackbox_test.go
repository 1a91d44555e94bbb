package blackbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// findFreePort picks an available TCP port on localhost.
func findFreePort(t *testing.T) (int, func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	cleanup := func() { _ = ln.Close() }
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return port, cleanup
}

func projectRootFromThisFile(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// this file: <root>/tests/blackbox/blackbox_test.go
	bbDir := filepath.Dir(thisFile)
	root := filepath.Dir(filepath.Dir(bbDir))
	return root
}

func buildBinary(t *testing.T) string {
	t.Helper()
	root := projectRootFromThisFile(t)
	outDir := t.TempDir()
	binPath := filepath.Join(outDir, "admind")
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/admind")
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("go build failed: %v\n%s", err, string(out))
	}
	return binPath
}

// startStubBackend serves a minimal records backend admin API.
func startStubBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/admin/backups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, `{"backups":[{"id":1,"filename":"backup_a.sql.gz","size_bytes":1024}],"total_size_bytes":1024}`)
		case http.MethodPost:
			io.WriteString(w, `{"filename":"backup_b.sql.gz","size_bytes":2048}`)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/v1/admin/trash", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"items":[],"total":0}`)
	})
	mux.HandleFunc("/api/v1/admin/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"total_users":2,"backup_count":1,"system_health":"ok"}`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type serverProc struct {
	cmd  *exec.Cmd
	base string // http base URL, e.g. http://127.0.0.1:18090
}

func startServer(t *testing.T, bin, upstreamURL string, port int) *serverProc {
	t.Helper()
	addr := fmt.Sprintf(":%d", port)
	base := fmt.Sprintf("http://127.0.0.1:%d", port)
	cmd := exec.Command(bin, "serve",
		"--addr", addr,
		"--upstream-url", upstreamURL,
		"--auto-refresh=false",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	// Wait for healthz
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(base + "/healthz")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				break
			}
		}
		if time.Now().After(deadline) {
			_ = cmd.Process.Kill()
			t.Fatalf("server did not become healthy in time")
		}
		time.Sleep(50 * time.Millisecond)
	}
	sp := &serverProc{cmd: cmd, base: base}
	t.Cleanup(func() { _ = cmd.Process.Kill() })
	return sp
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func postJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, b
}

func TestBlackbox_Flow(t *testing.T) {
	bin := buildBinary(t)
	backend := startStubBackend(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, backend.URL, port)

	// /healthz
	resp, body := get(t, sp.base+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/healthz %d %s", resp.StatusCode, string(body))
	}

	// /resources
	resp, body = get(t, sp.base+"/resources")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/resources %d %s", resp.StatusCode, string(body))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Fatalf("/resources content-type=%s", ct)
	}
	var resourcesResp struct {
		Resources []struct {
			Name string `json:"name"`
		} `json:"resources"`
	}
	if err := json.Unmarshal(body, &resourcesResp); err != nil {
		t.Fatalf("/resources json: %v body=%s", err, string(body))
	}
	if len(resourcesResp.Resources) != 3 {
		t.Fatalf("expected 3 resources, got %d", len(resourcesResp.Resources))
	}

	// /readyz 200 once initial loads have succeeded
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, _ = get(t, sp.base+"/readyz")
		if resp.StatusCode == http.StatusOK {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("/readyz did not become ready in time; last=%d", resp.StatusCode)
		}
		time.Sleep(25 * time.Millisecond)
	}

	// run an action end to end
	resp, body = postJSON(t, sp.base+"/resources/backups/actions/createDatabaseBackup", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("action %d %s", resp.StatusCode, string(body))
	}
	var actionResp struct {
		OK bool `json:"ok"`
	}
	if err := json.Unmarshal(body, &actionResp); err != nil {
		t.Fatalf("action json: %v body=%s", err, string(body))
	}
	if !actionResp.OK {
		t.Fatalf("action failed: %s", string(body))
	}

	// state shows the backup entity ready
	resp, body = get(t, sp.base+"/resources/backups")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/resources/backups %d %s", resp.StatusCode, string(body))
	}
	var stateResp struct {
		State string `json:"state"`
	}
	if err := json.Unmarshal(body, &stateResp); err != nil {
		t.Fatalf("state json: %v body=%s", err, string(body))
	}
	if stateResp.State != "ready" {
		t.Fatalf("state=%s", stateResp.State)
	}

	// audit trail recorded the action
	resp, body = get(t, sp.base+"/audit")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/audit %d %s", resp.StatusCode, string(body))
	}
	var entries []struct {
		Action  string `json:"action"`
		Outcome string `json:"outcome"`
	}
	if err := json.Unmarshal(body, &entries); err != nil {
		t.Fatalf("audit json: %v body=%s", err, string(body))
	}
	if len(entries) != 1 || entries[0].Action != "createDatabaseBackup" || entries[0].Outcome != "ok" {
		t.Fatalf("audit=%s", string(body))
	}
}

func TestBlackbox_UnknownResource404(t *testing.T) {
	bin := buildBinary(t)
	backend := startStubBackend(t)
	port, release := findFreePort(t)
	release()
	sp := startServer(t, bin, backend.URL, port)

	resp, body := get(t, sp.base+"/resources/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d, body=%s", resp.StatusCode, string(body))
	}
}

func TestBlackbox_MissingUpstreamURLFails(t *testing.T) {
	bin := buildBinary(t)
	cmd := exec.Command(bin, "serve", "--addr", ":0")
	cmd.Env = append(os.Environ(), "ADMIND_UPSTREAM_URL=")
	out, err := cmd.CombinedOutput()
	if err == nil {
		t.Fatalf("expected failure without upstream URL, output=%s", string(out))
	}
}
