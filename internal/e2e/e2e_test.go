// Package e2e exercises the daemon end to end: a fake records backend behind
// the real upstream client, the console, and the HTTP API.
package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"admind/internal/audit"
	"admind/pkg/types"
)

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func postJSON(t *testing.T, url string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestE2E_InitialLoadAndState(t *testing.T) {
	s := newStack(t)

	var resources types.ResourcesResponse
	if code := getJSON(t, s.srv.URL+"/resources", &resources); code != http.StatusOK {
		t.Fatalf("resources status=%d", code)
	}
	if len(resources.Resources) != 3 {
		t.Fatalf("resources=%d", len(resources.Resources))
	}

	var st types.ResourceState
	if code := getJSON(t, s.srv.URL+"/resources/backups", &st); code != http.StatusOK {
		t.Fatalf("state status=%d", code)
	}
	if st.State != "ready" || st.Data == nil {
		t.Fatalf("backups state=%+v", st)
	}

	resp, err := http.Get(s.srv.URL + "/readyz")
	if err != nil {
		t.Fatalf("readyz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("readyz status=%d", resp.StatusCode)
	}
}

func TestE2E_ActionSuccessRefreshesData(t *testing.T) {
	s := newStack(t)

	var ar types.ActionResponse
	code := postJSON(t, s.srv.URL+"/resources/backups/actions/createDatabaseBackup", nil, &ar)
	if code != http.StatusOK || !ar.OK {
		t.Fatalf("action status=%d resp=%+v", code, ar)
	}

	// The action silently refreshes, so the new backup shows up in state.
	var st types.ResourceState
	getJSON(t, s.srv.URL+"/resources/backups", &st)
	data, err := json.Marshal(st.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	var list types.BackupList
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if len(list.Backups) != 3 {
		t.Fatalf("backups after create=%d", len(list.Backups))
	}
	if st.SuccessMessage == "" {
		t.Fatal("expected a success message in state")
	}

	// A success notification is visible; the loading one was dismissed.
	var notes types.NotificationsResponse
	getJSON(t, s.srv.URL+"/notifications", &notes)
	var sawSuccess bool
	for _, n := range notes.Notifications {
		if n.Severity == "loading" {
			t.Fatalf("loading notification leaked: %+v", n)
		}
		if n.Severity == "success" {
			sawSuccess = true
		}
	}
	if !sawSuccess {
		t.Fatalf("no success notification in %+v", notes.Notifications)
	}
}

func TestE2E_ActionErrorKeepsStaleData(t *testing.T) {
	s := newStack(t)
	s.backend.mu.Lock()
	s.backend.deleteFails = true
	s.backend.mu.Unlock()

	var ar types.ActionResponse
	code := postJSON(t, s.srv.URL+"/resources/backups/actions/deleteBackup", map[string]any{"input": map[string]any{"id": 1}}, &ar)
	if code != http.StatusConflict {
		t.Fatalf("status=%d, want 409 passed through", code)
	}
	if ar.OK || ar.Error == "" {
		t.Fatalf("resp=%+v", ar)
	}

	// Data from the initial load is still served.
	var st types.ResourceState
	getJSON(t, s.srv.URL+"/resources/backups", &st)
	if st.Data == nil {
		t.Fatal("stale data dropped after failed action")
	}

	// Error notification visible, and the failure is in the audit trail.
	var notes types.NotificationsResponse
	getJSON(t, s.srv.URL+"/notifications", &notes)
	var sawError bool
	for _, n := range notes.Notifications {
		if n.Severity == "error" {
			sawError = true
		}
	}
	if !sawError {
		t.Fatalf("no error notification in %+v", notes.Notifications)
	}

	var entries []audit.Entry
	getJSON(t, s.srv.URL+"/audit", &entries)
	if len(entries) == 0 || entries[0].Outcome != audit.OutcomeError {
		t.Fatalf("audit=%+v", entries)
	}
}

func TestE2E_EmptyTrashAndAuditTrail(t *testing.T) {
	s := newStack(t)

	var ar types.ActionResponse
	code := postJSON(t, s.srv.URL+"/resources/trash/actions/emptyTrash", nil, &ar)
	if code != http.StatusOK || !ar.OK {
		t.Fatalf("status=%d resp=%+v", code, ar)
	}

	var st types.ResourceState
	getJSON(t, s.srv.URL+"/resources/trash", &st)
	data, _ := json.Marshal(st.Data)
	var list types.TrashList
	if err := json.Unmarshal(data, &list); err != nil {
		t.Fatalf("unmarshal trash: %v", err)
	}
	if len(list.Items) != 0 {
		t.Fatalf("trash not emptied: %+v", list)
	}

	var entries []audit.Entry
	getJSON(t, s.srv.URL+"/audit?limit=5", &entries)
	if len(entries) != 1 || entries[0].Action != "emptyTrash" || entries[0].Outcome != audit.OutcomeOK {
		t.Fatalf("audit=%+v", entries)
	}
}

func TestE2E_InteractiveRefreshHitsBackend(t *testing.T) {
	s := newStack(t)
	before := s.backend.callCount("GET /backups")

	var st types.ResourceState
	code := postJSON(t, s.srv.URL+"/resources/backups/refresh", nil, &st)
	if code != http.StatusOK {
		t.Fatalf("refresh status=%d", code)
	}
	if st.State != "ready" {
		t.Fatalf("state=%s", st.State)
	}
	if got := s.backend.callCount("GET /backups"); got != before+1 {
		t.Fatalf("GET /backups calls=%d want=%d", got, before+1)
	}
}

func TestE2E_DismissNotification(t *testing.T) {
	s := newStack(t)
	postJSON(t, s.srv.URL+"/resources/backups/actions/createDatabaseBackup", nil, nil)

	var notes types.NotificationsResponse
	getJSON(t, s.srv.URL+"/notifications", &notes)
	if len(notes.Notifications) == 0 {
		t.Fatal("expected a notification to dismiss")
	}
	id := notes.Notifications[0].ID

	req, _ := http.NewRequest(http.MethodDelete, s.srv.URL+"/notifications/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("dismiss status=%d", resp.StatusCode)
	}

	deadline := time.Now().Add(time.Second)
	for {
		var after types.NotificationsResponse
		getJSON(t, s.srv.URL+"/notifications", &after)
		gone := true
		for _, n := range after.Notifications {
			if n.ID == id {
				gone = false
			}
		}
		if gone {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("notification %s still active", id)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestE2E_UnknownResourceIs404(t *testing.T) {
	s := newStack(t)
	if code := getJSON(t, s.srv.URL+"/resources/nope", nil); code != http.StatusNotFound {
		t.Fatalf("status=%d", code)
	}
	if code := postJSON(t, s.srv.URL+"/resources/nope/actions/emptyTrash", nil, nil); code != http.StatusNotFound {
		t.Fatalf("action status=%d", code)
	}
}
