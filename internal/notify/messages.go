package notify

import (
	"encoding/json"
	"fmt"
)

// labels maps the closed action vocabulary to display names. Unknown actions
// fall back to the raw name, so lookups are total.
var labels = map[string]string{
	"load":                 "Load",
	"createDatabaseBackup": "Create Database Backup",
	"restoreBackup":        "Restore Backup",
	"deleteBackup":         "Delete Backup",
	"verifyBackup":         "Verify Backup",
	"previewRestore":       "Preview Restore",
	"cleanupBackups":       "Clean Up Old Backups",
	"downloadBackup":       "Download Backup",
	"emptyTrash":           "Empty Trash",
	"restoreTrashItem":     "Restore Item",
	"purgeTrashItem":       "Permanently Delete Item",
	"resetUserPassword":    "Reset User Password",
}

// errorBases maps known actions to a domain-appropriate failure sentence.
var errorBases = map[string]string{
	"createDatabaseBackup": "Failed to create database backup",
	"restoreBackup":        "Failed to restore from backup",
	"deleteBackup":         "Failed to delete backup",
	"verifyBackup":         "Backup verification failed",
	"previewRestore":       "Failed to preview restore",
	"cleanupBackups":       "Failed to clean up old backups",
	"downloadBackup":       "Failed to download backup",
	"emptyTrash":           "Failed to empty trash",
	"restoreTrashItem":     "Failed to restore item",
	"purgeTrashItem":       "Failed to permanently delete item",
	"resetUserPassword":    "Failed to reset password",
}

// Label returns the display name for an action, or the raw name when unknown.
func Label(action string) string {
	if l, ok := labels[action]; ok {
		return l
	}
	return action
}

// SuccessMessage builds the success sentence for an action, interpolating
// known result fields when present. It tolerates a missing or malformed
// result and never fails.
func SuccessMessage(action string, result any) string {
	m := resultMap(result)
	switch action {
	case "createDatabaseBackup":
		if n, ok := intField(m, "size_bytes"); ok {
			return fmt.Sprintf("Database backup created successfully (%s).", formatBytes(n))
		}
		return "Database backup created successfully!"
	case "restoreBackup":
		return "Database restored successfully. A safety backup was created before the restore."
	case "deleteBackup":
		if name, ok := strField(m, "filename"); ok {
			return fmt.Sprintf("Backup %s deleted successfully.", name)
		}
		return "Backup deleted successfully."
	case "verifyBackup":
		return "Backup integrity verified successfully."
	case "previewRestore":
		if n, ok := intField(m, "record_count"); ok {
			return fmt.Sprintf("Restore preview ready: %d records would be affected.", n)
		}
		return "Restore preview ready."
	case "cleanupBackups":
		if n, ok := intField(m, "deleted"); ok {
			return fmt.Sprintf("Removed %d old backups.", n)
		}
		return "Old backups cleaned up successfully."
	case "emptyTrash":
		if n, ok := intField(m, "deleted"); ok {
			return fmt.Sprintf("Trash emptied: %d items permanently deleted.", n)
		}
		return "Trash emptied successfully."
	case "restoreTrashItem":
		return "Item restored successfully."
	case "purgeTrashItem":
		return "Item permanently deleted."
	case "resetUserPassword":
		return "Password reset email sent."
	default:
		return Label(action) + " completed successfully!"
	}
}

// ErrorMessage builds the failure sentence for an action, appending the error
// text when one is carried. The error may be an error value, a plain string,
// or absent.
func ErrorMessage(action string, err any) string {
	base, ok := errorBases[action]
	if !ok {
		base = Label(action) + " failed"
	}
	if msg := errText(err); msg != "" {
		return base + ": " + msg
	}
	return base
}

// resultMap coerces an arbitrary result into field lookups. Maps are used
// directly; structs go through a JSON round trip; anything else yields nil.
func resultMap(result any) map[string]any {
	switch v := result.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	default:
		b, err := json.Marshal(result)
		if err != nil {
			return nil
		}
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			return nil
		}
		return m
	}
}

func intField(m map[string]any, key string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

func strField(m map[string]any, key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok && s != ""
}

func errText(err any) string {
	switch v := err.(type) {
	case nil:
		return ""
	case error:
		return v.Error()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
