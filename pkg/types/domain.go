package types

// Backup describes one database backup as reported by the records backend.
type Backup struct {
	// Backend identifier of the backup.
	// example: 17
	ID int64 `json:"id" example:"17"`
	// Backup file name.
	// example: backup_2024-11-02_0300.sql.gz
	Filename string `json:"filename" example:"backup_2024-11-02_0300.sql.gz"`
	// Size in bytes.
	// example: 10485760
	SizeBytes int64 `json:"size_bytes" example:"10485760"`
	// Creation time in unix seconds.
	// example: 1700000000
	CreatedUnix int64 `json:"created_unix" example:"1700000000"`
	// Whether the backup passed its last integrity verification.
	// example: true
	Verified bool `json:"verified" example:"true"`
}

// BackupList is the load result for the backups resource.
type BackupList struct {
	Backups []Backup `json:"backups"`
	// Total size of all backups in bytes.
	// example: 52428800
	TotalSizeBytes int64 `json:"total_size_bytes" example:"52428800"`
}

// TrashItem is a soft-deleted record awaiting restore or purge.
type TrashItem struct {
	// Backend identifier of the trash entry.
	// example: 204
	ID int64 `json:"id" example:"204"`
	// Model the record belongs to.
	// example: patients
	Model string `json:"model" example:"patients"`
	// Display label of the deleted record.
	// example: Doe, Jane
	Label string `json:"label" example:"Doe, Jane"`
	// Deletion time in unix seconds.
	// example: 1700000000
	DeletedUnix int64 `json:"deleted_unix" example:"1700000000"`
	// User who deleted the record.
	// example: admin
	DeletedBy string `json:"deleted_by" example:"admin"`
}

// TrashList is the load result for the trash resource.
type TrashList struct {
	Items []TrashItem `json:"items"`
	// Total number of soft-deleted records.
	// example: 12
	Total int `json:"total" example:"12"`
}

// DashboardStats is the load result for the dashboard resource.
type DashboardStats struct {
	// example: 48
	TotalUsers int `json:"total_users" example:"48"`
	// example: 10231
	TotalPatients int `json:"total_patients" example:"10231"`
	// example: 88412
	TotalLabResults int `json:"total_lab_results" example:"88412"`
	// example: 12
	TrashCount int `json:"trash_count" example:"12"`
	// example: 5
	BackupCount int `json:"backup_count" example:"5"`
	// Unix seconds of the newest backup, 0 when none exist.
	// example: 1700000000
	LastBackupUnix int64 `json:"last_backup_unix" example:"1700000000"`
	// Backend health indicator: ok or degraded.
	// example: ok
	SystemHealth string `json:"system_health" example:"ok"`
}
