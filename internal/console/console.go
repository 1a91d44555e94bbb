// Package console assembles the admin resources: each one pairs an
// orchestrator with operations bound to the records backend, and actions run
// through the shared notification and audit pattern.
package console

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"admind/internal/audit"
	"admind/internal/common/clockutil"
	"admind/internal/notify"
	"admind/internal/orchestrator"
	"admind/pkg/types"
)

// Backend is the slice of the records API the console consumes. Satisfied by
// *upstream.Client; stubbed in tests.
type Backend interface {
	ListBackups(ctx context.Context) (types.BackupList, error)
	CreateDatabaseBackup(ctx context.Context) (map[string]any, error)
	DeleteBackup(ctx context.Context, id int64) (map[string]any, error)
	VerifyBackup(ctx context.Context, id int64) (map[string]any, error)
	PreviewRestore(ctx context.Context, id int64) (map[string]any, error)
	RestoreBackup(ctx context.Context, id int64) (map[string]any, error)
	CleanupBackups(ctx context.Context) (map[string]any, error)
	ListTrash(ctx context.Context) (types.TrashList, error)
	RestoreTrashItem(ctx context.Context, id int64) (map[string]any, error)
	PurgeTrashItem(ctx context.Context, id int64) (map[string]any, error)
	EmptyTrash(ctx context.Context) (map[string]any, error)
	DashboardStats(ctx context.Context) (types.DashboardStats, error)
}

// Config carries the console's explicit dependencies.
type Config struct {
	Backend         Backend
	Notifier        *notify.Notifier
	Audit           audit.Store
	Clock           clockutil.Clock
	Logger          zerolog.Logger
	Events          orchestrator.EventPublisher
	AutoRefresh     bool
	RefreshInterval time.Duration
}

// Console owns one orchestrator per resource.
type Console struct {
	resources map[string]*orchestrator.Orchestrator
	names     []string
	notifier  *notify.Notifier
	audit     audit.Store
	clock     clockutil.Clock
	log       zerolog.Logger
}

func New(cfg Config) (*Console, error) {
	if cfg.Clock == nil {
		cfg.Clock = clockutil.Real()
	}
	if cfg.Audit == nil {
		cfg.Audit = audit.NewMemoryStore()
	}
	c := &Console{
		resources: make(map[string]*orchestrator.Orchestrator),
		notifier:  cfg.Notifier,
		audit:     cfg.Audit,
		clock:     cfg.Clock,
		log:       cfg.Logger,
	}

	b := cfg.Backend
	defs := []struct {
		name, entity string
		autoRefresh  bool
		ops          map[string]orchestrator.OperationFunc
	}{
		{
			name: "backups", entity: "Backups", autoRefresh: cfg.AutoRefresh,
			ops: map[string]orchestrator.OperationFunc{
				orchestrator.OpLoad: func(ctx context.Context, _ any) (any, error) {
					return b.ListBackups(ctx)
				},
				"createDatabaseBackup": func(ctx context.Context, _ any) (any, error) {
					return b.CreateDatabaseBackup(ctx)
				},
				"deleteBackup":   withID(b.DeleteBackup),
				"verifyBackup":   withID(b.VerifyBackup),
				"previewRestore": withID(b.PreviewRestore),
				"restoreBackup":  withID(b.RestoreBackup),
				"cleanupBackups": func(ctx context.Context, _ any) (any, error) {
					return b.CleanupBackups(ctx)
				},
			},
		},
		{
			name: "trash", entity: "Trash", autoRefresh: cfg.AutoRefresh,
			ops: map[string]orchestrator.OperationFunc{
				orchestrator.OpLoad: func(ctx context.Context, _ any) (any, error) {
					return b.ListTrash(ctx)
				},
				"restoreTrashItem": withID(b.RestoreTrashItem),
				"purgeTrashItem":   withID(b.PurgeTrashItem),
				"emptyTrash": func(ctx context.Context, _ any) (any, error) {
					return b.EmptyTrash(ctx)
				},
			},
		},
		{
			name: "dashboard", entity: "Dashboard Statistics", autoRefresh: cfg.AutoRefresh,
			ops: map[string]orchestrator.OperationFunc{
				orchestrator.OpLoad: func(ctx context.Context, _ any) (any, error) {
					return b.DashboardStats(ctx)
				},
			},
		},
	}

	for _, def := range defs {
		o, err := orchestrator.New(orchestrator.ResourceConfig{
			EntityName:      def.entity,
			Operations:      def.ops,
			AutoRefresh:     def.autoRefresh,
			RefreshInterval: cfg.RefreshInterval,
			Clock:           cfg.Clock,
			Logger:          cfg.Logger,
			Events:          cfg.Events,
		})
		if err != nil {
			return nil, err
		}
		c.resources[def.name] = o
		c.names = append(c.names, def.name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Activate triggers each resource's initial load and refresh timer.
func (c *Console) Activate(ctx context.Context) {
	for _, name := range c.names {
		c.resources[name].Activate(ctx)
	}
}

// Deactivate tears down every resource. Safe to call multiple times.
func (c *Console) Deactivate() {
	for _, name := range c.names {
		c.resources[name].Deactivate()
	}
}

// Resources lists the configured resources.
func (c *Console) Resources() []types.ResourceSummary {
	out := make([]types.ResourceSummary, 0, len(c.names))
	for _, name := range c.names {
		o := c.resources[name]
		actions := o.Operations()
		sort.Strings(actions)
		interval := int64(0)
		if o.AutoRefresh() {
			interval = o.RefreshInterval().Milliseconds()
		}
		out = append(out, types.ResourceSummary{
			Name:              name,
			Entity:            o.Entity(),
			AutoRefresh:       o.AutoRefresh(),
			RefreshIntervalMs: interval,
			Actions:           actions,
		})
	}
	return out
}

// State projects one resource's snapshot for the API.
func (c *Console) State(name string) (types.ResourceState, error) {
	o, ok := c.resources[name]
	if !ok {
		return types.ResourceState{}, ErrUnknownResource(name)
	}
	snap := o.Snapshot()
	st := types.ResourceState{
		Name:           name,
		Entity:         snap.Entity,
		State:          string(snap.State),
		Loading:        snap.Loading,
		Data:           snap.Data,
		SuccessMessage: snap.SuccessMessage,
	}
	if snap.Err != nil {
		st.Error = snap.Err.Error()
	}
	if !snap.LastLoaded.IsZero() {
		st.LastLoadedUnix = snap.LastLoaded.Unix()
	}
	return st, nil
}

// Refresh re-pulls one resource's data.
func (c *Console) Refresh(ctx context.Context, name string, silent bool) error {
	o, ok := c.resources[name]
	if !ok {
		return ErrUnknownResource(name)
	}
	_, err := o.Refresh(ctx, silent)
	return err
}

// ClearError resets one resource's surfaced error.
func (c *Console) ClearError(name string) error {
	o, ok := c.resources[name]
	if !ok {
		return ErrUnknownResource(name)
	}
	o.ClearError()
	return nil
}

// ClearSuccess resets one resource's success message after its display
// timeout.
func (c *Console) ClearSuccess(name string) error {
	o, ok := c.resources[name]
	if !ok {
		return ErrUnknownResource(name)
	}
	o.ClearSuccess()
	return nil
}

// Ready reports whether every resource has loaded successfully.
func (c *Console) Ready() bool {
	for _, name := range c.names {
		if c.resources[name].Snapshot().State != orchestrator.StateReady {
			return false
		}
	}
	return true
}
