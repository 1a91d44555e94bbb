// Package orchestrator owns the request lifecycle for one named admin
// resource: initial load, optional timed silent refresh, mutation dispatch,
// error surfacing, and teardown. It is structured into small files by concern:
//
//   - orchestrator.go: core Orchestrator type, constructor, simple getters.
//   - config.go: ResourceConfig and package defaults; New applies defaults.
//   - types.go: state types (State, Snapshot) and OperationFunc.
//   - errors.go: error types and helpers (IsConfigError, IsCanceled).
//   - execute.go: Execute/ExecuteStrict/Refresh and the shared dispatch path.
//   - refresh.go: auto-refresh ticker loop.
//   - context.go: context joining for caller + instance cancellation.
//   - events.go: lifecycle event publishing.
//   - metrics.go: prometheus counters.
//
// One Orchestrator instance owns its state exclusively; nothing is shared
// across resources. Callers should treat this package as the orchestration
// layer and use public methods only.
package orchestrator
