package mcp

import (
	"context"
	"log/slog"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/domain/process"
	"github.com/andeslex/casewatch/internal/domain/syncer"
	"github.com/andeslex/casewatch/internal/registry"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `casewatch tracks judicial cases against the public registry.

Register a docket with add_monitor, then sync_case or sync_all to pull new
actuations. lookup_case queries the registry directly without persisting
anything. Actuations discovered by a sync are flagged as new until
mark_actuations_seen clears them.`

// ProcessService defines monitor lifecycle operations needed by MCP.
type ProcessService interface {
	AddMonitor(ctx context.Context, ownerID string, req process.AddMonitorRequest) (*process.MonitoredProcess, error)
	RemoveMonitor(ctx context.Context, ownerID, processID string) error
	Get(ctx context.Context, ownerID, processID string) (*process.MonitoredProcess, error)
	List(ctx context.Context, ownerID string, opts process.ListOptions) ([]process.ProcessSummary, error)
	SetNotifications(ctx context.Context, ownerID, processID string, enabled bool) error
	SetStatus(ctx context.Context, ownerID, processID string, status process.Status) error
	ListActuations(ctx context.Context, ownerID, processID string, opts actuation.ListOptions) ([]actuation.Actuation, error)
	MarkActuationsSeen(ctx context.Context, ownerID, processID string) (int, error)
}

// SyncService defines synchronization operations needed by MCP.
type SyncService interface {
	SyncProcess(ctx context.Context, ownerID, processID string) (syncer.SyncAttemptResult, error)
	SyncAll(ctx context.Context, ownerID string) (*syncer.BatchSyncResult, error)
	SweepAll(ctx context.Context, ownerID string) (*syncer.BatchSyncResult, error)
}

// RegistryService defines the read-only registry lookup needed by MCP.
type RegistryService interface {
	FetchByDocket(ctx context.Context, docket string) (*registry.Snapshot, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Processes ProcessService
	Sync      SyncService
	Registry  RegistryService
}

// Config contains server configuration.
type Config struct {
	Services      Services
	Resolver      LawyerResolver
	AuthEnabled   bool
	DefaultLawyer string
	TransportMode string // "stdio" or "http"
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "casewatch",
		Version: "0.1.0",
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	defaultLawyer := cfg.DefaultLawyer
	if defaultLawyer == "" {
		defaultLawyer = "default"
	}

	// Stdio mode is local only: the caller is always the configured lawyer.
	if cfg.TransportMode == "stdio" || !cfg.AuthEnabled {
		server.AddReceivingMiddleware(noAuthMiddleware(defaultLawyer))
	} else {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
