package mcp

import (
	"context"

	"github.com/andeslex/casewatch/internal/domain/actuation"
	"github.com/andeslex/casewatch/internal/domain/process"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerTools registers all casewatch tools on the server.
func registerTools(server *sdkmcp.Server, svc Services) {
	h := &toolHandler{svc: svc}

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "lookup_case",
		Description: "Look up a docket directly in the public registry without registering or persisting anything. An unknown docket is a valid empty answer, not an error.",
	}, h.lookupCase)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "add_monitor",
		Description: "Register a 23-digit docket for monitoring. By default the actuations already on record are fetched and stored without being flagged as new.",
	}, h.addMonitor)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_monitor",
		Description: "Stop monitoring a case and delete its stored actuations.",
	}, h.removeMonitor)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_cases",
		Description: "List the caller's monitored cases with unseen actuation counts.",
	}, h.listCases)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_case",
		Description: "Get full details for one monitored case.",
	}, h.getCase)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_notifications",
		Description: "Enable or disable sync notifications for a case. Disabled cases are skipped by sync_all.",
	}, h.setNotifications)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_status",
		Description: "Set a case's lifecycle status: active, terminated or suspended. Only active cases are synced.",
	}, h.setStatus)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sync_case",
		Description: "Fetch the registry snapshot for one monitored case and store any actuations not seen before.",
	}, h.syncCase)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "sync_all",
		Description: "Sync every active, notification-enabled case serially. One case failing does not stop the batch.",
	}, h.syncAll)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_actuations",
		Description: "List stored actuations for a case, newest first.",
	}, h.listActuations)

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "mark_actuations_seen",
		Description: "Clear the new flag on all of a case's actuations.",
	}, h.markActuationsSeen)
}

type toolHandler struct {
	svc Services
}

// LookupCaseInput is the input for lookup_case.
type LookupCaseInput struct {
	Docket string `json:"docket" jsonschema:"23-digit docket number; dashes and spaces are ignored"`
}

// LookupCaseOutput is the output for lookup_case.
type LookupCaseOutput struct {
	Docket     string                  `json:"docket"`
	Found      bool                    `json:"found"`
	Forum      string                  `json:"forum,omitempty"`
	Actuations []RegistryActuationView `json:"actuations"`
}

func (h *toolHandler) lookupCase(ctx context.Context, req *sdkmcp.CallToolRequest, input LookupCaseInput) (*sdkmcp.CallToolResult, LookupCaseOutput, error) {
	docket, err := process.NormalizeDocket(input.Docket)
	if err != nil {
		return nil, LookupCaseOutput{}, toolError(err)
	}

	snap, err := h.svc.Registry.FetchByDocket(ctx, docket)
	if err != nil {
		return nil, LookupCaseOutput{}, toolError(err)
	}

	out := LookupCaseOutput{
		Docket:     docket,
		Found:      !snap.Empty(),
		Actuations: toRegistryActuationViews(snap.Actuations),
	}
	if snap.Forum != nil {
		out.Forum = *snap.Forum
	}
	return nil, out, nil
}

// AddMonitorInput is the input for add_monitor.
type AddMonitorInput struct {
	Docket    string `json:"docket" jsonschema:"23-digit docket number; dashes and spaces are ignored"`
	CaseType  string `json:"case_type,omitempty" jsonschema:"Optional case type label"`
	Plaintiff string `json:"plaintiff,omitempty" jsonschema:"Optional plaintiff name"`
	Defendant string `json:"defendant,omitempty" jsonschema:"Optional defendant name"`
	SkipSeed  bool   `json:"skip_seed,omitempty" jsonschema:"Skip the initial registry fetch of existing actuations"`
}

// AddMonitorOutput is the output for add_monitor.
type AddMonitorOutput struct {
	Case ProcessView `json:"case"`
}

func (h *toolHandler) addMonitor(ctx context.Context, req *sdkmcp.CallToolRequest, input AddMonitorInput) (*sdkmcp.CallToolResult, AddMonitorOutput, error) {
	proc, err := h.svc.Processes.AddMonitor(ctx, getLawyerID(ctx), process.AddMonitorRequest{
		Docket:    input.Docket,
		CaseType:  input.CaseType,
		Plaintiff: input.Plaintiff,
		Defendant: input.Defendant,
		Seed:      !input.SkipSeed,
	})
	if err != nil {
		return nil, AddMonitorOutput{}, toolError(err)
	}
	return nil, AddMonitorOutput{Case: toProcessView(proc)}, nil
}

// RemoveMonitorInput is the input for remove_monitor.
type RemoveMonitorInput struct {
	ProcessID string `json:"process_id" jsonschema:"ID of the monitored case"`
}

// RemoveMonitorOutput is the output for remove_monitor.
type RemoveMonitorOutput struct {
	Removed bool `json:"removed"`
}

func (h *toolHandler) removeMonitor(ctx context.Context, req *sdkmcp.CallToolRequest, input RemoveMonitorInput) (*sdkmcp.CallToolResult, RemoveMonitorOutput, error) {
	if err := h.svc.Processes.RemoveMonitor(ctx, getLawyerID(ctx), input.ProcessID); err != nil {
		return nil, RemoveMonitorOutput{}, toolError(err)
	}
	return nil, RemoveMonitorOutput{Removed: true}, nil
}

// ListCasesInput is the input for list_cases.
type ListCasesInput struct {
	Status        string `json:"status,omitempty" jsonschema:"Filter by status: active, terminated or suspended"`
	MonitoredOnly bool   `json:"monitored_only,omitempty" jsonschema:"Only cases eligible for sync_all"`
	Limit         int    `json:"limit,omitempty" jsonschema:"Maximum rows to return"`
	Offset        int    `json:"offset,omitempty" jsonschema:"Rows to skip"`
}

// ListCasesOutput is the output for list_cases.
type ListCasesOutput struct {
	Cases []CaseSummaryView `json:"cases"`
}

func (h *toolHandler) listCases(ctx context.Context, req *sdkmcp.CallToolRequest, input ListCasesInput) (*sdkmcp.CallToolResult, ListCasesOutput, error) {
	opts := process.ListOptions{
		MonitoredOnly: input.MonitoredOnly,
		Limit:         input.Limit,
		Offset:        input.Offset,
	}
	if input.Status != "" {
		status := process.Status(input.Status)
		if !status.Valid() {
			return nil, ListCasesOutput{}, toolError(process.ErrInvalidStatus)
		}
		opts.Status = &status
	}

	summaries, err := h.svc.Processes.List(ctx, getLawyerID(ctx), opts)
	if err != nil {
		return nil, ListCasesOutput{}, toolError(err)
	}

	out := ListCasesOutput{Cases: make([]CaseSummaryView, 0, len(summaries))}
	for _, s := range summaries {
		out.Cases = append(out.Cases, toCaseSummaryView(s))
	}
	return nil, out, nil
}

// GetCaseInput is the input for get_case.
type GetCaseInput struct {
	ProcessID string `json:"process_id" jsonschema:"ID of the monitored case"`
}

// GetCaseOutput is the output for get_case.
type GetCaseOutput struct {
	Case ProcessView `json:"case"`
}

func (h *toolHandler) getCase(ctx context.Context, req *sdkmcp.CallToolRequest, input GetCaseInput) (*sdkmcp.CallToolResult, GetCaseOutput, error) {
	proc, err := h.svc.Processes.Get(ctx, getLawyerID(ctx), input.ProcessID)
	if err != nil {
		return nil, GetCaseOutput{}, toolError(err)
	}
	return nil, GetCaseOutput{Case: toProcessView(proc)}, nil
}

// SetNotificationsInput is the input for set_notifications.
type SetNotificationsInput struct {
	ProcessID string `json:"process_id" jsonschema:"ID of the monitored case"`
	Enabled   bool   `json:"enabled" jsonschema:"Whether sync_all should include this case"`
}

// SetNotificationsOutput is the output for set_notifications.
type SetNotificationsOutput struct {
	ProcessID string `json:"process_id"`
	Enabled   bool   `json:"enabled"`
}

func (h *toolHandler) setNotifications(ctx context.Context, req *sdkmcp.CallToolRequest, input SetNotificationsInput) (*sdkmcp.CallToolResult, SetNotificationsOutput, error) {
	if err := h.svc.Processes.SetNotifications(ctx, getLawyerID(ctx), input.ProcessID, input.Enabled); err != nil {
		return nil, SetNotificationsOutput{}, toolError(err)
	}
	return nil, SetNotificationsOutput{ProcessID: input.ProcessID, Enabled: input.Enabled}, nil
}

// SetStatusInput is the input for set_status.
type SetStatusInput struct {
	ProcessID string `json:"process_id" jsonschema:"ID of the monitored case"`
	Status    string `json:"status" jsonschema:"New status: active, terminated or suspended"`
}

// SetStatusOutput is the output for set_status.
type SetStatusOutput struct {
	ProcessID string `json:"process_id"`
	Status    string `json:"status"`
}

func (h *toolHandler) setStatus(ctx context.Context, req *sdkmcp.CallToolRequest, input SetStatusInput) (*sdkmcp.CallToolResult, SetStatusOutput, error) {
	status := process.Status(input.Status)
	if err := h.svc.Processes.SetStatus(ctx, getLawyerID(ctx), input.ProcessID, status); err != nil {
		return nil, SetStatusOutput{}, toolError(err)
	}
	return nil, SetStatusOutput{ProcessID: input.ProcessID, Status: input.Status}, nil
}

// SyncCaseInput is the input for sync_case.
type SyncCaseInput struct {
	ProcessID string `json:"process_id" jsonschema:"ID of the monitored case"`
}

// SyncCaseOutput is the output for sync_case.
type SyncCaseOutput struct {
	Result SyncResultView `json:"result"`
}

func (h *toolHandler) syncCase(ctx context.Context, req *sdkmcp.CallToolRequest, input SyncCaseInput) (*sdkmcp.CallToolResult, SyncCaseOutput, error) {
	result, err := h.svc.Sync.SyncProcess(ctx, getLawyerID(ctx), input.ProcessID)
	if err != nil {
		return nil, SyncCaseOutput{}, toolError(err)
	}
	return nil, SyncCaseOutput{Result: toSyncResultView(result)}, nil
}

// SyncAllInput is the input for sync_all.
type SyncAllInput struct {
	Sweep bool `json:"sweep,omitempty" jsonschema:"Run with background sweep pacing instead of interactive pacing"`
}

// SyncAllOutput is the output for sync_all.
type SyncAllOutput struct {
	Batch BatchSyncView `json:"batch"`
}

func (h *toolHandler) syncAll(ctx context.Context, req *sdkmcp.CallToolRequest, input SyncAllInput) (*sdkmcp.CallToolResult, SyncAllOutput, error) {
	run := h.svc.Sync.SyncAll
	if input.Sweep {
		run = h.svc.Sync.SweepAll
	}
	result, err := run(ctx, getLawyerID(ctx))
	if err != nil {
		return nil, SyncAllOutput{}, toolError(err)
	}
	return nil, SyncAllOutput{Batch: toBatchSyncView(result)}, nil
}

// ListActuationsInput is the input for list_actuations.
type ListActuationsInput struct {
	ProcessID string `json:"process_id" jsonschema:"ID of the monitored case"`
	OnlyNew   bool   `json:"only_new,omitempty" jsonschema:"Only actuations not yet marked seen"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum rows to return"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Rows to skip"`
}

// ListActuationsOutput is the output for list_actuations.
type ListActuationsOutput struct {
	Actuations []ActuationView `json:"actuations"`
}

func (h *toolHandler) listActuations(ctx context.Context, req *sdkmcp.CallToolRequest, input ListActuationsInput) (*sdkmcp.CallToolResult, ListActuationsOutput, error) {
	acts, err := h.svc.Processes.ListActuations(ctx, getLawyerID(ctx), input.ProcessID, actuation.ListOptions{
		OnlyNew: input.OnlyNew,
		Limit:   input.Limit,
		Offset:  input.Offset,
	})
	if err != nil {
		return nil, ListActuationsOutput{}, toolError(err)
	}

	out := ListActuationsOutput{Actuations: make([]ActuationView, 0, len(acts))}
	for _, a := range acts {
		out.Actuations = append(out.Actuations, toActuationView(a))
	}
	return nil, out, nil
}

// MarkActuationsSeenInput is the input for mark_actuations_seen.
type MarkActuationsSeenInput struct {
	ProcessID string `json:"process_id" jsonschema:"ID of the monitored case"`
}

// MarkActuationsSeenOutput is the output for mark_actuations_seen.
type MarkActuationsSeenOutput struct {
	ProcessID string `json:"process_id"`
	Cleared   int    `json:"cleared"`
}

func (h *toolHandler) markActuationsSeen(ctx context.Context, req *sdkmcp.CallToolRequest, input MarkActuationsSeenInput) (*sdkmcp.CallToolResult, MarkActuationsSeenOutput, error) {
	cleared, err := h.svc.Processes.MarkActuationsSeen(ctx, getLawyerID(ctx), input.ProcessID)
	if err != nil {
		return nil, MarkActuationsSeenOutput{}, toolError(err)
	}
	return nil, MarkActuationsSeenOutput{ProcessID: input.ProcessID, Cleared: cleared}, nil
}
