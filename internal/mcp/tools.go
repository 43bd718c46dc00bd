package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"clockodo-mcp/internal/domain"
	"clockodo-mcp/internal/render"
	"clockodo-mcp/internal/usecase"
)

// registerTools declares every tool and binds it to its handler. Each
// handler is a boundary: domain and unexpected errors become descriptive
// result strings and never escape the invocation.
func (h *Handler) registerTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("start_time_tracking",
		mcp.WithDescription("Start time tracking for a customer, optionally scoped to a project and service."),
		mcp.WithString("customer_name", mcp.Required(), mcp.Description("Name of the customer (partial match)")),
		mcp.WithString("project_name", mcp.Description("Optional project name")),
		mcp.WithString("service_name", mcp.Description("Optional service name")),
		mcp.WithString("description", mcp.Description("Optional description text")),
	), h.startTimeTracking)

	s.AddTool(mcp.NewTool("stop_time_tracking",
		mcp.WithDescription("Stop the currently running time tracking."),
	), h.stopTimeTracking)

	s.AddTool(mcp.NewTool("get_running_entry",
		mcp.WithDescription("Show the currently running time entry, if any."),
	), h.getRunningEntry)

	s.AddTool(mcp.NewTool("create_time_entry",
		mcp.WithDescription("Create a manual time entry for a given date and time range."),
		mcp.WithString("customer_name", mcp.Required(), mcp.Description("Name of the customer (partial match)")),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD format")),
		mcp.WithString("start_time", mcp.Required(), mcp.Description("Start time in HH:MM format")),
		mcp.WithString("end_time", mcp.Required(), mcp.Description("End time in HH:MM format")),
		mcp.WithString("project_name", mcp.Description("Optional project name")),
		mcp.WithString("service_name", mcp.Description("Optional service name")),
		mcp.WithString("description", mcp.Description("Optional description")),
	), h.createTimeEntry)

	s.AddTool(mcp.NewTool("update_time_entry",
		mcp.WithDescription("Update the description or billable flag of an existing time entry."),
		mcp.WithNumber("entry_id", mcp.Required(), mcp.Description("ID of the entry to update")),
		mcp.WithString("description", mcp.Description("New description text")),
		mcp.WithBoolean("billable", mcp.Description("New billable flag")),
	), h.updateTimeEntry)

	s.AddTool(mcp.NewTool("delete_time_entry",
		mcp.WithDescription("Delete a time entry by ID."),
		mcp.WithNumber("entry_id", mcp.Required(), mcp.Description("ID of the entry to delete")),
	), h.deleteTimeEntry)

	s.AddTool(mcp.NewTool("get_work_summary",
		mcp.WithDescription("Summarize tracked hours for a period, broken down by customer and project."),
		mcp.WithString("period", mcp.Description("Period to summarize: today, yesterday, week, month (default week)")),
	), h.getWorkSummary)

	s.AddTool(mcp.NewTool("list_week_entries",
		mcp.WithDescription("List time entries for a specific calendar week."),
		mcp.WithNumber("year", mcp.Required(), mcp.Description("Calendar year, e.g. 2024")),
		mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number, 1-53")),
	), h.listWeekEntries)
}

// errResult renders any error as a user-facing failure string. Validation
// errors carry their own message; everything else names the failed action.
func errResult(action string, err error) *mcp.CallToolResult {
	if apiErr, ok := domain.AsAPIError(err); ok && apiErr.Kind == domain.KindValidation {
		return mcp.NewToolResultError("❌ " + apiErr.Message)
	}
	return mcp.NewToolResultError(fmt.Sprintf("❌ Error %s: %v", action, err))
}

func notFoundResult(nf *usecase.NotFound, customerName string) *mcp.CallToolResult {
	switch nf.Kind {
	case "customer":
		msg := fmt.Sprintf("Customer '%s' not found.", nf.Name)
		if len(nf.Suggestions) > 0 {
			msg += " Available customers: " + strings.Join(nf.Suggestions, ", ")
		}
		return mcp.NewToolResultText(msg)
	case "project":
		return mcp.NewToolResultText(fmt.Sprintf("Project '%s' not found for customer '%s'", nf.Name, customerName))
	default:
		return mcp.NewToolResultText(fmt.Sprintf("Service '%s' not found", nf.Name))
	}
}

func (h *Handler) startTimeTracking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	customer, err := req.RequireString("customer_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.tracker.Start(ctx, usecase.StartRequest{
		Customer:    customer,
		Project:     req.GetString("project_name", ""),
		Service:     req.GetString("service_name", ""),
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return errResult("starting time tracking", err), nil
	}
	if res.NotFound != nil {
		return notFoundResult(res.NotFound, res.Customer.Name), nil
	}

	msg := "✅ Time tracking started for " + res.Customer.Name
	if res.Project != nil {
		msg += " - " + res.Project.Name
	}
	if res.Service != nil {
		msg += " (" + res.Service.Name + ")"
	}
	return mcp.NewToolResultText(msg), nil
}

func (h *Handler) stopTimeTracking(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := h.tracker.Stop(ctx)
	if err != nil {
		return errResult("stopping time tracking", err), nil
	}
	if !res.WasRunning {
		return mcp.NewToolResultText("⏹️ No time tracking currently running"), nil
	}
	if res.Timed {
		return mcp.NewToolResultText(fmt.Sprintf("⏹️ Time tracking stopped. Duration: %.2f hours", res.Hours)), nil
	}
	return mcp.NewToolResultText("⏹️ Time tracking stopped"), nil
}

func (h *Handler) getRunningEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	running := h.tracker.Running(ctx)
	if running == nil {
		return mcp.NewToolResultText("⏹️ No time tracking currently running"), nil
	}
	return mcp.NewToolResultText(render.Running(running, h.now())), nil
}

func (h *Handler) createTimeEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	customer, err := req.RequireString("customer_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start, err := req.RequireString("start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := req.RequireString("end_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := h.tracker.Create(ctx, usecase.CreateRequest{
		Customer:    customer,
		Date:        date,
		Start:       start,
		End:         end,
		Project:     req.GetString("project_name", ""),
		Service:     req.GetString("service_name", ""),
		Description: req.GetString("description", ""),
	})
	if err != nil {
		return errResult("creating entry", err), nil
	}
	if res.NotFound != nil {
		return notFoundResult(res.NotFound, res.Customer.Name), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Time entry created: %s (%.2fh on %s)", res.Customer.Name, res.Hours, date)), nil
}

func (h *Handler) updateTimeEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("entry_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields := map[string]any{}
	if v := req.GetString("description", ""); v != "" {
		fields["text"] = v
	}
	if args := req.GetArguments(); args != nil {
		if v, ok := args["billable"].(bool); ok {
			fields["billable"] = boolToBillable(v)
		}
	}
	if len(fields) == 0 {
		return mcp.NewToolResultError("❌ Nothing to update: provide description or billable"), nil
	}

	entry, err := h.client.UpdateEntry(ctx, int64(id), fields)
	if err != nil {
		return errResult("updating entry", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Entry %d updated for %s", entry.ID, entry.CustomerName)), nil
}

func (h *Handler) deleteTimeEntry(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireInt("entry_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !h.tracker.Delete(ctx, int64(id)) {
		return mcp.NewToolResultText(fmt.Sprintf("❌ Could not delete entry %d", id)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("✅ Entry %d deleted", id)), nil
}

func (h *Handler) getWorkSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period := req.GetString("period", "week")

	res, err := h.tracker.EntriesForPeriod(ctx, period)
	if err != nil {
		return errResult("getting summary", err), nil
	}
	if res.Fetched == 0 {
		return mcp.NewToolResultText("No time entries for " + period), nil
	}
	if len(res.Entries) == 0 {
		return mcp.NewToolResultText("No time entries found for your user for " + period), nil
	}
	return mcp.NewToolResultText(render.Summary(period, res.Entries)), nil
}

func (h *Handler) listWeekEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := req.RequireInt("year")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	week, err := req.RequireInt("week")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if week < 1 || week > 53 {
		return mcp.NewToolResultError("❌ week must be between 1 and 53"), nil
	}

	entries, err := h.client.EntriesForWeek(ctx, year, week)
	if err != nil {
		return errResult("getting entries", err), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No time entries found for week %d/%d", week, year)), nil
	}
	return mcp.NewToolResultText(render.Entries(fmt.Sprintf("week %d/%d", week, year), entries)), nil
}

func boolToBillable(b bool) int {
	if b {
		return 1
	}
	return 0
}
