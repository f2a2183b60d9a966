package gtdserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pentaxis93/spandaworks/internal/core/gtd"
	"github.com/pentaxis93/spandaworks/pkg/iojson"
)

// result renders v as JSON. Failures become error results prefixed with
// what was being attempted.
func result(action string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", action, err)), nil
	}
	return mcp.NewToolResultText(iojson.Pretty(v)), nil
}

// list reads an array argument. Clients that send a comma separated string
// instead are accepted too.
func list(req mcp.CallToolRequest, key string) []string {
	if s, ok := req.GetArguments()[key].(string); ok {
		var out []string
		for part := range strings.SplitSeq(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return req.GetStringSlice(key, nil)
}

func (s *Server) handleAddTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Add(ctx, gtd.NewTask{
		Description: req.GetString("description", ""),
		Project:     req.GetString("project", ""),
		Priority:    req.GetString("priority", ""),
		Tags:        list(req, "tags"),
		Due:         req.GetString("due", ""),
		Scheduled:   req.GetString("scheduled", ""),
		Wait:        req.GetString("wait", ""),
		Until:       req.GetString("until", ""),
		Context:     req.GetString("context", ""),
		Energy:      req.GetString("energy", ""),
		Parent:      req.GetString("parent", ""),
		Recur:       req.GetString("recur", ""),
		Depends:     list(req, "depends"),
		Annotations: list(req, "annotations"),
	})
	return result("adding task", task, err)
}

func (s *Server) handleListTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := s.tasks.List(ctx, gtd.Filter{
		Project:         req.GetString("project", ""),
		Tags:            list(req, "tags"),
		Status:          req.GetString("status", ""),
		Contains:        req.GetString("description_contains", ""),
		DueBefore:       req.GetString("due_before", ""),
		DueAfter:        req.GetString("due_after", ""),
		ScheduledBefore: req.GetString("scheduled_before", ""),
		ScheduledAfter:  req.GetString("scheduled_after", ""),
		ModifiedBefore:  req.GetString("modified_before", ""),
		ModifiedAfter:   req.GetString("modified_after", ""),
		Limit:           req.GetInt("limit", 0),
	})
	return result("listing tasks", tasks, err)
}

func (s *Server) handleGetTaskDetails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Get(ctx, req.GetString("uuid", ""))
	return result("getting task", task, err)
}

func (s *Server) handleModifyTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Modify(ctx, req.GetString("uuid", ""), gtd.Changes{
		Description:   req.GetString("description", ""),
		Status:        req.GetString("status", ""),
		Project:       req.GetString("project", ""),
		Priority:      req.GetString("priority", ""),
		Due:           req.GetString("due", ""),
		Scheduled:     req.GetString("scheduled", ""),
		Wait:          req.GetString("wait", ""),
		Until:         req.GetString("until", ""),
		Context:       req.GetString("context", ""),
		Energy:        req.GetString("energy", ""),
		Parent:        req.GetString("parent", ""),
		Recur:         req.GetString("recur", ""),
		AddTags:       list(req, "add_tags"),
		RemoveTags:    list(req, "remove_tags"),
		AddDepends:    list(req, "add_depends"),
		RemoveDepends: list(req, "remove_depends"),
		Clear:         list(req, "clear"),
	})
	return result("modifying task", task, err)
}

func (s *Server) handleMarkTaskDone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Done(ctx, req.GetString("uuid", ""))
	return result("completing task", task, err)
}

func (s *Server) handleDeleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Delete(ctx, req.GetString("uuid", ""))
	return result("deleting task", task, err)
}

func (s *Server) handleStartTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Start(ctx, req.GetString("uuid", ""))
	return result("starting task", task, err)
}

func (s *Server) handleStopTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Stop(ctx, req.GetString("uuid", ""))
	return result("stopping task", task, err)
}

func (s *Server) handleAddAnnotation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Annotate(ctx, req.GetString("uuid", ""), req.GetString("annotation", ""))
	return result("adding annotation", task, err)
}

func (s *Server) handleRemoveAnnotation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	task, err := s.tasks.Denotate(ctx, req.GetString("uuid", ""), req.GetString("annotation", ""))
	return result("removing annotation", task, err)
}

func (s *Server) handleGetNextActions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.tasks.NextActions(ctx, gtd.NextActionsQuery{
		Context:        req.GetString("context", ""),
		Energy:         req.GetString("energy_level", ""),
		TimeAvailable:  req.GetString("time_available", ""),
		IncludeBlocked: req.GetBool("include_blocked", false),
		Limit:          req.GetInt("limit", 0),
	})
	return result("getting next actions", report, err)
}

func (s *Server) handleProcessInbox(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.tasks.Inbox(ctx)
	return result("processing inbox", report, err)
}

func (s *Server) handleGetWaitingFor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.tasks.WaitingFor(ctx, req.GetString("group_by", ""))
	return result("getting waiting for", report, err)
}

func (s *Server) handleGetSomedayMaybe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.tasks.SomedayMaybe(ctx, req.GetString("project", ""), req.GetInt("limit", 0))
	return result("getting someday/maybe", report, err)
}

func (s *Server) handleWeeklyReview(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	review, err := s.tasks.WeeklyReview(ctx)
	return result("running weekly review", review, err)
}
