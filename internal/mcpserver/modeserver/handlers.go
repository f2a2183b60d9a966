package modeserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pentaxis93/spandaworks/internal/core/modal"
	"github.com/pentaxis93/spandaworks/pkg/iojson"
)

func (s *Server) handleModeStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp := newStatusResponse(s.tracker.Status())
	return mcp.NewToolResultText(iojson.Pretty(resp)), nil
}

func (s *Server) handleEnterMode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("mode")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mode, err := modal.ParseMode(raw)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Unknown mode '%s'. Use: %s", raw, modeChoices())), nil
	}

	prev := s.tracker.EnterMode(mode)
	return mcp.NewToolResultText(fmt.Sprintf("Mode changed: %s -> %s", prev, mode)), nil
}

func (s *Server) handleExitMode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prev, changed := s.tracker.ExitMode()
	if !changed {
		return mcp.NewToolResultText("Already in default mode"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Exited %s mode, returned to default", prev)), nil
}

func (s *Server) handleSetContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stored := s.tracker.SetContext(req.GetString("context", ""))
	if stored == nil {
		return mcp.NewToolResultText("Context cleared"), nil
	}
	return mcp.NewToolResultText("Context set: " + *stored), nil
}

func (s *Server) handleGetContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	current := s.tracker.Context()
	if current == nil {
		return mcp.NewToolResultText("No active context"), nil
	}
	return mcp.NewToolResultText(*current), nil
}

func (s *Server) handleAddAttention(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	desc, err := req.RequireString("description")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if _, err := s.tracker.AddAttention(id, desc); err != nil {
		if errors.Is(err, modal.ErrAttentionExists) {
			return mcp.NewToolResultText(fmt.Sprintf("Attention item '%s' already exists", id)), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added attention item: %s - %s", id, desc)), nil
}

func (s *Server) handleUpdateAttention(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, err := req.RequireString("status")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	status, err := modal.ParseStatus(raw)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Unknown status '%s'. Use: %s", raw, statusChoices())), nil
	}

	item, err := s.tracker.UpdateAttention(id, status)
	if err != nil {
		if errors.Is(err, modal.ErrAttentionNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("Attention item '%s' not found", id)), nil
		}
		return nil, err
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated '%s' to %s", item.ID, item.Status)), nil
}

func (s *Server) handleListAttention(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetString("status", "")

	filter, err := modal.ParseStatusFilter(raw)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("Unknown status '%s'. Use: %s", raw, statusChoices("all"))), nil
	}

	items := s.tracker.ListAttention(filter)
	if len(items) == 0 {
		return mcp.NewToolResultText("No attention items"), nil
	}

	resp := make([]attentionResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, newAttentionResponse(item))
	}
	return mcp.NewToolResultText(iojson.Pretty(resp)), nil
}

func (s *Server) handleModeHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	history := s.tracker.History()

	resp := make([]transitionResponse, 0, len(history))
	for _, tr := range history {
		resp = append(resp, newTransitionResponse(tr))
	}
	return mcp.NewToolResultText(iojson.Pretty(resp)), nil
}

// modeChoices lists the modes an assistant can enter, default last.
func modeChoices() string {
	var names []string
	for _, m := range modal.Modes() {
		if m != modal.ModeDefault {
			names = append(names, m.String())
		}
	}
	return orList(append(names, modal.ModeDefault.String()))
}

func statusChoices(extra ...string) string {
	var names []string
	for _, st := range modal.Statuses() {
		names = append(names, st.String())
	}
	return orList(append(names, extra...))
}

// orList renders names as "a, b, or c".
func orList(names []string) string {
	switch len(names) {
	case 0, 1:
		return strings.Join(names, "")
	case 2:
		return names[0] + " or " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
}
