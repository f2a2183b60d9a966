package pimserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pentaxis93/spandaworks/internal/core/pim"
)

// result turns a pim call into a tool result. Failures become error results
// prefixed with what was being attempted.
func result(action, text string, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error %s: %v", action, err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleListEvents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.calendar.ListEvents(ctx, req.GetString("start_date", ""), req.GetInt("days", 0))
	return result("listing events", text, err)
}

func (s *Server) handleCreateEvent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.calendar.CreateEvent(ctx, pim.EventInput{
		Title:       req.GetString("title", ""),
		Date:        req.GetString("date", ""),
		StartTime:   req.GetString("start_time", ""),
		EndTime:     req.GetString("end_time", ""),
		Location:    req.GetString("location", ""),
		Description: req.GetString("description", ""),
	})
	return result("creating event", text, err)
}

func (s *Server) handleSearchEmails(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.email.Search(ctx, req.GetString("query", ""), req.GetInt("limit", 0))
	return result("searching emails", text, err)
}

func (s *Server) handleReadEmail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.email.ReadThread(ctx, req.GetString("thread_id", ""))
	return result("reading email", text, err)
}

func (s *Server) handleSendEmail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	msg := pim.Message{
		To:      req.GetString("to", ""),
		Subject: req.GetString("subject", ""),
		Body:    req.GetString("body", ""),
	}
	text, err := s.email.Send(ctx, msg, req.GetBool("confirm", false))
	return result("sending email", text, err)
}

func (s *Server) handleFindContact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.contacts.Search(ctx, req.GetString("query", ""))
	return result("searching contacts", text, err)
}

func (s *Server) handleGetContact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.contacts.Get(ctx, req.GetString("name", ""))
	return result("getting contact", text, err)
}

func (s *Server) handleCreateContact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.contacts.Create(ctx, pim.ContactInput{
		Name:         req.GetString("name", ""),
		Email:        req.GetString("email", ""),
		Phone:        req.GetString("phone", ""),
		Organization: req.GetString("organization", ""),
	})
	return result("creating contact", text, err)
}
