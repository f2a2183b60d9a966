package pim

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pentaxis93/spandaworks/internal/core/config"
	"github.com/pentaxis93/spandaworks/pkg/executil"
)

const threadPrefix = "thread:"

// Email reads mail through notmuch and sends it with himalaya.
type Email struct {
	notmuch      string
	himalaya     string
	defaultLimit int
	exec         executil.Executor
}

// NewEmail creates an Email.
func NewEmail(cfg config.PIMConfig, exec executil.Executor) *Email {
	limit := cfg.SearchLimit
	if limit < 1 {
		limit = 20
	}
	return &Email{
		notmuch:      cfg.Notmuch,
		himalaya:     cfg.Himalaya,
		defaultLimit: limit,
		exec:         exec,
	}
}

// NormalizeThreadID adds the "thread:" prefix when it is missing.
func NormalizeThreadID(id string) string {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(id, threadPrefix) {
		return id
	}
	return threadPrefix + id
}

// Search runs a notmuch query. limit < 1 means the configured default.
func (e *Email) Search(ctx context.Context, query string, limit int) (string, error) {
	query, err := required("query", query)
	if err != nil {
		return "", err
	}
	if limit < 1 {
		limit = e.defaultLimit
	}

	out, err := e.exec.Run(ctx, e.notmuch, "search", "--limit", strconv.Itoa(limit), "--format=text", query)
	if err != nil {
		return "", fmt.Errorf("search emails: %w", err)
	}

	text := strings.TrimRight(string(out), "\n")
	if strings.TrimSpace(text) == "" {
		return "No emails found matching: " + query, nil
	}

	count := len(strings.Split(text, "\n"))
	return fmt.Sprintf("Found %d email thread(s) matching '%s':\n\n%s", count, query, text), nil
}

// ReadThread shows a whole thread. The id may be given with or without the
// "thread:" prefix.
func (e *Email) ReadThread(ctx context.Context, threadID string) (string, error) {
	threadID, err := required("thread_id", threadID)
	if err != nil {
		return "", err
	}
	query := NormalizeThreadID(threadID)

	out, err := e.exec.Run(ctx, e.notmuch, "show", "--format=text", query)
	if err != nil {
		return "", fmt.Errorf("read email: %w", err)
	}
	if strings.TrimSpace(string(out)) == "" {
		return "No email found with ID: " + query, nil
	}
	return string(out), nil
}

// Message is an outgoing email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Send sends m with himalaya when confirm is true. Without confirmation
// nothing is sent and a preview is returned instead.
func (e *Email) Send(ctx context.Context, m Message, confirm bool) (string, error) {
	var err error
	if m.To, err = required("to", m.To); err != nil {
		return "", err
	}
	if m.Subject, err = required("subject", m.Subject); err != nil {
		return "", err
	}

	if !confirm {
		return fmt.Sprintf(
			"Email NOT sent. Set confirm=true to actually send the email.\n\nPreview:\nTo: %s\nSubject: %s\nBody:\n%s",
			m.To, m.Subject, m.Body,
		), nil
	}

	out, err := e.exec.RunStdin(ctx, strings.NewReader(m.Body), e.himalaya,
		"message", "write", "--to", m.To, "--subject", m.Subject)
	if err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	return fmt.Sprintf("Email sent successfully!\nTo: %s\nSubject: %s\n%s", m.To, m.Subject, strings.TrimSpace(string(out))), nil
}
