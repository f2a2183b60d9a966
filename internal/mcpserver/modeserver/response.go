package modeserver

import (
	"time"

	"github.com/pentaxis93/spandaworks/internal/core/modal"
)

type statusResponse struct {
	CurrentMode     string         `json:"current_mode"`
	ModeEnteredAt   string         `json:"mode_entered_at"`
	DurationSeconds int64          `json:"duration_seconds"`
	ActiveContext   *string        `json:"active_context"`
	AttentionCounts countsResponse `json:"attention_counts"`
}

type countsResponse struct {
	Hot     int `json:"hot"`
	Waiting int `json:"waiting"`
	Handled int `json:"handled"`
}

type attentionResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	SurfacedAt  string  `json:"surfaced_at"`
	UpdatedAt   string  `json:"updated_at"`
	Notes       *string `json:"notes"`
}

type transitionResponse struct {
	Mode      string  `json:"mode"`
	EnteredAt string  `json:"entered_at"`
	ExitedAt  *string `json:"exited_at"`
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func newStatusResponse(s modal.StatusSnapshot) statusResponse {
	return statusResponse{
		CurrentMode:     s.Mode.String(),
		ModeEnteredAt:   timestamp(s.EnteredAt),
		DurationSeconds: int64(s.Duration / time.Second),
		ActiveContext:   s.Context,
		AttentionCounts: countsResponse{
			Hot:     s.Counts.Hot,
			Waiting: s.Counts.Waiting,
			Handled: s.Counts.Handled,
		},
	}
}

func newAttentionResponse(item modal.AttentionItem) attentionResponse {
	return attentionResponse{
		ID:          item.ID,
		Description: item.Description,
		Status:      item.Status.String(),
		SurfacedAt:  timestamp(item.SurfacedAt),
		UpdatedAt:   timestamp(item.UpdatedAt),
		Notes:       item.Notes,
	}
}

func newTransitionResponse(tr modal.ModeTransition) transitionResponse {
	resp := transitionResponse{
		Mode:      tr.Mode.String(),
		EnteredAt: timestamp(tr.EnteredAt),
	}
	if tr.ExitedAt != nil {
		exited := timestamp(*tr.ExitedAt)
		resp.ExitedAt = &exited
	}
	return resp
}
