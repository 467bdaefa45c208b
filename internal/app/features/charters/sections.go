// internal/app/features/charters/sections.go
package charters

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/teamhub/internal/app/store/charters"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// ServeCharter returns the team's charter, seeding the baseline
// sections on first access.
func (h *Handler) ServeCharter(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ch, err := h.Charters.GetOrCreate(ctx, orgID, teamID)
	if err != nil {
		h.Log.Error("charter get: loading charter", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, ch)
}

// HandleAddSection appends a custom section, which starts completed.
func (h *Handler) HandleAddSection(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	// Make sure the charter exists before pushing into it.
	if _, err := h.Charters.GetOrCreate(ctx, orgID, teamID); err != nil {
		h.Log.Error("charter section add: ensuring charter", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	err := h.Charters.AddSection(ctx, orgID, teamID, req.Name, htmlsanitize.Sanitize(req.Content))
	if errors.Is(err, charterstore.ErrSectionExists) {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	if err != nil {
		h.Log.Error("charter section add: saving section", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// HandleUpdateSection edits a section by name and optionally marks it
// complete. Completing a baseline section bumps the charter's base
// count exactly once, no matter how many times completion is sent.
func (h *Handler) HandleUpdateSection(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		Name         string      `json:"name"`
		Content      *string     `json:"content"`
		MeetingTimes []time.Time `json:"meeting_times"`
		Completed    bool        `json:"completed"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Charters.GetOrCreate(ctx, orgID, teamID); err != nil {
		h.Log.Error("charter section update: ensuring charter", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	upd := charterstore.SectionUpdate{MeetingTimes: req.MeetingTimes}
	if req.Content != nil {
		content := htmlsanitize.Sanitize(*req.Content)
		upd.Content = &content
	}
	if upd.Content != nil || upd.MeetingTimes != nil {
		err := h.Charters.UpdateSection(ctx, orgID, teamID, req.Name, upd)
		if errors.Is(err, charterstore.ErrSectionNotFound) {
			jsonapi.Error(w, jsonapi.ErrNotFound)
			return
		}
		if err != nil {
			h.Log.Error("charter section update: saving section", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
	}
	if req.Completed {
		err := h.Charters.CompleteSection(ctx, orgID, teamID, req.Name)
		if errors.Is(err, charterstore.ErrSectionNotFound) {
			jsonapi.Error(w, jsonapi.ErrNotFound)
			return
		}
		if err != nil {
			h.Log.Error("charter section update: completing section", zap.Error(err))
			jsonapi.Error(w, jsonapi.ErrInternal)
			return
		}
	}
	jsonapi.Success(w, nil)
}

// HandleDeleteSection removes a custom section by name. The baseline
// sections cannot be removed.
func (h *Handler) HandleDeleteSection(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Charters.DeleteSection(ctx, orgID, teamID, req.Name)
	if errors.Is(err, charterstore.ErrNotFound) || errors.Is(err, charterstore.ErrSectionNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("charter section delete: removing section", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}
