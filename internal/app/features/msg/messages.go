// internal/app/features/msg/messages.go
package msg

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/teamhub/internal/app/store/messages"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type messageView struct {
	ID         primitive.ObjectID `json:"id"`
	Date       time.Time          `json:"date"`
	SenderID   primitive.ObjectID `json:"sender_id"`
	SenderName string             `json:"sender_name"`
	Content    string             `json:"content"`
	Flag       int                `json:"flag"`
}

// ServeLog returns the team's chat history, creating the log on first
// access. Sender names come from the users collection at read time, so
// display-name changes and account tombstones show through.
func (h *Handler) ServeLog(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, _, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	log, err := h.Messages.GetOrCreate(ctx, orgID, teamID)
	if err != nil {
		h.Log.Error("msg get: loading log", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	seen := make(map[primitive.ObjectID]struct{})
	var senderIDs []primitive.ObjectID
	for _, m := range log.Messages {
		if _, dup := seen[m.Sender]; !dup {
			seen[m.Sender] = struct{}{}
			senderIDs = append(senderIDs, m.Sender)
		}
	}
	senders, err := h.Users.GetByIDs(ctx, senderIDs)
	if err != nil {
		h.Log.Error("msg get: resolving senders", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	nameOf := make(map[primitive.ObjectID]string, len(senders))
	for _, u := range senders {
		nameOf[u.ID] = u.DisplayName
	}

	out := make([]messageView, 0, len(log.Messages))
	for _, m := range log.Messages {
		out = append(out, messageView{
			ID:         m.ID,
			Date:       m.Date,
			SenderID:   m.Sender,
			SenderName: nameOf[m.Sender],
			Content:    m.Content,
			Flag:       m.Flag,
		})
	}
	jsonapi.Write(w, out)
}

// HandlePost appends a message from the caller.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, res, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		Content string `json:"content"`
		Flag    int    `json:"flag"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Content = strings.TrimSpace(htmlsanitize.Sanitize(req.Content))
	if req.Content == "" || req.Flag < models.MsgFlagNone || req.Flag > models.MsgFlagImportant {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	m, err := h.Messages.Add(ctx, orgID, teamID, models.Message{
		Sender:  res.UserID,
		Content: req.Content,
		Flag:    req.Flag,
	})
	if err != nil {
		h.Log.Error("msg post: saving message", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, m)
}

// HandleFlag sets a message's highlight flag.
func (h *Handler) HandleFlag(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, _, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		MessageID string `json:"message_id"`
		Flag      int    `json:"flag"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	messageID, err := primitive.ObjectIDFromHex(req.MessageID)
	if err != nil || req.Flag < models.MsgFlagNone || req.Flag > models.MsgFlagImportant {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Messages.SetFlag(ctx, orgID, teamID, messageID, req.Flag)
	if errors.Is(err, messagestore.ErrMessageNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("msg flag: saving flag", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// HandleDelete removes a message. Only its sender may delete it.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, res, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		MessageID string `json:"message_id"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	messageID, err := primitive.ObjectIDFromHex(req.MessageID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	log, err := h.Messages.GetOrCreate(ctx, orgID, teamID)
	if err != nil {
		h.Log.Error("msg delete: loading log", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	var found *models.Message
	for i := range log.Messages {
		if log.Messages[i].ID == messageID {
			found = &log.Messages[i]
			break
		}
	}
	if found == nil {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if found.Sender != res.UserID {
		jsonapi.Error(w, jsonapi.ErrNotAuthorized)
		return
	}

	err = h.Messages.Delete(ctx, orgID, teamID, messageID)
	if errors.Is(err, messagestore.ErrMessageNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("msg delete: removing message", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}
