// internal/app/features/board/posts.go
package board

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/teamhub/internal/app/store/boards"
	"github.com/dalemusser/teamhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/dalemusser/teamhub/internal/app/system/timeouts"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type reactionView struct {
	Emoji   string `json:"emoji"`
	Count   int    `json:"count"`
	Reacted bool   `json:"reacted"`
}

type postView struct {
	ID         primitive.ObjectID `json:"id"`
	Date       time.Time          `json:"date"`
	PosterID   primitive.ObjectID `json:"poster_id"`
	PosterName string             `json:"poster_name"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Owned      bool               `json:"owned"`
	Reactions  []reactionView     `json:"reactions"`
}

// ServeBoard returns the team's board, newest post first, with each
// post marked owned for its poster and each reaction marked for the
// caller.
func (h *Handler) ServeBoard(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, res, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	b, err := h.Boards.GetOrCreate(ctx, orgID, teamID)
	if err != nil {
		h.Log.Error("board get: loading board", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}

	seen := make(map[primitive.ObjectID]struct{})
	var posterIDs []primitive.ObjectID
	for _, p := range b.Posts {
		if _, dup := seen[p.Poster]; !dup {
			seen[p.Poster] = struct{}{}
			posterIDs = append(posterIDs, p.Poster)
		}
	}
	posters, err := h.Users.GetByIDs(ctx, posterIDs)
	if err != nil {
		h.Log.Error("board get: resolving posters", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	nameOf := make(map[primitive.ObjectID]string, len(posters))
	for _, u := range posters {
		nameOf[u.ID] = u.DisplayName
	}

	out := make([]postView, 0, len(b.Posts))
	for _, p := range b.Posts {
		reactions := make([]reactionView, 0, len(p.Reactions))
		for _, re := range p.Reactions {
			rv := reactionView{Emoji: re.Emoji, Count: len(re.Users)}
			for _, uid := range re.Users {
				if uid == res.UserID {
					rv.Reacted = true
					break
				}
			}
			reactions = append(reactions, rv)
		}
		out = append(out, postView{
			ID:         p.ID,
			Date:       p.Date,
			PosterID:   p.Poster,
			PosterName: nameOf[p.Poster],
			Title:      p.Title,
			Content:    p.Content,
			Owned:      p.Poster == res.UserID,
			Reactions:  reactions,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	jsonapi.Write(w, out)
}

// HandlePost adds a post by the caller.
func (h *Handler) HandlePost(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, res, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	req.Title = strings.TrimSpace(htmlsanitize.Sanitize(req.Title))
	req.Content = strings.TrimSpace(htmlsanitize.Sanitize(req.Content))
	if req.Title == "" && req.Content == "" {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Boards.AddPost(ctx, orgID, teamID, models.Post{
		Poster:  res.UserID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		h.Log.Error("board post: saving post", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Write(w, post)
}

// HandleDeletePost removes a post. The poster may delete their own;
// the organization admin may delete any.
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, res, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		PostID string `json:"post_id"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	post, err := h.Boards.GetPost(ctx, orgID, teamID, postID)
	if errors.Is(err, boardstore.ErrPostNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("board delete: loading post", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	if post.Poster != res.UserID {
		org, err := h.Orgs.GetByID(ctx, orgID)
		if err != nil || org.Admin != res.UserID {
			jsonapi.Error(w, jsonapi.ErrNotAuthorized)
			return
		}
	}

	err = h.Boards.DeletePost(ctx, orgID, teamID, postID)
	if errors.Is(err, boardstore.ErrPostNotFound) || errors.Is(err, boardstore.ErrNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("board delete: removing post", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, nil)
}

// HandleReact toggles the caller's reaction on a post.
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	orgID, teamID, res, ok := h.teamParams(w, r)
	if !ok {
		return
	}

	var req struct {
		PostID string `json:"post_id"`
		Emoji  string `json:"emoji"`
	}
	if !jsonapi.Decode(w, r, &req) {
		return
	}
	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	reacted, err := h.Boards.ToggleReaction(ctx, orgID, teamID, postID, req.Emoji, res.UserID)
	if errors.Is(err, boardstore.ErrEmptyEmoji) {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return
	}
	if errors.Is(err, boardstore.ErrPostNotFound) {
		jsonapi.Error(w, jsonapi.ErrNotFound)
		return
	}
	if err != nil {
		h.Log.Error("board react: toggling reaction", zap.Error(err))
		jsonapi.Error(w, jsonapi.ErrInternal)
		return
	}
	jsonapi.Success(w, map[string]any{"reacted": reacted})
}
