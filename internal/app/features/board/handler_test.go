package board_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/teamhub/internal/app/features/board"
	"github.com/dalemusser/teamhub/internal/app/system/indexes"
	"github.com/dalemusser/teamhub/internal/domain/models"
	"github.com/dalemusser/teamhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type boardWorld struct {
	handler *board.Handler
	org     models.Organization
	admin   testutil.TestUser
	alice   testutil.TestUser
	bob     testutil.TestUser
}

// newBoardWorld builds an org whose team 1 holds Alice and Bob, with a
// separate org admin who is not on the team roster.
func newBoardWorld(t *testing.T) boardWorld {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	fixtures := testutil.NewFixtures(t, db)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@test.edu")
	bob := fixtures.CreateUser(ctx, "Bob", "bob@test.edu")
	org := fixtures.CreateOrganization(ctx, "Board Org", admin.ID)
	fixtures.AddMember(ctx, org.ID, alice.ID)
	fixtures.AddMember(ctx, org.ID, bob.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1", alice.ID, bob.ID)

	return boardWorld{
		handler: board.NewHandler(db, zap.NewNop()),
		org:     org,
		admin:   testutil.AsUser(admin.ID, "Admin"),
		alice:   testutil.AsUser(alice.ID, "Alice"),
		bob:     testutil.AsUser(bob.ID, "Bob"),
	}
}

func (bw boardWorld) request(method, body string, user testutil.TestUser) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/board", nil)
	} else {
		req = httptest.NewRequest(method, "/board", strings.NewReader(body))
	}
	req = testutil.WithUser(req, user)
	req = testutil.WithChiURLParam(req, "orgID", bw.org.ID.Hex())
	return testutil.WithChiURLParam(req, "teamID", "1")
}

// post creates a post as user and returns its id.
func (bw boardWorld) post(t *testing.T, user testutil.TestUser, title string) primitive.ObjectID {
	t.Helper()
	rec := httptest.NewRecorder()
	bw.handler.HandlePost(rec, bw.request("POST",
		`{"title":"`+title+`","content":"hello"}`, user))
	if rec.Code != http.StatusOK {
		t.Fatalf("posting %q: expected status 200, got %d: %s", title, rec.Code, rec.Body)
	}
	var created models.Post
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decoding post: %v", err)
	}
	return created.ID
}

func (bw boardWorld) react(t *testing.T, user testutil.TestUser, postID primitive.ObjectID, emoji string) bool {
	t.Helper()
	rec := httptest.NewRecorder()
	bw.handler.HandleReact(rec, bw.request("POST",
		`{"post_id":"`+postID.Hex()+`","emoji":"`+emoji+`"}`, user))
	if rec.Code != http.StatusOK {
		t.Fatalf("reacting: expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	var out struct {
		Reacted bool `json:"reacted"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding reaction: %v", err)
	}
	return out.Reacted
}

func (bw boardWorld) serve(t *testing.T, user testutil.TestUser) []struct {
	ID        primitive.ObjectID `json:"id"`
	Title     string             `json:"title"`
	Owned     bool               `json:"owned"`
	Reactions []struct {
		Emoji   string `json:"emoji"`
		Count   int    `json:"count"`
		Reacted bool   `json:"reacted"`
	} `json:"reactions"`
} {
	t.Helper()
	rec := httptest.NewRecorder()
	bw.handler.ServeBoard(rec, bw.request("GET", "", user))
	if rec.Code != http.StatusOK {
		t.Fatalf("serving board: expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	var out []struct {
		ID        primitive.ObjectID `json:"id"`
		Title     string             `json:"title"`
		Owned     bool               `json:"owned"`
		Reactions []struct {
			Emoji   string `json:"emoji"`
			Count   int    `json:"count"`
			Reacted bool   `json:"reacted"`
		} `json:"reactions"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decoding board: %v", err)
	}
	return out
}

func TestServeBoard_NewestFirstAndOwnership(t *testing.T) {
	bw := newBoardWorld(t)

	first := bw.post(t, bw.alice, "first")
	second := bw.post(t, bw.bob, "second")

	posts := bw.serve(t, bw.alice)
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != second || posts[1].ID != first {
		t.Errorf("expected newest post first, got %q then %q", posts[0].Title, posts[1].Title)
	}
	if !posts[1].Owned {
		t.Error("Alice's own post should be marked owned")
	}
	if posts[0].Owned {
		t.Error("Bob's post should not be marked owned for Alice")
	}
}

func TestHandleReact_ToggleAndAggregate(t *testing.T) {
	bw := newBoardWorld(t)
	postID := bw.post(t, bw.alice, "react to me")

	if !bw.react(t, bw.alice, postID, "🔥") {
		t.Error("first reaction should report reacted true")
	}
	if !bw.react(t, bw.bob, postID, "🔥") {
		t.Error("second user's reaction should report reacted true")
	}

	posts := bw.serve(t, bw.alice)
	if len(posts[0].Reactions) != 1 {
		t.Fatalf("expected one reaction entry, got %d", len(posts[0].Reactions))
	}
	re := posts[0].Reactions[0]
	if re.Emoji != "🔥" || re.Count != 2 || !re.Reacted {
		t.Errorf("unexpected reaction view %+v", re)
	}

	// Toggling off removes only the caller.
	if bw.react(t, bw.alice, postID, "🔥") {
		t.Error("toggling off should report reacted false")
	}
	posts = bw.serve(t, bw.alice)
	re = posts[0].Reactions[0]
	if re.Count != 1 || re.Reacted {
		t.Errorf("expected count 1 and reacted false for Alice, got %+v", re)
	}

	// The last user leaving drops the entry entirely.
	if bw.react(t, bw.bob, postID, "🔥") {
		t.Error("toggling off should report reacted false")
	}
	posts = bw.serve(t, bw.bob)
	if len(posts[0].Reactions) != 0 {
		t.Errorf("expected no reaction entries, got %+v", posts[0].Reactions)
	}
}

func TestHandleReact_CanonicalizesEmoji(t *testing.T) {
	bw := newBoardWorld(t)
	postID := bw.post(t, bw.alice, "thumbs")

	bw.react(t, bw.alice, postID, "👍")
	bw.react(t, bw.bob, postID, "👍👍👍")

	posts := bw.serve(t, bw.alice)
	if len(posts[0].Reactions) != 1 {
		t.Fatalf("expected variants to collapse into one entry, got %d", len(posts[0].Reactions))
	}
	if posts[0].Reactions[0].Count != 2 {
		t.Errorf("expected count 2, got %d", posts[0].Reactions[0].Count)
	}
}

func TestHandleReact_MissingPost(t *testing.T) {
	bw := newBoardWorld(t)
	bw.post(t, bw.alice, "exists")

	rec := httptest.NewRecorder()
	bw.handler.HandleReact(rec, bw.request("POST",
		`{"post_id":"`+primitive.NewObjectID().Hex()+`","emoji":"🔥"}`, bw.alice))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
}

func TestHandleDeletePost_PosterAndAdminOnly(t *testing.T) {
	bw := newBoardWorld(t)
	byAlice := bw.post(t, bw.alice, "alice's")
	alsoAlice := bw.post(t, bw.alice, "alice's other")

	// Bob is a teammate but not the poster or the admin.
	rec := httptest.NewRecorder()
	bw.handler.HandleDeletePost(rec, bw.request("DELETE",
		`{"post_id":"`+byAlice.Hex()+`"}`, bw.bob))
	if rec.Code != http.StatusForbidden {
		t.Errorf("teammate delete: expected status 403, got %d", rec.Code)
	}

	// The poster may delete their own post.
	rec = httptest.NewRecorder()
	bw.handler.HandleDeletePost(rec, bw.request("DELETE",
		`{"post_id":"`+byAlice.Hex()+`"}`, bw.alice))
	if rec.Code != http.StatusOK {
		t.Fatalf("poster delete: expected status 200, got %d: %s", rec.Code, rec.Body)
	}

	posts := bw.serve(t, bw.alice)
	if len(posts) != 1 || posts[0].ID != alsoAlice {
		t.Fatalf("expected only the second post to remain, got %d posts", len(posts))
	}

	// Deleting again is a 404.
	rec = httptest.NewRecorder()
	bw.handler.HandleDeletePost(rec, bw.request("DELETE",
		`{"post_id":"`+byAlice.Hex()+`"}`, bw.alice))
	if rec.Code != http.StatusNotFound {
		t.Errorf("repeat delete: expected status 404, got %d", rec.Code)
	}
}

func TestHandleDeletePost_AdminOnTeamDeletesAny(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	fixtures := testutil.NewFixtures(t, db)

	admin := fixtures.CreateUser(ctx, "Admin", "admin@test.edu")
	alice := fixtures.CreateUser(ctx, "Alice", "alice@test.edu")
	org := fixtures.CreateOrganization(ctx, "Moderated", admin.ID)
	fixtures.AddMember(ctx, org.ID, admin.ID)
	fixtures.AddMember(ctx, org.ID, alice.ID)
	fixtures.AddTeam(ctx, org.ID, 1, "Team 1", admin.ID, alice.ID)

	bw := boardWorld{
		handler: board.NewHandler(db, zap.NewNop()),
		org:     org,
		admin:   testutil.AsUser(admin.ID, "Admin"),
		alice:   testutil.AsUser(alice.ID, "Alice"),
	}
	postID := bw.post(t, bw.alice, "moderate me")

	rec := httptest.NewRecorder()
	bw.handler.HandleDeletePost(rec, bw.request("DELETE",
		`{"post_id":"`+postID.Hex()+`"}`, bw.admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete: expected status 200, got %d: %s", rec.Code, rec.Body)
	}
	if posts := bw.serve(t, bw.admin); len(posts) != 0 {
		t.Errorf("expected empty board, got %d posts", len(posts))
	}
}

func TestHandlePost_RejectsEmpty(t *testing.T) {
	bw := newBoardWorld(t)

	rec := httptest.NewRecorder()
	bw.handler.HandlePost(rec, bw.request("POST",
		`{"title":"  ","content":""}`, bw.alice))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
}
