package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amjadhq/commission/cache"
	"github.com/amjadhq/commission/identity"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	st := testutil.SetupTestStore(t)
	return NewRouter(st, testutil.GetTestConfig(), metrics.New(), cache.Noop{})
}

func do(t *testing.T, mux *http.ServeMux, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := do(t, mux, testutil.MakeRequest("GET", "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp map[string]any
	testutil.AssertJSON(t, w, &resp)
	if resp["status"] != "ok" || resp["shared"] != true {
		t.Errorf("unexpected health payload %v", resp)
	}
}

func TestWritesRequireIdentity(t *testing.T) {
	mux := newTestRouter(t)

	requests := []*http.Request{
		testutil.MakeRequest("POST", "/takes", models.AddTakeRequest{Text: "hi"}, nil),
		testutil.MakeRequest("POST", "/feed/n-abc/reactions",
			models.ToggleReactionRequest{Emoji: "🔥"}, nil),
		testutil.MakeRequest("POST", "/takes/some-id/votes",
			models.CastVoteRequest{Side: models.SideAgree}, nil),
		testutil.MakeRequest("PUT", "/rankings/Amjad",
			models.SaveRankingRequest{}, map[string]string{identity.UserHeader: "Nobody"}),
	}

	for _, req := range requests {
		w := do(t, mux, req)
		testutil.AssertStatus(t, w, http.StatusUnauthorized)

		var errResp models.ErrorResponse
		testutil.AssertJSON(t, w, &errResp)
		if errResp.Error != models.ErrorCodeIdentityRequired {
			t.Errorf("%s %s: expected identity_required, got %q",
				req.Method, req.URL.Path, errResp.Error)
		}
	}
}

// TestTakesWorkflow runs the board end to end: Amjad posts, Chris
// argues with himself, and the admin cleans up.
func TestTakesWorkflow(t *testing.T) {
	mux := newTestRouter(t)

	// Amjad posts a take.
	w := do(t, mux, testutil.MakeRequest("POST", "/takes",
		models.AddTakeRequest{Text: "We're winning the division"}, testutil.AsUser("Amjad")))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.AddTakeResponse
	testutil.AssertJSON(t, w, &created)
	takeID := created.Take.ID

	// Chris agrees, then switches to disagree, then un-votes.
	vote := func(side string) models.CastVoteResponse {
		t.Helper()
		w := do(t, mux, testutil.MakeRequest("POST", "/takes/"+takeID+"/votes",
			models.CastVoteRequest{Side: side}, testutil.AsUser("Chris")))
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.CastVoteResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	if resp := vote(models.SideAgree); len(resp.Votes.Agree) != 1 {
		t.Errorf("expected agree recorded, got %+v", resp.Votes)
	}
	if resp := vote(models.SideDisagree); len(resp.Votes.Agree) != 0 || len(resp.Votes.Disagree) != 1 {
		t.Errorf("expected switch, got %+v", resp.Votes)
	}
	if resp := vote(models.SideDisagree); len(resp.Votes.Disagree) != 0 {
		t.Errorf("expected toggle off, got %+v", resp.Votes)
	}

	// The board lists the take with its (now empty) tally.
	w = do(t, mux, testutil.MakeRequest("GET", "/takes", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var board []models.TakeWithVotes
	testutil.AssertJSON(t, w, &board)
	if len(board) != 1 || board[0].ID != takeID {
		t.Fatalf("unexpected board %+v", board)
	}

	// Admin deletes it.
	w = do(t, mux, testutil.MakeRequest("DELETE", "/takes/"+takeID, nil,
		map[string]string{identity.AdminHeader: testutil.GetTestConfig().AdminKey}))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	w = do(t, mux, testutil.MakeRequest("GET", "/takes", nil, nil))
	testutil.AssertJSON(t, w, &board)
	if len(board) != 0 {
		t.Errorf("expected empty board after delete, got %d", len(board))
	}
}

func TestReactionToggleWorkflow(t *testing.T) {
	mux := newTestRouter(t)

	// Amjad taps 🔥 on article n-abc.
	w := do(t, mux, testutil.MakeRequest("POST", "/feed/n-abc/reactions",
		models.ToggleReactionRequest{Emoji: "🔥"}, testutil.AsUser("Amjad")))
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.ToggleReactionResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Added || len(resp.Reactions["🔥"]) != 1 {
		t.Fatalf("expected fire added, got %+v", resp)
	}

	// Reading it back shows the same state.
	w = do(t, mux, testutil.MakeRequest("GET", "/feed/n-abc/reactions", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var set models.ReactionSet
	testutil.AssertJSON(t, w, &set)
	if users := set["🔥"]; len(users) != 1 || users[0] != "Amjad" {
		t.Errorf("expected [Amjad], got %v", users)
	}
}

func TestRankingsWorkflow(t *testing.T) {
	mux := newTestRouter(t)

	order := make([]string, 0, len(models.Teams))
	for _, team := range models.Teams {
		order = append(order, team.Abbr)
	}

	w := do(t, mux, testutil.MakeRequest("PUT", "/rankings/Amjad",
		models.SaveRankingRequest{Teams: order}, testutil.AsUser("Amjad")))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = do(t, mux, testutil.MakeRequest("GET", "/rankings/Amjad", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var ranking models.RankingResponse
	testutil.AssertJSON(t, w, &ranking)
	if len(ranking.Teams) != 32 {
		t.Errorf("expected 32 teams, got %d", len(ranking.Teams))
	}

	w = do(t, mux, testutil.MakeRequest("GET", "/rankings/consensus", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	var consensus models.ConsensusResponse
	testutil.AssertJSON(t, w, &consensus)
	if len(consensus.Users) != 1 || consensus.Users[0] != "Amjad" {
		t.Errorf("unexpected consensus users %v", consensus.Users)
	}
	// Single submission: consensus order is the submitted order.
	if consensus.Teams[0].Abbr != order[0] {
		t.Errorf("expected %s first, got %s", order[0], consensus.Teams[0].Abbr)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := do(t, mux, testutil.MakeRequest("GET", "/history", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var dashboard struct {
		Seasons  []struct{ Year int } `json:"seasons"`
		Playoffs []struct{ Year int } `json:"playoffs"`
	}
	testutil.AssertJSON(t, w, &dashboard)
	if len(dashboard.Seasons) < 48 {
		t.Errorf("expected at least 48 seasons, got %d", len(dashboard.Seasons))
	}
}

func TestMetricsExposed(t *testing.T) {
	mux := newTestRouter(t)

	// Generate one request, then scrape.
	do(t, mux, testutil.MakeRequest("GET", "/takes", nil, nil))

	w := do(t, mux, testutil.MakeRequest("GET", "/metrics", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.Len() == 0 {
		t.Error("expected non-empty exposition")
	}
}
