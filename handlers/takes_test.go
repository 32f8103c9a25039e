package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amjadhq/commission/identity"
	"github.com/amjadhq/commission/metrics"
	"github.com/amjadhq/commission/models"
	"github.com/amjadhq/commission/testutil"
)

func TestCreateTake(t *testing.T) {
	st := testutil.SetupTestStore(t)
	h := NewTakesHandler(st, testutil.GetTestConfig(), metrics.New())

	req := testutil.MakeRequest("POST", "/takes",
		models.AddTakeRequest{Text: "  The division runs through Seattle  "}, testutil.AsUser("Amjad"))
	w := httptest.NewRecorder()
	h.Create(w, req, "Amjad")

	testutil.AssertStatus(t, w, http.StatusCreated)
	var resp models.AddTakeResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Take.Text != "The division runs through Seattle" {
		t.Errorf("expected trimmed text, got %q", resp.Take.Text)
	}
	if resp.Take.AuthorID != "Amjad" || resp.Take.ID == "" {
		t.Errorf("unexpected take %+v", resp.Take)
	}
}

func TestCreateTakeValidation(t *testing.T) {
	st := testutil.SetupTestStore(t)
	h := NewTakesHandler(st, testutil.GetTestConfig(), metrics.New())

	testCases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"over 280 characters", strings.Repeat("x", models.MaxTakeLength+1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/takes",
				models.AddTakeRequest{Text: tc.text}, testutil.AsUser("Amjad"))
			w := httptest.NewRecorder()
			h.Create(w, req, "Amjad")
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}

	// Exactly 280 characters is allowed.
	req := testutil.MakeRequest("POST", "/takes",
		models.AddTakeRequest{Text: strings.Repeat("y", models.MaxTakeLength)}, testutil.AsUser("Amjad"))
	w := httptest.NewRecorder()
	h.Create(w, req, "Amjad")
	testutil.AssertStatus(t, w, http.StatusCreated)
}

func TestListTakesWithVotes(t *testing.T) {
	st := testutil.SetupTestStore(t)
	h := NewTakesHandler(st, testutil.GetTestConfig(), metrics.New())

	take := testutil.CreateTestTake(t, st, "Kickers win games", "Mike")
	if err := st.CastVote(context.Background(), take.ID, models.SideAgree, "Jay"); err != nil {
		t.Fatalf("seed vote: %v", err)
	}

	req := testutil.MakeRequest("GET", "/takes", nil, nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var board []models.TakeWithVotes
	testutil.AssertJSON(t, w, &board)
	if len(board) != 1 {
		t.Fatalf("expected 1 take, got %d", len(board))
	}
	if len(board[0].Votes.Agree) != 1 || board[0].Votes.Agree[0] != "Jay" {
		t.Errorf("expected Jay agreeing, got %+v", board[0].Votes)
	}
}

func TestCastVoteToggleFlow(t *testing.T) {
	st := testutil.SetupTestStore(t)
	h := NewTakesHandler(st, testutil.GetTestConfig(), metrics.New())
	take := testutil.CreateTestTake(t, st, "Run it back", "Amjad")

	cast := func(side, user string) models.CastVoteResponse {
		t.Helper()
		req := testutil.MakeRequest("POST", "/takes/"+take.ID+"/votes",
			models.CastVoteRequest{Side: side}, testutil.AsUser(user))
		req.SetPathValue("id", take.ID)
		w := httptest.NewRecorder()
		h.CastVote(w, req, user)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.CastVoteResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	resp := cast(models.SideAgree, "Chris")
	if len(resp.Votes.Agree) != 1 {
		t.Errorf("expected one agree, got %+v", resp.Votes)
	}

	// Switching sides replaces, never stacks.
	resp = cast(models.SideDisagree, "Chris")
	if len(resp.Votes.Agree) != 0 || len(resp.Votes.Disagree) != 1 {
		t.Errorf("expected switch to disagree, got %+v", resp.Votes)
	}

	// Same side again toggles off.
	resp = cast(models.SideDisagree, "Chris")
	if len(resp.Votes.Agree) != 0 || len(resp.Votes.Disagree) != 0 {
		t.Errorf("expected empty tally, got %+v", resp.Votes)
	}
}

func TestCastVoteRejectsBadSide(t *testing.T) {
	st := testutil.SetupTestStore(t)
	h := NewTakesHandler(st, testutil.GetTestConfig(), metrics.New())
	take := testutil.CreateTestTake(t, st, "Blitz every down", "Rico")

	req := testutil.MakeRequest("POST", "/takes/"+take.ID+"/votes",
		models.CastVoteRequest{Side: "maybe"}, testutil.AsUser("Chris"))
	req.SetPathValue("id", take.ID)
	w := httptest.NewRecorder()
	h.CastVote(w, req, "Chris")

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestDeleteTakeRequiresAdminKey(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	h := NewTakesHandler(st, cfg, metrics.New())
	take := testutil.CreateTestTake(t, st, "Fire the coordinator", "Jay")

	t.Run("missing key", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/takes/"+take.ID, nil, nil)
		req.SetPathValue("id", take.ID)
		w := httptest.NewRecorder()
		h.Delete(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("wrong key", func(t *testing.T) {
		req := testutil.MakeRequest("DELETE", "/takes/"+take.ID, nil,
			map[string]string{identity.AdminHeader: "nope"})
		req.SetPathValue("id", take.ID)
		w := httptest.NewRecorder()
		h.Delete(w, req)
		testutil.AssertStatus(t, w, http.StatusForbidden)
	})

	t.Run("valid key cascades votes", func(t *testing.T) {
		if err := st.CastVote(context.Background(), take.ID, models.SideAgree, "Chris"); err != nil {
			t.Fatalf("seed vote: %v", err)
		}

		req := testutil.MakeRequest("DELETE", "/takes/"+take.ID, nil,
			map[string]string{identity.AdminHeader: cfg.AdminKey})
		req.SetPathValue("id", take.ID)
		w := httptest.NewRecorder()
		h.Delete(w, req)
		testutil.AssertStatus(t, w, http.StatusNoContent)

		takes, err := st.GetTakes(context.Background())
		if err != nil {
			t.Fatalf("GetTakes: %v", err)
		}
		if len(takes) != 0 {
			t.Errorf("expected take gone, got %d", len(takes))
		}
		votes, err := st.GetVotes(context.Background(), take.ID)
		if err != nil {
			t.Fatalf("GetVotes: %v", err)
		}
		if len(votes.Agree) != 0 {
			t.Errorf("expected votes cascaded, got %+v", votes)
		}
	})
}

func TestCastVoteUnknownTakeIs404(t *testing.T) {
	st := testutil.SetupTestStore(t)
	h := NewTakesHandler(st, testutil.GetTestConfig(), metrics.New())

	req := testutil.MakeRequest("POST", "/takes/no-such-take/votes",
		models.CastVoteRequest{Side: models.SideAgree}, testutil.AsUser("Chris"))
	req.SetPathValue("id", "no-such-take")
	w := httptest.NewRecorder()
	h.CastVote(w, req, "Chris")

	testutil.AssertStatus(t, w, http.StatusNotFound)
	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "not_found" {
		t.Errorf("expected not_found code, got %q", resp.Error)
	}
}
