package history

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amjadhq/commission/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDashboardStaticData(t *testing.T) {
	s := NewService(nil, testLogger())
	d := s.Dashboard(context.Background())

	if len(d.Seasons) != 48 {
		t.Errorf("expected 48 recorded seasons, got %d", len(d.Seasons))
	}
	if d.Seasons[0].Year != 1976 || d.Seasons[len(d.Seasons)-1].Year != 2023 {
		t.Errorf("unexpected season range %d-%d",
			d.Seasons[0].Year, d.Seasons[len(d.Seasons)-1].Year)
	}

	var sbWins int
	for _, season := range d.Seasons {
		if season.Playoff == PlayoffSBWin {
			sbWins++
		}
	}
	if sbWins != 1 {
		t.Errorf("expected exactly one Super Bowl win, got %d", sbWins)
	}

	for _, category := range []string{"passing", "rushing", "receiving", "defense"} {
		if len(d.Leaders[category]) != 3 {
			t.Errorf("expected 3 %s leaders, got %d", category, len(d.Leaders[category]))
		}
	}
	if len(d.HeadToHead) != 3 {
		t.Errorf("expected 3 division rivals, got %d", len(d.HeadToHead))
	}
	if len(d.Playoffs) != 21 {
		t.Errorf("expected 21 playoff appearances, got %d", len(d.Playoffs))
	}
}

func TestDashboardMergesLiveSeason(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("seasontype") == "3" {
			fmt.Fprint(w, `{"events":[]}`)
			return
		}
		fmt.Fprint(w, `{"season":{"year":2026},"events":[{
			"date": "2026-09-06T20:00Z",
			"competitions": [{
				"status": {"type": {"state": "post"}},
				"competitors": [
					{"homeAway": "home", "team": {"abbreviation": "SEA"}, "score": "27"},
					{"homeAway": "away", "team": {"abbreviation": "DEN"}, "score": "20"}
				]
			}]
		}]}`)
	}))
	defer server.Close()

	s := NewService(game.NewClient(server.URL, "SEA", testLogger()), testLogger())
	d := s.Dashboard(context.Background())

	last := d.Seasons[len(d.Seasons)-1]
	if !last.Live || last.Year != 2026 {
		t.Fatalf("expected live 2026 season appended, got %+v", last)
	}
	if last.Wins != 1 || last.Losses != 0 {
		t.Errorf("expected 1-0 live record, got %d-%d", last.Wins, last.Losses)
	}
}

func TestDashboardLiveFetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	s := NewService(game.NewClient(server.URL, "SEA", testLogger()), testLogger())
	d := s.Dashboard(context.Background())

	if len(d.Seasons) != 48 {
		t.Errorf("expected static seasons only on live failure, got %d", len(d.Seasons))
	}
}
