package game

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func eventJSON(state, date, seaScore, oppScore string) string {
	return fmt.Sprintf(`{
		"date": %q,
		"competitions": [{
			"venue": {"fullName": "Lumen Field"},
			"status": {"displayClock": "4:32", "period": 3, "type": {"state": %q}},
			"competitors": [
				{"homeAway": "home", "team": {"abbreviation": "SEA", "shortDisplayName": "Seahawks"}, "score": %s},
				{"homeAway": "away", "team": {"abbreviation": "SF", "shortDisplayName": "49ers"}, "score": %s}
			]
		}]
	}`, date, state, seaScore, oppScore)
}

func scheduleServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
}

func TestFlexScore(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		display string
		points  int
	}{
		{"string", `"21"`, "21", 21},
		{"number", `17`, "17", 17},
		{"object", `{"value": 14, "displayValue": "14"}`, "14", 14},
		{"object value only", `{"value": 7}`, "7", 7},
		{"null", `null`, "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s flexScore
			if err := json.Unmarshal([]byte(tt.raw), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if s.Display() != tt.display {
				t.Errorf("Display() = %q, want %q", s.Display(), tt.display)
			}
			if s.Points() != tt.points {
				t.Errorf("Points() = %d, want %d", s.Points(), tt.points)
			}
		})
	}
}

func TestScorecardPrefersLiveGame(t *testing.T) {
	body := fmt.Sprintf(`{"season":{"year":2026},"events":[%s,%s,%s]}`,
		eventJSON("post", "2026-08-16T20:00Z", `"24"`, `"17"`),
		eventJSON("in", "2026-08-23T20:00Z", `"14"`, `"10"`),
		eventJSON("pre", "2026-09-06T20:00Z", `"0"`, `"0"`))
	server := scheduleServer(t, body)
	defer server.Close()

	c := NewClient(server.URL, "SEA", testLogger())
	card, err := c.Scorecard(context.Background())
	if err != nil {
		t.Fatalf("Scorecard: %v", err)
	}
	if card == nil || card.State != "in" {
		t.Fatalf("expected the live game, got %+v", card)
	}
	if card.Team.Score != "14" || card.Opponent.Score != "10" {
		t.Errorf("unexpected scores: %s / %s", card.Team.Score, card.Opponent.Score)
	}
	if card.Clock != "4:32" || card.Period != "Q3" {
		t.Errorf("unexpected clock/period: %s / %s", card.Clock, card.Period)
	}
	if !card.Home {
		t.Error("expected home game")
	}
}

func TestScorecardUpcomingThenLastFinal(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("upcoming", func(t *testing.T) {
		body := fmt.Sprintf(`{"events":[%s,%s]}`,
			eventJSON("post", "2026-08-16T20:00Z", `"24"`, `"17"`),
			eventJSON("pre", "2026-09-06T20:00Z", `"0"`, `"0"`))
		server := scheduleServer(t, body)
		defer server.Close()

		c := NewClient(server.URL, "SEA", testLogger())
		c.Now = func() time.Time { return now }
		card, err := c.Scorecard(context.Background())
		if err != nil {
			t.Fatalf("Scorecard: %v", err)
		}
		if card == nil || card.State != "pre" {
			t.Fatalf("expected the upcoming game, got %+v", card)
		}
		if card.Kickoff.IsZero() {
			t.Error("expected parsed kickoff time")
		}
		if card.KickoffIn != 547200 {
			t.Errorf("expected 547200s countdown, got %d", card.KickoffIn)
		}
		if card.Venue != "Lumen Field" {
			t.Errorf("unexpected venue %q", card.Venue)
		}
	})

	t.Run("last final", func(t *testing.T) {
		body := fmt.Sprintf(`{"events":[%s,%s]}`,
			eventJSON("post", "2026-08-09T20:00Z", `"13"`, `"20"`),
			eventJSON("post", "2026-08-16T20:00Z", `"24"`, `"17"`))
		server := scheduleServer(t, body)
		defer server.Close()

		c := NewClient(server.URL, "SEA", testLogger())
		c.Now = func() time.Time { return now }
		card, err := c.Scorecard(context.Background())
		if err != nil {
			t.Fatalf("Scorecard: %v", err)
		}
		if card == nil || card.State != "post" {
			t.Fatalf("expected a final, got %+v", card)
		}
		// Most recent final, and the team won it.
		if !card.Won || card.Team.Score != "24" {
			t.Errorf("expected the 24-17 win, got %+v", card)
		}
	})

	t.Run("empty schedule", func(t *testing.T) {
		server := scheduleServer(t, `{"events":[]}`)
		defer server.Close()

		c := NewClient(server.URL, "SEA", testLogger())
		card, err := c.Scorecard(context.Background())
		if err != nil {
			t.Fatalf("Scorecard: %v", err)
		}
		if card != nil {
			t.Errorf("expected no card, got %+v", card)
		}
	})
}

func TestSeasonRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("seasontype") == "3" {
			fmt.Fprintf(w, `{"events":[%s]}`, eventJSON("pre", "2027-01-10T20:00Z", `"0"`, `"0"`))
			return
		}
		fmt.Fprintf(w, `{"season":{"year":2026},"events":[%s,%s,%s,%s]}`,
			eventJSON("post", "2026-09-06T20:00Z", `"24"`, `"17"`),
			eventJSON("post", "2026-09-13T20:00Z", `"10"`, `"31"`),
			eventJSON("post", "2026-09-20T20:00Z", `"20"`, `"20"`),
			eventJSON("pre", "2026-09-27T20:00Z", `"0"`, `"0"`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "SEA", testLogger())
	record, err := c.SeasonRecord(context.Background())
	if err != nil {
		t.Fatalf("SeasonRecord: %v", err)
	}
	if record.Year != 2026 {
		t.Errorf("expected year 2026, got %d", record.Year)
	}
	if record.Wins != 1 || record.Losses != 1 || record.Ties != 1 {
		t.Errorf("expected 1-1-1, got %d-%d-%d", record.Wins, record.Losses, record.Ties)
	}
	if !record.MadePlayoff {
		t.Error("expected playoff appearance from postseason schedule")
	}
}

func TestSeasonRecordPostseasonUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("seasontype") == "3" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, `{"season":{"year":2026},"events":[%s]}`,
			eventJSON("post", "2026-09-06T20:00Z", `"24"`, `"17"`))
	}))
	defer server.Close()

	c := NewClient(server.URL, "SEA", testLogger())
	record, err := c.SeasonRecord(context.Background())
	if err != nil {
		t.Fatalf("SeasonRecord: %v", err)
	}
	if record.Wins != 1 || record.MadePlayoff {
		t.Errorf("expected record without playoff flag, got %+v", record)
	}
}
