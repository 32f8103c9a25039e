// Package game builds the live scorecard and season record from the
// public team schedule endpoint.
package game

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Schedule API game states.
const (
	stateUpcoming = "pre"
	stateLive     = "in"
	stateFinal    = "post"
)

// Scorecard is the one featured game: live if one is in progress,
// otherwise the next kickoff, otherwise the last final.
type Scorecard struct {
	State     string    `json:"state"` // pre, in, post
	Kickoff   time.Time `json:"kickoff,omitempty"`
	KickoffIn int64     `json:"kickoff_in_seconds,omitempty"`
	Venue     string    `json:"venue,omitempty"`
	Home      bool      `json:"home"`
	Clock     string    `json:"clock,omitempty"`
	Period    string    `json:"period,omitempty"`
	Team      Side      `json:"team"`
	Opponent  Side      `json:"opponent"`
	Won       bool      `json:"won,omitempty"`
}

// Side is one competitor on the card.
type Side struct {
	Abbr  string `json:"abbr"`
	Name  string `json:"name"`
	Score string `json:"score"`
}

// Record is the followed team's current-season record.
type Record struct {
	Year        int    `json:"year"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Ties        int    `json:"ties"`
	MadePlayoff bool   `json:"made_playoffs"`
	Source      string `json:"source"`
}

// Client fetches and interprets the followed team's schedule.
type Client struct {
	ScheduleURL string
	TeamAbbr    string
	HTTP        *http.Client
	Logger      *slog.Logger
	Now         func() time.Time
}

// NewClient follows the team at scheduleURL, identified by abbr in
// competitor lists.
func NewClient(scheduleURL, abbr string, logger *slog.Logger) *Client {
	return &Client{
		ScheduleURL: scheduleURL,
		TeamAbbr:    abbr,
		HTTP:        &http.Client{Timeout: 10 * time.Second},
		Logger:      logger,
		Now:         time.Now,
	}
}

func (c *Client) fetchSchedule(ctx context.Context, query string) (*scheduleResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ScheduleURL+query, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build schedule request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("schedule fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schedule endpoint returned status %d", resp.StatusCode)
	}

	var schedule scheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&schedule); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	return &schedule, nil
}

// Scorecard returns the featured game, or (nil, nil) when the
// schedule has no usable event.
func (c *Client) Scorecard(ctx context.Context) (*Scorecard, error) {
	schedule, err := c.fetchSchedule(ctx, "")
	if err != nil {
		return nil, err
	}

	featured, ok := findRelevantGame(schedule.Events, c.Now())
	if !ok || len(featured.Competitions) == 0 {
		return nil, nil
	}
	comp := featured.Competitions[0]

	team, opp, ok := c.matchup(comp)
	if !ok {
		return nil, nil
	}

	card := &Scorecard{
		State:    comp.Status.Type.State,
		Kickoff:  featured.kickoff(),
		Venue:    comp.Venue.FullName,
		Home:     team.HomeAway == "home",
		Team:     side(team),
		Opponent: side(opp),
	}

	switch card.State {
	case stateUpcoming:
		if until := card.Kickoff.Sub(c.Now()); until > 0 {
			card.KickoffIn = int64(until.Seconds())
		}
	case stateLive:
		card.Clock = comp.Status.DisplayClock
		card.Period = periodLabel(comp.Status.Period)
	case stateFinal:
		card.Won = team.Score.Points() > opp.Score.Points()
	}
	return card, nil
}

// SeasonRecord tallies the completed regular-season games and checks
// the postseason schedule for a playoff appearance.
func (c *Client) SeasonRecord(ctx context.Context) (*Record, error) {
	regular, err := c.fetchSchedule(ctx, "?seasontype=2")
	if err != nil {
		return nil, err
	}

	record := &Record{Year: regular.Season.Year, Source: "live"}
	if record.Year == 0 {
		record.Year = c.Now().Year()
	}

	for _, e := range regular.Events {
		if e.state() != stateFinal || len(e.Competitions) == 0 {
			continue
		}
		team, opp, ok := c.matchup(e.Competitions[0])
		if !ok {
			continue
		}
		switch {
		case team.Score.Points() > opp.Score.Points():
			record.Wins++
		case team.Score.Points() < opp.Score.Points():
			record.Losses++
		default:
			record.Ties++
		}
	}

	// The postseason fetch is best-effort; a miss only costs the
	// playoff flag.
	post, err := c.fetchSchedule(ctx, "?seasontype=3")
	if err != nil {
		c.Logger.Warn("postseason schedule unavailable", slog.Any("error", err))
		return record, nil
	}
	for _, e := range post.Events {
		if len(e.Competitions) == 0 {
			continue
		}
		if _, _, ok := c.matchup(e.Competitions[0]); ok {
			record.MadePlayoff = true
			break
		}
	}
	return record, nil
}

// matchup splits a competition into the followed team and its
// opponent.
func (c *Client) matchup(comp competition) (team, opp competitor, ok bool) {
	for _, entrant := range comp.Competitors {
		if entrant.Team.Abbreviation == c.TeamAbbr {
			team = entrant
		} else {
			opp = entrant
		}
	}
	ok = team.Team.Abbreviation != "" && opp.Team.Abbreviation != ""
	return team, opp, ok
}

func side(comp competitor) Side {
	name := comp.Team.ShortDisplayName
	if name == "" {
		name = comp.Team.Abbreviation
	}
	return Side{
		Abbr:  comp.Team.Abbreviation,
		Name:  name,
		Score: comp.Score.Display(),
	}
}

func periodLabel(period int) string {
	if period > 4 {
		return "OT"
	}
	if period < 1 {
		period = 1
	}
	return fmt.Sprintf("Q%d", period)
}
