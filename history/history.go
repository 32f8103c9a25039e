// Package history serves the franchise dashboard: season records,
// playoff appearances, all-time leaders, and division head-to-head.
// Historical data is static; the in-progress season is merged in from
// the live schedule.
package history

import (
	"context"
	"log/slog"

	"github.com/amjadhq/commission/game"
)

// Season is one season's record. Live marks the in-progress season
// tallied from the schedule rather than the record book.
type Season struct {
	Year    int    `json:"year"`
	Wins    int    `json:"wins"`
	Losses  int    `json:"losses"`
	Ties    int    `json:"ties,omitempty"`
	Playoff string `json:"playoff,omitempty"`
	Note    string `json:"note,omitempty"`
	Live    bool   `json:"live,omitempty"`
}

// PlayoffAppearance is one postseason run.
type PlayoffAppearance struct {
	Year      int    `json:"year"`
	Result    string `json:"result"`
	Note      string `json:"note,omitempty"`
	SuperBowl bool   `json:"super_bowl,omitempty"`
	Won       bool   `json:"won,omitempty"`
}

// Leader is one entry on an all-time statistical leaderboard.
type Leader struct {
	Name   string `json:"name"`
	Stat   string `json:"stat"`
	Detail string `json:"detail,omitempty"`
}

// HeadToHead is the all-time record against one division rival.
type HeadToHead struct {
	Abbr   string `json:"abbr"`
	Name   string `json:"name"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
	Note   string `json:"note,omitempty"`
}

// Dashboard is the full history payload.
type Dashboard struct {
	Seasons    []Season            `json:"seasons"`
	Playoffs   []PlayoffAppearance `json:"playoffs"`
	Leaders    map[string][]Leader `json:"leaders"`
	HeadToHead []HeadToHead        `json:"head_to_head"`
}

// Service assembles the dashboard. Game supplies the live season; a
// nil Game serves static data only.
type Service struct {
	Game   *game.Client
	Logger *slog.Logger
}

func NewService(gameClient *game.Client, logger *slog.Logger) *Service {
	return &Service{Game: gameClient, Logger: logger}
}

// Dashboard returns the record book with the live season appended
// when the schedule is reachable. A live-fetch failure degrades to
// the static data, never to an error.
func (s *Service) Dashboard(ctx context.Context) Dashboard {
	all := make([]Season, len(seasons))
	copy(all, seasons)

	if s.Game != nil {
		record, err := s.Game.SeasonRecord(ctx)
		if err != nil {
			s.Logger.Warn("live season unavailable, serving record book only",
				slog.Any("error", err))
		} else if record.Year > all[len(all)-1].Year {
			live := Season{
				Year:   record.Year,
				Wins:   record.Wins,
				Losses: record.Losses,
				Ties:   record.Ties,
				Live:   true,
			}
			if record.MadePlayoff {
				live.Playoff = PlayoffMade
			}
			all = append(all, live)
		}
	}

	return Dashboard{
		Seasons:    all,
		Playoffs:   playoffHistory,
		Leaders:    leaders,
		HeadToHead: headToHead,
	}
}
