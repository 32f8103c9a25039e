package handlers

import (
	"sort"

	"github.com/amjadhq/commission/models"
)

// unrankedAvg sorts teams nobody has ranked below every ranked team.
const unrankedAvg = 99

// Disagreement thresholds: minimum high/low spread to count, and how
// many to surface.
const (
	minDisagreementSpread = 5
	maxDisagreements      = 5
)

// ComputeConsensus aggregates all submitted rankings into one row per
// team, ordered by average rank (best first). Rows carry each
// submitter's 1-based position so the board can show the full grid.
func ComputeConsensus(rankings map[string][]string) []models.ConsensusRow {
	positions := make(map[string]map[string]int, len(models.Teams))
	for _, team := range models.Teams {
		positions[team.Abbr] = map[string]int{}
	}

	for user, order := range rankings {
		for index, abbr := range order {
			if _, known := positions[abbr]; !known {
				continue
			}
			positions[abbr][user] = index + 1
		}
	}

	rows := make([]models.ConsensusRow, 0, len(models.Teams))
	for _, team := range models.Teams {
		ranks := positions[team.Abbr]
		avg := float64(unrankedAvg)
		if len(ranks) > 0 {
			total := 0
			for _, rank := range ranks {
				total += rank
			}
			avg = float64(total) / float64(len(ranks))
		}
		rows = append(rows, models.ConsensusRow{
			Abbr:     team.Abbr,
			Name:     team.Name,
			Division: team.Division,
			AvgRank:  avg,
			Ranks:    ranks,
		})
	}

	// Stable sort keeps canonical team order as the tie-break.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AvgRank < rows[j].AvgRank
	})
	return rows
}

// Disagreements finds the teams the group is most split on: the five
// widest spreads between any submitter's highest and lowest placement,
// counting only spreads of five spots or more. Teams with fewer than
// two submissions can't be disagreed about.
func Disagreements(rows []models.ConsensusRow) []models.Disagreement {
	byAbbr := make(map[string]models.ConsensusRow, len(rows))
	for _, row := range rows {
		byAbbr[row.Abbr] = row
	}

	// Walk teams in canonical order so equal spreads tie-break
	// deterministically.
	splits := make([]models.Disagreement, 0, len(rows))
	for _, team := range models.Teams {
		row, ok := byAbbr[team.Abbr]
		if !ok || len(row.Ranks) < 2 {
			continue
		}

		high, low := 0, 0
		for _, rank := range row.Ranks {
			if high == 0 || rank < high {
				high = rank
			}
			if rank > low {
				low = rank
			}
		}

		spread := low - high
		if spread < minDisagreementSpread {
			continue
		}
		splits = append(splits, models.Disagreement{
			Abbr:   row.Abbr,
			Name:   row.Name,
			High:   high,
			Low:    low,
			Spread: spread,
		})
	}

	sort.SliceStable(splits, func(i, j int) bool {
		return splits[i].Spread > splits[j].Spread
	})
	if len(splits) > maxDisagreements {
		splits = splits[:maxDisagreements]
	}
	return splits
}
