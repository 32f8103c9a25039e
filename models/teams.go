package models

// Team is one NFL franchise as shown in the power-ranking tool.
type Team struct {
	Abbr     string `json:"abbr"`
	Name     string `json:"name"`
	Division string `json:"division"`
}

// Teams is the canonical league list, alphabetical by abbreviation.
// Ranking submissions must be a permutation of exactly these 32 codes,
// and this order breaks ties in the disagreement report.
var Teams = []Team{
	{"ARI", "Cardinals", "NFC West"},
	{"ATL", "Falcons", "NFC South"},
	{"BAL", "Ravens", "AFC North"},
	{"BUF", "Bills", "AFC East"},
	{"CAR", "Panthers", "NFC South"},
	{"CHI", "Bears", "NFC North"},
	{"CIN", "Bengals", "AFC North"},
	{"CLE", "Browns", "AFC North"},
	{"DAL", "Cowboys", "NFC East"},
	{"DEN", "Broncos", "AFC West"},
	{"DET", "Lions", "NFC North"},
	{"GB", "Packers", "NFC North"},
	{"HOU", "Texans", "AFC South"},
	{"IND", "Colts", "AFC South"},
	{"JAX", "Jaguars", "AFC South"},
	{"KC", "Chiefs", "AFC West"},
	{"LAC", "Chargers", "AFC West"},
	{"LAR", "Rams", "NFC West"},
	{"LV", "Raiders", "AFC West"},
	{"MIA", "Dolphins", "AFC East"},
	{"MIN", "Vikings", "NFC North"},
	{"NE", "Patriots", "AFC East"},
	{"NO", "Saints", "NFC South"},
	{"NYG", "Giants", "NFC East"},
	{"NYJ", "Jets", "AFC East"},
	{"PHI", "Eagles", "NFC East"},
	{"PIT", "Steelers", "AFC North"},
	{"SEA", "Seahawks", "NFC West"},
	{"SF", "49ers", "NFC West"},
	{"TB", "Buccaneers", "NFC South"},
	{"TEN", "Titans", "AFC South"},
	{"WAS", "Commanders", "NFC East"},
}

// TeamByAbbr returns the team for a code, or false when unknown.
func TeamByAbbr(abbr string) (Team, bool) {
	for _, t := range Teams {
		if t.Abbr == abbr {
			return t, true
		}
	}
	return Team{}, false
}

// ValidRanking reports whether order is a permutation of all 32 team codes.
func ValidRanking(order []string) bool {
	if len(order) != len(Teams) {
		return false
	}
	seen := make(map[string]bool, len(order))
	for _, abbr := range order {
		if _, ok := TeamByAbbr(abbr); !ok {
			return false
		}
		if seen[abbr] {
			return false
		}
		seen[abbr] = true
	}
	return true
}
