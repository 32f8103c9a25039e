package history

// Playoff finishes as recorded per season.
const (
	PlayoffWildCard   = "WC"
	PlayoffDivisional = "DIV"
	PlayoffConference = "CONF"
	PlayoffSBLoss     = "SB-L"
	PlayoffSBWin      = "SB-W"
	PlayoffMade       = "MADE" // live season, round not yet known
)

// seasons is the franchise record book through 2023. The current
// season is fetched live and appended by Dashboard.
var seasons = []Season{
	{Year: 1976, Wins: 2, Losses: 12},
	{Year: 1977, Wins: 5, Losses: 9},
	{Year: 1978, Wins: 9, Losses: 7},
	{Year: 1979, Wins: 9, Losses: 7},
	{Year: 1980, Wins: 4, Losses: 12},
	{Year: 1981, Wins: 6, Losses: 10},
	{Year: 1982, Wins: 4, Losses: 5, Note: "9-game strike year"},
	{Year: 1983, Wins: 9, Losses: 7, Playoff: PlayoffConference, Note: "AFC Champ"},
	{Year: 1984, Wins: 12, Losses: 4, Playoff: PlayoffDivisional},
	{Year: 1985, Wins: 8, Losses: 8},
	{Year: 1986, Wins: 10, Losses: 6, Playoff: PlayoffWildCard},
	{Year: 1987, Wins: 9, Losses: 6, Playoff: PlayoffWildCard, Note: "15-game strike year"},
	{Year: 1988, Wins: 9, Losses: 7, Playoff: PlayoffDivisional},
	{Year: 1989, Wins: 7, Losses: 9},
	{Year: 1990, Wins: 9, Losses: 7},
	{Year: 1991, Wins: 7, Losses: 9},
	{Year: 1992, Wins: 2, Losses: 14},
	{Year: 1993, Wins: 6, Losses: 10},
	{Year: 1994, Wins: 6, Losses: 10},
	{Year: 1995, Wins: 8, Losses: 8},
	{Year: 1996, Wins: 7, Losses: 9},
	{Year: 1997, Wins: 8, Losses: 8},
	{Year: 1998, Wins: 8, Losses: 8},
	{Year: 1999, Wins: 9, Losses: 7, Playoff: PlayoffDivisional},
	{Year: 2000, Wins: 6, Losses: 10},
	{Year: 2001, Wins: 9, Losses: 7},
	{Year: 2002, Wins: 7, Losses: 9, Note: "Joined NFC West"},
	{Year: 2003, Wins: 10, Losses: 6, Playoff: PlayoffDivisional},
	{Year: 2004, Wins: 9, Losses: 7, Playoff: PlayoffWildCard},
	{Year: 2005, Wins: 13, Losses: 3, Playoff: PlayoffSBLoss, Note: "SB XL"},
	{Year: 2006, Wins: 9, Losses: 7, Playoff: PlayoffDivisional},
	{Year: 2007, Wins: 10, Losses: 6, Playoff: PlayoffConference},
	{Year: 2008, Wins: 4, Losses: 12},
	{Year: 2009, Wins: 5, Losses: 11},
	{Year: 2010, Wins: 7, Losses: 9, Playoff: PlayoffDivisional, Note: "Beast Quake"},
	{Year: 2011, Wins: 7, Losses: 9},
	{Year: 2012, Wins: 11, Losses: 5, Playoff: PlayoffDivisional},
	{Year: 2013, Wins: 13, Losses: 3, Playoff: PlayoffSBWin, Note: "SB XLVIII win"},
	{Year: 2014, Wins: 12, Losses: 4, Playoff: PlayoffSBLoss, Note: "SB XLIX"},
	{Year: 2015, Wins: 10, Losses: 6, Playoff: PlayoffDivisional},
	{Year: 2016, Wins: 10, Losses: 6, Playoff: PlayoffWildCard},
	{Year: 2017, Wins: 9, Losses: 7},
	{Year: 2018, Wins: 10, Losses: 6, Playoff: PlayoffDivisional},
	{Year: 2019, Wins: 11, Losses: 5, Playoff: PlayoffDivisional},
	{Year: 2020, Wins: 12, Losses: 4, Playoff: PlayoffWildCard},
	{Year: 2021, Wins: 7, Losses: 10},
	{Year: 2022, Wins: 9, Losses: 8, Playoff: PlayoffWildCard},
	{Year: 2023, Wins: 9, Losses: 8},
}

var playoffHistory = []PlayoffAppearance{
	{Year: 1983, Result: "AFC Championship", Note: "Largent era peaks"},
	{Year: 1984, Result: "Divisional Round", Note: "12-4 season"},
	{Year: 1986, Result: "Wild Card"},
	{Year: 1987, Result: "Wild Card", Note: "15-game strike season"},
	{Year: 1988, Result: "Divisional Round", Note: "Krieg era"},
	{Year: 1999, Result: "Divisional Round", Note: "Holmgren arrives"},
	{Year: 2003, Result: "Divisional Round", Note: "First NFC West title"},
	{Year: 2004, Result: "Wild Card"},
	{Year: 2005, Result: "Super Bowl XL", Note: "Lost to Pittsburgh 21-10", SuperBowl: true},
	{Year: 2006, Result: "Divisional Round"},
	{Year: 2007, Result: "NFC Championship", Note: "Frozen tundra in Green Bay"},
	{Year: 2010, Result: "Divisional Round", Note: "Beast Quake wild card win"},
	{Year: 2012, Result: "Divisional Round", Note: "LOB era begins"},
	{Year: 2013, Result: "Super Bowl XLVIII", Note: "Crushed Denver 43-8", SuperBowl: true, Won: true},
	{Year: 2014, Result: "Super Bowl XLIX", Note: "Malcolm Butler. The throw.", SuperBowl: true},
	{Year: 2015, Result: "Divisional Round", Note: "Lost to Carolina"},
	{Year: 2016, Result: "Wild Card", Note: "Lost to Atlanta"},
	{Year: 2018, Result: "Divisional Round", Note: "Beat Dallas, lost at Green Bay"},
	{Year: 2019, Result: "Divisional Round", Note: "Beat Philly, lost at Green Bay"},
	{Year: 2020, Result: "Wild Card", Note: "Lost to LA Rams"},
	{Year: 2022, Result: "Wild Card", Note: "Lost to San Francisco"},
}

var leaders = map[string][]Leader{
	"passing": {
		{Name: "Russell Wilson", Stat: "37,059 yds", Detail: "292 TD, 2012-21"},
		{Name: "Matt Hasselbeck", Stat: "29,434 yds", Detail: "174 TD, 2001-10"},
		{Name: "Dave Krieg", Stat: "26,132 yds", Detail: "195 TD, 1980-91"},
	},
	"rushing": {
		{Name: "Shaun Alexander", Stat: "9,429 yds", Detail: "100 TD, 2000-07, NFL MVP 2005"},
		{Name: "Curt Warner", Stat: "6,705 yds", Detail: "55 TD, 1983-89"},
		{Name: "Marshawn Lynch", Stat: "6,347 yds", Detail: "57 TD, 2010-17"},
	},
	"receiving": {
		{Name: "Steve Largent", Stat: "8,135 yds", Detail: "100 TD, 1976-89, HOF"},
		{Name: "Brian Blades", Stat: "6,872 yds", Detail: "34 TD, 1988-98"},
		{Name: "Doug Baldwin", Stat: "6,563 yds", Detail: "49 TD, 2011-18"},
	},
	"defense": {
		{Name: "Jacob Green", Stat: "97.5 sacks", Detail: "DE, 1980-91"},
		{Name: "Michael Sinclair", Stat: "49.5 sacks", Detail: "DE, 1991-2001, 16 in '98"},
		{Name: "Kenny Easley", Stat: "32 INT", Detail: "S, 1981-87, HOF"},
	},
}

// Division head-to-head since realignment in 2002, through 2023.
var headToHead = []HeadToHead{
	{Abbr: "LAR", Name: "LA Rams", Wins: 27, Losses: 17, Note: "Since 2002"},
	{Abbr: "SF", Name: "San Francisco", Wins: 24, Losses: 20, Note: "Since 2002"},
	{Abbr: "ARI", Name: "Arizona", Wins: 33, Losses: 11, Note: "Since 2002"},
}
