package team

// Roster returns the 30 current NBA franchises grouped by conference and division.
func Roster() []Team {
	return []Team{
		{Abbreviation: "BOS", Name: "Boston Celtics", Conference: ConferenceEast, Division: "Atlantic"},
		{Abbreviation: "BKN", Name: "Brooklyn Nets", Conference: ConferenceEast, Division: "Atlantic"},
		{Abbreviation: "NYK", Name: "New York Knicks", Conference: ConferenceEast, Division: "Atlantic"},
		{Abbreviation: "PHI", Name: "Philadelphia 76ers", Conference: ConferenceEast, Division: "Atlantic"},
		{Abbreviation: "TOR", Name: "Toronto Raptors", Conference: ConferenceEast, Division: "Atlantic"},

		{Abbreviation: "CHI", Name: "Chicago Bulls", Conference: ConferenceEast, Division: "Central"},
		{Abbreviation: "CLE", Name: "Cleveland Cavaliers", Conference: ConferenceEast, Division: "Central"},
		{Abbreviation: "DET", Name: "Detroit Pistons", Conference: ConferenceEast, Division: "Central"},
		{Abbreviation: "IND", Name: "Indiana Pacers", Conference: ConferenceEast, Division: "Central"},
		{Abbreviation: "MIL", Name: "Milwaukee Bucks", Conference: ConferenceEast, Division: "Central"},

		{Abbreviation: "ATL", Name: "Atlanta Hawks", Conference: ConferenceEast, Division: "Southeast"},
		{Abbreviation: "CHA", Name: "Charlotte Hornets", Conference: ConferenceEast, Division: "Southeast"},
		{Abbreviation: "MIA", Name: "Miami Heat", Conference: ConferenceEast, Division: "Southeast"},
		{Abbreviation: "ORL", Name: "Orlando Magic", Conference: ConferenceEast, Division: "Southeast"},
		{Abbreviation: "WAS", Name: "Washington Wizards", Conference: ConferenceEast, Division: "Southeast"},

		{Abbreviation: "DEN", Name: "Denver Nuggets", Conference: ConferenceWest, Division: "Northwest"},
		{Abbreviation: "MIN", Name: "Minnesota Timberwolves", Conference: ConferenceWest, Division: "Northwest"},
		{Abbreviation: "OKC", Name: "Oklahoma City Thunder", Conference: ConferenceWest, Division: "Northwest"},
		{Abbreviation: "POR", Name: "Portland Trail Blazers", Conference: ConferenceWest, Division: "Northwest"},
		{Abbreviation: "UTA", Name: "Utah Jazz", Conference: ConferenceWest, Division: "Northwest"},

		{Abbreviation: "GSW", Name: "Golden State Warriors", Conference: ConferenceWest, Division: "Pacific"},
		{Abbreviation: "LAC", Name: "Los Angeles Clippers", Conference: ConferenceWest, Division: "Pacific"},
		{Abbreviation: "LAL", Name: "Los Angeles Lakers", Conference: ConferenceWest, Division: "Pacific"},
		{Abbreviation: "PHX", Name: "Phoenix Suns", Conference: ConferenceWest, Division: "Pacific"},
		{Abbreviation: "SAC", Name: "Sacramento Kings", Conference: ConferenceWest, Division: "Pacific"},

		{Abbreviation: "DAL", Name: "Dallas Mavericks", Conference: ConferenceWest, Division: "Southwest"},
		{Abbreviation: "HOU", Name: "Houston Rockets", Conference: ConferenceWest, Division: "Southwest"},
		{Abbreviation: "MEM", Name: "Memphis Grizzlies", Conference: ConferenceWest, Division: "Southwest"},
		{Abbreviation: "NOP", Name: "New Orleans Pelicans", Conference: ConferenceWest, Division: "Southwest"},
		{Abbreviation: "SAS", Name: "San Antonio Spurs", Conference: ConferenceWest, Division: "Southwest"},
	}
}
