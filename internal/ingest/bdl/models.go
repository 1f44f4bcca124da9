package bdl

// Team is a franchise as returned by the upstream API.
type Team struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Conference   string `json:"conference"`
	Division     string `json:"division"`
	FullName     string `json:"full_name"`
	Name         string `json:"name"`
}

// Player is a roster entry. Height comes back as "6-2" and weight as a
// string of pounds; both may be empty.
type Player struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Position     string `json:"position"`
	Height       string `json:"height"`
	Weight       string `json:"weight"`
	JerseyNumber string `json:"jersey_number"`
	College      string `json:"college"`
	Country      string `json:"country"`
	DraftYear    *int   `json:"draft_year"`
	DraftRound   *int   `json:"draft_round"`
	DraftNumber  *int   `json:"draft_number"`
	Team         *Team  `json:"team"`
}

// Game is a single game. Date is "YYYY-MM-DD"; DateTime, when present, is the
// tipoff timestamp. Season is the bare starting year.
type Game struct {
	ID               int    `json:"id"`
	Date             string `json:"date"`
	DateTime         string `json:"datetime"`
	Season           int    `json:"season"`
	Status           string `json:"status"`
	Period           int    `json:"period"`
	Time             string `json:"time"`
	Postseason       bool   `json:"postseason"`
	HomeTeamScore    int    `json:"home_team_score"`
	VisitorTeamScore int    `json:"visitor_team_score"`
	HomeTeam         *Team  `json:"home_team"`
	VisitorTeam      *Team  `json:"visitor_team"`
}

// Meta carries cursor pagination state.
type Meta struct {
	NextCursor *int `json:"next_cursor"`
	PerPage    int  `json:"per_page"`
}

type teamsResponse struct {
	Data []Team `json:"data"`
	Meta Meta   `json:"meta"`
}

type playersResponse struct {
	Data []Player `json:"data"`
	Meta Meta     `json:"meta"`
}

type gamesResponse struct {
	Data []Game `json:"data"`
	Meta Meta   `json:"meta"`
}
