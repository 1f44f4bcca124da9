package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Team represents an NBA franchise as delivered by the upstream API.
type Team struct {
	TeamID       int       `json:"team_id" db:"team_id"` // upstream API ID
	Abbreviation string    `json:"abbreviation" db:"abbreviation"`
	City         string    `json:"city" db:"city"`
	Conference   string    `json:"conference" db:"conference"`
	Division     string    `json:"division" db:"division"`
	FullName     string    `json:"full_name" db:"full_name"`
	Name         string    `json:"name" db:"name"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Player represents a player, optionally attached to a team.
type Player struct {
	PlayerID          int            `json:"player_id" db:"player_id"` // upstream API ID
	FirstName         string         `json:"first_name" db:"first_name"`
	LastName          string         `json:"last_name" db:"last_name"`
	Position          sql.NullString `json:"position,omitempty" db:"position"`
	HeightFeet        sql.NullInt32  `json:"height_feet,omitempty" db:"height_feet"`
	HeightInches      sql.NullInt32  `json:"height_inches,omitempty" db:"height_inches"`
	HeightTotalInches sql.NullInt32  `json:"height_total_inches,omitempty" db:"height_total_inches"`
	WeightPounds      sql.NullInt32  `json:"weight_pounds,omitempty" db:"weight_pounds"`
	JerseyNumber      sql.NullString `json:"jersey_number,omitempty" db:"jersey_number"`
	College           sql.NullString `json:"college,omitempty" db:"college"`
	Country           sql.NullString `json:"country,omitempty" db:"country"`
	DraftYear         sql.NullInt32  `json:"draft_year,omitempty" db:"draft_year"`
	DraftRound        sql.NullInt32  `json:"draft_round,omitempty" db:"draft_round"`
	DraftNumber       sql.NullInt32  `json:"draft_number,omitempty" db:"draft_number"`
	TeamID            sql.NullInt32  `json:"team_id,omitempty" db:"team_id"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
}

// HeightDisplay returns the classic "6-2" rendering, or "" when unknown.
func (p *Player) HeightDisplay() string {
	if p.HeightFeet.Valid && p.HeightInches.Valid {
		return fmt.Sprintf("%d-%d", p.HeightFeet.Int32, p.HeightInches.Int32)
	}
	return ""
}

// Game represents a single game. Season is stored in canonical "YYYY-YYYY"
// form; importers normalize before writing.
type Game struct {
	GameID           int            `json:"game_id" db:"game_id"` // upstream API ID
	GameDate         time.Time      `json:"date" db:"game_date"`
	Tipoff           sql.NullTime   `json:"tipoff,omitempty" db:"tipoff"`
	HomeTeamID       int            `json:"home_team_id" db:"home_team_id"`
	VisitorTeamID    int            `json:"visitor_team_id" db:"visitor_team_id"`
	HomeTeamScore    int            `json:"home_team_score" db:"home_team_score"`
	VisitorTeamScore int            `json:"visitor_team_score" db:"visitor_team_score"`
	Season           string         `json:"season" db:"season"`
	Status           string         `json:"status" db:"status"`
	Period           sql.NullInt32  `json:"period,omitempty" db:"period"`
	TimeRemaining    sql.NullString `json:"time,omitempty" db:"time_remaining"`
	Postseason       bool           `json:"postseason" db:"postseason"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

// GameRecord is a game joined with both team names and conferences, the flat
// shape the analytics loaders consume.
type GameRecord struct {
	Game
	HomeTeamName      string `json:"home_team_name" db:"home_team_name"`
	HomeConference    string `json:"home_team_conference" db:"home_team_conference"`
	VisitorTeamName   string `json:"visitor_team_name" db:"visitor_team_name"`
	VisitorConference string `json:"visitor_team_conference" db:"visitor_team_conference"`
}

// PlayerRecord is a player joined with team details.
type PlayerRecord struct {
	Player
	TeamAbbreviation sql.NullString `json:"team_abbreviation" db:"team_abbreviation"`
	TeamName         sql.NullString `json:"team_name" db:"team_name"`
	TeamConference   sql.NullString `json:"team_conference" db:"team_conference"`
}
