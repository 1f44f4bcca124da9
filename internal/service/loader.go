package service

import (
	"strconv"
	"time"

	"github.com/courtsight/courtside/internal/analytics"
	"github.com/courtsight/courtside/internal/store"
)

// gameTableFromRecords converts joined game records into the tabular shape
// the pipeline consumes. Date and tipoff are carried as raw strings so the
// cleaning stage owns all parsing, including recovery from bad values. The
// tipoff column is always declared because it exists in the games schema;
// rows without a stored timestamp keep a missing hour downstream.
func gameTableFromRecords(records []*store.GameRecord) analytics.GameTable {
	cols := analytics.Columns(
		analytics.ColGameID,
		analytics.ColDate,
		analytics.ColSeason,
		analytics.ColStatus,
		analytics.ColPostseason,
		analytics.ColHomeTeamID,
		analytics.ColHomeTeamName,
		analytics.ColVisitorTeamID,
		analytics.ColVisitorTeamName,
		analytics.ColHomeTeamScore,
		analytics.ColVisitorTeamScore,
		analytics.ColTipoff,
	)

	rows := make([]analytics.GameRow, 0, len(records))
	for _, rec := range records {
		row := analytics.GameRow{
			GameID:           rec.GameID,
			DateRaw:          rec.GameDate.Format("2006-01-02"),
			Season:           rec.Season,
			Status:           rec.Status,
			Postseason:       rec.Postseason,
			HomeTeamID:       rec.HomeTeamID,
			HomeTeamName:     rec.HomeTeamName,
			VisitorTeamID:    rec.VisitorTeamID,
			VisitorTeamName:  rec.VisitorTeamName,
			HomeTeamScore:    rec.HomeTeamScore,
			VisitorTeamScore: rec.VisitorTeamScore,
		}
		if rec.Tipoff.Valid {
			row.TipoffRaw = rec.Tipoff.Time.Format(time.RFC3339)
		}
		rows = append(rows, row)
	}

	return analytics.NewGameTable(rows, cols)
}

// playerTableFromRecords converts joined player records. Optional fields are
// carried raw; CleanPlayers coerces them.
func playerTableFromRecords(records []*store.PlayerRecord) analytics.PlayerTable {
	cols := analytics.Columns(
		analytics.ColPosition,
		analytics.ColHeightFeet,
		analytics.ColHeightInches,
		analytics.ColHeightTotalInches,
		analytics.ColWeightPounds,
	)

	rows := make([]analytics.PlayerRow, 0, len(records))
	for _, rec := range records {
		row := analytics.PlayerRow{
			PlayerID:  rec.PlayerID,
			FirstName: rec.FirstName,
			LastName:  rec.LastName,
			FullName:  rec.FirstName + " " + rec.LastName,
			Position:  rec.Position.String,
		}
		if rec.HeightFeet.Valid {
			row.HeightFeetRaw = strconv.Itoa(int(rec.HeightFeet.Int32))
		}
		if rec.HeightInches.Valid {
			row.HeightInchesRaw = strconv.Itoa(int(rec.HeightInches.Int32))
		}
		if rec.HeightTotalInches.Valid {
			row.HeightTotalInchesRaw = strconv.Itoa(int(rec.HeightTotalInches.Int32))
		}
		if rec.WeightPounds.Valid {
			row.WeightPoundsRaw = strconv.Itoa(int(rec.WeightPounds.Int32))
		}
		row.JerseyNumber = rec.JerseyNumber.String
		row.College = rec.College.String
		row.Country = rec.Country.String
		if rec.TeamID.Valid {
			row.TeamID = int(rec.TeamID.Int32)
		}
		row.TeamAbbreviation = rec.TeamAbbreviation.String
		row.TeamName = rec.TeamName.String
		row.TeamConference = rec.TeamConference.String
		rows = append(rows, row)
	}

	return analytics.PlayerTable{Columns: cols, Rows: rows}
}

// teamTableFromRecords converts team rows.
func teamTableFromRecords(teams []*store.Team) analytics.TeamTable {
	cols := analytics.Columns(analytics.ColConference)

	rows := make([]analytics.TeamRow, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, analytics.TeamRow{
			TeamID:       t.TeamID,
			Abbreviation: t.Abbreviation,
			City:         t.City,
			Conference:   t.Conference,
			Division:     t.Division,
			FullName:     t.FullName,
			Name:         t.Name,
		})
	}

	return analytics.TeamTable{Columns: cols, Rows: rows}
}
