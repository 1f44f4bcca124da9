package bdl

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTeams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":[
			{"id":1,"abbreviation":"BOS","city":"Boston","conference":"East","division":"Atlantic","full_name":"Boston Celtics","name":"Celtics"},
			{"id":2,"abbreviation":"LAL","city":"Los Angeles","conference":"West","division":"Pacific","full_name":"Los Angeles Lakers","name":"Lakers"}
		]}`)
	}))
	defer server.Close()

	client := New(server.URL, "test-key")
	teams, err := client.ListTeams(context.Background())

	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Boston Celtics", teams[0].FullName)
	assert.Equal(t, "West", teams[1].Conference)
}

func TestListPlayersCursorPagination(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/players", r.URL.Path)
		assert.Equal(t, "25", r.URL.Query().Get("per_page"))

		switch r.URL.Query().Get("cursor") {
		case "":
			fmt.Fprint(w, `{"data":[{"id":10,"first_name":"Jayson","last_name":"Tatum","position":"F","height":"6-8","weight":"210"}],"meta":{"next_cursor":25}}`)
		case "25":
			fmt.Fprint(w, `{"data":[{"id":11,"first_name":"Jaylen","last_name":"Brown","position":"G-F","height":"6-6","weight":"223"}],"meta":{}}`)
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("cursor"))
		}
	}))
	defer server.Close()

	client := New(server.URL, "")

	first, cursor, err := client.ListPlayers(context.Background(), 0, nil)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "Tatum", first[0].LastName)
	require.NotNil(t, cursor)
	assert.Equal(t, 25, *cursor)

	second, cursor, err := client.ListPlayers(context.Background(), 0, cursor)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Brown", second[0].LastName)
	assert.Nil(t, cursor)
}

func TestListGamesSeasonParam(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		assert.Equal(t, "2023", r.URL.Query().Get("seasons[]"))
		fmt.Fprint(w, `{"data":[{
			"id":100,"date":"2024-01-15","season":2023,"status":"Final","postseason":false,
			"home_team_score":110,"visitor_team_score":100,
			"home_team":{"id":1,"full_name":"Boston Celtics"},
			"visitor_team":{"id":2,"full_name":"Miami Heat"}
		}],"meta":{}}`)
	}))
	defer server.Close()

	client := New(server.URL, "")
	games, cursor, err := client.ListGames(context.Background(), 2023, 0, nil)

	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Nil(t, cursor)
	assert.Equal(t, 100, games[0].ID)
	assert.Equal(t, 2023, games[0].Season)
	require.NotNil(t, games[0].HomeTeam)
	assert.Equal(t, 1, games[0].HomeTeam.ID)
}

func TestGetNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"error":"missing api key"}`)
	}))
	defer server.Close()

	client := New(server.URL, "")
	_, err := client.ListTeams(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "missing api key")
}

func TestNewDefaultsBaseURL(t *testing.T) {
	client := New("", "")
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
