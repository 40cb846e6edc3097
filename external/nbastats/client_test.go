package nbastats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/hoopcast/nba-ingest/internal/platform/resilience"
	"github.com/hoopcast/nba-ingest/internal/usecase"
)

const seasonPayload = `{
  "resource": "leaguegamefinderresults",
  "parameters": {"LeagueID": "00", "Season": "2024-25"},
  "resultSets": [{
    "name": "LeagueGameFinderResults",
    "headers": ["SEASON_ID","TEAM_ID","TEAM_ABBREVIATION","TEAM_NAME","GAME_ID","GAME_DATE","MATCHUP","WL","PTS"],
    "rowSet": [
      ["22024",1610612738,"BOS","Boston Celtics","0022400061","2024-10-22","BOS vs. NYK","W",132],
      ["22024",1610612752,"NYK","New York Knicks","0022400061","2024-10-22","NYK @ BOS","L",109],
      ["22024",1610612747,"LAL","Los Angeles Lakers","0022400062","2024-10-22","LAL vs. MIN","W",null]
    ]
  }]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, cfg ClientConfig) (*Client, *[]time.Duration) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg.BaseURL = server.URL
	cfg.HTTPClient = server.Client()
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Millisecond
	}
	client := NewClient(cfg)

	var sleeps []time.Duration
	client.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return client, &sleeps
}

func TestFetchSeasonGames_DecodesRowsAndPacesRequest(t *testing.T) {
	t.Parallel()

	var gotQuery, gotReferer, gotAgent string
	client, sleeps := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/leaguegamefinder" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		gotReferer = r.Header.Get("Referer")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(seasonPayload))
	}, ClientConfig{RequestDelay: 600 * time.Millisecond})

	rows, err := client.FetchSeasonGames(context.Background(), 2024)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if len(*sleeps) != 1 || (*sleeps)[0] != 600*time.Millisecond {
		t.Fatalf("expected one pacing delay of 600ms, got %v", *sleeps)
	}
	wantQuery := "LeagueID=00&PlayerOrTeam=T&Season=2024-25&SeasonType=Regular+Season"
	if gotQuery != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, gotQuery)
	}
	if gotReferer == "" || gotAgent == "" {
		t.Fatalf("expected browser headers, referer=%q agent=%q", gotReferer, gotAgent)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.GameID != "0022400061" || first.TeamAbbreviation != "BOS" || first.Matchup != "BOS vs. NYK" || first.GameDate != "2024-10-22" {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.Points == nil || *first.Points != 132 {
		t.Fatalf("unexpected first row points: %v", first.Points)
	}
	if rows[2].Points != nil {
		t.Fatalf("expected null points to stay nil, got %v", *rows[2].Points)
	}
}

func TestFetchSeasonGames_EmptyRowSet(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resultSets":[{"name":"LeagueGameFinderResults","headers":["GAME_ID","TEAM_ABBREVIATION","MATCHUP","GAME_DATE","PTS"],"rowSet":[]}]}`))
	}, ClientConfig{})

	rows, err := client.FetchSeasonGames(context.Background(), 2019)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestFetchSeasonGames_BlankGameIDRowDoesNotFailFetch(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resultSets":[{"name":"LeagueGameFinderResults","headers":["GAME_ID","TEAM_ABBREVIATION","MATCHUP","GAME_DATE","PTS"],"rowSet":[
			["0022400061","BOS","BOS vs. NYK","2024-10-22",132],
			[null,"MIA","MIA vs. ORL","2024-10-23",101],
			["0022400061","NYK","NYK @ BOS","2024-10-22",109]
		]}]}`))
	}, ClientConfig{})

	rows, err := client.FetchSeasonGames(context.Background(), 2024)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1].GameID != "" || rows[1].TeamAbbreviation != "MIA" {
		t.Fatalf("unexpected blank-id row: %+v", rows[1])
	}
	if rows[2].GameID != "0022400061" {
		t.Fatalf("expected rows after the blank id to survive, got %+v", rows[2])
	}
}

func TestFetchSeasonGames_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(seasonPayload))
	}, ClientConfig{MaxRetries: 2})

	rows, err := client.FetchSeasonGames(context.Background(), 2024)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if calls.Load() != 2 || len(rows) != 3 {
		t.Fatalf("expected success on second attempt, calls=%d rows=%d", calls.Load(), len(rows))
	}
}

func TestFetchSeasonGames_PermanentStatusIsFetchError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"bad season"}`))
	}, ClientConfig{MaxRetries: 3})

	_, err := client.FetchSeasonGames(context.Background(), 2024)
	if !errors.Is(err, usecase.ErrSourceFetch) {
		t.Fatalf("expected ErrSourceFetch, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("permanent errors must not be retried, calls=%d", calls.Load())
	}
}

func TestFetchSeasonGames_MissingColumnIsFetchError(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"resultSets":[{"headers":["GAME_ID","MATCHUP"],"rowSet":[["0022400061","BOS vs. NYK"]]}]}`))
	}, ClientConfig{})

	_, err := client.FetchSeasonGames(context.Background(), 2024)
	if !errors.Is(err, usecase.ErrSourceFetch) {
		t.Fatalf("expected ErrSourceFetch, got %v", err)
	}
}

func TestFetchSeasonGames_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, ClientConfig{CircuitBreaker: resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}})

	if _, err := client.FetchSeasonGames(context.Background(), 2023); !errors.Is(err, usecase.ErrSourceFetch) {
		t.Fatalf("expected ErrSourceFetch, got %v", err)
	}
	_, err := client.FetchSeasonGames(context.Background(), 2024)
	if !errors.Is(err, resilience.ErrCircuitOpen) || !errors.Is(err, usecase.ErrSourceFetch) {
		t.Fatalf("expected open circuit fetch error, got %v", err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected provider to be called once, got %d", calls.Load())
	}
}

func TestFetchSeasonGames_InvalidSeason(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{})
	if _, err := client.FetchSeasonGames(context.Background(), 1900); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSeasonLabel(t *testing.T) {
	t.Parallel()

	cases := map[int]string{2024: "2024-25", 2019: "2019-20", 1999: "1999-00", 2009: "2009-10"}
	for season, want := range cases {
		got, err := SeasonLabel(season)
		if err != nil {
			t.Fatalf("season %d: %v", season, err)
		}
		if got != want {
			t.Fatalf("season %d: want %s got %s", season, want, got)
		}
	}
}
