package market

import (
	"testing"
	"time"

	"github.com/sporters/courtside/internal/api"
	"github.com/sporters/courtside/internal/model"
)

func intPtr(v int) *int { return &v }

// TestIsGameWinner tests the filter predicate.
func TestIsGameWinner(t *testing.T) {
	tests := []struct {
		name   string
		market api.APIMarket
		want   bool
	}{
		{
			name:   "both subtitles present",
			market: api.APIMarket{YesSubTitle: "Lakers", NoSubTitle: "Celtics"},
			want:   true,
		},
		{
			name:   "only yes subtitle",
			market: api.APIMarket{YesSubTitle: "Lakers"},
			want:   false,
		},
		{
			name:   "title mentions game winner",
			market: api.APIMarket{Title: "Lakers vs Celtics Game Winner?"},
			want:   true,
		},
		{
			name:   "title mentions game winner mixed case",
			market: api.APIMarket{Title: "Lakers vs Celtics GAME WINNER?"},
			want:   true,
		},
		{
			name:   "ticker carries series prefix",
			market: api.APIMarket{Ticker: "KXNBAGAME-25OCT01LALBOS-LAL"},
			want:   true,
		},
		{
			name:   "unrelated market",
			market: api.APIMarket{Ticker: "KXHIGHNY-25OCT01", Title: "High temp in NYC above 70?"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isGameWinner(&tt.market, "KXNBAGAME"); got != tt.want {
				t.Errorf("isGameWinner() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestDedupByEvent tests first-wins grouping by event ticker.
func TestDedupByEvent(t *testing.T) {
	t.Run("first record per event wins", func(t *testing.T) {
		in := []*api.APIMarket{
			{Ticker: "A-LAL", EventTicker: "A"},
			{Ticker: "A-BOS", EventTicker: "A"},
			{Ticker: "B-GSW", EventTicker: "B"},
		}

		out := dedupByEvent(in)
		if len(out) != 2 {
			t.Fatalf("len = %d, want 2", len(out))
		}
		if out[0].Ticker != "A-LAL" {
			t.Errorf("out[0] = %q, want A-LAL (first in input order)", out[0].Ticker)
		}
		if out[1].Ticker != "B-GSW" {
			t.Errorf("out[1] = %q, want B-GSW", out[1].Ticker)
		}
	})

	t.Run("missing event ticker falls back to own ticker", func(t *testing.T) {
		in := []*api.APIMarket{
			{Ticker: "X"},
			{Ticker: "Y"},
			{Ticker: "X"},
		}

		out := dedupByEvent(in)
		if len(out) != 2 {
			t.Fatalf("len = %d, want 2", len(out))
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []*api.APIMarket{
			{Ticker: "A-LAL", EventTicker: "A"},
			{Ticker: "A-BOS", EventTicker: "A"},
			{Ticker: "B-GSW", EventTicker: "B"},
		}

		once := dedupByEvent(in)
		twice := dedupByEvent(once)
		if len(once) != len(twice) {
			t.Fatalf("dedup not idempotent: %d then %d", len(once), len(twice))
		}
		for i := range once {
			if once[i].Ticker != twice[i].Ticker {
				t.Errorf("order changed at %d: %q vs %q", i, once[i].Ticker, twice[i].Ticker)
			}
		}
	})
}

// TestMatchupTitle tests suffix stripping.
func TestMatchupTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Lakers vs Celtics Game Winner?", "Lakers vs Celtics"},
		{"Lakers vs Celtics Winner?", "Lakers vs Celtics"},
		{"Lakers vs Celtics game winner?", "Lakers vs Celtics"},
		{"Lakers vs Celtics", "Lakers vs Celtics"},
		{"Winner?", "Winner?"}, // no leading whitespace, not a suffix
	}

	for _, tt := range tests {
		if got := matchupTitle(tt.in); got != tt.want {
			t.Errorf("matchupTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestSplitTeams tests matchup parsing.
func TestSplitTeams(t *testing.T) {
	tests := []struct {
		in           string
		team1, team2 string
		ok           bool
	}{
		{"Lakers vs Celtics", "Lakers", "Celtics", true},
		{"Lakers", "", "", false},
		{"A vs B vs C", "", "", false},
		{" vs Celtics", "", "", false},
	}

	for _, tt := range tests {
		team1, team2, ok := splitTeams(tt.in)
		if team1 != tt.team1 || team2 != tt.team2 || ok != tt.ok {
			t.Errorf("splitTeams(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.in, team1, team2, ok, tt.team1, tt.team2, tt.ok)
		}
	}
}

// TestPrices tests the last-price complement and the bid fallback.
func TestPrices(t *testing.T) {
	tests := []struct {
		name    string
		market  api.APIMarket
		wantYes int
		wantNo  int
	}{
		{
			name:    "complement from last price",
			market:  api.APIMarket{LastPrice: intPtr(62), YesBid: 10, NoBid: 10},
			wantYes: 62,
			wantNo:  38,
		},
		{
			name:    "last price of zero still wins over bids",
			market:  api.APIMarket{LastPrice: intPtr(0), YesBid: 45, NoBid: 55},
			wantYes: 0,
			wantNo:  100,
		},
		{
			name:    "last price clamped high",
			market:  api.APIMarket{LastPrice: intPtr(140)},
			wantYes: 100,
			wantNo:  0,
		},
		{
			name:    "independent bids when never traded",
			market:  api.APIMarket{YesBid: 45, NoBid: 52},
			wantYes: 45,
			wantNo:  52,
		},
		{
			name:    "bids clamped independently",
			market:  api.APIMarket{YesBid: -3, NoBid: 118},
			wantYes: 0,
			wantNo:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yes, no := prices(&tt.market)
			if yes != tt.wantYes || no != tt.wantNo {
				t.Errorf("prices() = (%d, %d), want (%d, %d)", yes, no, tt.wantYes, tt.wantNo)
			}
		})
	}
}

// TestGameTime tests the expiration-to-tip-off derivation.
func TestGameTime(t *testing.T) {
	t.Run("three hour offset from expected expiration", func(t *testing.T) {
		m := api.APIMarket{ExpectedExpirationTime: "2024-01-15T22:00:00Z"}
		got := gameTime(&m)
		if got == nil {
			t.Fatal("gameTime() = nil, want value")
		}
		want := time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("gameTime() = %v, want %v", got, want)
		}
	})

	t.Run("falls back to close time", func(t *testing.T) {
		m := api.APIMarket{CloseTime: "2024-01-15T22:00:00Z"}
		got := gameTime(&m)
		if got == nil {
			t.Fatal("gameTime() = nil, want value")
		}
		want := time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("gameTime() = %v, want %v", got, want)
		}
	})

	t.Run("unparseable timestamps yield nil", func(t *testing.T) {
		m := api.APIMarket{ExpectedExpirationTime: "tonight", CloseTime: ""}
		if got := gameTime(&m); got != nil {
			t.Errorf("gameTime() = %v, want nil", got)
		}
	})
}

// TestTrendAgainst tests trend transitions between polls.
func TestTrendAgainst(t *testing.T) {
	prev := map[string]int{"A": 50, "B": 50, "C": 50}

	tests := []struct {
		name string
		id   string
		yes  int
		want model.Trend
	}{
		{"price rose", "A", 55, model.TrendUp},
		{"price fell", "B", 45, model.TrendDown},
		{"price unchanged", "C", 50, model.TrendStable},
		{"no prior observation", "D", 99, model.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trendAgainst(prev, tt.id, tt.yes); got != tt.want {
				t.Errorf("trendAgainst() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestNormalize tests the assembled pipeline.
func TestNormalize(t *testing.T) {
	raw := []api.APIMarket{
		{
			Ticker:                 "KXNBAGAME-25OCT01LALBOS-LAL",
			EventTicker:            "KXNBAGAME-25OCT01LALBOS",
			Title:                  "Lakers vs Celtics Game Winner?",
			YesSubTitle:            "Lakers",
			NoSubTitle:             "Celtics",
			Status:                 "active",
			LastPrice:              intPtr(62),
			Volume:                 1200,
			ExpectedExpirationTime: "2024-01-15T22:00:00Z",
		},
		{
			// Sibling of the first market; dropped by dedup.
			Ticker:      "KXNBAGAME-25OCT01LALBOS-BOS",
			EventTicker: "KXNBAGAME-25OCT01LALBOS",
			Title:       "Lakers vs Celtics Game Winner?",
			YesSubTitle: "Celtics",
			NoSubTitle:  "Lakers",
			Status:      "active",
		},
		{
			Ticker:      "KXNBAGAME-25OCT02GSWDEN-GSW",
			EventTicker: "KXNBAGAME-25OCT02GSWDEN",
			Title:       "Warriors vs Nuggets Game Winner?",
			YesSubTitle: "Warriors",
			NoSubTitle:  "Nuggets",
			Status:      "open",
			YesBid:      45,
			NoBid:       52,
		},
		{
			// Not a game-winner market; dropped by the filter.
			Ticker: "KXHIGHNY-25OCT01",
			Title:  "High temp in NYC above 70?",
		},
	}

	out := normalize(raw, "KXNBAGAME", map[string]int{
		"KXNBAGAME-25OCT01LALBOS-LAL": 50,
	})

	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}

	// Display order is reversed: the Warriors game comes first.
	if out[0].Ticker != "KXNBAGAME-25OCT02GSWDEN-GSW" {
		t.Errorf("out[0].Ticker = %q, want the later listing first", out[0].Ticker)
	}

	gsw, lal := out[0], out[1]

	if gsw.Title != "Warriors vs Nuggets" {
		t.Errorf("Title = %q, want %q", gsw.Title, "Warriors vs Nuggets")
	}
	if gsw.YesPrice != 45 || gsw.NoPrice != 52 {
		t.Errorf("untraded prices = (%d, %d), want independent bids (45, 52)", gsw.YesPrice, gsw.NoPrice)
	}
	if gsw.Trend != model.TrendStable {
		t.Errorf("Trend = %q, want stable for unseen market", gsw.Trend)
	}
	if !gsw.IsLive {
		t.Error("open market should be live")
	}

	if lal.YesPrice != 62 || lal.NoPrice != 38 {
		t.Errorf("traded prices = (%d, %d), want complement (62, 38)", lal.YesPrice, lal.NoPrice)
	}
	if lal.YesTeam != "Lakers" || lal.NoTeam != "Celtics" {
		t.Errorf("teams = (%q, %q), want (Lakers, Celtics)", lal.YesTeam, lal.NoTeam)
	}
	if lal.Trend != model.TrendUp {
		t.Errorf("Trend = %q, want up (50 -> 62)", lal.Trend)
	}
	if lal.Platform != model.PlatformKalshi {
		t.Errorf("Platform = %q, want %q", lal.Platform, model.PlatformKalshi)
	}
	if lal.GameTime == nil {
		t.Fatal("GameTime = nil, want value")
	}
	want := time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC)
	if !lal.GameTime.Equal(want) {
		t.Errorf("GameTime = %v, want %v", lal.GameTime, want)
	}

	t.Run("missing ticker gets positional id", func(t *testing.T) {
		out := normalize([]api.APIMarket{
			{Title: "Heat vs Knicks Game Winner?", EventTicker: "E1"},
		}, "KXNBAGAME", nil)
		if len(out) != 1 {
			t.Fatalf("len = %d, want 1", len(out))
		}
		if out[0].ID != "market-0" {
			t.Errorf("ID = %q, want %q", out[0].ID, "market-0")
		}
	})

	t.Run("empty input yields empty list", func(t *testing.T) {
		out := normalize(nil, "KXNBAGAME", nil)
		if len(out) != 0 {
			t.Errorf("len = %d, want 0", len(out))
		}
	})
}

// TestNormalizeYesTeamFromSubtitle tests that the yes side follows the
// exchange subtitle rather than title order.
func TestNormalizeYesTeamFromSubtitle(t *testing.T) {
	out := normalize([]api.APIMarket{
		{
			Ticker:      "KXNBAGAME-25OCT01LALBOS-BOS",
			EventTicker: "KXNBAGAME-25OCT01LALBOS",
			Title:       "Lakers vs Celtics Game Winner?",
			YesSubTitle: "Celtics",
			NoSubTitle:  "Lakers",
		},
	}, "KXNBAGAME", nil)

	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].YesTeam != "Celtics" {
		t.Errorf("YesTeam = %q, want %q", out[0].YesTeam, "Celtics")
	}
	if out[0].NoTeam != "Lakers" {
		t.Errorf("NoTeam = %q, want %q", out[0].NoTeam, "Lakers")
	}
}
