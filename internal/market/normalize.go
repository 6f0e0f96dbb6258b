package market

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sporters/courtside/internal/api"
	"github.com/sporters/courtside/internal/model"
)

// gameTimeOffset approximates tip-off from the market's expiration: games
// settle roughly three hours after they start.
const gameTimeOffset = 3 * time.Hour

// titleSuffix matches the trailing question the exchange appends to
// game-winner market titles.
var titleSuffix = regexp.MustCompile(`(?i)\s+(game winner|winner)\?$`)

// isGameWinner reports whether a raw market is a game-winner record worth
// displaying. A record qualifies when it carries both side subtitles, or its
// title mentions "game winner", or its ticker belongs to the configured
// series.
func isGameWinner(m *api.APIMarket, seriesPrefix string) bool {
	if m.YesSubTitle != "" && m.NoSubTitle != "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Title), "game winner") {
		return true
	}
	return seriesPrefix != "" && strings.Contains(m.Ticker, seriesPrefix)
}

// dedupKey groups sibling markets of one game. Markets without an event
// ticker fall back to their own ticker, so they are never merged with
// anything else.
func dedupKey(m *api.APIMarket) string {
	if m.EventTicker != "" {
		return m.EventTicker
	}
	return m.Ticker
}

// dedupByEvent keeps the first market per game in input order.
func dedupByEvent(markets []*api.APIMarket) []*api.APIMarket {
	seen := make(map[string]struct{}, len(markets))
	out := make([]*api.APIMarket, 0, len(markets))
	for _, m := range markets {
		key := dedupKey(m)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, m)
	}
	return out
}

// matchupTitle strips the trailing "Winner?" / "Game Winner?" question.
func matchupTitle(title string) string {
	return titleSuffix.ReplaceAllString(title, "")
}

// splitTeams splits a matchup phrase on " vs ". Anything other than exactly
// two non-empty parts means the title did not parse and both labels stay
// unset.
func splitTeams(matchup string) (team1, team2 string, ok bool) {
	parts := strings.Split(matchup, " vs ")
	if len(parts) != 2 {
		return "", "", false
	}
	team1 = strings.TrimSpace(parts[0])
	team2 = strings.TrimSpace(parts[1])
	if team1 == "" || team2 == "" {
		return "", "", false
	}
	return team1, team2, true
}

// clampPrice bounds a price to the valid cent range for a binary market.
func clampPrice(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// gameTime derives an approximate tip-off from the market's expected
// expiration, falling back to its close time. Returns nil when neither
// parses.
func gameTime(m *api.APIMarket) *time.Time {
	for _, iso := range []string{m.ExpectedExpirationTime, m.CloseTime} {
		if iso == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, iso)
		if err != nil {
			continue
		}
		t = t.Add(-gameTimeOffset).UTC()
		return &t
	}
	return nil
}

// prices derives the yes/no pair. A traded market uses its last price and
// the complement; an untraded one falls back to the independent bid sides.
func prices(m *api.APIMarket) (yes, no int) {
	if m.LastPrice != nil {
		yes = clampPrice(*m.LastPrice)
		return yes, 100 - yes
	}
	return clampPrice(m.YesBid), clampPrice(m.NoBid)
}

// trendAgainst compares the current yes price to the one recorded on the
// previous successful tick. A market with no prior observation is stable.
func trendAgainst(prev map[string]int, id string, yes int) model.Trend {
	prior, ok := prev[id]
	if !ok || prior == yes {
		return model.TrendStable
	}
	if yes > prior {
		return model.TrendUp
	}
	return model.TrendDown
}

// normalize runs the full pipeline over one page of raw markets: filter,
// dedup, reverse for display, then map every survivor. prevYes carries the
// prior tick's yes prices for trend computation.
func normalize(raw []api.APIMarket, seriesPrefix string, prevYes map[string]int) []model.Market {
	kept := make([]*api.APIMarket, 0, len(raw))
	for i := range raw {
		if isGameWinner(&raw[i], seriesPrefix) {
			kept = append(kept, &raw[i])
		}
	}

	kept = dedupByEvent(kept)

	// Newest listings first.
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}

	out := make([]model.Market, 0, len(kept))
	for i, m := range kept {
		id := m.Ticker
		if id == "" {
			id = fmt.Sprintf("market-%d", i)
		}

		title := matchupTitle(m.Title)
		team1, team2, parsed := splitTeams(title)

		var yesTeam, noTeam string
		if parsed {
			yesTeam, noTeam = team1, team2
			if m.YesSubTitle != "" {
				yesTeam = m.YesSubTitle
				noTeam = team2
				if yesTeam == team2 {
					noTeam = team1
				}
			}
		}

		yes, no := prices(m)

		out = append(out, model.Market{
			ID:          id,
			Title:       title,
			YesPrice:    yes,
			NoPrice:     no,
			YesTeam:     yesTeam,
			NoTeam:      noTeam,
			IsLive:      m.Status == "active" || m.Status == "open",
			Trend:       trendAgainst(prevYes, id, yes),
			GameTime:    gameTime(m),
			Platform:    model.PlatformKalshi,
			Ticker:      m.Ticker,
			EventTicker: m.EventTicker,
			Volume:      m.Volume,
		})
	}

	return out
}
