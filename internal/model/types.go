package model

import "time"

// PlatformKalshi tags markets sourced from the Kalshi API.
const PlatformKalshi = "Kalshi"

// Trend describes the direction of a market's yes price relative to the
// previous poll tick.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Market is a normalized game-winner market shaped for the browsing UI.
// A fresh list of these is built on every poll tick; records are never
// mutated in place.
type Market struct {
	// ID is the market ticker, or a positional "market-N" fallback when
	// the upstream record had no ticker.
	ID string `json:"id"`

	// Title is the matchup phrase with the "Game Winner?" suffix removed
	// (e.g., "Lakers vs Celtics").
	Title string `json:"title"`

	// Prices in cents. When derived from a last-traded price,
	// YesPrice + NoPrice == 100; when taken from independent bid fields
	// the sum is not guaranteed.
	YesPrice int `json:"yesPrice"`
	NoPrice  int `json:"noPrice"`

	// Team labels split from the matchup phrase. Empty when the title
	// did not parse into exactly two teams; the UI then falls back to
	// generic Yes/No labels.
	YesTeam string `json:"yesTeam,omitempty"`
	NoTeam  string `json:"noTeam,omitempty"`

	IsLive bool  `json:"isLive"`
	Trend  Trend `json:"trend"`

	// GameTime approximates tip-off: the upstream expiration timestamp
	// shifted back by a fixed offset. Nil when upstream had no usable
	// timestamp.
	GameTime *time.Time `json:"gameTime,omitempty"`

	Platform string `json:"platform"`

	// Carried through for the detail view.
	Ticker      string `json:"ticker,omitempty"`
	EventTicker string `json:"eventTicker,omitempty"`
	Volume      int64  `json:"volume,omitempty"`
}

// Snapshot is one poll tick's worth of normalized markets.
type Snapshot struct {
	Markets   []Market  `json:"markets"`
	UpdatedAt time.Time `json:"updatedAt"`
}
