// Package market fetches game-winner markets from the exchange and
// normalizes them into the display shape: filter to game-winner records,
// dedup by event, reverse for display, then map prices, teams, and game
// times. All failures surface as a *FetchError with a Kind the caller can
// branch on.
package market
