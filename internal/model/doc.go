// Package model defines the display-facing data types shared across courtside.
//
// Conventions:
//   - Prices: integer cents (0-100), matching Kalshi's binary contract quoting
//   - Timestamps: time.Time in UTC; game times are approximate tip-off times
//   - IDs: market ticker when available, positional fallback otherwise
package model
