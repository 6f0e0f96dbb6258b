// Package api provides the Kalshi REST client used to read market data.
//
// REST endpoints:
//   - Production: https://api.elections.kalshi.com/trade-api/v2
//   - Demo: https://demo-api.kalshi.co/trade-api/v2
//
// All prices in responses are integer cents (0-100 for binary markets).
package api
