// Package poller drives the market refresh loop: fetch once on start,
// then on a fixed cadence. Successful ticks replace the stored snapshot;
// failed ticks record the error and leave the prior snapshot in place.
package poller
