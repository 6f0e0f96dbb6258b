// Package store holds the latest normalized market snapshot. The poll loop
// replaces the whole list on each successful tick; readers get copies and
// subscribers get change notifications.
package store
