// Package models defines the domain entities shared by the library reader, the Spotify client, and the migration engine.
//
// The types fall into two categories:
//
// 1. Source-side records extracted from the iTunes library XML
//   - [Track] : One song's descriptive metadata (title, artist, album, year)
//
// 2. Destination-side results produced while assembling the Spotify playlist
//   - [MatchResult] : Outcome of searching Spotify for a source track
//   - [Playlist] : Created playlist metadata including its owner
//   - [MigrationSummary] : Counts and partitioned results for a completed run
//
// Tracks carry no identity beyond their field values; duplicate entries in the
// source playlist are preserved as-is.
package models
