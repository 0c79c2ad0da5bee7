// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for the migration:
//  1. [PlaylistListView] : Browse the playlists found in the iTunes library XML
//  2. [TrackListView] : Preview the selected playlist's tracks before migrating
//  3. [ConfirmView] : Confirm the migration
//  4. [MigrateView] : Monitor real-time progress updates
//  5. [ResultView] : Display match counts and the unmatched tracks
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the MigrationEngine, providing non-blocking status reporting during the run.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
