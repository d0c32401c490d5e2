// Package app is apodview's composition root.
//
// Run performs the start-up sequence and then blocks in the UI:
//
//  1. Load .env files and the TOML config (environment overrides apply).
//  2. Load preferences; a broken prefs file falls back to defaults.
//  3. Open the log file and build the slog logger. The UI owns the
//     terminal, so nothing is logged to stdout.
//  4. Build the APOD client, the gallery store, metrics and the fetch
//     controller.
//  5. Start the optional /metrics and /healthz listener when metrics_addr
//     is set. It shuts down with the context.
//  6. Run the Bubble Tea program until the user quits.
package app
