// Package logtail reads the tail of apodview's own log file for the
// diagnostics overlay.
//
// Read keeps a ring buffer of maxLines entries, so memory stays bounded no
// matter how large the log has grown. A missing file yields no lines and no
// error; the log is created lazily on first write.
//
// LevelOf classifies a line written by log/slog, in either the text
// (level=WARN) or JSON ("level":"WARN") format, so the UI can colour it.
// Unrecognised lines report LevelUnknown and are shown unstyled.
package logtail
