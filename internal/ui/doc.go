// Package ui is apodview's Bubble Tea front end.
//
// # Screen
//
// The main screen stacks four parts:
//
//   - Header and command bar: key mode, gallery state, context key hints
//   - Date form: start and end fields plus the "Get Space Images" control
//   - Trivia line: the current "Did you know?" fact
//   - Gallery: the placeholder or the list of entries from state.Store
//
// The image viewer replaces the screen with a centered modal over a plain
// backdrop. The modal is drawn from modalPane, which implements
// viewer.Surface; every open, close and enlarge decision is made by
// viewer.Viewer and the pane only records the result.
//
// # Event Flow
//
//  1. Activating the fetch control calls fetch.Controller.Submit on the
//     update loop. A missing date opens the prompt overlay.
//  2. The request runs as a tea.Cmd; its result comes back as a
//     fetchResultMsg and is handed to Controller.Deliver, which drops
//     results from superseded submissions.
//  3. The model re-reads the store snapshot after every mutation.
//  4. Activating a gallery entry calls Entry.Activate and opens the viewer
//     with the item bound when the gallery was rendered.
//
// # Focus
//
// Tab cycles start date, end date, fetch control and (when it has entries)
// the gallery. Opening the viewer moves focus to its close control; closing
// it returns focus to the fetch control. Date fields are clamped to the
// archive bounds when they lose focus.
//
// # Key Bindings
//
//   - Tab/Shift+Tab: Move focus
//   - Enter/Space: Fetch, open entry, or activate the close control
//   - j/k, g/G: Navigate the gallery
//   - Esc: Close the viewer or an overlay
//   - z: Enlarge or restore the image in the viewer
//   - o/y: Open or copy the viewer's link
//   - L: Diagnostics log overlay
//   - T: Cycle theme (saved to prefs)
//   - ?: Help
//   - q or Ctrl+C: Quit
package ui
