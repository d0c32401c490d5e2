// Package viewer implements the modal used to inspect one gallery item.
//
// # Lifecycle
//
// A Viewer starts Closed. Show moves it to Open with one media.Item and
// replaces any previous content; there is no stacking. Close moves it back
// to Closed. Three triggers reach Close: the close control
// (HandleCloseControl), a click whose target is the backdrop itself
// (HandleClick with TargetBackdrop), and the Esc key (HandleKey).
//
// # Surface
//
// The Viewer never draws. It drives an injected Surface, which owns the
// title/date/explanation regions, the image pane, the playback slot and
// keyboard focus. The terminal UI implements Surface; tests use an in-memory
// fake.
//
// # Invariants
//
//   - At most one playback element (embed or link) exists on the surface.
//     Show removes both kinds before inserting a new one.
//   - Close removes both kinds unconditionally, restores the image pane and
//     clears the enlarged flag.
//   - The enlarged flag only exists for image content while Open.
//   - Opening moves focus to the close control; closing returns it to the
//     fetch trigger.
package viewer
