// Package viz renders simulated reaches in the terminal.
//
//   - [Report]: a lipgloss summary panel with asciigraph plots of progress
//     and virtual-to-real offset
//   - [Canvas]: Braille-based pixel canvas for a top-down table view
//   - [Model]: a Bubble Tea live view that ticks the engine every frame
//
// # Key Bindings
//
//	Space - Pause/Resume the reach
//	R     - Restart the reach
//	N     - Next trial preset
//	Q     - Quit
package viz
