// Package viz renders split-flap boards in the terminal.
//
// The package implements the cell renderer side of the engine boundary:
//
//   - [RenderCell]/[RenderBoard]: lipgloss rendering of (previous, current) pairs
//   - [Model]: Bubble Tea program that polls an engine and edits its target
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Enter      - Roll the board to the typed value
//	Backspace  - Delete the last typed character
//	Ctrl+U     - Clear the typed value
//	Ctrl+T     - Cycle color themes
//	Esc/Ctrl+C - Quit
package viz
