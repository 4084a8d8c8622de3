// Package viz is the terminal front end for the galaxy engine.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Menu]: preset picker that launches the live view
//   - [Model]: live view driving an engine at the display refresh rate
//   - [Canvas]: coloured braille canvas fed from the framebuffer
//
// # Key Bindings
//
//	Arrows  - Move the reticle
//	A/B/E   - Spawn guardian, gardener or enemy at the reticle
//	+/-     - Nudge orbit eccentricity for new spawns
//	Space   - Pause/Resume
//	R       - Reset the field and actors
//	T       - Cycle color themes
//	G       - Toggle GIF recording
//	?       - Show help overlay
//
// # Recording
//
// G starts capturing the full-resolution framebuffer every refresh; pressing
// it again writes galaxy.gif to the current directory.
package viz
