// Package viz is the terminal front end of the simulator.
//
// A [Model] runs a session whose three views are [Phosphor] surfaces: each
// keeps a luminance per Braille dot, so the screen fade and the trail glow
// work the same way they do on a pixel display, and a [Canvas] shows the
// dots above a threshold.
//
// # Key Bindings
//
//	Space     - Pause/Resume
//	M         - Switch manual / Lissajous mode
//	1-6       - Figure presets
//	F G H I   - Persistence presets
//	Arrows    - Deflection voltages
//	+ -       - Acceleration voltage
//	T         - Cycle color themes
//	S         - Toggle GIF recording
//	?         - Show help overlay
//
// # Recording
//
// The screen view can be recorded as a GIF animation with the S key. The
// file is written to [GIFPath] when recording stops or the program quits.
package viz
