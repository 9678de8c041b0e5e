// Package render turns electron states into drawing commands.
//
// The renderer never touches pixels directly. Every view is a [Surface],
// a small 2D raster API (rectangles, circles, polylines, linear and radial
// gradients, dashes) implemented by the offscreen gg backend, the raylib
// window and the terminal Braille canvas.
//
// Three views are drawn per frame:
//
//   - lateral: tube schematic seen from the side, vertical deflection
//   - top: tube schematic seen from above, horizontal deflection
//   - screen: the phosphor face with afterglow and, in Lissajous mode, the trail
//
// The screen surface is never cleared between frames. Each frame composites
// a black rectangle of opacity 1-persistence over the previous one, which is
// what makes the phosphor glow linger.
package render
