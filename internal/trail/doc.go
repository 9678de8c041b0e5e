// Package trail keeps the phosphor hits of the Lissajous figure.
//
// A [Buffer] holds at most [DefaultCapacity] points in insertion order and
// evicts the oldest on overflow. Each point fades linearly with its age in
// ticks and disappears after [DefaultMaxAge] ticks.
package trail
