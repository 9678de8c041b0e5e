// Package analysis characterizes recorded beam runs.
//
//   - [PowerSpectrum] and [DominantFrequency]: FFT of a deflection series
//   - [Crossings]: upward zero crossings, a time-domain frequency estimate
//   - [FigureToASCII]: the x/y figure traced on the screen
//   - [Analyze]: a [Report] combining the above for one run
//
// Samples are taken once per tick, so a series recorded at time scale dt
// has a sample rate of 1/dt per unit of simulation time.
package analysis
