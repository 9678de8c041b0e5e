// Package session owns a running CRT simulation.
//
// A Session holds the configuration snapshot, the tick clock, the trail
// buffer and the renderer. A single driver (the raylib loop, the bubbletea
// tick, or Run) calls Step once per display frame:
//
//	sess, err := session.New(views, crt.DefaultConfiguration(),
//	    session.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	sess.Start()
//	for !done {
//	    sess.Step()
//	}
//
// Scheduling follows a three-state machine (Stopped, Running, Paused) derived
// from the user's start, pause and visibility signals. A panic while drawing
// a frame is recovered into a *crt.FrameError, logged, and the next frame is
// scheduled as usual.
package session
