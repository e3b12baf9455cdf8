// Package runner drives a schedule.Scheduler against a clock.
//
// The Runner owns the only goroutine that touches its scheduler. It sleeps
// until the earlier of the next poll tick or the next stage boundary, feeds
// the measured delta to Advance and fans resulting events out to subscribers.
// Pause, resume and cancel requests from other goroutines (keyboard, signals,
// context cancellation) are serialised into the run loop.
package runner
