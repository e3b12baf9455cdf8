// Package schedule implements the staged countdown engine.
//
// A Scheduler walks a Plan (optional pre-wait followed by named stages) using
// elapsed-time deltas supplied by the caller. It never reads a clock, blocks or
// spawns goroutines: the caller measures wall time and feeds it to Advance.
// Time that overshoots a stage boundary is carried into the next phase, so the
// sequence of boundary events depends only on the total time fed in, not on
// how that time was split across calls.
//
// A Scheduler is not safe for concurrent use; drive it from one goroutine.
package schedule
