// Package display renders the countdown line and plan tables.
//
// Line reproduces the classic one-line view: every stage as "name: remaining"
// joined by " | ", the active stage bold green and the rest dim, redrawn in
// place with a clear-line escape. Printer redraws that line from runner
// events until the run ends.
package display
