// Package notifications delivers audible and remote cues for stage boundaries.
//
// The bell notifier rings the terminal bell; the ntfy notifier posts to an
// ntfy topic with title, tag and priority headers. NewService assembles the
// enabled notifiers from configuration and Dispatch maps scheduler events to
// notifier calls. Delivery failures are logged and never stop a run.
package notifications
