package config

const (
	defaultColor            = ColorAuto
	defaultRefreshMS        = 200
	minRefreshMS            = 20
	maxRefreshMS            = 5000
	defaultRequestTimeout   = 10
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogDir           = "~/.local/state/stagedtimer/logs"
	defaultLogRetentionDays = 14
	defaultLockPath         = "~/.local/state/stagedtimer/stagedtimer.lock"

	envNtfyTopic = "STAGEDTIMER_NTFY_TOPIC"
)

// Colour modes accepted by display.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Display: Display{
			Color:     defaultColor,
			RefreshMS: defaultRefreshMS,
			ShowPlan:  true,
		},
		Notifications: Notifications{
			Bell:              true,
			RequestTimeout:    defaultRequestTimeout,
			StageStarted:      false,
			StageCompleted:    true,
			SequenceCompleted: true,
			Cancelled:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			Dir:           defaultLogDir,
			RetentionDays: defaultLogRetentionDays,
		},
		Session: Session{
			Exclusive: false,
			LockPath:  defaultLockPath,
		},
	}
}
