package pokerdirector

const (
	// General
	UnsetValue = -1

	DefaultDurationMins        = 240
	DefaultFinalSecondsWarning = 5
	DefaultSeatMoveTimeout     = 60 // seconds

	// Notification levels
	NotificationLevel_Success = "success"
	NotificationLevel_Error   = "error"
	NotificationLevel_Info    = "info"
)

type SoundCue string

const (
	SoundCue_LevelChanged    SoundCue = "level_changed"    // 升盲
	SoundCue_BreakStarted    SoundCue = "break_started"    // 中場休息開始
	SoundCue_FinalSeconds    SoundCue = "final_seconds"    // 本級別最後倒數
	SoundCue_TournamentEnded SoundCue = "tournament_ended" // 賽事結束
)

type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
