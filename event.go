package pokerdirector

const (
	DirectorEvent_Created      = "Created"
	DirectorEvent_Dispatched   = "Dispatched"
	DirectorEvent_Saved        = "Saved"
	DirectorEvent_Loaded       = "Loaded"
	DirectorEvent_SeatsChanged = "SeatsChanged"
)

func (d *director) emitEvent(eventName string, playerID string) {
	// refresh state
	d.state.UpdateAt = d.clock.Now().Unix()
	d.state.UpdateSerial++

	// emit event
	d.logger.Debug("emit event",
		"tournament", d.state.ID,
		"serial", d.state.UpdateSerial,
		"level", d.state.CurrentLevel,
		"player", playerID,
		"event", eventName,
	)
	d.onStateUpdated(d.state.Clone())
}

func (d *director) emitErrorEvent(eventName string, playerID string, err error) {
	d.logger.Warn("emit error event",
		"tournament", d.state.ID,
		"serial", d.state.UpdateSerial,
		"player", playerID,
		"event", eventName,
		"err", err,
	)
	d.onErrorUpdated(d.state.Clone(), err)
}

func (d *director) notify(level string, message string) {
	d.onNotification(Notification{
		Level:   level,
		Message: message,
	})
}

func (d *director) emitSoundCue(cue SoundCue) {
	d.logger.Debug("sound cue", "tournament", d.state.ID, "cue", cue)
	d.onSoundCue(cue)
}
