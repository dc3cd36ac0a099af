package room

type Broadcaster interface {
	Broadcast(roomID string, action string, data interface{})
}

// BroadcastSink forwards every event to a transport broadcaster, using the
// event kind as the action name.
func BroadcastSink(b Broadcaster) Sink {
	return SinkFunc(func(e Event) {
		b.Broadcast(e.RoomID, string(e.Kind), e)
	})
}

// LogSink writes gameplay milestones to logger. Routine movement and
// placement events are only logged when verbose is set.
func LogSink(logger Logger, verbose bool) Sink {
	return SinkFunc(func(e Event) {
		switch e.Kind {
		case EventDeviceDetonated:
			if len(e.Eliminated) > 0 {
				logger.Printf("room %s: device %s eliminated %v", e.RoomID, e.Device.ID, e.Eliminated)
				return
			}
		case EventRoomUpdated:
			if s := e.Snapshot; s != nil && s.Draw {
				logger.Printf("room %s: round ended in a draw", e.RoomID)
				return
			} else if s != nil && s.WinnerID != nil {
				logger.Printf("room %s: player %s won", e.RoomID, *s.WinnerID)
				return
			}
		case EventRoomCreated, EventGameStarted:
			logger.Printf("room %s: %s", e.RoomID, e.Kind)
			return
		case EventPlayerJoined:
			if e.Player != nil {
				logger.Printf("room %s: player %s (%s) joined as %s", e.RoomID, e.Player.Name, e.Player.ID, e.Player.Role)
				return
			}
		}
		if verbose {
			logger.Printf("room %s: %s", e.RoomID, e.Kind)
		}
	})
}
