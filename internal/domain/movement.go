package domain

import "math"

// UpdateTarget sets the location a player walks toward on subsequent ticks
func (w *World) UpdateTarget(playerID string, target Location) ([]*GameEvent, error) {
	if w.Status == GameWaiting {
		return nil, ErrGameNotStarted
	}
	if w.Status.IsFinished() {
		return nil, ErrGameFinished
	}

	player, err := w.GetPlayer(playerID)
	if err != nil {
		return nil, err
	}

	t := target
	player.Target = &t

	return []*GameEvent{
		NewEvent(EventPlayerMoving, w.ID, &PlayerMovingPayload{
			PlayerID: player.ID,
			Target:   t,
		}, "Player %s moving to target location %s", player.ID, t),
	}, nil
}

// Tick integrates movement over elapsedSeconds. Players reaching their target
// stop exactly on it and their target is cleared.
func (w *World) Tick(elapsedSeconds float64) {
	if elapsedSeconds <= 0 {
		return
	}

	step := w.Settings.PlayerSpeed * elapsedSeconds
	for _, p := range w.Players {
		if p.Target == nil {
			continue
		}

		dx := p.Target.X - p.Location.X
		dy := p.Target.Y - p.Location.Y
		dist := math.Hypot(dx, dy)

		if dist <= step {
			p.Location = *p.Target
			p.Target = nil
			continue
		}

		p.Location.X += dx / dist * step
		p.Location.Y += dy / dist * step
	}
}
