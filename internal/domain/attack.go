package domain

// Attack lets an imposter eliminate the first alive crew member within strike
// radius, in roster order. Nobody in reach is not an error.
func (w *World) Attack(attackerID string) ([]*GameEvent, error) {
	attacker, err := w.GetPlayer(attackerID)
	if err != nil {
		return nil, err
	}

	if w.Status != GameOngoing {
		return nil, ErrGameNotOngoing
	}

	if !attacker.Team.IsImposter() {
		return nil, ErrNotImposter
	}

	victim := w.findVictim(attacker)
	if victim == nil {
		return nil, nil
	}

	victim.Status = StatusGhost
	body := NewCrewBody(victim)
	w.Bodies = append(w.Bodies, body)

	events := []*GameEvent{
		NewEvent(EventPlayerEliminated, w.ID, &PlayerEliminatedPayload{
			PlayerID: victim.ID,
			Location: body.Location,
		}, "Player %s was eliminated", victim.ID),
	}

	if w.AliveCrewCount() == 0 && w.advance(GameImposterWon) {
		events = append(events, NewEvent(EventGameEnded, w.ID, &GameEndedPayload{
			Status: w.Status,
		}, "Imposters win"))
	}

	return events, nil
}

// findVictim returns the first alive crew member the attacker can reach
func (w *World) findVictim(attacker *Player) *Player {
	for _, p := range w.Players {
		if !p.IsAliveCrew() {
			continue
		}
		if attacker.Location.Within(p.Location, w.Settings.StrikeRadius) && facingTarget(attacker, p) {
			return p
		}
	}
	return nil
}

// facingTarget is the heading check for attacks.
// TODO: use attacker and victim targets to decide whether the strike lands; every victim in reach qualifies for now.
func facingTarget(attacker, victim *Player) bool {
	return true
}
