package domain

// Join adds a player to the lobby. When the roster reaches capacity, teams
// are drawn and the game starts.
func (w *World) Join(playerID, nickname string) ([]*GameEvent, error) {
	if w.HasPlayer(playerID) {
		return nil, ErrDuplicateJoin
	}

	if w.Status != GameWaiting {
		return nil, ErrGameClosed
	}

	player := NewPlayer(playerID, nickname, w.Settings.Spawn)
	w.Players = append(w.Players, player)

	events := []*GameEvent{
		NewEvent(EventPlayerJoined, w.ID, &PlayerJoinedPayload{
			PlayerID:    player.ID,
			Nickname:    player.Nickname,
			PlayerCount: len(w.Players),
			Capacity:    w.Settings.Capacity,
		}, "Player %s joined (%d/%d)", player.ID, len(w.Players), w.Settings.Capacity),
	}

	if len(w.Players) == w.Settings.Capacity {
		events = append(events, w.start()...)
	}

	return events, nil
}

// start assigns teams in roster order and opens play
func (w *World) start() []*GameEvent {
	teams := w.assigner.AssignTeams(len(w.Players))
	for i, player := range w.Players {
		player.Team = teams[i]
	}
	w.advance(GameOngoing)

	events := make([]*GameEvent, 0, len(w.Players)+1)
	events = append(events, NewEvent(EventGameStarted, w.ID, nil, "Game started with %d players", len(w.Players)))
	for _, player := range w.Players {
		events = append(events, NewPlayerEvent(EventRoleAssigned, w.ID, player.ID, &RoleAssignedPayload{
			Team: player.Team,
		}, "You are %s", player.Team))
	}
	return events
}
