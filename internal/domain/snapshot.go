package domain

// Snapshot is a detached copy of the world handed to viewers.
//
// No per-viewer redaction is applied: teams of other players are visible.
// ViewerID is recorded so that redaction can be added without changing callers.
type Snapshot struct {
	GameID     string     `json:"gameId"`
	ViewerID   string     `json:"viewerId"`
	Status     GameStatus `json:"status"`
	Players    []Player   `json:"players"`
	Bodies     []CrewBody `json:"bodies"`
	Vote       *Vote      `json:"vote,omitempty"`
	VotedCount int        `json:"votedCount"`
	Capacity   int        `json:"capacity"`
}

// ViewerState returns the state visible to viewerID
func (w *World) ViewerState(viewerID string) Snapshot {
	snap := Snapshot{
		GameID:     w.ID,
		ViewerID:   viewerID,
		Status:     w.Status,
		Players:    make([]Player, 0, len(w.Players)),
		Bodies:     make([]CrewBody, 0, len(w.Bodies)),
		VotedCount: w.ballots.size(),
		Capacity:   w.Settings.Capacity,
	}

	for _, p := range w.Players {
		snap.Players = append(snap.Players, p.clone())
	}
	for _, b := range w.Bodies {
		snap.Bodies = append(snap.Bodies, *b)
	}
	if w.Vote != nil {
		snap.Vote = w.Vote.clone()
	}

	return snap
}

// Player returns the snapshot entry for playerID
func (s Snapshot) Player(playerID string) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return Player{}, false
}
