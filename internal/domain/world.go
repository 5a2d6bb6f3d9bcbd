package domain

// Settings holds the tunable parameters of a world
type Settings struct {
	Capacity        int      `json:"capacity"`        // Players per game; play starts when the roster is full
	Imposters       int      `json:"imposters"`       // Imposters drawn when play starts
	PlayerSpeed     float64  `json:"playerSpeed"`     // Units per second
	StrikeRadius    float64  `json:"strikeRadius"`    // Attack reach, exclusive
	DiscoveryRadius float64  `json:"discoveryRadius"` // Body reporting reach, exclusive
	Spawn           Location `json:"spawn"`
}

// DefaultSettings returns the default world settings
func DefaultSettings() Settings {
	return Settings{
		Capacity:        4,
		Imposters:       1,
		PlayerSpeed:     300,
		StrikeRadius:    200,
		DiscoveryRadius: 400,
		Spawn:           Location{X: 4900, Y: 1700},
	}
}

// World is the authoritative game state of one room.
//
// World is not safe for concurrent use: the host must serialize every call.
// Each handler checks all of its preconditions before the first write, so a
// returned error always means the world was left untouched.
type World struct {
	ID       string      `json:"id"`
	Status   GameStatus  `json:"status"`
	Players  []*Player   `json:"players"` // Roster, in join order
	Bodies   []*CrewBody `json:"bodies"`  // In creation order
	Vote     *Vote       `json:"vote,omitempty"`
	Settings Settings    `json:"settings"`

	ballots  ballotBox
	assigner RoleAssigner
}

// NewWorld creates an empty world waiting for players
func NewWorld(id string, settings Settings, assigner RoleAssigner) *World {
	if settings.Capacity < 1 {
		settings.Capacity = DefaultSettings().Capacity
	}
	if settings.Imposters < 1 {
		settings.Imposters = 1
	}

	return &World{
		ID:       id,
		Status:   GameWaiting,
		Players:  make([]*Player, 0, settings.Capacity),
		Bodies:   make([]*CrewBody, 0),
		Settings: settings,
		ballots:  newBallotBox(),
		assigner: assigner,
	}
}

// GetPlayer returns a player by ID
func (w *World) GetPlayer(playerID string) (*Player, error) {
	for _, p := range w.Players {
		if p.ID == playerID {
			return p, nil
		}
	}
	return nil, ErrNotJoined
}

// HasPlayer checks if the player is on the roster
func (w *World) HasPlayer(playerID string) bool {
	_, err := w.GetPlayer(playerID)
	return err == nil
}

// PlayerCount returns the roster size
func (w *World) PlayerCount() int {
	return len(w.Players)
}

// CanJoin checks if a new player could still join
func (w *World) CanJoin() bool {
	return w.Status == GameWaiting && len(w.Players) < w.Settings.Capacity
}

// AliveCount returns the number of players that are not ghosts
func (w *World) AliveCount() int {
	count := 0
	for _, p := range w.Players {
		if p.IsAlive() {
			count++
		}
	}
	return count
}

// AliveCrewCount returns the number of crew members still alive
func (w *World) AliveCrewCount() int {
	count := 0
	for _, p := range w.Players {
		if p.IsAliveCrew() {
			count++
		}
	}
	return count
}

// advance moves the world to target if the status graph allows it.
// Illegal transitions are ignored so that a status never regresses.
func (w *World) advance(target GameStatus) bool {
	if !w.Status.CanTransitionTo(target) {
		return false
	}
	w.Status = target
	return true
}

// clone returns a deep copy of the world sharing only the role assigner
func (w *World) clone() *World {
	c := &World{
		ID:       w.ID,
		Status:   w.Status,
		Players:  make([]*Player, len(w.Players), cap(w.Players)),
		Bodies:   make([]*CrewBody, len(w.Bodies)),
		Settings: w.Settings,
		ballots:  w.ballots.clone(),
		assigner: w.assigner,
	}
	for i, p := range w.Players {
		pc := p.clone()
		c.Players[i] = &pc
	}
	for i, b := range w.Bodies {
		bc := *b
		c.Bodies[i] = &bc
	}
	if w.Vote != nil {
		c.Vote = w.Vote.clone()
	}
	return c
}
