package domain

// PlayerStatus represents whether a player is still in play
type PlayerStatus string

const (
	StatusAlive PlayerStatus = "ALIVE"
	StatusGhost PlayerStatus = "GHOST"
)

// Player represents a player in the world
type Player struct {
	ID       string       `json:"id"`
	Nickname string       `json:"nickname"`
	Location Location     `json:"location"`
	Target   *Location    `json:"target,omitempty"`
	Team     Team         `json:"team"`
	Status   PlayerStatus `json:"status"`
}

// NewPlayer creates a new alive player with an undetermined team at the given spawn point
func NewPlayer(id, nickname string, spawn Location) *Player {
	return &Player{
		ID:       id,
		Nickname: nickname,
		Location: spawn,
		Team:     TeamUndetermined,
		Status:   StatusAlive,
	}
}

// IsAlive returns true if the player has not been eliminated
func (p *Player) IsAlive() bool {
	return p.Status == StatusAlive
}

// IsAliveCrew returns true for crew members that are still alive
func (p *Player) IsAliveCrew() bool {
	return p.Team == TeamCrew && p.IsAlive()
}

// clone returns a deep copy of the player
func (p *Player) clone() Player {
	c := *p
	if p.Target != nil {
		t := *p.Target
		c.Target = &t
	}
	return c
}
