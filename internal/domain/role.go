package domain

import "math/rand"

// Team represents the side a player plays for
type Team string

const (
	TeamUndetermined Team = "UNDETERMINED"
	TeamCrew         Team = "CREW"
	TeamImposter     Team = "IMPOSTER"
)

// String returns the string representation of the team
func (t Team) String() string {
	return string(t)
}

// IsImposter returns true if this team is the imposter team
func (t Team) IsImposter() bool {
	return t == TeamImposter
}

// RoleAssigner decides the team of every seat once the roster is full.
// The returned slice is indexed by roster position and must have length numPlayers.
type RoleAssigner interface {
	AssignTeams(numPlayers int) []Team
}

// RandomRoleAssigner picks Imposters distinct seats uniformly at random; everybody else is crew
type RandomRoleAssigner struct {
	rng       *rand.Rand
	imposters int
}

// NewRandomRoleAssigner creates an assigner drawing from rng.
// imposters is clamped to [1, numPlayers-1] at assignment time.
func NewRandomRoleAssigner(rng *rand.Rand, imposters int) *RandomRoleAssigner {
	return &RandomRoleAssigner{
		rng:       rng,
		imposters: imposters,
	}
}

// NewSeededRoleAssigner creates a single-imposter assigner with a deterministic seed
func NewSeededRoleAssigner(seed int64) *RandomRoleAssigner {
	return NewRandomRoleAssigner(rand.New(rand.NewSource(seed)), 1)
}

// AssignTeams implements RoleAssigner
func (a *RandomRoleAssigner) AssignTeams(numPlayers int) []Team {
	teams := make([]Team, numPlayers)
	for i := range teams {
		teams[i] = TeamCrew
	}
	if numPlayers == 0 {
		return teams
	}

	n := a.imposters
	if n >= numPlayers {
		n = numPlayers - 1
	}
	if n < 1 {
		n = 1
	}

	if n == 1 {
		teams[a.rng.Intn(numPlayers)] = TeamImposter
		return teams
	}
	for _, idx := range a.rng.Perm(numPlayers)[:n] {
		teams[idx] = TeamImposter
	}
	return teams
}
