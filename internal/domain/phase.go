package domain

// GameStatus represents the phase of the whole world
type GameStatus string

const (
	GameWaiting     GameStatus = "WAITING"      // Lobby, roster not full yet
	GameOngoing     GameStatus = "ONGOING"      // Roles assigned, play in progress
	GameCrewWon     GameStatus = "CREW_WON"     // No trigger exists yet
	GameImposterWon GameStatus = "IMPOSTER_WON" // No crew left alive
)

// String returns the string representation of the status
func (s GameStatus) String() string {
	return string(s)
}

// IsFinished returns true for terminal statuses
func (s GameStatus) IsFinished() bool {
	return s == GameCrewWon || s == GameImposterWon
}

// CanTransitionTo checks if a transition from the current status to target is valid
func (s GameStatus) CanTransitionTo(target GameStatus) bool {
	validTransitions := map[GameStatus][]GameStatus{
		GameWaiting: {GameOngoing},
		GameOngoing: {GameCrewWon, GameImposterWon},
	}

	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == target {
			return true
		}
	}
	return false
}
