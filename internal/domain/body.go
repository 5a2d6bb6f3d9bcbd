package domain

// CrewBody is what remains of an eliminated crew member
type CrewBody struct {
	ID       string   `json:"id"` // ID of the eliminated player
	Location Location `json:"location"`
	Reported bool     `json:"reported"`
}

// NewCrewBody creates an unreported body at the victim's current location
func NewCrewBody(victim *Player) *CrewBody {
	return &CrewBody{
		ID:       victim.ID,
		Location: victim.Location,
		Reported: false,
	}
}
