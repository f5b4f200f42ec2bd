package entities

// Hoop is a static scoring target (spec §3). Hoops are created at room
// start and never moved or destroyed.
type Hoop struct {
	ID        int
	Team      Team // the team that is scored AGAINST by shooting through this hoop
	Position  Vector2Alias
	Radius    float64
	Thickness float64
}

// NewHoop constructs a hoop belonging to the given team.
func NewHoop(id int, team Team, position Vector2Alias, radius, thickness float64) *Hoop {
	return &Hoop{ID: id, Team: team, Position: position, Radius: radius, Thickness: thickness}
}
