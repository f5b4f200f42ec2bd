package gamelogic

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
	"github.com/fenixdev/quadball-server/internal/state"
)

func newTestState() *state.GameState {
	s := state.New()
	s.AddBall(entities.NewBall(0, entities.BallVolleyball))
	s.AddBall(entities.NewBall(1, entities.BallDodgeball))
	s.AddHoop(entities.NewHoop(0, entities.TeamA, geometry.Vector2{X: config.HoopOffset, Y: config.PitchWidth / 2}, config.HoopRadius, config.HoopThickness))
	s.AddHoop(entities.NewHoop(1, entities.TeamB, geometry.Vector2{X: config.PitchLength - config.HoopOffset, Y: config.PitchWidth / 2}, config.HoopRadius, config.HoopThickness))
	return s
}

func addPlayer(s *state.GameState, team entities.Team, role entities.Role, pos geometry.Vector2) *entities.Player {
	p := entities.NewPlayer(uuid.New(), "p", team, role)
	p.Position = pos
	s.AddPlayer(p)
	return p
}

// Scenario 1: kickoff then goal.
func TestScenarioKickoffThenGoal(t *testing.T) {
	s := newTestState()
	shooter := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: config.PitchLength / 2, Y: config.PitchWidth / 2})
	// Team B's keeper waits in its own zone, clear of the shot line.
	addPlayer(s, entities.TeamB, entities.RoleKeeper, geometry.Vector2{X: config.PitchLength - config.HoopOffset, Y: config.PitchWidth/2 + 10})

	g := New()
	vb := s.Volleyball()
	vb.Position = geometry.Vector2{X: config.PitchLength / 2, Y: config.PitchWidth / 2}

	// pick up at center
	in := NewInput()
	for tick := 0; tick < 5 && vb.HolderID == nil; tick++ {
		g.Step(s, config.DT, in)
	}
	assert.NotNil(t, vb.HolderID)
	assert.Equal(t, shooter.ID, *vb.HolderID)

	// run and throw toward team 1's hoop
	shooter.DesiredDirection = geometry.Vector2{X: 1, Y: 0}
	target := geometry.Vector2{X: config.PitchLength - config.HoopOffset, Y: config.PitchWidth / 2}
	for tick := 0; tick < 2000; tick++ {
		in := NewInput()
		in.Move[shooter.ID] = geometry.Vector2{X: 1, Y: 0}
		if geometry.Distance(shooter.Position, target) < 10 && vb.HolderID != nil {
			in.Throws = []uuid.UUID{shooter.ID}
		}
		g.Step(s, config.DT, in)
		if s.Score[entities.TeamA] > 0 {
			break
		}
	}

	assert.Equal(t, 1, s.Score[entities.TeamA])
	assert.Equal(t, 0, s.Score[entities.TeamB])
	assert.Equal(t, 0, s.DelayBin)
}

// Scenario 2: a knockout drops the volleyball the chaser was holding.
func TestScenarioKnockoutDropsBall(t *testing.T) {
	s := newTestState()
	chaser := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 30, Y: 16.5})
	chaser.Velocity = geometry.Vector2{X: 2, Y: 0}
	beater := addPlayer(s, entities.TeamB, entities.RoleBeater, geometry.Vector2{X: 29, Y: 16.5})

	vb := s.Volleyball()
	vb.SetHolder(chaser.ID)
	s.SetPossession(entities.TeamA)

	db := s.Dodgeballs()[0]
	db.Position = geometry.Vector2{X: 29.9, Y: 16.5}
	db.HolderID = &beater.ID
	db.LastThrowerID = nil

	g := New()
	in := NewInput()
	in.Throws = []uuid.UUID{beater.ID}
	beater.DesiredDirection = geometry.Vector2{X: 1, Y: 0}
	g.Step(s, config.DT, in)

	for tick := 0; tick < 50 && !chaser.IsKnockedOut; tick++ {
		g.Step(s, config.DT, NewInput())
	}

	assert.True(t, chaser.IsKnockedOut)
	assert.Nil(t, vb.HolderID)
	assert.True(t, db.IsDead)
	assert.Equal(t, geometry.Zero, db.Velocity)
	assert.Equal(t, 1, s.PossessionCode())
}

// Scenario 3: keeper immunity inside own zone.
func TestScenarioKeeperImmunity(t *testing.T) {
	s := newTestState()
	keeper := addPlayer(s, entities.TeamA, entities.RoleKeeper, geometry.Vector2{X: 5, Y: 16.5})
	beater := addPlayer(s, entities.TeamB, entities.RoleBeater, geometry.Vector2{X: 4, Y: 16.5})

	db := s.Dodgeballs()[0]
	db.Position = geometry.Vector2{X: 4.9, Y: 16.5}
	db.HolderID = &beater.ID

	g := New()
	in := NewInput()
	in.Throws = []uuid.UUID{beater.ID}
	beater.DesiredDirection = geometry.Vector2{X: 1, Y: 0}
	g.Step(s, config.DT, in)

	for tick := 0; tick < 50 && !db.IsDead; tick++ {
		g.Step(s, config.DT, NewInput())
	}

	assert.False(t, keeper.IsKnockedOut)
	assert.True(t, db.IsDead)
	assert.Equal(t, geometry.Zero, db.Velocity)
}

// Scenario 4: 8 seconds of continuous central-band possession forces a turnover.
func TestScenarioDelayTurnover(t *testing.T) {
	s := newTestState()
	holder := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 30, Y: 16.5})
	vb := s.Volleyball()
	vb.SetHolder(holder.ID)
	s.SetPossession(entities.TeamA)

	g := New()
	// Stop at the turnover: the released ball lies at the holder's feet
	// and Phase F would hand it back to them on the next tick.
	for tick := 0; tick < int(8/config.DT)+2 && vb.HolderID != nil; tick++ {
		g.Step(s, config.DT, NewInput())
	}

	assert.Nil(t, vb.HolderID)
	assert.Equal(t, 2, s.PossessionCode())
	assert.Equal(t, 0, s.DelayBin)
}

// Scenario 5: a free volleyball exiting the sideline triggers inbounding.
func TestScenarioInbounding(t *testing.T) {
	s := newTestState()
	thrower := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 30, Y: 30})
	vb := s.Volleyball()
	vb.Position = geometry.Vector2{X: 30, Y: 32}
	vb.Velocity = geometry.Vector2{X: 0, Y: 20}
	vb.LastThrowerID = &thrower.ID
	s.SetPossession(entities.TeamA)

	g := New()
	g.Step(s, config.DT, NewInput())

	assert.InDelta(t, 30, vb.Position.X, 1e-6)
	assert.InDelta(t, config.PitchWidth, vb.Position.Y, 1e-6)
	assert.Equal(t, geometry.Zero, vb.Velocity)
	assert.Equal(t, entities.TeamB, s.Inbound.Team)
	assert.Equal(t, state.Inbounding, s.Inbound.Phase)
	assert.InDelta(t, config.InboundingFreeForAllAfter-config.DT, s.Inbound.GraceRemaining, 1e-6)
}
