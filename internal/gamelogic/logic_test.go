package gamelogic

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/fenixdev/quadball-server/config"
	"github.com/fenixdev/quadball-server/internal/entities"
	"github.com/fenixdev/quadball-server/internal/geometry"
)

func TestApplyInputsNormalizesDirection(t *testing.T) {
	s := newTestState()
	p := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 10, Y: 10})

	in := NewInput()
	in.Move[p.ID] = geometry.Vector2{X: 3, Y: 4}
	applyInputs(s, in)

	assert.InDelta(t, 0.6, p.DesiredDirection.X, 1e-9)
	assert.InDelta(t, 0.8, p.DesiredDirection.Y, 1e-9)
}

func TestStepPlayerKinematicsClampsAtPitchEdge(t *testing.T) {
	s := newTestState()
	p := addPlayer(s, entities.TeamA, entities.RoleBeater, geometry.Vector2{X: 0.1, Y: 5})
	p.DesiredDirection = geometry.Vector2{X: -1, Y: 0}
	p.Velocity = geometry.Vector2{X: -10, Y: 0}

	stepPlayerKinematics(s, config.DT)

	assert.Equal(t, 0.0, p.Position.X)
	assert.Equal(t, 0.0, p.Velocity.X)
}

func TestStepPlayerKinematicsTicksDownKnockout(t *testing.T) {
	s := newTestState()
	p := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 10, Y: 10})
	p.KnockOut(0.08)

	stepPlayerKinematics(s, config.DT)
	assert.True(t, p.IsKnockedOut)

	stepPlayerKinematics(s, config.DT)
	assert.False(t, p.IsKnockedOut)
	assert.Equal(t, 0.0, p.KnockoutTimer)
}

func TestApplyThrowsReleasesHeldBallAlongFacing(t *testing.T) {
	s := newTestState()
	p := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 20, Y: 20})
	p.DesiredDirection = geometry.Vector2{X: 0, Y: 1}

	vb := s.Volleyball()
	vb.SetHolder(p.ID)

	in := NewInput()
	in.Throws = []uuid.UUID{p.ID}
	applyThrows(s, in)

	assert.Nil(t, vb.HolderID)
	assert.InDelta(t, config.ThrowSpeedVolleyball, vb.Velocity.Y, 1e-9)
	assert.Equal(t, 1, s.PossessionCode())
}

func TestApplyThrowsSecondIntentSameTickIsNoop(t *testing.T) {
	s := newTestState()
	p := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 20, Y: 20})
	p.DesiredDirection = geometry.Vector2{X: 1, Y: 0}
	vb := s.Volleyball()
	vb.SetHolder(p.ID)

	in := NewInput()
	in.Throws = []uuid.UUID{p.ID, p.ID}
	applyThrows(s, in)

	assert.Nil(t, vb.HolderID)
	assert.InDelta(t, config.ThrowSpeedVolleyball, vb.Velocity.X, 1e-9)
}

func TestFollowHoldersTracksHolderExactly(t *testing.T) {
	s := newTestState()
	p := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 12, Y: 7})
	p.Velocity = geometry.Vector2{X: 1, Y: 2}
	vb := s.Volleyball()
	vb.SetHolder(p.ID)

	followHolders(s)

	assert.Equal(t, p.Position, vb.Position)
	assert.Equal(t, p.Velocity, vb.Velocity)
}

func TestKickoffResetsScoreIndependentStateButNotScore(t *testing.T) {
	s := newTestState()
	p := addPlayer(s, entities.TeamA, entities.RoleKeeper, geometry.Vector2{X: 30, Y: 16.5})
	p.IsKnockedOut = true
	p.KnockoutTimer = 3
	s.DelayBin = 5
	s.SetPossession(entities.TeamB)
	s.Score = [2]int{2, 1}

	Kickoff(s)

	assert.Equal(t, [2]int{2, 1}, s.Score)
	assert.False(t, p.IsKnockedOut)
	assert.Equal(t, 0, s.DelayBin)
	assert.Nil(t, s.PossessionTeam)
	assert.Equal(t, config.HoopOffset, p.Position.X)
	assert.Equal(t, config.PitchWidth/2, p.Position.Y)
}

func TestResolvePlayerCollisionsSeparatesOverlappingPlayers(t *testing.T) {
	s := newTestState()
	a := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 10, Y: 10})
	b := addPlayer(s, entities.TeamB, entities.RoleChaser, geometry.Vector2{X: 10.2, Y: 10})

	resolvePlayerCollisions(s)

	assert.GreaterOrEqual(t, geometry.Distance(a.Position, b.Position), config.PlayerCollisionDiameter-1e-9)
}

func TestResolvePlayerCollisionsKnockedOutPlayerIsStatic(t *testing.T) {
	s := newTestState()
	a := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: 10, Y: 10})
	a.IsKnockedOut = true
	b := addPlayer(s, entities.TeamB, entities.RoleChaser, geometry.Vector2{X: 10.2, Y: 10})

	resolvePlayerCollisions(s)

	assert.Equal(t, geometry.Vector2{X: 10, Y: 10}, a.Position)
	assert.NotEqual(t, geometry.Vector2{X: 10.2, Y: 10}, b.Position)
}

func TestGoaltendingBlocksOwnChaserPickup(t *testing.T) {
	s := newTestState()
	chaser := addPlayer(s, entities.TeamA, entities.RoleChaser, geometry.Vector2{X: config.HoopOffset + 1, Y: config.PitchWidth / 2})
	vb := s.Volleyball()
	vb.Position = chaser.Position

	resolvePickups(s)

	assert.Nil(t, vb.HolderID, "a chaser guarding their own hoop must not be able to pick up the volleyball")
}
