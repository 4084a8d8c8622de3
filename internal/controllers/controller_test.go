package controllers

import (
	"testing"

	"github.com/san-kum/galaxy/internal/actor"
	"github.com/san-kum/galaxy/internal/engine"
)

type testView struct {
	rx, ry   int16
	enemies  []actor.Actor
	cooldown int
}

func (v *testView) Size() (int, int)         { return 320, 180 }
func (v *testView) Reticle() (int16, int16)  { return v.rx, v.ry }
func (v *testView) Enemies() []actor.Actor   { return v.enemies }
func (v *testView) Workers() []actor.Actor   { return nil }
func (v *testView) Cooldown() int            { return v.cooldown }
func (v *testView) Lit() int                 { return 0 }
func (v *testView) InfectedRows() int        { return 0 }
func (v *testView) Rows() int                { return 100 }
func (v *testView) FieldFrames() uint64      { return 0 }

func enemyAt(x, y int16, infecting bool) actor.Actor {
	return actor.Actor{Active: true, Kind: actor.Enemy, X: x << 4, Y: y << 4, Infecting: infecting}
}

func TestNone(t *testing.T) {
	in := NewNone().Compute(&testView{}, 1)
	if in != (engine.Input{}) {
		t.Errorf("expected empty input, got %+v", in)
	}
}

func TestPursuitSteersTowardEnemy(t *testing.T) {
	ctrl := NewPursuit(128, 64, actor.Guardian)
	v := &testView{rx: 160, ry: 90, enemies: []actor.Actor{enemyAt(200, 60, true)}}

	in := ctrl.Compute(v, 1)
	if in.DX <= 0 || in.DY >= 0 {
		t.Errorf("expected to move right and up, got (%d,%d)", in.DX, in.DY)
	}
	if in.DX > ctrl.MaxStep || in.DY < -ctrl.MaxStep {
		t.Errorf("step (%d,%d) exceeds limit %d", in.DX, in.DY, ctrl.MaxStep)
	}
	if in.Spawn {
		t.Error("should not spawn while far away")
	}
}

func TestPursuitSpawnsInRange(t *testing.T) {
	ctrl := NewPursuit(128, 0, actor.Gardener)
	v := &testView{rx: 160, ry: 90, enemies: []actor.Actor{enemyAt(163, 88, true)}}

	in := ctrl.Compute(v, 1)
	if !in.Spawn || in.Kind != actor.Gardener {
		t.Errorf("expected gardener spawn, got %+v", in)
	}

	v.cooldown = 5
	if in := ctrl.Compute(v, 2); in.Spawn {
		t.Error("should wait for the cooldown")
	}
}

func TestPursuitIgnoresCuredEnemies(t *testing.T) {
	ctrl := NewPursuit(128, 64, actor.Guardian)
	v := &testView{rx: 160, ry: 90, enemies: []actor.Actor{
		enemyAt(10, 10, false),
		enemyAt(300, 170, true),
	}}

	in := ctrl.Compute(v, 1)
	if in.DX <= 0 || in.DY <= 0 {
		t.Errorf("expected to chase the infecting enemy, got (%d,%d)", in.DX, in.DY)
	}

	v.enemies[1].Infecting = false
	if in := ctrl.Compute(v, 2); in != (engine.Input{}) {
		t.Errorf("expected no input without targets, got %+v", in)
	}
}

func TestScript(t *testing.T) {
	ctrl := NewScript([]Step{
		{At: 5, Input: engine.Input{Spawn: true, Kind: actor.Guardian}},
		{At: 2, Input: engine.Input{DX: 2}},
	})
	if ctrl.Len() != 2 {
		t.Fatalf("expected 2 steps, got %d", ctrl.Len())
	}

	want := map[uint64]engine.Input{
		1: {},
		2: {DX: 2},
		3: {},
		5: {Spawn: true, Kind: actor.Guardian},
		6: {},
	}
	for refresh, w := range want {
		if got := ctrl.Compute(nil, refresh); got != w {
			t.Errorf("refresh %d: expected %+v, got %+v", refresh, w, got)
		}
	}
}
