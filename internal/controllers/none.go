package controllers

import "github.com/san-kum/galaxy/internal/engine"

// None never moves the reticle or spawns.
type None struct{}

func NewNone() *None {
	return &None{}
}

func (n *None) Compute(v engine.View, refresh uint64) engine.Input {
	return engine.Input{}
}
