package controllers

import (
	"sort"

	"github.com/san-kum/galaxy/internal/engine"
)

// Step is one scripted input applied on a given refresh.
type Step struct {
	At    uint64
	Input engine.Input
}

// Script replays fixed inputs; refreshes without a step get no input.
type Script struct {
	steps []Step
}

func NewScript(steps []Step) *Script {
	s := &Script{steps: append([]Step(nil), steps...)}
	sort.SliceStable(s.steps, func(i, j int) bool { return s.steps[i].At < s.steps[j].At })
	return s
}

func (s *Script) Compute(v engine.View, refresh uint64) engine.Input {
	k := sort.Search(len(s.steps), func(i int) bool { return s.steps[i].At >= refresh })
	if k < len(s.steps) && s.steps[k].At == refresh {
		return s.steps[k].Input
	}
	return engine.Input{}
}

// Len returns the number of scripted steps.
func (s *Script) Len() int { return len(s.steps) }
