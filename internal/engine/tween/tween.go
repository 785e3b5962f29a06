// Package tween schedules fire-and-forget property animations on top of
// gween. Callers submit a Request and never wait on completion; the
// scheduler steps all live tweens once per frame from the main loop.
package tween

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Request describes one property animation: interpolate From to To over
// Duration seconds, starting after Delay seconds, shaped by Ease, writing
// each interpolated value through Apply.
type Request struct {
	From     float32
	To       float32
	Duration float32
	Delay    float32
	Ease     ease.TweenFunc
	Apply    func(float32)
}

// Animator accepts animation requests. The production implementation is
// Scheduler; tests substitute a recorder.
type Animator interface {
	Animate(req Request)
}

type entry struct {
	delay float32
	tw    *gween.Tween
	apply func(float32)
}

// Scheduler steps submitted animations. Not safe for concurrent use; it is
// driven from the single-threaded frame loop.
type Scheduler struct {
	entries []*entry
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Animate submits a request. The From value is applied immediately so the
// target holds its starting state through the delay.
func (s *Scheduler) Animate(req Request) {
	if req.Apply == nil {
		return
	}
	req.Apply(req.From)

	if req.Duration <= 0 {
		req.Apply(req.To)
		return
	}

	easing := req.Ease
	if easing == nil {
		easing = ease.Linear
	}
	s.entries = append(s.entries, &entry{
		delay: req.Delay,
		tw:    gween.New(req.From, req.To, req.Duration, easing),
		apply: req.Apply,
	})
}

// Update advances all animations by dt seconds, dropping finished ones.
func (s *Scheduler) Update(dt float32) {
	live := s.entries[:0]
	for _, e := range s.entries {
		step := dt
		if e.delay > 0 {
			e.delay -= dt
			if e.delay > 0 {
				live = append(live, e)
				continue
			}
			step = -e.delay
			e.delay = 0
		}

		value, finished := e.tw.Update(step)
		e.apply(value)
		if !finished {
			live = append(live, e)
		}
	}
	s.entries = live
}

// Active returns the number of animations still running or delayed.
func (s *Scheduler) Active() int {
	return len(s.entries)
}
