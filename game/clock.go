package game

import (
	"sync"
	"time"

	"chess-ai/board"
)

// Clock tracks the remaining time of both sides. Only the side to move runs; when its
// time reaches zero the flag callback fires once.
type Clock struct {
	mu        sync.Mutex
	initial   time.Duration
	increment time.Duration
	remaining [2]time.Duration
	running   board.Color
	active    bool
	since     time.Time
	timer     *time.Timer
	flagged   bool
	onFlag    func(board.Color)
	now       func() time.Time
}

// NewClock gives both sides initial time and adds increment after each of their moves.
func NewClock(initial, increment time.Duration) *Clock {
	return &Clock{
		initial:   initial,
		increment: increment,
		remaining: [2]time.Duration{initial, initial},
		now:       time.Now,
	}
}

// DefaultClock is ten minutes per side without increment.
func DefaultClock() *Clock { return NewClock(10*time.Minute, 0) }

func (c *Clock) Increment() time.Duration { return c.increment }

// Remaining returns c's time left, counting the running period.
func (c *Clock) Remaining(side board.Color) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked(side)
}

func (c *Clock) remainingLocked(side board.Color) time.Duration {
	r := c.remaining[side]
	if c.active && side == c.running {
		r -= c.now().Sub(c.since)
	}
	if r < 0 {
		return 0
	}
	return r
}

// Start runs side's clock.
func (c *Clock) Start(side board.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.startLocked(side)
}

func (c *Clock) startLocked(side board.Color) {
	c.running = side
	c.active = true
	c.since = c.now()
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.onFlag == nil {
		return
	}
	cb := c.onFlag
	c.timer = time.AfterFunc(c.remaining[side], func() {
		c.mu.Lock()
		if c.flagged || !c.active || c.running != side {
			c.mu.Unlock()
			return
		}
		c.flagged = true
		c.mu.Unlock()
		cb(side)
	})
}

// Switch charges the running side for its move, credits the increment and starts the
// other side.
func (c *Clock) Switch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	side := c.running
	c.remaining[side] = c.remainingLocked(side) + c.increment
	c.startLocked(side.Other())
}

// Stop freezes both clocks.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}
	c.remaining[c.running] = c.remainingLocked(c.running)
	c.active = false
	if c.timer != nil {
		c.timer.Stop()
	}
}

// Reset restores the initial time on both sides and stops the clock.
func (c *Clock) Reset() {
	c.Stop()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remaining = [2]time.Duration{c.initial, c.initial}
	c.flagged = false
}

// Expired reports which side, if any, is out of time.
func (c *Clock) Expired() (board.Color, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active && c.remainingLocked(c.running) == 0 {
		return c.running, true
	}
	return board.White, false
}

func (c *Clock) setFlagHandler(fn func(board.Color)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onFlag = fn
}
