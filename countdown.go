package pokerdirector

import (
	"sync"
	"time"

	"github.com/coder/quartz"
)

/*
countdown 每秒觸發一次的計時器
  - 同一時間只會有一個計時來源
  - Stop 之後遲到的觸發會被忽略，onTick 收到 generation 以便再次確認
*/
type countdown struct {
	mu         sync.Mutex
	clock      quartz.Clock
	timer      *quartz.Timer
	generation int64
	isActive   bool
	onTick     func(generation int64)
}

func newCountdown(clock quartz.Clock, onTick func(generation int64)) *countdown {
	return &countdown{
		clock:  clock,
		onTick: onTick,
	}
}

func (c *countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isActive {
		return
	}

	c.isActive = true
	c.generation++
	c.schedule(c.generation)
}

func (c *countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isActive {
		return
	}

	c.isActive = false
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *countdown) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isActive
}

// IsCurrent reports whether a tick from generation still belongs to the running countdown.
func (c *countdown) IsCurrent(generation int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isActive && generation == c.generation
}

// schedule must be called with mu held.
func (c *countdown) schedule(generation int64) {
	c.timer = c.clock.AfterFunc(time.Second, func() {
		c.fire(generation)
	})
}

func (c *countdown) fire(generation int64) {
	c.mu.Lock()
	if !c.isActive || generation != c.generation {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	// onTick may call Stop, and must check IsCurrent under its own lock
	c.onTick(generation)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isActive && generation == c.generation {
		c.schedule(generation)
	}
}
