package game

import (
	"context"
	"sync"
)

// Command is one unit of work a Controller runs against its game.
type Command func(ctx context.Context, g *Game) error

type request struct {
	ctx    context.Context
	cmd    Command
	result chan error
}

// Controller serializes commands for a single game on one goroutine, so an AI move
// and a user move submitted together run one after the other in arrival order.
type Controller struct {
	game  *Game
	queue chan request
	quit  chan struct{}
	done  chan struct{}
	once  sync.Once

	// mu orders enqueues before Close: once closed is set no request can enter
	// the queue, so the final drain sees every accepted request.
	mu     sync.RWMutex
	closed bool
}

func NewController(g *Game) *Controller {
	c := &Controller{
		game:  g,
		queue: make(chan request, 16),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	go c.loop()
	return c
}

func (c *Controller) Game() *Game { return c.game }

func (c *Controller) loop() {
	defer close(c.done)
	for {
		select {
		case req := <-c.queue:
			c.run(req)
		case <-c.quit:
			// drain what was accepted before Close
			for {
				select {
				case req := <-c.queue:
					c.run(req)
				default:
					return
				}
			}
		}
	}
}

func (c *Controller) run(req request) {
	if err := req.ctx.Err(); err != nil {
		req.result <- err
		return
	}
	req.result <- req.cmd(req.ctx, c.game)
}

// Submit queues cmd and returns a channel that receives its error.
func (c *Controller) Submit(ctx context.Context, cmd Command) <-chan error {
	res := make(chan error, 1)
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		res <- ErrClosed
		return res
	}
	select {
	case c.queue <- request{ctx: ctx, cmd: cmd, result: res}:
	case <-ctx.Done():
		res <- ctx.Err()
	}
	return res
}

// Do queues cmd and waits for it.
func (c *Controller) Do(ctx context.Context, cmd Command) error {
	select {
	case err := <-c.Submit(ctx, cmd):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting commands, runs those already queued and waits for the loop.
func (c *Controller) Close() {
	c.once.Do(func() {
		c.mu.Lock()
		c.closed = true
		close(c.quit)
		c.mu.Unlock()
	})
	<-c.done
}

// Play is a Command that plays move text.
func Play(text string) Command {
	return func(_ context.Context, g *Game) error { return g.Play(text) }
}

// AIMove is a Command that lets the configured engine move.
func AIMove() Command {
	return func(ctx context.Context, g *Game) error {
		_, err := g.StartAI(ctx)
		return err
	}
}
