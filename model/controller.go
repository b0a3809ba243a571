package model

import (
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/0x7o/game-of-life/utils"
)

// historySize is how many recent generation hashes are kept for cycle detection
const historySize = 3

// Controller owns the run state, the step timer and every write to its grid.
// It is not safe for concurrent use; drive it from a single goroutine.
type Controller struct {
	grid    *Grid
	pool    *BufferPool
	workers int

	frozen       bool
	stepInterval time.Duration
	accumulated  time.Duration

	generation int
	history    []string
	stagnant   bool
	stats      *utils.Stats
}

// NewSimulation validates the configuration and builds a paused controller over a fresh grid
func NewSimulation(config utils.Config) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	grid, err := NewGrid(config.PixelWidth, config.PixelHeight, config.CellSize)
	if err != nil {
		return nil, err
	}

	return NewController(grid, config), nil
}

// NewController wraps grid. The controller starts paused.
func NewController(grid *Grid, config utils.Config) *Controller {
	var pool *BufferPool
	if config.UseMemoryPool {
		pool = NewBufferPool()
	}

	workers := config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}

	return &Controller{
		grid:         grid,
		pool:         pool,
		workers:      workers,
		frozen:       true,
		stepInterval: config.StepInterval,
		stats:        utils.NewStats(),
	}
}

// Grid returns the read-only view of the board for presentation
func (c *Controller) Grid() GridView {
	return c.grid
}

// Paused reports whether the simulation is frozen
func (c *Controller) Paused() bool {
	return c.frozen
}

// TogglePause flips between paused and running
func (c *Controller) TogglePause() {
	c.frozen = !c.frozen
}

// Generation returns the number of generations committed so far
func (c *Controller) Generation() int {
	return c.generation
}

// Stagnant reports whether the last committed generation repeats one of the few before it
func (c *Controller) Stagnant() bool {
	return c.stagnant
}

// Stats returns a copy of the runtime statistics
func (c *Controller) Stats() utils.Stats {
	return *c.stats
}

// Advance feeds elapsed wall-clock time to the step timer. While running, once the
// accumulated time reaches the step interval one generation is committed and the
// accumulator restarts from zero; surplus time is dropped. Returns whether a
// generation was committed.
func (c *Controller) Advance(delta time.Duration) bool {
	if c.frozen {
		return false
	}

	c.accumulated += delta
	if c.accumulated < c.stepInterval {
		return false
	}

	elapsed := c.accumulated
	c.step(elapsed)
	c.accumulated = 0
	return true
}

// Step commits exactly one generation regardless of the run state and the timer
func (c *Controller) Step() {
	c.step(0)
}

func (c *Controller) step(elapsed time.Duration) {
	if len(c.history) == 0 {
		c.history = append(c.history, c.grid.Hash())
	}

	columns, rows := c.grid.Dimensions()
	scratch := bufferFromPool(c.pool, columns, rows)

	c.grid.NextGeneration(scratch, c.workers)
	bufferToPool(c.grid.swap(scratch), c.pool)

	c.generation++
	c.updateHistory()
	c.stats.Update(c.generation, c.grid.CountLivingCells(), elapsed)
}

// updateHistory records the new generation's hash and checks it against recent ones
func (c *Controller) updateHistory() {
	hash := c.grid.Hash()

	c.stagnant = false
	for _, previous := range c.history {
		if previous == hash {
			c.stagnant = true
			break
		}
	}

	c.history = append(c.history, hash)
	if len(c.history) > historySize {
		c.history = c.history[1:]
	}
}

// resetHistory forgets recent generations after an edit
func (c *Controller) resetHistory() {
	c.history = nil
	c.stagnant = false
}

// Paint sets a cell alive or dead. Coordinates outside the grid are ignored.
func (c *Controller) Paint(x, y int, alive bool) {
	if !c.grid.InBounds(x, y) {
		return
	}
	if c.grid.Get(x, y) == alive {
		return
	}

	c.grid.Set(x, y, alive)
	c.resetHistory()
}

// EraseAll kills every cell. The run state is left as it is.
func (c *Controller) EraseAll() {
	c.grid.EraseAll()
	c.resetHistory()
}

// Stamp paints the live cells of pattern offset by (x, y), wrapping around the edges
func (c *Controller) Stamp(pattern []Cell, x, y int) {
	for _, cell := range pattern {
		px, py := c.grid.wrap(x+cell.X, y+cell.Y)
		c.Paint(px, py, cell.Alive)
	}
}

// Randomize brings cells to life with the given probability, reproducibly for a seed.
// Cells that lose the draw are left as they are.
func (c *Controller) Randomize(density float64, seed int64) {
	if density <= 0 {
		return
	}

	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	columns, rows := c.grid.Dimensions()
	for x := range columns {
		for y := range rows {
			if rng.Float64() < density {
				c.Paint(x, y, true)
			}
		}
	}
}
