package model

import (
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/0x7o/game-of-life/utils"
)

const testInterval = 50 * time.Millisecond

func newTestController(t *testing.T, columns, rows, workers int) *Controller {
	t.Helper()
	config := utils.DefaultConfig()
	config.StepInterval = testInterval
	config.Workers = workers
	return NewController(newTestGrid(t, columns, rows), config)
}

func paintAll(c *Controller, cells ...[2]int) {
	for _, cell := range cells {
		c.Paint(cell[0], cell[1], true)
	}
}

// expectLive fails unless exactly the given cells are alive
func expectLive(t *testing.T, c *Controller, label string, cells ...[2]int) {
	t.Helper()
	expects := map[[2]int]bool{}
	for _, cell := range cells {
		expects[cell] = true
	}

	columns, rows := c.Grid().Dimensions()
	for x := range columns {
		for y := range rows {
			alive := c.Grid().Get(x, y)
			if alive != expects[[2]int{x, y}] {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", label, x, y, alive, expects[[2]int{x, y}])
			}
		}
	}
}

func TestControllerStartsPaused(t *testing.T) {
	c := newTestController(t, 5, 5, 1)
	if !c.Paused() {
		t.Fatalf("controller should start paused")
	}
	c.TogglePause()
	if c.Paused() {
		t.Fatalf("toggle should resume")
	}
	c.TogglePause()
	if !c.Paused() {
		t.Fatalf("second toggle should pause again")
	}
}

func TestNewSimulation(t *testing.T) {
	c, err := NewSimulation(utils.DefaultConfig())
	if err != nil {
		t.Fatalf("NewSimulation: %v", err)
	}
	if columns, rows := c.Grid().Dimensions(); columns != 50 || rows != 40 {
		t.Fatalf("dimensions = %dx%d, expected 50x40", columns, rows)
	}

	config := utils.DefaultConfig()
	config.CellSize = 7
	if _, err = NewSimulation(config); !IsConfigurationError(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}

	config = utils.DefaultConfig()
	config.StepInterval = 0
	if _, err = NewSimulation(config); !errors.Is(err, utils.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestBirthRule(t *testing.T) {
	c := newTestController(t, 10, 10, 1)
	paintAll(c, [2]int{4, 4}, [2]int{5, 4}, [2]int{4, 5})
	c.Paint(8, 1, true) // isolated

	c.Step()

	if !c.Grid().Get(5, 5) {
		t.Fatalf("dead cell with three live neighbors was not born")
	}
	if c.Grid().Get(8, 1) {
		t.Fatalf("isolated cell survived")
	}
	expectLive(t, c, "triomino", [2]int{4, 4}, [2]int{5, 4}, [2]int{4, 5}, [2]int{5, 5})
}

func TestSurvivalRule(t *testing.T) {
	offsets := [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

	for neighbors := 0; neighbors <= 8; neighbors++ {
		c := newTestController(t, 10, 10, 1)
		c.Paint(5, 5, true)
		for _, off := range offsets[:neighbors] {
			c.Paint(5+off[0], 5+off[1], true)
		}

		c.Step()

		survived := c.Grid().Get(5, 5)
		if want := neighbors == 2 || neighbors == 3; survived != want {
			t.Fatalf("cell with %d neighbors: alive=%v, expected %v", neighbors, survived, want)
		}
	}
}

func TestBlockStillLife(t *testing.T) {
	c := newTestController(t, 8, 8, 1)
	c.Stamp(Block, 3, 3)

	for gen := range 10 {
		c.Step()
		expectLive(t, c, "block", [2]int{3, 3}, [2]int{4, 3}, [2]int{3, 4}, [2]int{4, 4})
		if gen > 0 && !c.Stagnant() {
			t.Fatalf("still life not reported stagnant at generation %d", c.Generation())
		}
	}
}

func TestBlinkerOscillates(t *testing.T) {
	c := newTestController(t, 5, 5, 1)
	c.Stamp(Blinker, 1, 2)

	c.Step()
	expectLive(t, c, "first step", [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})

	c.Step()
	expectLive(t, c, "second step", [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	if c.Generation() != 2 {
		t.Fatalf("generation = %d, expected 2", c.Generation())
	}
	if !c.Stagnant() {
		t.Fatalf("period-2 oscillator not reported stagnant")
	}
}

func TestGliderWrapsAroundTorus(t *testing.T) {
	c := newTestController(t, 8, 8, 1)
	c.Stamp(Glider, 6, 6) // straddles the corner
	start := c.Grid().Snapshot()

	// one cell per four generations: 32 generations cross the whole board
	for range 32 {
		c.Step()
	}

	end := c.Grid().Snapshot()
	for x := range start {
		for y := range start[x] {
			if start[x][y] != end[x][y] {
				t.Fatalf("glider did not return to its start: cell (%d,%d)", x, y)
			}
		}
	}
	if n := c.Grid().CountLivingCells(); n != 5 {
		t.Fatalf("glider has %d cells, expected 5", n)
	}
}

func TestPauseGating(t *testing.T) {
	c := newTestController(t, 5, 5, 1)
	c.Stamp(Blinker, 1, 2)

	for range 10 {
		if c.Advance(time.Second) {
			t.Fatalf("paused controller advanced")
		}
	}
	expectLive(t, c, "paused", [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	c.TogglePause()
	if !c.Advance(testInterval) {
		t.Fatalf("running controller did not advance after a full interval")
	}
	expectLive(t, c, "resumed", [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3})
	if c.Generation() != 1 {
		t.Fatalf("generation = %d, expected 1", c.Generation())
	}

	if c.Advance(testInterval - time.Millisecond) {
		t.Fatalf("accumulator was not reset after a tick")
	}
}

func TestAdvanceBuffersShortDeltas(t *testing.T) {
	c := newTestController(t, 5, 5, 1)
	c.TogglePause()

	if c.Advance(20 * time.Millisecond) {
		t.Fatalf("advanced after 20ms")
	}
	if c.Advance(20 * time.Millisecond) {
		t.Fatalf("advanced after 40ms")
	}
	if !c.Advance(20 * time.Millisecond) {
		t.Fatalf("did not advance after 60ms")
	}
}

func TestAdvanceDiscardsSurplus(t *testing.T) {
	c := newTestController(t, 5, 5, 1)
	c.TogglePause()

	if !c.Advance(10 * testInterval) {
		t.Fatalf("did not advance")
	}
	if c.Generation() != 1 {
		t.Fatalf("long delta produced %d generations, expected 1", c.Generation())
	}
	if c.Advance(time.Millisecond) {
		t.Fatalf("surplus time carried into the next tick")
	}
}

func TestAccumulatorSurvivesPause(t *testing.T) {
	c := newTestController(t, 5, 5, 1)
	c.TogglePause()
	c.Advance(30 * time.Millisecond)

	c.TogglePause()
	c.Advance(time.Hour)
	c.TogglePause()

	if !c.Advance(20 * time.Millisecond) {
		t.Fatalf("time buffered before the pause was lost")
	}
}

func TestEraseAllIdempotent(t *testing.T) {
	c := newTestController(t, 6, 6, 1)
	c.Stamp(Glider, 1, 1)
	c.TogglePause()

	c.EraseAll()
	once := c.Grid().Snapshot()
	c.EraseAll()
	twice := c.Grid().Snapshot()

	for x := range once {
		for y := range once[x] {
			if once[x][y] || twice[x][y] {
				t.Fatalf("cell (%d,%d) alive after erase", x, y)
			}
		}
	}
	if c.Paused() {
		t.Fatalf("erase changed the run state")
	}
}

func TestPaintOutOfBoundsIgnored(t *testing.T) {
	c := newTestController(t, 4, 3, 1)
	c.Paint(1, 1, true)
	before := c.Grid().Snapshot()

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}, {-5, 2}} {
		c.Paint(p[0], p[1], true)
		c.Paint(p[0], p[1], false)
	}

	after := c.Grid().Snapshot()
	for x := range before {
		for y := range before[x] {
			if before[x][y] != after[x][y] {
				t.Fatalf("out-of-range paint changed cell (%d,%d)", x, y)
			}
		}
	}
}

func TestPaintWhileRunning(t *testing.T) {
	c := newTestController(t, 4, 4, 1)
	c.TogglePause()
	c.Paint(2, 3, true)
	if !c.Grid().Get(2, 3) {
		t.Fatalf("paint ignored while running")
	}
	c.Paint(2, 3, false)
	if c.Grid().Get(2, 3) {
		t.Fatalf("paint dead ignored while running")
	}
}

func TestStampWraps(t *testing.T) {
	c := newTestController(t, 6, 4, 1)
	c.Stamp(Blinker, 5, 3)
	expectLive(t, c, "wrapped blinker", [2]int{5, 3}, [2]int{0, 3}, [2]int{1, 3})
}

func TestEditClearsStagnation(t *testing.T) {
	c := newTestController(t, 8, 8, 1)
	c.Stamp(Block, 2, 2)
	c.Step()
	c.Step()
	if !c.Stagnant() {
		t.Fatalf("block not stagnant")
	}

	c.Paint(6, 6, true)
	if c.Stagnant() {
		t.Fatalf("stagnation survived an edit")
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	for _, workers := range []int{2, 3, 8, 64} {
		reference := newTestController(t, 37, 23, 1)
		reference.Randomize(0.35, 42)
		if reference.Grid().CountLivingCells() == 0 {
			t.Fatalf("randomize produced an empty grid")
		}

		parallel := newTestController(t, 37, 23, workers)
		parallel.Randomize(0.35, 42)

		for gen := range 25 {
			reference.Step()
			parallel.Step()

			want, got := reference.Grid().Snapshot(), parallel.Grid().Snapshot()
			for x := range want {
				for y := range want[x] {
					if want[x][y] != got[x][y] {
						t.Fatalf("workers=%d generation %d: cell (%d,%d) differs", workers, gen+1, x, y)
					}
				}
			}
		}
	}
}

func TestWithoutMemoryPool(t *testing.T) {
	config := utils.DefaultConfig()
	config.UseMemoryPool = false
	config.Workers = 1
	c := NewController(newTestGrid(t, 5, 5), config)
	c.Stamp(Blinker, 1, 2)

	c.Step()
	c.Step()
	expectLive(t, c, "unpooled", [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})
}

func TestRandomizeIsReproducible(t *testing.T) {
	a := newTestController(t, 20, 20, 1)
	b := newTestController(t, 20, 20, 1)
	a.Randomize(0.5, 7)
	b.Randomize(0.5, 7)
	if a.Grid().(*Grid).Hash() != b.Grid().(*Grid).Hash() {
		t.Fatalf("same seed produced different grids")
	}
}

func TestSeedPatterns(t *testing.T) {
	c := newTestController(t, 50, 40, 1)
	SeedPatterns(c)
	if n := c.Grid().CountLivingCells(); n != 2*len(Glider)+2*len(Blinker)+len(Block) {
		t.Fatalf("seeded %d cells", n)
	}
}
