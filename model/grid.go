package model

import (
	"crypto/md5"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/pkg/errors"

	"github.com/0x7o/game-of-life/rules"
)

// MinCellSize is the exclusive lower bound on the cell size in pixels
const MinCellSize = 1

// Cell is a single grid position and its state
type Cell struct {
	X, Y  int
	Alive bool
}

// GridView is the read-only side of a Grid handed to presentation code
type GridView interface {
	Get(x, y int) bool
	Dimensions() (columns, rows int)
	CountLivingCells() int
	Snapshot() [][]bool
}

// Grid is the authoritative cell matrix of a toroidal board. Cells are indexed [x][y].
type Grid struct {
	columns  int
	rows     int
	cellSize int
	cells    [][]bool
}

// NewGrid creates an all-dead grid covering pixelWidth x pixelHeight with square cells of
// cellSize pixels. Both dimensions must be exact multiples of the cell size.
func NewGrid(pixelWidth, pixelHeight, cellSize int) (*Grid, error) {
	switch {
	case cellSize <= MinCellSize:
		return nil, errors.Wrapf(ErrConfiguration,
			"[NewGrid] cell size must be greater than %d, got %d", MinCellSize, cellSize)
	case pixelWidth <= 0 || pixelHeight <= 0:
		return nil, errors.Wrapf(ErrConfiguration,
			"[NewGrid] screen must have positive dimensions, got %dx%d", pixelWidth, pixelHeight)
	case pixelWidth%cellSize != 0:
		return nil, errors.Wrapf(ErrConfiguration,
			"[NewGrid] screen width %d must be evenly divided by the cell size %d", pixelWidth, cellSize)
	case pixelHeight%cellSize != 0:
		return nil, errors.Wrapf(ErrConfiguration,
			"[NewGrid] screen height %d must be evenly divided by the cell size %d", pixelHeight, cellSize)
	}

	columns, rows := pixelWidth/cellSize, pixelHeight/cellSize
	return &Grid{
		columns:  columns,
		rows:     rows,
		cellSize: cellSize,
		cells:    newCells(columns, rows),
	}, nil
}

func newCells(columns, rows int) [][]bool {
	cells := make([][]bool, columns)
	for x := range cells {
		cells[x] = make([]bool, rows)
	}
	return cells
}

// Dimensions returns the number of columns and rows
func (g *Grid) Dimensions() (columns, rows int) {
	return g.columns, g.rows
}

// CellSize returns the side of a cell in pixels
func (g *Grid) CellSize() int {
	return g.cellSize
}

// InBounds reports whether (x, y) addresses a cell of the grid
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.columns && y >= 0 && y < g.rows
}

// Get returns the state of a cell. The coordinate must be in bounds.
func (g *Grid) Get(x, y int) bool {
	return g.cells[x][y]
}

// Set sets a cell to alive (true) or dead (false). The coordinate must be in bounds.
func (g *Grid) Set(x, y int, alive bool) {
	g.cells[x][y] = alive
}

// wrap maps any coordinate onto the torus
func (g *Grid) wrap(x, y int) (int, int) {
	return (x%g.columns + g.columns) % g.columns, (y%g.rows + g.rows) % g.rows
}

// CountLiveNeighbors counts the live cells among the eight neighbors of (x, y), wrapping
// around the edges.
func (g *Grid) CountLiveNeighbors(x, y int) int {
	count := 0
	for dx := -1; dx <= 1; dx++ {
		nx := (x + dx + g.columns) % g.columns
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny := (y + dy + g.rows) % g.rows
			if g.cells[nx][ny] {
				count++
			}
		}
	}
	return count
}

// EraseAll kills every cell
func (g *Grid) EraseAll() {
	for x := range g.cells {
		clear(g.cells[x])
	}
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for x := range g.columns {
		for y := range g.rows {
			if g.cells[x][y] {
				count++
			}
		}
	}
	return
}

// LiveCells lists the living cells in column-major order
func (g *Grid) LiveCells() []Cell {
	var live []Cell
	for x := range g.columns {
		for y := range g.rows {
			if g.cells[x][y] {
				live = append(live, Cell{X: x, Y: y, Alive: true})
			}
		}
	}
	return live
}

// Snapshot returns a copy of the cells, indexed [x][y]
func (g *Grid) Snapshot() [][]bool {
	snapshot := newCells(g.columns, g.rows)
	for x := range g.cells {
		copy(snapshot[x], g.cells[x])
	}
	return snapshot
}

// Hash returns an MD5 hash of the current grid state
func (g *Grid) Hash() string {
	h := md5.New()
	for x := range g.columns {
		for y := range g.rows {
			if g.cells[x][y] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NextGeneration writes the generation following the current one into scratch, which must
// have the grid's dimensions. Only scratch is written; the live cells are read-only here.
// With more than one worker the columns are split into stripes evaluated concurrently.
func (g *Grid) NextGeneration(scratch [][]bool, workers int) {
	if workers <= 1 || g.columns < 2 {
		g.evaluate(scratch, 0, g.columns)
		return
	}

	var (
		eg               errgroup.Group
		columnsPerWorker = (g.columns + workers - 1) / workers // Ceiling division
	)

	for i := range workers {
		var (
			startCol = i * columnsPerWorker
			endCol   = min(startCol+columnsPerWorker, g.columns)
		)
		if startCol >= g.columns {
			break
		}

		eg.Go(func() error {
			g.evaluate(scratch, startCol, endCol)
			return nil
		})
	}

	// evaluate cannot fail
	_ = eg.Wait()
}

// evaluate applies the rules to the columns [startCol, endCol)
func (g *Grid) evaluate(scratch [][]bool, startCol, endCol int) {
	for x := startCol; x < endCol; x++ {
		for y := range g.rows {
			scratch[x][y] = rules.ApplyConwayRules(g.CountLiveNeighbors(x, y), g.cells[x][y])
		}
	}
}

// swap installs next as the live cells and hands back the previous buffer
func (g *Grid) swap(next [][]bool) [][]bool {
	prev := g.cells
	g.cells = next
	return prev
}
