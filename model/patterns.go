package model

// Glider travels one cell diagonally (down and right) every four generations
var Glider = []Cell{
	{X: 1, Y: 0, Alive: true},
	{X: 2, Y: 1, Alive: true},
	{X: 0, Y: 2, Alive: true},
	{X: 1, Y: 2, Alive: true},
	{X: 2, Y: 2, Alive: true},
}

// Blinker is a horizontal period-2 oscillator
var Blinker = []Cell{
	{X: 0, Y: 0, Alive: true},
	{X: 1, Y: 0, Alive: true},
	{X: 2, Y: 0, Alive: true},
}

// Block is a 2x2 still life
var Block = []Cell{
	{X: 0, Y: 0, Alive: true},
	{X: 1, Y: 0, Alive: true},
	{X: 0, Y: 1, Alive: true},
	{X: 1, Y: 1, Alive: true},
}

// SeedPatterns places a few gliders and oscillators spread over the board
func SeedPatterns(c *Controller) {
	columns, rows := c.Grid().Dimensions()
	if columns < 10 || rows < 10 {
		return
	}

	c.Stamp(Glider, 5, 5)
	if columns >= 20 && rows >= 15 {
		c.Stamp(Glider, columns-8, 5)
	}

	c.Stamp(Blinker, columns/4, rows/4)
	if columns >= 30 {
		c.Stamp(Blinker, 3*columns/4, 3*rows/4)
	}
	c.Stamp(Block, 1, rows-3)
}
