package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/0x7o/game-of-life/model"
	"github.com/0x7o/game-of-life/utils"
)

type commandKind int

const (
	cmdTogglePause commandKind = iota
	cmdEraseAll
	cmdStep
	cmdPaint
	cmdQuit
)

// command is one parsed line of user input
type command struct {
	kind  commandKind
	x, y  int
	alive bool
}

const commandHelp = "Commands: p toggle pause | n step | c erase all | a X Y paint | d X Y kill | q quit"

// parseCommand turns an input line into a command
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, errors.New("[parseCommand] empty command")
	}

	switch fields[0] {
	case "p", "space":
		return command{kind: cmdTogglePause}, nil
	case "c":
		return command{kind: cmdEraseAll}, nil
	case "n":
		return command{kind: cmdStep}, nil
	case "q":
		return command{kind: cmdQuit}, nil
	case "a", "d":
		if len(fields) != 3 {
			return command{}, errors.Errorf("[parseCommand] %q expects two coordinates", fields[0])
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return command{}, errors.Wrapf(err, "[parseCommand] bad x coordinate: %+v", fields[1])
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return command{}, errors.Wrapf(err, "[parseCommand] bad y coordinate: %+v", fields[2])
		}
		return command{kind: cmdPaint, x: x, y: y, alive: fields[0] == "a"}, nil
	}

	return command{}, errors.Errorf("[parseCommand] unknown command %q", fields[0])
}

// readCommands forwards parsed input lines until r is exhausted, then closes out
func readCommands(r io.Reader, out chan<- command) {
	defer close(out)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			// a bare Enter acts like the space bar
			out <- command{kind: cmdTogglePause}
			continue
		}
		cmd, err := parseCommand(scanner.Text())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			fmt.Fprintln(os.Stderr, commandHelp)
			continue
		}
		out <- cmd
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading input:", err)
	}
}

// applyCommand runs cmd against the simulation. It reports whether the program should
// quit and whether the board needs to be redrawn.
func applyCommand(sim *model.Controller, cmd command) (quit, redraw bool) {
	switch cmd.kind {
	case cmdQuit:
		return true, false
	case cmdTogglePause:
		sim.TogglePause()
	case cmdEraseAll:
		sim.EraseAll()
	case cmdStep:
		sim.Step()
	case cmdPaint:
		sim.Paint(cmd.x, cmd.y, cmd.alive)
	}
	return false, true
}

// seedGame fills the fresh board according to the configuration
func seedGame(sim *model.Controller, config utils.Config) {
	if config.SeedPatterns {
		model.SeedPatterns(sim)
	}
	sim.Randomize(config.RandomDensity, config.Seed)
	if config.StartRunning {
		sim.TogglePause()
	}
}

// displayGameInfo shows the initial game information
func displayGameInfo(w io.Writer, config utils.Config, sim *model.Controller) {
	columns, rows := sim.Grid().Dimensions()
	fmt.Fprintf(w, "Features: Memory Pool: %v, Workers: %d, Step: %v\n",
		config.UseMemoryPool, config.Workers, config.StepInterval)
	fmt.Fprintf(w, "Grid: %dx%d | Initial living cells: %d\n",
		columns, rows, sim.Grid().CountLivingCells())
	fmt.Fprintln(w, commandHelp)
	fmt.Fprintln(w, "Press Ctrl+C to exit gracefully")
	fmt.Fprintln(w)
}

// displayGameStatus shows the current game status
func displayGameStatus(w io.Writer, sim *model.Controller) {
	var (
		columns, rows = sim.Grid().Dimensions()
		livingCells   = sim.Grid().CountLivingCells()
		density       = float64(livingCells) / float64(columns*rows) * 100
		stats         = sim.Stats()
	)

	status := "Running"
	if sim.Paused() {
		status = "Paused"
	}
	if sim.Stagnant() {
		status += ", stagnant"
	}
	if livingCells == 0 {
		status += ", extinct"
	}

	fmt.Fprintf(w, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		sim.Generation(), livingCells, density, status)
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, stats.Runtime().Seconds())
	fmt.Fprintln(w)
}

// displayFinalStats prints the summary on shutdown
func displayFinalStats(w io.Writer, sim *model.Controller) {
	stats := sim.Stats()
	fmt.Fprintf(w, "Final stats: %d generations in %.1f seconds\n",
		sim.Generation(), stats.Runtime().Round(100*time.Millisecond).Seconds())
	fmt.Fprintf(w, "Average: %.1f gen/sec, %.1f avg population\n",
		stats.GenerationsPerSecond, stats.AveragePopulation)
}
