package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/0x7o/game-of-life/model"
	"github.com/0x7o/game-of-life/utils"
)

const configFile = "config.json"

func main() {
	// Load configuration - fallback to defaults if file doesn't exist
	config, err := utils.LoadConfig(configFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Fatalf("Cannot load %s: %v", configFile, err)
		}
		fmt.Println("Using default configuration (config.json not found)")
		config = utils.DefaultConfig()
	}

	sim, err := model.NewSimulation(config)
	if err != nil {
		log.Fatalf("Cannot start simulation: %v", err)
	}
	seedGame(sim, config)

	renderer := model.NewTerminalRenderer()
	displayGameInfo(os.Stdout, config, sim)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	commands := make(chan command)
	go readCommands(os.Stdin, commands)

	ticker := time.NewTicker(config.FrameRate)
	defer ticker.Stop()

	// Every core call happens on this goroutine
	var (
		lastFrame = time.Now()
		redraw    = true
	)
	for {
		if redraw {
			renderer.Clear()
			displayGameStatus(os.Stdout, sim)
			renderer.Display(sim.Grid())
		}

		select {
		case <-sigChan:
			fmt.Println("\n🛑 Shutting down gracefully...")
			displayFinalStats(os.Stdout, sim)
			return
		case now := <-ticker.C:
			delta := now.Sub(lastFrame)
			lastFrame = now
			redraw = sim.Advance(delta)
		case cmd, ok := <-commands:
			if !ok {
				// stdin closed, keep simulating until a signal arrives
				commands = nil
				redraw = false
				continue
			}
			var quit bool
			if quit, redraw = applyCommand(sim, cmd); quit {
				displayFinalStats(os.Stdout, sim)
				return
			}
		}
	}
}
