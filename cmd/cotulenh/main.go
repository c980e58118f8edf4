// Package main is a thin command-line harness around the engine: load
// a position, list legal moves, apply one, print the resulting FEN.
// It is a smoke-test entry point, not a game client.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mnoyd/cotulenh-engine/internal/engine"
	"github.com/mnoyd/cotulenh-engine/internal/engineconfig"
)

func main() {
	configPath := flag.String("config", "", "path to engine config TOML (defaults if absent)")
	fen := flag.String("fen", "", "load a starting FEN instead of the canonical opening position")
	flag.Parse()

	cfg := engineconfig.DefaultConfig()
	if *configPath != "" {
		cfg = engineconfig.LoadConfig(*configPath)
	}

	g := engine.NewGame(cfg)
	if *fen != "" {
		if err := g.Load(*fen); err != nil {
			fmt.Fprintf(os.Stderr, "load: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println(g.FEN())
	repl(g)
}

// repl reads one command per line: "moves" lists legal moves, "move
// <san>" applies one, "undo" reverts the last, "fen" prints the
// position, "quit" exits.
func repl(g *engine.Game) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "quit", "exit":
			return
		case "fen":
			fmt.Println(g.FEN())
		case "moves":
			for _, mv := range g.Moves(engine.MoveFilter{LegalOnly: true}) {
				fmt.Println(g.SAN(mv))
			}
		case "move":
			if len(fields) < 2 {
				fmt.Fprintln(os.Stderr, "usage: move <san>")
				continue
			}
			if _, err := g.Move(fields[1]); err != nil {
				fmt.Fprintf(os.Stderr, "move: %v\n", err)
				continue
			}
			fmt.Println(g.FEN())
		case "undo":
			if _, ok := g.Undo(); !ok {
				fmt.Fprintln(os.Stderr, "undo: no moves to undo")
			} else {
				fmt.Println(g.FEN())
			}
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n", fields[0])
		}
	}
}
