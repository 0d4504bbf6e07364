package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"chess-kernel/board"
	"chess-kernel/engine"
	"chess-kernel/game"
	"chess-kernel/movegen"
)

func main() {
	depth := flag.Int("depth", 4, "search depth in plies for both sides")
	plies := flag.Int("plies", 200, "stop after this many moves")
	fen := flag.String("fen", "", "start position (empty = standard start)")
	orderName := flag.String("ordering", movegen.MostValuableVictim.String(), "move ordering: scan, captured or mvv-lva")
	cacheMB := flag.Int("cache", 0, "position cache size in MB (0 disables)")
	check := flag.Bool("check", false, "search every position with and without the cache and stop on disagreement")
	seed := flag.Int64("seed", board.DefaultSeed, "hash key seed")
	pgnPath := flag.String("pgn", "", "write the game as PGN to this file")
	quiet := flag.Bool("quiet", false, "do not print the board after each move")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	order, err := movegen.ParseOrdering(*orderName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	start := board.NewStart()
	if *fen != "" {
		if start, err = board.ParseFEN(*fen); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	rec, err := game.NewRecorder(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	rec.SetTag("Event", "selfplay")
	rec.SetTag("White", fmt.Sprintf("kernel depth %d", *depth))
	rec.SetTag("Black", fmt.Sprintf("kernel depth %d", *depth))

	out, err := game.SelfPlay(start,
		game.WithDepth(*depth),
		game.WithMaxPlies(*plies),
		game.WithOrdering(order),
		game.WithCache(*cacheMB),
		game.WithAgreementCheck(*check),
		game.WithZobrist(board.NewZobrist(*seed)),
		game.WithRecorder(rec),
		game.WithObserver(func(ply int, m board.Move, res engine.Result, b *board.Board) {
			fmt.Printf("%d. %s score %d nodes %d\n", ply, m, res.Score, res.Stats.Nodes)
			if !*quiet {
				fmt.Println(b)
			}
		}),
	)
	if *pgnPath != "" {
		if werr := os.WriteFile(*pgnPath, []byte(rec.PGN()+"\n"), 0o644); werr != nil {
			fmt.Fprintln(os.Stderr, werr)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("result: %s after %d plies", out.Status, out.Plies)
	if out.Status == game.KingCaptured {
		fmt.Printf(", %s wins", out.Winner)
	}
	fmt.Println()
	if rec.Truncated() {
		fmt.Printf("pgn stops after %d plies (pseudo-legal move)\n", rec.Plies())
	}
}
