package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"chess-kernel/board"
	"chess-kernel/engine"
	"chess-kernel/game"
	"chess-kernel/movegen"
)

func main() {
	depth := flag.Int("depth", 6, "engine search depth in plies")
	fen := flag.String("fen", "", "start position (empty = standard start)")
	seed := flag.Int64("seed", board.DefaultSeed, "hash key seed")
	cacheMB := flag.Int("cache", engine.DefaultCacheMB, "position cache size in MB (0 disables)")
	pgnPath := flag.String("pgn", "", "write the game as PGN to this file on exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	start := board.NewStart()
	if *fen != "" {
		b, err := board.ParseFEN(*fen)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		start = b
	}

	c, err := newConsole(start, *depth, *cacheMB, board.NewZobrist(*seed))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := c.run(os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *pgnPath != "" {
		if err := os.WriteFile(*pgnPath, []byte(c.rec.PGN()+"\n"), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// console plays a game on a text terminal. The human moves white by typing
// "from:to", the engine answers for black.
type console struct {
	pos    board.Board
	gen    *movegen.Generator
	search *engine.Search
	rec    *game.Recorder
}

func newConsole(start *board.Board, depth, cacheMB int, z *board.Zobrist) (*console, error) {
	c := &console{
		pos: *start,
		gen: movegen.NewGenerator(nil, movegen.ScanOrder),
	}
	opts := []engine.Option{engine.WithZobrist(z)}
	if cacheMB > 0 {
		opts = append(opts, engine.WithCache(cacheMB))
	}
	c.search = engine.NewSearch(&c.pos, depth, opts...)

	rec, err := game.NewRecorder(start)
	if err != nil {
		return nil, err
	}
	rec.SetTag("White", "human")
	rec.SetTag("Black", fmt.Sprintf("kernel depth %d", c.search.Depth()))
	c.rec = rec
	return c, nil
}

func (c *console) run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, c.pos.String())
	if !c.pos.WhiteToMove() {
		if done := c.reply(out); done {
			return nil
		}
	}
	fmt.Fprint(out, "your move: ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			fmt.Fprint(out, "your move: ")
			continue
		case "quit", "exit":
			return nil
		case "board":
			fmt.Fprintln(out, c.pos.String())
			fmt.Fprint(out, "your move: ")
			continue
		case "fen":
			fmt.Fprintln(out, c.pos.FEN())
			fmt.Fprint(out, "your move: ")
			continue
		case "moves":
			c.gen.Generate(&c.pos)
			texts := make([]string, 0, c.gen.Count())
			for _, m := range c.gen.Moves() {
				texts = append(texts, m.String())
			}
			fmt.Fprintln(out, strings.Join(texts, " "))
			fmt.Fprint(out, "your move: ")
			continue
		}

		m, err := game.ParseMove(&c.pos, c.gen, line)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrMalformedMove):
				fmt.Fprintln(out, "moves look like e2:e4")
			case errors.Is(err, game.ErrIllegalMove):
				fmt.Fprintf(out, "%s is not possible here\n", line)
			}
			fmt.Fprint(out, "your move: ")
			continue
		}
		c.play(m)
		fmt.Fprintln(out, c.pos.String())
		if c.over(out) {
			return nil
		}
		if done := c.reply(out); done {
			return nil
		}
		fmt.Fprint(out, "your move: ")
	}
	return scanner.Err()
}

// reply lets the engine move and reports whether the game ended.
func (c *console) reply(out io.Writer) bool {
	res, err := c.search.Run()
	if err != nil {
		fmt.Fprintln(out, "engine has no move")
		return true
	}
	c.play(res.Move)
	fmt.Fprintf(out, "engine plays %s (score %d)\n", res.Move, res.Score)
	fmt.Fprintln(out, c.pos.String())
	return c.over(out)
}

func (c *console) play(m board.Move) {
	if err := c.rec.Record(m); err != nil {
		slog.Debug("pgn record stopped", "err", err)
	}
	c.pos.ApplyMove(m)
}

func (c *console) over(out io.Writer) bool {
	switch st := game.StatusOf(&c.pos, c.gen); st {
	case game.Ongoing:
		return false
	case game.KingCaptured:
		fmt.Fprintf(out, "king captured, %s wins\n", game.Winner(&c.pos))
	default:
		fmt.Fprintf(out, "game over: %s\n", st)
	}
	return true
}
