package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chess-kernel/board"
	"chess-kernel/engine"
	"chess-kernel/movegen"
)

func main() {
	depthFlag := flag.Int("depth", 6, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	orderFlag := flag.String("ordering", movegen.MostValuableVictim.String(), "move ordering: scan, captured or mvv-lva")
	cacheFlag := flag.Int("cache", 0, "position cache size in MB (0 disables)")
	verifyFlag := flag.Bool("verify", false, "check each result against exhaustive minimax")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	verbose := flag.Bool("v", false, "log search statistics")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	order, err := movegen.ParseOrdering(*orderFlag)
	if err != nil {
		log.Fatal(err)
	}
	if *verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := board.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}
	b, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatal(err)
	}

	opts := []engine.Option{engine.WithOrdering(order)}
	if *cacheFlag > 0 {
		opts = append(opts, engine.WithCache(*cacheFlag))
	}
	search := engine.NewSearch(b, *depthFlag, opts...)

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d ordering=%s cached=%v\n",
		fen, search.Depth(), *repeatFlag, order, search.Cached())

	startAll := time.Now()
	var nodes uint64
	for i := 0; i < *repeatFlag; i++ {
		res, err := search.Run()
		if err != nil {
			log.Fatalf("iteration %d: %v", i+1, err)
		}
		nodes += res.Stats.Nodes
		fmt.Printf("iteration %d: bestmove %s score %d nodes %d cutoffs %d/%d time=%v\n", i+1,
			res.Move, res.Score, res.Stats.Nodes, res.Stats.BetaCutoffs, res.Stats.AlphaCutoffs, res.Stats.Elapsed)

		if *verifyFlag {
			m, score, err := engine.Minimax(b, search.Depth(), engine.WithOrdering(order))
			if err != nil {
				log.Fatalf("minimax: %v", err)
			}
			if m != res.Move || score != res.Score {
				log.Fatalf("minimax disagrees: %s/%d, search %s/%d", m, score, res.Move, res.Score)
			}
			fmt.Println("  minimax agrees")
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v nodes %d nps %.0f\n", totalElapsed, nodes, float64(nodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
