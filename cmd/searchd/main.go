package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"chess-kernel/board"
	"chess-kernel/engine"
	"chess-kernel/movegen"
)

const DefaultPort = 8080

type server struct {
	router   *mux.Router
	tables   *movegen.Tables
	maxDepth int
	cacheMB  int
	logger   *slog.Logger
}

func newServer(maxDepth, cacheMB int) *server {
	s := &server{
		router:   mux.NewRouter(),
		tables:   movegen.Default(),
		maxDepth: maxDepth,
		cacheMB:  cacheMB,
		logger:   slog.Default().With("package", "searchd"),
	}
	s.router.NotFoundHandler = http.HandlerFunc(notFoundHandler)
	s.router.HandleFunc("/healthz", s.healthHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/moves", s.movesHandler).Methods(http.MethodGet)
	s.router.HandleFunc("/bestmove", s.bestMoveHandler).Methods(http.MethodGet)
	return s
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type movesResponse struct {
	FEN    string   `json:"fen"`
	ToMove string   `json:"to_move"`
	Moves  []string `json:"moves"`
}

type bestMoveResponse struct {
	FEN       string  `json:"fen"`
	Depth     int     `json:"depth"`
	Ordering  string  `json:"ordering"`
	Move      string  `json:"move"`
	Score     int64   `json:"score"`
	Nodes     uint64  `json:"nodes"`
	CacheHits uint64  `json:"cache_hits"`
	Millis    float64 `json:"millis"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) movesHandler(w http.ResponseWriter, r *http.Request) {
	b, ok := s.position(w, r)
	if !ok {
		return
	}
	g := movegen.NewGenerator(s.tables, movegen.ScanOrder)
	g.Generate(b)
	resp := movesResponse{FEN: b.FEN(), ToMove: b.ToMove().String(), Moves: make([]string, 0, g.Count())}
	for _, m := range g.Moves() {
		resp.Moves = append(resp.Moves, m.String())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) bestMoveHandler(w http.ResponseWriter, r *http.Request) {
	b, ok := s.position(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	depth := min(4, s.maxDepth)
	if v := q.Get("depth"); v != "" {
		d, err := strconv.Atoi(v)
		if err != nil || d < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse{fmt.Sprintf("invalid depth %q", v)})
			return
		}
		depth = min(d, s.maxDepth)
	}
	order := movegen.MostValuableVictim
	if v := q.Get("ordering"); v != "" {
		o, err := movegen.ParseOrdering(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
			return
		}
		order = o
	}

	opts := []engine.Option{
		engine.WithTables(s.tables),
		engine.WithOrdering(order),
		engine.WithLogger(s.logger),
	}
	if s.cacheMB > 0 {
		opts = append(opts, engine.WithCache(s.cacheMB))
	}
	res, err := engine.NewSearch(b, depth, opts...).Run()
	if errors.Is(err, engine.ErrNoMoves) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{err.Error()})
		return
	} else if err != nil {
		s.logger.Error("search failed", "fen", b.FEN(), "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{"search failed"})
		return
	}
	writeJSON(w, http.StatusOK, bestMoveResponse{
		FEN:       b.FEN(),
		Depth:     res.Depth,
		Ordering:  order.String(),
		Move:      res.Move.String(),
		Score:     res.Score,
		Nodes:     res.Stats.Nodes,
		CacheHits: res.Stats.CacheHits,
		Millis:    float64(res.Stats.Elapsed) / float64(time.Millisecond),
	})
}

// position reads the fen query parameter, defaulting to the start position.
func (s *server) position(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	fen := r.URL.Query().Get("fen")
	if fen == "" {
		return board.NewStart(), true
	}
	b, err := board.ParseFEN(fen)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{err.Error()})
		return nil, false
	}
	return b, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "err", err)
	}
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{"not found"})
}

func main() {
	var port uint
	flag.UintVar(&port, "port", DefaultPort, "Port to listen on")
	maxDepth := flag.Int("maxdepth", 6, "deepest search a request may ask for")
	cacheMB := flag.Int("cache", engine.DefaultCacheMB, "per-request position cache in MB (0 disables)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	if port == 0 || port > 65535 {
		fmt.Println("Invalid port number")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	srv := newServer(max(1, min(*maxDepth, engine.MaxDepth)), *cacheMB)
	slog.Info("starting server", "port", port, "maxdepth", srv.maxDepth)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), handlers.LoggingHandler(os.Stdout, srv)); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
