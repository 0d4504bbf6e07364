package engine_test

import (
	"testing"

	"chess-kernel/board"
	"chess-kernel/engine"
)

func benchSearch(b *testing.B, fen string, depth int, opts ...engine.Option) {
	pos := mustFEN(b, fen)
	s := engine.NewSearch(pos, depth, opts...)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := s.Run(); err != nil {
			b.Fatalf("Run: %v", err)
		}
	}
}

func BenchmarkSearch_Initial_D4(b *testing.B) {
	benchSearch(b, board.StartFEN, 4)
}

func BenchmarkSearch_Initial_D4_Cached(b *testing.B) {
	benchSearch(b, board.StartFEN, 4, engine.WithCache(16))
}

func BenchmarkSearch_Kiwipete_D3(b *testing.B) {
	benchSearch(b, kiwipete, 3)
}

func BenchmarkEvaluate(b *testing.B) {
	pos := mustFEN(b, kiwipete)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Evaluate(pos)
	}
}
