package rag

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// nopLogger satisfies logger.ILogger for tests without emitting output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// keywordEmbedder maps the first known keyword found in the text to a fixed
// vector, so retrieval outcomes are fully controlled from the test.
type keywordEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (k *keywordEmbedder) Embed(ctx context.Context, text string, model string) ([]float64, error) {
	if k.err != nil {
		return nil, k.err
	}
	for keyword, vec := range k.vectors {
		if strings.Contains(text, keyword) {
			return vec, nil
		}
	}
	return []float64{0, 0}, nil
}

// padDoc stretches a marker string past the minimum chunk length while
// staying inside a single window.
func padDoc(marker string) string {
	return marker + " " + strings.Repeat("filler text. ", 8)
}

func newTestEngine(t *testing.T, provider *keywordEmbedder) *Engine {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "rag_db.json")
	return NewEngine(dbPath, provider, nopLogger{})
}

func TestAddDocumentStoresChunks(t *testing.T) {
	provider := &keywordEmbedder{vectors: map[string][]float64{"filler": {1, 0}}}
	engine := newTestEngine(t, provider)

	text := strings.Repeat("filler text to be chunked. ", 45) // 1215 chars
	stored := engine.AddDocument(context.Background(), "s1", text, "doc.txt", "embed-model")

	if stored != 3 {
		t.Errorf("stored = %d, want 3", stored)
	}
	if got := engine.ChunkCount("s1"); got != 3 {
		t.Errorf("ChunkCount = %d, want 3", got)
	}
}

func TestAddDocumentTinyInput(t *testing.T) {
	provider := &keywordEmbedder{vectors: map[string][]float64{}}
	engine := newTestEngine(t, provider)

	stored := engine.AddDocument(context.Background(), "s1", "too short", "doc.txt", "embed-model")

	if stored != 0 {
		t.Errorf("stored = %d, want 0", stored)
	}
	if got := engine.ChunkCount("s1"); got != 0 {
		t.Errorf("ChunkCount = %d, want 0", got)
	}
}

func TestAddDocumentEmbeddingFailure(t *testing.T) {
	provider := &keywordEmbedder{err: errors.New("embedding backend down")}
	engine := newTestEngine(t, provider)

	stored := engine.AddDocument(context.Background(), "s1", padDoc("cats"), "doc.txt", "embed-model")

	if stored != 0 {
		t.Errorf("stored = %d, want 0 when every embedding fails", stored)
	}
}

func TestQueryRanksByRelevance(t *testing.T) {
	provider := &keywordEmbedder{vectors: map[string][]float64{
		"cats": {1, 0},
		"dogs": {0.8, 0.6},
		"fish": {0, 1},
	}}
	engine := newTestEngine(t, provider)

	ctx := context.Background()
	engine.AddDocument(ctx, "s1", padDoc("fish"), "fish.txt", "embed-model")
	engine.AddDocument(ctx, "s1", padDoc("dogs"), "dogs.txt", "embed-model")
	engine.AddDocument(ctx, "s1", padDoc("cats"), "cats.txt", "embed-model")

	got := engine.Query(ctx, "s1", "cats", "embed-model", DefaultTopK)

	parts := strings.Split(got, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("returned %d chunks, want 2 (fish chunk is below threshold): %q", len(parts), got)
	}
	if !strings.HasPrefix(parts[0], "cats") {
		t.Errorf("top chunk = %q, want the cats chunk first", parts[0])
	}
	if !strings.HasPrefix(parts[1], "dogs") {
		t.Errorf("second chunk = %q, want the dogs chunk", parts[1])
	}
}

func TestQueryRespectsTopK(t *testing.T) {
	provider := &keywordEmbedder{vectors: map[string][]float64{"filler": {1, 0}}}
	engine := newTestEngine(t, provider)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		engine.AddDocument(ctx, "s1", padDoc(fmt.Sprintf("doc%d", i)), "doc.txt", "embed-model")
	}

	got := engine.Query(ctx, "s1", "filler", "embed-model", 2)
	if parts := strings.Split(got, "\n\n"); len(parts) != 2 {
		t.Errorf("returned %d chunks, want 2", len(parts))
	}
}

func TestQueryStableOnTies(t *testing.T) {
	provider := &keywordEmbedder{vectors: map[string][]float64{"filler": {1, 0}}}
	engine := newTestEngine(t, provider)

	ctx := context.Background()
	engine.AddDocument(ctx, "s1", padDoc("first"), "a.txt", "embed-model")
	engine.AddDocument(ctx, "s1", padDoc("second"), "b.txt", "embed-model")

	// Every chunk scores identically, so insertion order decides.
	got := engine.Query(ctx, "s1", "filler", "embed-model", 2)
	parts := strings.Split(got, "\n\n")
	if len(parts) != 2 {
		t.Fatalf("returned %d chunks, want 2", len(parts))
	}
	if !strings.HasPrefix(parts[0], "first") || !strings.HasPrefix(parts[1], "second") {
		t.Errorf("tied chunks reordered: got [%q, %q]", parts[0][:12], parts[1][:12])
	}
}

func TestQueryEmptyCases(t *testing.T) {
	t.Run("no chunks for session", func(t *testing.T) {
		engine := newTestEngine(t, &keywordEmbedder{vectors: map[string][]float64{}})
		if got := engine.Query(context.Background(), "missing", "anything", "embed-model", 3); got != "" {
			t.Errorf("Query = %q, want empty", got)
		}
	})

	t.Run("query embedding fails", func(t *testing.T) {
		provider := &keywordEmbedder{vectors: map[string][]float64{"filler": {1, 0}}}
		engine := newTestEngine(t, provider)
		engine.AddDocument(context.Background(), "s1", padDoc("cats"), "a.txt", "embed-model")

		provider.err = errors.New("backend down")
		if got := engine.Query(context.Background(), "s1", "cats", "embed-model", 3); got != "" {
			t.Errorf("Query = %q, want empty on embedding failure", got)
		}
	})
}

func TestClearSession(t *testing.T) {
	provider := &keywordEmbedder{vectors: map[string][]float64{"filler": {1, 0}}}
	engine := newTestEngine(t, provider)

	ctx := context.Background()
	engine.AddDocument(ctx, "s1", padDoc("cats"), "a.txt", "embed-model")
	engine.AddDocument(ctx, "s2", padDoc("dogs"), "b.txt", "embed-model")

	engine.ClearSession("s1")

	if got := engine.ChunkCount("s1"); got != 0 {
		t.Errorf("ChunkCount(s1) = %d, want 0 after clear", got)
	}
	if got := engine.ChunkCount("s2"); got != 1 {
		t.Errorf("ChunkCount(s2) = %d, want 1 (other sessions untouched)", got)
	}
}

func TestSnapshotSurvivesRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rag_db.json")
	provider := &keywordEmbedder{vectors: map[string][]float64{
		"cats": {1, 0},
		"dogs": {0, 1},
	}}

	first := NewEngine(dbPath, provider, nopLogger{})
	first.AddDocument(context.Background(), "s1", padDoc("cats"), "a.txt", "embed-model")
	first.AddDocument(context.Background(), "s1", padDoc("dogs"), "b.txt", "embed-model")

	second := NewEngine(dbPath, provider, nopLogger{})
	if got := second.ChunkCount("s1"); got != 2 {
		t.Fatalf("ChunkCount after reload = %d, want 2", got)
	}

	// Stored embeddings survived the round trip, so ranking still works
	// without re-embedding any chunk.
	got := second.Query(context.Background(), "s1", "cats", "embed-model", 1)
	if !strings.HasPrefix(got, "cats") {
		t.Errorf("Query after reload = %q, want the cats chunk", got)
	}
}

func TestCorruptSnapshotStartsEmpty(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "rag_db.json")
	if err := os.WriteFile(dbPath, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	engine := NewEngine(dbPath, &keywordEmbedder{vectors: map[string][]float64{}}, nopLogger{})
	if got := engine.ChunkCount("s1"); got != 0 {
		t.Errorf("ChunkCount = %d, want 0 when snapshot is corrupt", got)
	}
}
