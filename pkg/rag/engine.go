package rag

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"

	"ollama-chat-be/internal/pkg/logger"
	"ollama-chat-be/pkg/embedding"
	"ollama-chat-be/pkg/store"
	"ollama-chat-be/pkg/utils"

	"github.com/google/uuid"
)

// Chunking parameters. 500-character windows with a 50-character overlap;
// windows shorter than 50 characters are not worth embedding.
const (
	ChunkSize    = 500
	ChunkOverlap = 50
	MinChunkLen  = 50
)

// ScoreThreshold filters out chunks that are barely related to the query.
const ScoreThreshold = 0.2

// DefaultTopK is how many chunks a query returns unless the caller asks
// for a different fan-out.
const DefaultTopK = 3

// Engine owns the per-session document chunks and ranks them against chat
// queries. State lives in memory and is snapshotted to a single JSON file,
// rewritten in full after every mutation. That is a known scalability
// ceiling, acceptable while working sets stay small.
type Engine struct {
	provider embedding.Provider
	log      logger.ILogger

	mu     sync.RWMutex
	dbPath string
	db     map[string][]store.ChunkRecord
}

func NewEngine(dbPath string, provider embedding.Provider, log logger.ILogger) *Engine {
	e := &Engine{
		provider: provider,
		log:      log,
		dbPath:   dbPath,
		db:       make(map[string][]store.ChunkRecord),
	}
	e.load()
	return e
}

func (e *Engine) load() {
	data, err := os.ReadFile(e.dbPath)
	if err != nil {
		if !os.IsNotExist(err) {
			e.log.Warn("RAG", "Failed to read snapshot, starting empty", map[string]interface{}{
				"path": e.dbPath, "error": err.Error(),
			})
		}
		return
	}
	if err := json.Unmarshal(data, &e.db); err != nil {
		e.log.Warn("RAG", "Snapshot is corrupt, starting empty", map[string]interface{}{
			"path": e.dbPath, "error": err.Error(),
		})
		e.db = make(map[string][]store.ChunkRecord)
	}
}

// persistLocked rewrites the whole snapshot. Callers hold the write lock.
func (e *Engine) persistLocked() {
	data, err := json.Marshal(e.db)
	if err != nil {
		e.log.Error("RAG", "Failed to marshal snapshot", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := os.WriteFile(e.dbPath, data, 0644); err != nil {
		e.log.Error("RAG", "Failed to write snapshot", map[string]interface{}{
			"path": e.dbPath, "error": err.Error(),
		})
	}
}

// AddDocument chunks text, embeds every chunk with embedModel and stores the
// survivors under sessionID. A chunk whose embedding fails or comes back
// empty is skipped: partial failure reduces retrievable coverage but never
// aborts the upload. Returns how many chunks were stored.
func (e *Engine) AddDocument(ctx context.Context, sessionID, text, filename, embedModel string) int {
	chunks := utils.SplitText(text, ChunkSize, ChunkOverlap, MinChunkLen)
	if len(chunks) == 0 {
		return 0
	}

	records := make([]store.ChunkRecord, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := e.provider.Embed(ctx, chunk, embedModel)
		if err != nil || len(vector) == 0 {
			details := map[string]interface{}{"session_id": sessionID, "filename": filename}
			if err != nil {
				details["error"] = err.Error()
			}
			e.log.Warn("RAG", "Skipping chunk without embedding", details)
			continue
		}
		records = append(records, store.ChunkRecord{
			ID:        uuid.NewString(),
			Text:      chunk,
			Filename:  filename,
			Embedding: vector,
			Model:     embedModel,
		})
	}

	if len(records) == 0 {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.db[sessionID] = append(e.db[sessionID], records...)
	e.persistLocked()
	return len(records)
}

// Query embeds queryText and returns the texts of the top k chunks for the
// session joined by blank lines. Retrieval degrades silently: no chunks, a
// failed query embedding or nothing above the score threshold all yield "".
func (e *Engine) Query(ctx context.Context, sessionID, queryText, embedModel string, k int) string {
	if k <= 0 {
		k = DefaultTopK
	}

	e.mu.RLock()
	records := e.db[sessionID]
	e.mu.RUnlock()
	if len(records) == 0 {
		return ""
	}

	queryVec, err := e.provider.Embed(ctx, queryText, embedModel)
	if err != nil || len(queryVec) == 0 {
		if err != nil {
			e.log.Warn("RAG", "Query embedding failed, returning no context", map[string]interface{}{
				"session_id": sessionID, "error": err.Error(),
			})
		}
		return ""
	}

	type scored struct {
		score float64
		text  string
	}
	scoredChunks := make([]scored, 0, len(records))
	for _, rec := range records {
		scoredChunks = append(scoredChunks, scored{
			score: CosineSimilarity(queryVec, rec.Embedding),
			text:  rec.Text,
		})
	}

	// Stable sort keeps insertion order for tied scores.
	sort.SliceStable(scoredChunks, func(i, j int) bool {
		return scoredChunks[i].score > scoredChunks[j].score
	})

	var top []string
	for _, sc := range scoredChunks {
		if sc.score <= ScoreThreshold {
			break
		}
		top = append(top, sc.text)
		if len(top) == k {
			break
		}
	}
	return strings.Join(top, "\n\n")
}

// ChunkCount reports how many chunks a session currently holds.
func (e *Engine) ChunkCount(sessionID string) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.db[sessionID])
}

// ClearSession discards all chunks for the session and persists the removal.
func (e *Engine) ClearSession(sessionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.db[sessionID]; !ok {
		return
	}
	delete(e.db, sessionID)
	e.persistLocked()
}
