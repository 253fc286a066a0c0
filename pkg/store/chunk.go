package store

// ChunkRecord is one bounded slice of an uploaded document, stored with the
// embedding vector that was computed for it. A chunk's vector is only
// comparable to query vectors produced by the same embedding model; the
// retrieval layer treats dimension mismatches as zero similarity.
type ChunkRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Filename  string    `json:"filename"`
	Embedding []float64 `json:"embedding"`
	Model     string    `json:"model"`
}
