package extract

import "testing"

func TestExtractPlainText(t *testing.T) {
	extractor := NewExtractor()

	tests := []struct {
		name     string
		filename string
		data     string
	}{
		{"txt file", "notes.txt", "plain text content"},
		{"markdown file", "readme.md", "# heading\nbody"},
		{"no extension", "LICENSE", "some license text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractor.Extract([]byte(tt.data), tt.filename)
			if err != nil {
				t.Fatalf("Extract returned error: %v", err)
			}
			if got != tt.data {
				t.Errorf("Extract = %q, want passthrough %q", got, tt.data)
			}
		})
	}
}

func TestExtractMalformedPDF(t *testing.T) {
	extractor := NewExtractor()

	_, err := extractor.Extract([]byte("this is not a pdf"), "broken.PDF")
	if err == nil {
		t.Fatal("expected error for malformed pdf, got nil")
	}
}
