package repo_summarizer

import (
	"fmt"
	"strings"
)

// DefaultChunkSize is the number of lines grouped into one chunk.
const DefaultChunkSize = 30

// ChunkLines partitions lines into ordered groups of chunkSize lines each; the
// final chunk may be shorter. Empty input yields no chunks. The partition is
// lossless: joining the chunks in order reproduces the input line sequence.
// A non-positive chunkSize is a programmer error.
func ChunkLines(lines []string, chunkSize int) []string {
	if chunkSize < 1 {
		panic(fmt.Sprintf("chunk size must be a positive integer, got %d", chunkSize))
	}

	if len(lines) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(lines)+chunkSize-1)/chunkSize)
	for i := 0; i < len(lines); i += chunkSize {
		end := i + chunkSize
		if end > len(lines) {
			end = len(lines)
		}
		chunks = append(chunks, strings.Join(lines[i:end], "\n"))
	}

	return chunks
}

// ReadLines splits raw file content into its line sequence. A trailing newline
// does not produce a phantom empty line, matching how the chunker counts lines.
func ReadLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
