package repo_summarizer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// hashBlockSize bounds how much of a file is held in memory while hashing.
const hashBlockSize = 8192

// Fingerprint computes the SHA-256 hex digest of the file's full byte content,
// reading in fixed-size blocks. Two byte-identical files always produce the
// same fingerprint; the digest is used only for change detection.
func Fingerprint(filePath string) (string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file for hashing: %s, error: %w", filePath, err)
	}
	defer f.Close()

	hasher := sha256.New()
	buf := make([]byte, hashBlockSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			hasher.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read file for hashing: %s, error: %w", filePath, err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
