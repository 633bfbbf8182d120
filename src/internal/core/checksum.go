package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Supported checksum algorithms.
const (
	ChecksumBlake3 = "blake3"
	ChecksumSHA256 = "sha256"
)

// Checksummer hashes file contents.
type Checksummer struct {
	algo string
}

// NewChecksummer creates a checksummer for algo. An empty algo selects blake3.
func NewChecksummer(algo string) (*Checksummer, error) {
	if algo == "" {
		algo = ChecksumBlake3
	}

	switch algo {
	case ChecksumBlake3, ChecksumSHA256:
	default:
		return nil, fmt.Errorf("unsupported checksum algorithm: %s", algo)
	}

	return &Checksummer{algo: algo}, nil
}

// Algorithm returns the name of the hash in use.
func (c *Checksummer) Algorithm() string {
	return c.algo
}

// Sum returns the hex-encoded digest of everything read from r.
func (c *Checksummer) Sum(r io.Reader) (string, error) {
	var hasher hash.Hash

	switch c.algo {
	case ChecksumSHA256:
		hasher = sha256.New()
	default:
		hasher = blake3.New()
	}

	if _, err := io.Copy(hasher, r); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// SumFile returns the digest of the file at path.
func (c *Checksummer) SumFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	sum, err := c.Sum(file)
	if err != nil {
		return "", fmt.Errorf("failed to calculate checksum for %s: %w", path, err)
	}

	return sum, nil
}

// Compare returns ErrChecksumMismatch when the two files differ.
func (c *Checksummer) Compare(pathA, pathB string) error {
	sumA, err := c.SumFile(pathA)
	if err != nil {
		return err
	}

	sumB, err := c.SumFile(pathB)
	if err != nil {
		return err
	}

	if sumA != sumB {
		return fmt.Errorf("%w: %s %s != %s", ErrChecksumMismatch, c.algo, sumA, sumB)
	}

	return nil
}
