package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/bamsammich/dupescan/internal/platform"
)

// Algorithm names a content digest.
type Algorithm string

const (
	SHA256 Algorithm = "sha256"
	BLAKE3 Algorithm = "blake3"
)

// hashBufSize is the read chunk; any size works, this one amortizes syscalls.
const hashBufSize = 64 * 1024

// ParseAlgorithm resolves a case-insensitive algorithm name. Empty means SHA256.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case "", SHA256:
		return SHA256, nil
	case BLAKE3:
		return BLAKE3, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm: %s", s)
	}
}

// Label is the human-readable digest name.
func (a Algorithm) Label() string {
	if a == BLAKE3 {
		return "BLAKE3"
	}
	return "SHA-256"
}

func (a Algorithm) newHash() hash.Hash {
	if a == BLAKE3 {
		return blake3.New()
	}
	return sha256.New()
}

// Hasher streams files through a digest. It reuses one read buffer and is
// not safe for concurrent use; give each worker its own.
type Hasher struct {
	algo Algorithm
	buf  []byte
}

// NewHasher creates a Hasher for algo.
func NewHasher(algo Algorithm) *Hasher {
	return &Hasher{algo: algo, buf: make([]byte, hashBufSize)}
}

// Hash computes the fingerprint of the file at path without loading it
// whole. ctx is checked between chunks.
func (h *Hasher) Hash(ctx context.Context, path string) (Fingerprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &Error{Kind: KindFileRead, Path: path, Err: err}
	}
	defer f.Close()

	platform.AdviseSequential(f)

	d := h.algo.newHash()
	if _, err := io.CopyBuffer(d, &ctxReader{ctx: ctx, r: f}, h.buf); err != nil {
		return "", &Error{Kind: KindFileRead, Path: path, Err: err}
	}

	return Fingerprint(hex.EncodeToString(d.Sum(nil))), nil
}

// HashFile computes the fingerprint of the file at path.
func HashFile(ctx context.Context, path string, algo Algorithm) (Fingerprint, error) {
	return NewHasher(algo).Hash(ctx, path)
}

// ctxReader fails reads once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}
	return cr.r.Read(p)
}
