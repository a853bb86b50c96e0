package hasher

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"

	"golang.org/x/crypto/ripemd160"

	"github.com/cor1nthian/wincontentseeker/pkg/models"
)

// Source is a byte source for hashing, resolved once at the call site:
// either in-memory bytes or a file opened on demand.
type Source struct {
	data []byte
	path string
}

// FromBytes creates a source backed by an in-memory buffer
func FromBytes(data []byte) Source {
	return Source{data: data}
}

// FromFile creates a source backed by a file path. The file is opened
// and streamed when the hash is computed.
func FromFile(path string) Source {
	return Source{path: path}
}

// open returns a reader over the source content
func (s Source) open() (io.ReadCloser, error) {
	if s.path == "" {
		return io.NopCloser(bytes.NewReader(s.data)), nil
	}
	return os.Open(s.path)
}

// HashError reports a digest that could not be computed. The caller
// treats the hash as absent; the algorithm label stays valid.
type HashError struct {
	Path      string
	Algorithm models.HashAlgorithm
	Err       error
}

func (e *HashError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s hash failed: %v", e.Algorithm, e.Err)
	}
	return fmt.Sprintf("%s hash of %s failed: %v", e.Algorithm, e.Path, e.Err)
}

func (e *HashError) Unwrap() error {
	return e.Err
}

// newDigest returns a fresh digest for the algorithm
func newDigest(algo models.HashAlgorithm) (hash.Hash, error) {
	switch algo {
	case models.AlgoMD5:
		return md5.New(), nil
	case models.AlgoSHA1:
		return sha1.New(), nil
	case models.AlgoSHA256:
		return sha256.New(), nil
	case models.AlgoSHA384:
		return sha512.New384(), nil
	case models.AlgoSHA512:
		return sha512.New(), nil
	case models.AlgoRIPEMD160:
		return ripemd160.New(), nil
	case models.AlgoMACTripleDES:
		// Keyed MAC, never selected by the report path
		return nil, fmt.Errorf("algorithm %s requires a key and is not supported", algo)
	default:
		return nil, fmt.Errorf("unknown hash algorithm: %s", algo)
	}
}

// Hash reads the whole source and renders the digest as lowercase
// contiguous hex
func Hash(src Source, algo models.HashAlgorithm) (string, error) {
	digest, err := newDigest(algo)
	if err != nil {
		return "", &HashError{Path: src.path, Algorithm: algo, Err: err}
	}

	r, err := src.open()
	if err != nil {
		return "", &HashError{Path: src.path, Algorithm: algo, Err: err}
	}
	defer r.Close()

	if _, err := io.Copy(digest, r); err != nil {
		return "", &HashError{Path: src.path, Algorithm: algo, Err: err}
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
