package records

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"

	"punchclock/internal/common"
	"punchclock/internal/logging"
	"punchclock/internal/models"
)

// MemoryStore is an in-process implementation of Store with the same
// compare-and-swap semantics as the GitHub backend. Useful for tests and
// local development. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string]memoryObject
	corrupt CorruptPolicy
	log     logging.Logger
}

type memoryObject struct {
	data []byte
	sha  string
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryCorruptPolicy selects the unparseable-content policy.
func WithMemoryCorruptPolicy(p CorruptPolicy) MemoryOption {
	return func(s *MemoryStore) { s.corrupt = p }
}

// WithMemoryLogger attaches a logger.
func WithMemoryLogger(l logging.Logger) MemoryOption {
	return func(s *MemoryStore) { s.log = logging.OrNop(l) }
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		objects: make(map[string]memoryObject),
		corrupt: CorruptReset,
		log:     logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed places raw bytes at path, bypassing serialization. Intended for
// exercising the corrupt-content paths.
func (s *MemoryStore) Seed(path string, raw []byte) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj := memoryObject{data: append([]byte(nil), raw...), sha: contentSHA(raw)}
	s.objects[path] = obj
	return obj.sha
}

// Bytes returns a copy of the committed bytes at path, or nil when absent.
func (s *MemoryStore) Bytes(path string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[path]
	if !ok {
		return nil
	}
	return append([]byte(nil), obj.data...)
}

// contentSHA derives the version token from the committed bytes, mirroring
// the remote's content-hash tokens.
func contentSHA(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Load implements Store with the same create-on-first-read behavior as the
// remote backend.
func (s *MemoryStore) Load(ctx context.Context, path string) ([]models.Record, string, error) {
	s.mu.Lock()
	obj, ok := s.objects[path]
	s.mu.Unlock()

	if !ok {
		sha, err := s.Commit(ctx, path, []models.Record{}, "", initMessage)
		if err != nil {
			return nil, "", fmt.Errorf("initializing %s: %w", path, err)
		}
		return []models.Record{}, sha, nil
	}

	var recs []models.Record
	if err := json.Unmarshal(obj.data, &recs); err != nil {
		if s.corrupt == CorruptFail {
			return nil, "", &CorruptContentError{Path: path, Err: err}
		}
		s.log.Warn(ctx, "unparseable collection content, treating as empty",
			"path", path, "error", err)
		return []models.Record{}, obj.sha, nil
	}
	if recs == nil {
		recs = []models.Record{}
	}
	return recs, obj.sha, nil
}

// Commit implements Store. The message is accepted for interface parity but
// not retained.
func (s *MemoryStore) Commit(ctx context.Context, path string, recs []models.Record, version, message string) (string, error) {
	if recs == nil {
		recs = []models.Record{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing collection: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.objects[path]
	if exists && version != current.sha {
		return "", common.ErrVersionConflict
	}
	if !exists && version != "" {
		return "", common.ErrVersionConflict
	}

	obj := memoryObject{data: data, sha: contentSHA(data)}
	s.objects[path] = obj
	return obj.sha, nil
}
