package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/common"
	"punchclock/internal/models"
)

// scriptedStore wraps a MemoryStore, counting calls and optionally rejecting
// a number of commits with a version conflict.
type scriptedStore struct {
	inner *MemoryStore

	loads       int
	commits     int
	conflicts   int
	lastMessage string
}

func (s *scriptedStore) Load(ctx context.Context, path string) ([]models.Record, string, error) {
	s.loads++
	return s.inner.Load(ctx, path)
}

func (s *scriptedStore) Commit(ctx context.Context, path string, recs []models.Record, version, message string) (string, error) {
	s.commits++
	s.lastMessage = message
	if s.conflicts > 0 {
		s.conflicts--
		return "", common.ErrVersionConflict
	}
	return s.inner.Commit(ctx, path, recs, version, message)
}

func newScriptedStore() *scriptedStore {
	return &scriptedStore{inner: NewMemoryStore()}
}

func TestMutate_AppliesTransformOnce(t *testing.T) {
	s := newScriptedStore()
	ctx := context.Background()

	calls := 0
	err := Mutate(ctx, s, "pontos.json", "msg", func(recs []models.Record) ([]models.Record, error) {
		calls++
		return append(recs, sampleRecord()), nil
	}, WithBackoff(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	recs, _, err := s.inner.Load(ctx, "pontos.json")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestMutate_ReappliesTransformAfterConflict(t *testing.T) {
	s := newScriptedStore()
	s.conflicts = 2

	calls := 0
	err := Mutate(context.Background(), s, "pontos.json", "msg", func(recs []models.Record) ([]models.Record, error) {
		calls++
		return append(recs, sampleRecord()), nil
	}, WithBackoff(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "transform re-applied from scratch each attempt")

	recs, _, err := s.inner.Load(context.Background(), "pontos.json")
	require.NoError(t, err)
	assert.Len(t, recs, 1, "only one record despite three attempts")
}

func TestMutate_TransformErrorAbortsWithoutRetry(t *testing.T) {
	s := newScriptedStore()
	boom := errors.New("boom")

	err := Mutate(context.Background(), s, "pontos.json", "msg", func([]models.Record) ([]models.Record, error) {
		return nil, boom
	}, WithBackoff(time.Millisecond))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, s.loads)
	assert.Equal(t, 0, s.commits, "no mutation commit after a transform error")
}

func TestMutate_ExhaustedAttemptsSurfaceConflict(t *testing.T) {
	s := newScriptedStore()
	s.inner.Seed("pontos.json", []byte("[]"))
	s.conflicts = 1 << 20

	err := Mutate(context.Background(), s, "pontos.json", "msg", func(recs []models.Record) ([]models.Record, error) {
		return recs, nil
	}, WithMaxAttempts(2), WithBackoff(time.Millisecond))
	require.ErrorIs(t, err, common.ErrVersionConflict)
	assert.Equal(t, 2, s.commits)
	assert.Equal(t, "[]", string(s.inner.Bytes("pontos.json")), "no net change")
}

func TestMutate_ContextCancellationStopsRetry(t *testing.T) {
	s := newScriptedStore()
	s.inner.Seed("pontos.json", []byte("[]"))
	s.conflicts = 1 << 20

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Mutate(ctx, s, "pontos.json", "msg", func(recs []models.Record) ([]models.Record, error) {
		return recs, nil
	}, WithMaxAttempts(1000), WithBackoff(5*time.Millisecond))
	require.Error(t, err)
	assert.Less(t, s.commits, 1000)
}

func TestAppend_CommitMessageNamesThePunch(t *testing.T) {
	s := newScriptedStore()
	s.inner.Seed("pontos.json", []byte("[]"))

	rec := sampleRecord()
	require.NoError(t, Append(context.Background(), s, "pontos.json", rec, WithBackoff(time.Millisecond)))
	assert.Equal(t, "Add ponto A 2024-01-10 08:09:00", s.lastMessage)
}

func TestWithMaxAttempts_FloorsAtOne(t *testing.T) {
	s := newScriptedStore()
	s.inner.Seed("pontos.json", []byte("[]"))
	s.conflicts = 1 << 20

	err := Append(context.Background(), s, "pontos.json", sampleRecord(),
		WithMaxAttempts(0), WithBackoff(time.Millisecond))
	require.ErrorIs(t, err, common.ErrVersionConflict)
	assert.Equal(t, 1, s.commits)
}
