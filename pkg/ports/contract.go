package ports

import (
	"context"
	"testing"
	"time"

	"github.com/seamly/garmentd/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests verifying that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	id := "contract-test-" + time.Now().Format("20060102150405")

	newReady := func(id string) *domain.Session {
		s := domain.NewSession(id, "/tmp/"+id, time.Now())
		s.Artifacts[domain.ArtifactVector] = s.OutputDir + "/pattern.svg"
		s.Status = domain.SessionReady
		return s
	}

	t.Run("Insert and Get", func(t *testing.T) {
		s := newReady(id)
		require.NoError(t, store.Insert(ctx, s))

		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
		assert.Equal(t, s.OutputDir, got.OutputDir)
		assert.Equal(t, domain.SessionReady, got.Status)
		assert.Equal(t, s.Artifacts[domain.ArtifactVector], got.Artifacts[domain.ArtifactVector])
	})

	t.Run("Insert Duplicate", func(t *testing.T) {
		err := store.Insert(ctx, newReady(id))
		assert.ErrorIs(t, err, domain.ErrDuplicateSession)
	})

	t.Run("Get Isolation", func(t *testing.T) {
		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		got.Artifacts[domain.ArtifactMesh] = "/tmp/evil.glb"

		again, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.NotContains(t, again.Artifacts, domain.ArtifactMesh,
			"mutating a returned session must not affect the store")
	})

	t.Run("Get Non-Existent", func(t *testing.T) {
		_, err := store.Get(ctx, "missing-"+id)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, id))

		_, err := store.Get(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Get after Delete should fail")

		err = store.Delete(ctx, id)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "repeated Delete should fail")
	})

	t.Run("List", func(t *testing.T) {
		id1, id2 := id+"-1", id+"-2"
		require.NoError(t, store.Insert(ctx, newReady(id1)))
		require.NoError(t, store.Insert(ctx, newReady(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
