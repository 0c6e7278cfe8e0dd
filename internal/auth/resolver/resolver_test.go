package resolver

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dmc0125/task-app/internal/auth"
)

// fakeStore enforces the same (provider, provider_id) uniqueness the
// database does, so concurrent create races behave like the real thing.
type fakeStore struct {
	mu       sync.Mutex
	nextID   int64
	profiles map[string]int64
	users    map[int64]*auth.Identity

	finds   int
	creates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		nextID:   1,
		profiles: map[string]int64{},
		users:    map[int64]*auth.Identity{},
	}
}

func profileKey(p auth.Provider, providerID string) string {
	return string(p) + "/" + providerID
}

func (s *fakeStore) FindByProviderIdentity(_ context.Context, p auth.Provider, providerID string) (int64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	userID, ok := s.profiles[profileKey(p, providerID)]
	return userID, ok, nil
}

func (s *fakeStore) CreateUserWithProfile(_ context.Context, identity *auth.Identity) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++

	key := profileKey(identity.Provider, identity.ProviderID)
	if _, exists := s.profiles[key]; exists {
		return 0, fmt.Errorf("unique violation on %s", key)
	}

	id := s.nextID
	s.nextID++
	s.profiles[key] = id
	s.users[id] = identity
	return id, nil
}

func discordIdentity(id string) *auth.Identity {
	return &auth.Identity{
		Provider:         auth.ProviderDiscord,
		ProviderID:       id,
		ProviderUsername: "octo",
	}
}

func TestResolve_CreatesUnseenIdentity(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	userID, err := r.Resolve(context.Background(), discordIdentity("190"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), userID)
	assert.Equal(t, 1, store.creates)
}

func TestResolve_Idempotent(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	first, err := r.Resolve(context.Background(), discordIdentity("190"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := r.Resolve(context.Background(), discordIdentity("190"))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 1, store.creates, "repeat sign-ins must not create users")
}

func TestResolve_SameIDAcrossProvidersIsDistinct(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	discordUser, err := r.Resolve(context.Background(), discordIdentity("12345"))
	require.NoError(t, err)

	googleUser, err := r.Resolve(context.Background(), &auth.Identity{
		Provider:   auth.ProviderGoogle,
		ProviderID: "12345",
	})
	require.NoError(t, err)

	assert.NotEqual(t, discordUser, googleUser)
}

func TestResolve_NilIdentity(t *testing.T) {
	r := New(newFakeStore())

	_, err := r.Resolve(context.Background(), nil)
	assert.Error(t, err)
}

func TestResolve_ConcurrentFirstSignIn(t *testing.T) {
	store := newFakeStore()
	r := New(store)

	const workers = 16
	var wg sync.WaitGroup
	errs := make([]error, workers)
	ids := make([]int64, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = r.Resolve(context.Background(), discordIdentity("190"))
		}(i)
	}
	wg.Wait()

	// Exactly one user exists. Losers of the create race surface an
	// error; a retry then resolves to the winner's user id.
	assert.Len(t, store.users, 1)

	var winnerID int64
	for i := 0; i < workers; i++ {
		if errs[i] == nil {
			winnerID = ids[i]
			break
		}
	}
	require.NotZero(t, winnerID)

	for i := 0; i < workers; i++ {
		if errs[i] == nil {
			assert.Equal(t, winnerID, ids[i])
			continue
		}
		retryID, err := r.Resolve(context.Background(), discordIdentity("190"))
		require.NoError(t, err)
		assert.Equal(t, winnerID, retryID)
	}
}
