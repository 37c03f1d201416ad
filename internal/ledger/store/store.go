package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Xario13/MoneyTracker/internal/ledger/domain"
	ledgerErrors "github.com/Xario13/MoneyTracker/internal/ledger/errors"
)

// UserData is the in-memory snapshot of one user's entity collections.
type UserData struct {
	FinancialData domain.FinancialData
	Funds         []domain.Fund
	CreditCards   []domain.CreditCard
	SavingsGoals  []domain.SavingsGoal
	CreditGoals   []domain.CreditGoal
	Transactions  []domain.Transaction
}

type persistTask struct {
	collection domain.Collection
	payload    json.RawMessage
}

type userState struct {
	mu      sync.Mutex
	data    *UserData
	queue   chan persistTask
	pending sync.WaitGroup

	errMu   sync.Mutex
	lastErr error
}

// Store holds the committed in-memory state for every loaded user and owns
// the persistence discipline: every mutation is computed against the latest
// committed snapshot under a per-user lock, and the resulting collection
// writes are handed to a single per-user writer goroutine so they reach the
// gateway in mutation order. Callers never block on persistence.
type Store struct {
	gateway domain.Gateway

	mu    sync.Mutex
	users map[string]*userState

	// OnPersistError is invoked from the writer goroutine whenever a durable
	// write fails. Defaults to logging.
	OnPersistError func(userID string, key string, err error)
}

func New(gateway domain.Gateway) *Store {
	return &Store{
		gateway: gateway,
		users:   make(map[string]*userState),
		OnPersistError: func(userID, key string, err error) {
			log.Printf("persistence failed for %s: %v", key, err)
		},
	}
}

const persistQueueSize = 64

// LoadUser reads all collections for the user through the gateway and
// installs them as the committed snapshot. Missing collections default to
// empty; a missing financialData blob defaults to a zeroed singleton so
// operations never have to deal with an absent one.
func (s *Store) LoadUser(ctx context.Context, userID string) error {
	blobs, err := s.gateway.LoadAll(ctx, userID)
	if err != nil {
		return fmt.Errorf("load user %s: %w", userID, err)
	}

	data := &UserData{
		FinancialData: domain.FinancialData{UserID: userID, UpdatedAt: time.Now()},
	}
	if raw, ok := blobs[domain.CollectionFinancialData]; ok {
		if err := json.Unmarshal(raw, &data.FinancialData); err != nil {
			return fmt.Errorf("decode financial data for %s: %w", userID, err)
		}
	}
	collections := map[domain.Collection]interface{}{
		domain.CollectionFunds:        &data.Funds,
		domain.CollectionCreditCards:  &data.CreditCards,
		domain.CollectionSavingsGoals: &data.SavingsGoals,
		domain.CollectionCreditGoals:  &data.CreditGoals,
		domain.CollectionTransactions: &data.Transactions,
	}
	for collection, target := range collections {
		raw, ok := blobs[collection]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode %s for %s: %w", collection, userID, err)
		}
	}

	st := s.state(userID)
	st.mu.Lock()
	st.data = data
	st.mu.Unlock()
	return nil
}

// IsLoaded reports whether the user's snapshot is resident in memory.
func (s *Store) IsLoaded(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.users[userID]
	if !ok {
		return false
	}
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.data != nil
}

// UserIDs returns every user with a loaded snapshot.
func (s *Store) UserIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.users))
	for id, st := range s.users {
		st.mu.Lock()
		loaded := st.data != nil
		st.mu.Unlock()
		if loaded {
			ids = append(ids, id)
		}
	}
	return ids
}

// Mutate runs fn against the latest committed snapshot under the user's lock.
// fn returns the collections it changed; on success they are marshalled while
// the lock is still held (so the persisted payload matches the committed
// state) and enqueued for the ordered writer. If fn errors, nothing changes.
func (s *Store) Mutate(userID string, fn func(data *UserData) ([]domain.Collection, error)) error {
	st := s.state(userID)

	st.mu.Lock()
	if st.data == nil {
		st.mu.Unlock()
		return fmt.Errorf("user %s is not loaded", userID)
	}
	changed, err := fn(st.data)
	if err != nil {
		st.mu.Unlock()
		return err
	}
	tasks := make([]persistTask, 0, len(changed))
	for _, collection := range changed {
		payload, merr := marshalCollection(st.data, collection)
		if merr != nil {
			st.mu.Unlock()
			return merr
		}
		tasks = append(tasks, persistTask{collection: collection, payload: payload})
	}
	// Enqueue before releasing the lock so overlapping mutations reach the
	// writer in commit order.
	for _, task := range tasks {
		st.pending.Add(1)
		st.queue <- task
	}
	st.mu.Unlock()
	return nil
}

// View runs fn with read access to the latest committed snapshot.
func (s *Store) View(userID string, fn func(data *UserData) error) error {
	st := s.state(userID)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.data == nil {
		return fmt.Errorf("user %s is not loaded", userID)
	}
	return fn(st.data)
}

// LastPersistError returns the most recent durable-write failure for the
// user, or nil. A subsequent successful write clears it.
func (s *Store) LastPersistError(userID string) error {
	st := s.state(userID)
	st.errMu.Lock()
	defer st.errMu.Unlock()
	return st.lastErr
}

// Flush blocks until every queued write for every user has been attempted,
// or the context expires. Used at shutdown and by tests.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	states := make([]*userState, 0, len(s.users))
	for _, st := range s.users {
		states = append(states, st)
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		for _, st := range states {
			st.pending.Wait()
		}
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) state(userID string) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.users[userID]
	if !ok {
		st = &userState{queue: make(chan persistTask, persistQueueSize)}
		s.users[userID] = st
		go s.writer(userID, st)
	}
	return st
}

func (s *Store) writer(userID string, st *userState) {
	for task := range st.queue {
		key := task.collection.Key(userID)
		err := s.gateway.SaveCollection(context.Background(), userID, task.collection, task.payload)
		st.errMu.Lock()
		if err != nil {
			st.lastErr = ledgerErrors.NewPersistenceError(key, err)
		} else {
			st.lastErr = nil
		}
		st.errMu.Unlock()
		if err != nil && s.OnPersistError != nil {
			s.OnPersistError(userID, key, err)
		}
		st.pending.Done()
	}
}

func marshalCollection(data *UserData, collection domain.Collection) (json.RawMessage, error) {
	var payload interface{}
	switch collection {
	case domain.CollectionFinancialData:
		payload = data.FinancialData
	case domain.CollectionFunds:
		payload = data.Funds
	case domain.CollectionCreditCards:
		payload = data.CreditCards
	case domain.CollectionSavingsGoals:
		payload = data.SavingsGoals
	case domain.CollectionCreditGoals:
		payload = data.CreditGoals
	case domain.CollectionTransactions:
		payload = data.Transactions
	default:
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", collection, err)
	}
	return raw, nil
}
