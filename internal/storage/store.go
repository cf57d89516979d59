// Package storage persists the dashboard bundle to a key-value store.
//
// Each bundle field lives under its own namespaced key. A missing key means
// "use the default" (empty list, zero balance, no streak) and is never an
// error; a present value that cannot be decoded is.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"lifeos/internal/core"
)

const (
	KeyTasks         = "lifeOS_tasks"
	KeyTransactions  = "lifeOS_transactions"
	KeyBalance       = "lifeOS_balance"
	KeyStreak        = "lifeOS_streak"
	KeyLastHabitDate = "lifeOS_lastHabitDate"
)

// Keys lists every key used by the bundle.
var Keys = []string{KeyTasks, KeyTransactions, KeyBalance, KeyStreak, KeyLastHabitDate}

// Ports for persistence backends.
type (
	Loader interface {
		Load(ctx context.Context) (core.Bundle, error)
	}

	Saver interface {
		Save(ctx context.Context, b core.Bundle) error
	}

	Store interface {
		Loader
		Saver
	}

	// KV is the primitive a backend has to provide.
	KV interface {
		// Get returns the values of the keys that exist.
		Get(ctx context.Context, keys []string) (map[string]string, error)
		// Apply writes set and removes del as one unit where the backend allows it.
		Apply(ctx context.Context, set map[string]string, del []string) error
	}
)

// KVStore implements Store on top of a KV backend.
type KVStore struct {
	kv KV
}

var _ Store = (*KVStore)(nil)

func NewKVStore(kv KV) *KVStore {
	return &KVStore{kv: kv}
}

func (s *KVStore) Load(ctx context.Context) (core.Bundle, error) {
	values, err := s.kv.Get(ctx, Keys)
	if err != nil {
		return core.Bundle{}, fmt.Errorf("read keys: %w", err)
	}
	return Decode(values)
}

func (s *KVStore) Save(ctx context.Context, b core.Bundle) error {
	set, del, err := Encode(b)
	if err != nil {
		return err
	}
	if err := s.kv.Apply(ctx, set, del); err != nil {
		return fmt.Errorf("write keys: %w", err)
	}
	return nil
}

// Encode splits a bundle into key/value pairs. The last habit date key is
// listed for deletion when the date is unset, so a reset streak does not
// come back on the next load.
func Encode(b core.Bundle) (set map[string]string, del []string, err error) {
	tasks := b.Tasks
	if tasks == nil {
		tasks = []core.Task{}
	}
	txs := b.Transactions
	if txs == nil {
		txs = []core.Transaction{}
	}

	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", KeyTasks, err)
	}
	txsJSON, err := json.Marshal(txs)
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", KeyTransactions, err)
	}
	balance, err := b.Balance.MarshalJSON()
	if err != nil {
		return nil, nil, fmt.Errorf("encode %s: %w", KeyBalance, err)
	}

	set = map[string]string{
		KeyTasks:        string(tasksJSON),
		KeyTransactions: string(txsJSON),
		KeyBalance:      string(balance),
		KeyStreak:       strconv.Itoa(b.Streak),
	}
	if b.LastHabitDate != nil {
		set[KeyLastHabitDate] = b.LastHabitDate.Format(time.RFC3339Nano)
	} else {
		del = append(del, KeyLastHabitDate)
	}
	return set, del, nil
}

// Decode rebuilds a bundle from stored values. Missing keys keep defaults.
func Decode(values map[string]string) (core.Bundle, error) {
	var b core.Bundle

	if v, ok := values[KeyTasks]; ok {
		if err := json.Unmarshal([]byte(v), &b.Tasks); err != nil {
			return core.Bundle{}, fmt.Errorf("decode %s: %w", KeyTasks, err)
		}
		for i, t := range b.Tasks {
			t = t.Normalize()
			if err := t.Validate(); err != nil {
				return core.Bundle{}, fmt.Errorf("decode %s: task %d: %w", KeyTasks, t.ID, err)
			}
			b.Tasks[i] = t
		}
	}
	if v, ok := values[KeyTransactions]; ok {
		if err := json.Unmarshal([]byte(v), &b.Transactions); err != nil {
			return core.Bundle{}, fmt.Errorf("decode %s: %w", KeyTransactions, err)
		}
		for _, tx := range b.Transactions {
			if err := tx.Validate(); err != nil {
				return core.Bundle{}, fmt.Errorf("decode %s: transaction %d: %w", KeyTransactions, tx.ID, err)
			}
		}
	}
	if v, ok := values[KeyBalance]; ok {
		if err := b.Balance.UnmarshalJSON([]byte(v)); err != nil {
			return core.Bundle{}, fmt.Errorf("decode %s: %w", KeyBalance, err)
		}
	}
	if v, ok := values[KeyStreak]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return core.Bundle{}, fmt.Errorf("decode %s: invalid streak %q", KeyStreak, v)
		}
		b.Streak = n
	}
	if v, ok := values[KeyLastHabitDate]; ok {
		d, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return core.Bundle{}, fmt.Errorf("decode %s: %w", KeyLastHabitDate, err)
		}
		b.LastHabitDate = &d
	}
	return b, nil
}
