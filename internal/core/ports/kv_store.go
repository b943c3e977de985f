package ports

import "context"

// KVStore is a string key-value store. Implementations decide how keys are
// namespaced; callers pass fully qualified keys.
type KVStore interface {
	// GetItem returns the stored value and whether the key was present.
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
