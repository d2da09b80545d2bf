package common

import "github.com/nspcc-dev/neo-go/pkg/interop/storage"

// GetInt returns integer stored by key or 0 if there is no such item.
func GetInt(ctx storage.Context, key any) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// PutInt stores positive n by key. Zero deletes the item so that absent
// and zero values are indistinguishable.
func PutInt(ctx storage.Context, key any, n int) {
	if n == 0 {
		storage.Delete(ctx, key)
		return
	}

	storage.Put(ctx, key, n)
}
