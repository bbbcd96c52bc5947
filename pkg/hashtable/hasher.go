package hashtable

// Hasher supplies the two capabilities a table needs from its key type: a
// 32-bit hash and an equality check. Equal must be consistent with Hash:
// keys that compare equal must hash identically.
type Hasher[K any] interface {
	Hash(key K) uint32
	Equal(a, b K) bool
}

// HasherFunc adapts a bare hash function into a [Hasher] for comparable key
// types, using == for equality.
type HasherFunc[K comparable] func(K) uint32

// Hash implements [Hasher].
func (f HasherFunc[K]) Hash(key K) uint32 { return f(key) }

// Equal implements [Hasher].
func (f HasherFunc[K]) Equal(a, b K) bool { return a == b }

// Ints returns a Hasher for int keys using a two-round multiplicative
// avalanche mix. The constant was picked for its avalanche behavior on
// 32-bit inputs.
func Ints() Hasher[int] {
	return HasherFunc[int](intHash)
}

func intHash(n int) uint32 {
	h := uint32(n)
	h = ((h >> 16) ^ h) * 0x45d9f3b
	h = ((h >> 16) ^ h) * 0x45d9f3b
	h = (h >> 16) ^ h
	return h
}

// Strings returns a Hasher for string keys using 32-bit FNV-1a.
func Strings() Hasher[string] {
	return HasherFunc[string](stringHash)
}

func stringHash(s string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime32
	}
	return h
}
