// Package hashtable implements a chained hash table whose chains all live in
// one shared slot arena. Buckets hold an arena index and a chain length
// instead of pointers, so the whole table is two flat allocations that
// survive growth without rewriting any links.
//
// Each occupied bucket records the slot of its chain head. Colliding keys
// are inserted immediately after the head, which keeps every bucket's chain
// a contiguous run in the arena's logical order; a lookup therefore walks
// exactly the bucket's recorded length.
//
// The bucket count is always a power of two so hashes can be masked instead
// of divided. Load is measured as the fraction of buckets in use, and once
// half the buckets are occupied the table rehashes into twice as many.
package hashtable

import (
	"iter"
	"math/bits"

	"github.com/listviz/listviz/pkg/arena"
	"github.com/listviz/listviz/pkg/errors"
)

const (
	// DefaultBucketCapacity is the starting bucket count when no option
	// overrides it.
	DefaultBucketCapacity = 32

	// DefaultPairCapacity is the starting pair arena capacity when no
	// option overrides it.
	DefaultPairCapacity = 10

	// maxLoadFactor is the occupied-bucket fraction that triggers a
	// doubling rehash.
	maxLoadFactor = 0.5

	// growFactor doubles both the bucket count and the pair arena on
	// rehash.
	growFactor = 2
)

// Pair is one key/value entry stored in the shared arena.
type Pair[K, V any] struct {
	Key   K
	Value V
}

// P builds a Pair, mostly as a convenience for [Of] literals.
func P[K, V any](key K, value V) Pair[K, V] {
	return Pair[K, V]{Key: key, Value: value}
}

type bucket struct {
	head arena.Index
	size int
}

// Table is a hash table from K to V. The zero value is not usable; create
// tables with [New] or [Of]. A Table must not be shared between goroutines
// without external synchronization.
type Table[K, V any] struct {
	hasher      Hasher[K]
	buckets     []bucket
	pairs       *arena.List[Pair[K, V]]
	bucketsUsed int
}

// Option configures table creation.
type Option func(*config)

type config struct {
	bucketCapacity int
	pairCapacity   int
}

// WithBucketCapacity sets the initial bucket count. The value is rounded up
// to the next power of two.
func WithBucketCapacity(n int) Option {
	return func(c *config) { c.bucketCapacity = n }
}

// WithPairCapacity sets the initial capacity of the shared pair arena.
func WithPairCapacity(n int) Option {
	return func(c *config) { c.pairCapacity = n }
}

// New creates an empty table using h for key hashing and equality.
func New[K, V any](h Hasher[K], opts ...Option) (*Table[K, V], error) {
	if h == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "hasher must not be nil")
	}

	cfg := config{
		bucketCapacity: DefaultBucketCapacity,
		pairCapacity:   DefaultPairCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bucketCapacity < 1 {
		return nil, errors.New(errors.ErrCodeInvalidArgument,
			"bucket capacity must be positive, got %d", cfg.bucketCapacity)
	}

	pairs, err := arena.New[Pair[K, V]](cfg.pairCapacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAllocFailed, err,
			"creating pair arena with capacity %d", cfg.pairCapacity)
	}

	return &Table[K, V]{
		hasher:  h,
		buckets: make([]bucket, ceilPow2(cfg.bucketCapacity)),
		pairs:   pairs,
	}, nil
}

// Of creates a table sized for the given pairs at half bucket occupancy and
// inserts them all. Duplicate keys keep the first occurrence.
func Of[K, V any](h Hasher[K], pairs ...Pair[K, V]) (*Table[K, V], error) {
	bucketCapacity := growFactor * len(pairs)
	if bucketCapacity < 1 {
		bucketCapacity = DefaultBucketCapacity
	}
	pairCapacity := len(pairs)
	if pairCapacity < 1 {
		pairCapacity = DefaultPairCapacity
	}

	t, err := New[K, V](h,
		WithBucketCapacity(bucketCapacity),
		WithPairCapacity(pairCapacity))
	if err != nil {
		return nil, err
	}

	for _, p := range pairs {
		if _, err := t.Insert(p.Key, p.Value); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err,
				"inserting initial pair")
		}
	}

	return t, nil
}

// ceilPow2 rounds n up to the nearest power of two.
func ceilPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// position masks a key's hash onto the bucket array.
func (t *Table[K, V]) position(key K) int {
	return int(t.hasher.Hash(key) & uint32(len(t.buckets)-1))
}

// lookupIndex returns the arena slot holding key and the key's bucket
// position. A miss returns [arena.End] with the position the key would use.
func (t *Table[K, V]) lookupIndex(key K) (arena.Index, int) {
	pos := t.position(key)
	b := t.buckets[pos]

	idx := b.head
	for n := 0; n < b.size; n++ {
		s, err := t.pairs.Slot(idx)
		if err != nil || s.Free {
			break
		}
		if t.hasher.Equal(s.Value.Key, key) {
			return idx, pos
		}
		idx = s.Next
	}

	return arena.End, pos
}

// Lookup returns the value stored under key.
func (t *Table[K, V]) Lookup(key K) (V, bool) {
	idx, _ := t.lookupIndex(key)
	if idx == arena.End {
		var zero V
		return zero, false
	}

	p, err := t.pairs.Value(idx)
	if err != nil {
		var zero V
		return zero, false
	}
	return p.Value, true
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	idx, _ := t.lookupIndex(key)
	return idx != arena.End
}

// Len returns the number of stored pairs.
func (t *Table[K, V]) Len() int {
	return t.pairs.Len()
}

// Insert stores value under key. It reports false without modifying the
// table when the key is already present.
//
// When the insert pushes bucket occupancy to half the bucket array, the
// table rehashes into double the buckets before returning. The pair is
// already stored if that rehash fails.
func (t *Table[K, V]) Insert(key K, value V) (bool, error) {
	idx, pos := t.lookupIndex(key)
	if idx != arena.End {
		return false, nil
	}

	b := &t.buckets[pos]
	if b.size > 0 {
		if _, err := t.pairs.InsertAfter(b.head, Pair[K, V]{Key: key, Value: value}); err != nil {
			return false, errors.Wrap(errors.ErrCodeInternal, err,
				"extending bucket chain at slot %d", b.head)
		}
	} else {
		head, err := t.pairs.PushBack(Pair[K, V]{Key: key, Value: value})
		if err != nil {
			return false, errors.Wrap(errors.ErrCodeInternal, err,
				"starting bucket chain")
		}
		b.head = head
		t.bucketsUsed++
	}
	b.size++

	if float64(t.bucketsUsed) >= maxLoadFactor*float64(len(t.buckets)) {
		if err := t.Rehash(len(t.buckets)*growFactor, t.pairs.Cap()*growFactor); err != nil {
			return true, errors.Wrap(errors.ErrCodeInternal, err,
				"rehashing after insert")
		}
	}

	return true, nil
}

// Delete removes key and reports whether it was present. The bucket array
// never shrinks.
func (t *Table[K, V]) Delete(key K) (bool, error) {
	idx, pos := t.lookupIndex(key)
	if idx == arena.End {
		return false, nil
	}

	b := &t.buckets[pos]

	// Removing the chain head promotes its logical successor, which is
	// the chain's second entry while the bucket stays occupied.
	var successor arena.Index
	if idx == b.head && b.size > 1 {
		next, err := t.pairs.Next(idx)
		if err != nil {
			return false, errors.Wrap(errors.ErrCodeInternal, err,
				"reading chain successor of slot %d", idx)
		}
		successor = next
	}

	if err := t.pairs.Delete(idx); err != nil {
		return false, errors.Wrap(errors.ErrCodeInternal, err,
			"deleting pair at slot %d", idx)
	}

	b.size--
	switch {
	case b.size == 0:
		b.head = arena.End
		t.bucketsUsed--
	case idx == b.head:
		b.head = successor
	}

	return true, nil
}

// Rehash rebuilds the table with the given bucket and pair capacities,
// reinserting every pair. On error the receiver is left unchanged. This is
// the only operation that moves keys between buckets.
func (t *Table[K, V]) Rehash(bucketCapacity, pairCapacity int) error {
	fresh, err := New[K, V](t.hasher,
		WithBucketCapacity(bucketCapacity),
		WithPairCapacity(pairCapacity))
	if err != nil {
		return errors.Wrap(errors.ErrCodeAllocFailed, err,
			"rehashing into %d buckets", bucketCapacity)
	}

	for k, v := range t.All() {
		if _, err := fresh.Insert(k, v); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err,
				"reinserting pair during rehash")
		}
	}

	*t = *fresh
	return nil
}

// All returns an iterator over every pair. Entries come out in pair arena
// order: chains of the same bucket are adjacent, with no ordering between
// buckets. The table must not be mutated during iteration.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range t.pairs.All() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// BucketCount returns the size of the bucket array.
func (t *Table[K, V]) BucketCount() int {
	return len(t.buckets)
}

// BucketsUsed returns how many buckets currently hold a chain.
func (t *Table[K, V]) BucketsUsed() int {
	return t.bucketsUsed
}

// Bucket exposes one bucket's chain head slot and length for introspection.
// Unoccupied buckets report [arena.End] and zero.
func (t *Table[K, V]) Bucket(i int) (head arena.Index, size int) {
	if i < 0 || i >= len(t.buckets) {
		return arena.End, 0
	}
	return t.buckets[i].head, t.buckets[i].size
}

// Pairs returns the shared pair arena for inspection of the table's
// physical layout. Treat it as read-only: mutating the list corrupts the
// bucket chains threaded through it.
func (t *Table[K, V]) Pairs() *arena.List[Pair[K, V]] {
	return t.pairs
}
