package hashtable_test

import (
	"slices"
	"testing"

	"github.com/listviz/listviz/pkg/arena"
	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/hashtable"
)

// identity maps an int key straight onto the bucket mask, which makes
// bucket placement predictable in tests.
func identity() hashtable.Hasher[int] {
	return hashtable.HasherFunc[int](func(k int) uint32 { return uint32(k) })
}

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		ht, err := hashtable.New[string, int](hashtable.Strings())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if ht.BucketCount() != hashtable.DefaultBucketCapacity {
			t.Errorf("BucketCount() = %d, want %d", ht.BucketCount(), hashtable.DefaultBucketCapacity)
		}
		if ht.Len() != 0 {
			t.Errorf("Len() = %d, want 0", ht.Len())
		}
	})

	t.Run("rounds buckets to power of two", func(t *testing.T) {
		tests := []struct {
			capacity int
			want     int
		}{
			{capacity: 1, want: 1},
			{capacity: 3, want: 4},
			{capacity: 4, want: 4},
			{capacity: 5, want: 8},
			{capacity: 100, want: 128},
		}
		for _, tt := range tests {
			ht, err := hashtable.New[int, int](identity(),
				hashtable.WithBucketCapacity(tt.capacity))
			if err != nil {
				t.Fatalf("New(buckets=%d) error = %v", tt.capacity, err)
			}
			if ht.BucketCount() != tt.want {
				t.Errorf("BucketCount() = %d for capacity %d, want %d",
					ht.BucketCount(), tt.capacity, tt.want)
			}
		}
	})

	t.Run("nil hasher", func(t *testing.T) {
		if _, err := hashtable.New[int, int](nil); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("New(nil) error = %v, want code %s", err, errors.ErrCodeInvalidArgument)
		}
	})

	t.Run("invalid bucket capacity", func(t *testing.T) {
		_, err := hashtable.New[int, int](identity(), hashtable.WithBucketCapacity(0))
		if !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("New(buckets=0) error = %v, want code %s", err, errors.ErrCodeInvalidArgument)
		}
	})
}

func TestInsertLookup(t *testing.T) {
	ht, err := hashtable.New[string, int](hashtable.Strings())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	words := map[string]int{"one": 1, "two": 2, "three": 3}
	for k, v := range words {
		inserted, err := ht.Insert(k, v)
		if err != nil {
			t.Fatalf("Insert(%q) error = %v", k, err)
		}
		if !inserted {
			t.Errorf("Insert(%q) = false, want true", k)
		}
	}

	if ht.Len() != len(words) {
		t.Errorf("Len() = %d, want %d", ht.Len(), len(words))
	}

	for k, want := range words {
		got, ok := ht.Lookup(k)
		if !ok {
			t.Fatalf("Lookup(%q) = _, false, want true", k)
		}
		if got != want {
			t.Errorf("Lookup(%q) = %d, want %d", k, got, want)
		}
	}

	if _, ok := ht.Lookup("four"); ok {
		t.Error("Lookup(four) = _, true, want false")
	}
	if !ht.Contains("one") {
		t.Error("Contains(one) = false, want true")
	}
	if ht.Contains("four") {
		t.Error("Contains(four) = true, want false")
	}
}

func TestInsertDuplicate(t *testing.T) {
	ht, err := hashtable.New[string, int](hashtable.Strings())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := ht.Insert("key", 1); err != nil {
		t.Fatalf("Insert(key, 1) error = %v", err)
	}

	inserted, err := ht.Insert("key", 2)
	if err != nil {
		t.Fatalf("Insert(key, 2) error = %v", err)
	}
	if inserted {
		t.Error("Insert(key, 2) = true, want false")
	}

	// The first value wins; duplicates never overwrite.
	if got, _ := ht.Lookup("key"); got != 1 {
		t.Errorf("Lookup(key) = %d, want 1", got)
	}
	if ht.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ht.Len())
	}
}

func TestChainsStayContiguous(t *testing.T) {
	ht, err := hashtable.New[int, string](identity(),
		hashtable.WithBucketCapacity(16))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Keys 0, 16, 32 collide in bucket 0; keys 1, 17 collide in bucket 1.
	// Later keys chain directly after their bucket head, so each bucket
	// stays one contiguous run in arena order.
	for _, k := range []int{0, 16, 32, 1, 17} {
		if _, err := ht.Insert(k, "v"); err != nil {
			t.Fatalf("Insert(%d) error = %v", k, err)
		}
	}

	var order []int
	for k := range ht.All() {
		order = append(order, k)
	}
	want := []int{0, 32, 16, 1, 17}
	if !slices.Equal(order, want) {
		t.Errorf("All() key order = %v, want %v", order, want)
	}

	if used := ht.BucketsUsed(); used != 2 {
		t.Errorf("BucketsUsed() = %d, want 2", used)
	}
	if _, size := ht.Bucket(0); size != 3 {
		t.Errorf("Bucket(0) size = %d, want 3", size)
	}
}

func TestLoadFactorRehash(t *testing.T) {
	ht, err := hashtable.New[int, int](identity(),
		hashtable.WithBucketCapacity(3))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if ht.BucketCount() != 4 {
		t.Fatalf("BucketCount() = %d, want 4", ht.BucketCount())
	}

	// Four colliding keys occupy a single bucket, staying far below the
	// load threshold. The fifth key opens a second bucket, which pushes
	// occupancy to 2/4 and triggers exactly one doubling.
	for _, k := range []int{0, 4, 8, 12} {
		if _, err := ht.Insert(k, k*10); err != nil {
			t.Fatalf("Insert(%d) error = %v", k, err)
		}
	}
	if ht.BucketCount() != 4 {
		t.Errorf("BucketCount() = %d after colliding inserts, want 4", ht.BucketCount())
	}

	if _, err := ht.Insert(1, 10); err != nil {
		t.Fatalf("Insert(1) error = %v", err)
	}
	if ht.BucketCount() != 8 {
		t.Errorf("BucketCount() = %d after rehash, want 8", ht.BucketCount())
	}

	// With 8 buckets the same keys spread over 0, 4, and 1: three buckets
	// in use, still under the threshold.
	if used := ht.BucketsUsed(); used != 3 {
		t.Errorf("BucketsUsed() = %d after rehash, want 3", used)
	}

	for _, k := range []int{0, 4, 8, 12, 1} {
		got, ok := ht.Lookup(k)
		if !ok {
			t.Fatalf("Lookup(%d) after rehash = _, false, want true", k)
		}
		if got != k*10 {
			t.Errorf("Lookup(%d) = %d, want %d", k, got, k*10)
		}
	}
	if ht.Len() != 5 {
		t.Errorf("Len() = %d, want 5", ht.Len())
	}
}

func TestDelete(t *testing.T) {
	t.Run("absent key", func(t *testing.T) {
		ht, _ := hashtable.New[string, int](hashtable.Strings())
		deleted, err := ht.Delete("ghost")
		if err != nil {
			t.Fatalf("Delete(ghost) error = %v", err)
		}
		if deleted {
			t.Error("Delete(ghost) = true, want false")
		}
	})

	t.Run("chain head promotes successor", func(t *testing.T) {
		ht, _ := hashtable.New[int, string](identity(),
			hashtable.WithBucketCapacity(16))
		for _, k := range []int{0, 16, 32} {
			if _, err := ht.Insert(k, "v"); err != nil {
				t.Fatalf("Insert(%d) error = %v", k, err)
			}
		}

		// Key 0 is the chain head; removing it must keep 16 and 32
		// reachable through the promoted head.
		deleted, err := ht.Delete(0)
		if err != nil {
			t.Fatalf("Delete(0) error = %v", err)
		}
		if !deleted {
			t.Fatal("Delete(0) = false, want true")
		}

		for _, k := range []int{16, 32} {
			if !ht.Contains(k) {
				t.Errorf("Contains(%d) after head delete = false, want true", k)
			}
		}
		if ht.Contains(0) {
			t.Error("Contains(0) after delete = true, want false")
		}
		if _, size := ht.Bucket(0); size != 2 {
			t.Errorf("Bucket(0) size = %d, want 2", size)
		}
	})

	t.Run("emptying a bucket releases it", func(t *testing.T) {
		ht, _ := hashtable.New[int, string](identity(),
			hashtable.WithBucketCapacity(16))
		if _, err := ht.Insert(3, "v"); err != nil {
			t.Fatalf("Insert(3) error = %v", err)
		}
		if used := ht.BucketsUsed(); used != 1 {
			t.Fatalf("BucketsUsed() = %d, want 1", used)
		}

		if _, err := ht.Delete(3); err != nil {
			t.Fatalf("Delete(3) error = %v", err)
		}

		if used := ht.BucketsUsed(); used != 0 {
			t.Errorf("BucketsUsed() = %d after delete, want 0", used)
		}
		if head, size := ht.Bucket(3); head != arena.End || size != 0 {
			t.Errorf("Bucket(3) = (%d, %d), want (%d, 0)", head, size, arena.End)
		}

		// The bucket is usable again.
		if _, err := ht.Insert(3, "again"); err != nil {
			t.Fatalf("Insert(3) after delete error = %v", err)
		}
		if got, _ := ht.Lookup(3); got != "again" {
			t.Errorf("Lookup(3) = %q, want %q", got, "again")
		}
	})

	t.Run("empty table", func(t *testing.T) {
		ht, _ := hashtable.New[int, int](identity())
		deleted, err := ht.Delete(1)
		if err != nil {
			t.Fatalf("Delete(1) error = %v", err)
		}
		if deleted {
			t.Error("Delete(1) on empty table = true, want false")
		}
	})
}

func TestPairArenaGrowth(t *testing.T) {
	// A single overloaded bucket never moves the load factor, so the pair
	// arena has to grow several times while the bucket array stands still.
	ht, err := hashtable.New[int, int](identity(),
		hashtable.WithBucketCapacity(16),
		hashtable.WithPairCapacity(4))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	const n = 25
	for i := 0; i < n; i++ {
		if _, err := ht.Insert(i*16, i); err != nil {
			t.Fatalf("Insert(%d) error = %v", i*16, err)
		}
	}

	if ht.BucketCount() != 16 {
		t.Errorf("BucketCount() = %d, want 16", ht.BucketCount())
	}
	if ht.Len() != n {
		t.Errorf("Len() = %d, want %d", ht.Len(), n)
	}
	for i := 0; i < n; i++ {
		got, ok := ht.Lookup(i * 16)
		if !ok {
			t.Fatalf("Lookup(%d) = _, false, want true", i*16)
		}
		if got != i {
			t.Errorf("Lookup(%d) = %d, want %d", i*16, got, i)
		}
	}
}

func TestRehash(t *testing.T) {
	ht, err := hashtable.New[string, int](hashtable.Strings(),
		hashtable.WithBucketCapacity(64))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	words := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for i, w := range words {
		if _, err := ht.Insert(w, i); err != nil {
			t.Fatalf("Insert(%q) error = %v", w, err)
		}
	}

	if err := ht.Rehash(256, 64); err != nil {
		t.Fatalf("Rehash(256, 64) error = %v", err)
	}

	if ht.BucketCount() != 256 {
		t.Errorf("BucketCount() = %d, want 256", ht.BucketCount())
	}
	if ht.Len() != len(words) {
		t.Errorf("Len() = %d, want %d", ht.Len(), len(words))
	}
	for i, w := range words {
		got, ok := ht.Lookup(w)
		if !ok {
			t.Fatalf("Lookup(%q) after rehash = _, false, want true", w)
		}
		if got != i {
			t.Errorf("Lookup(%q) = %d, want %d", w, got, i)
		}
	}
}

func TestOf(t *testing.T) {
	ht, err := hashtable.Of(hashtable.Ints(),
		hashtable.P(1, "one"),
		hashtable.P(2, "two"),
		hashtable.P(3, "three"))
	if err != nil {
		t.Fatalf("Of() error = %v", err)
	}

	if ht.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ht.Len())
	}
	for k, want := range map[int]string{1: "one", 2: "two", 3: "three"} {
		got, ok := ht.Lookup(k)
		if !ok {
			t.Fatalf("Lookup(%d) = _, false, want true", k)
		}
		if got != want {
			t.Errorf("Lookup(%d) = %q, want %q", k, got, want)
		}
	}

	t.Run("empty", func(t *testing.T) {
		ht, err := hashtable.Of[int, string](hashtable.Ints())
		if err != nil {
			t.Fatalf("Of() error = %v", err)
		}
		if ht.Len() != 0 {
			t.Errorf("Len() = %d, want 0", ht.Len())
		}
	})
}

func TestHashers(t *testing.T) {
	t.Run("ints spread", func(t *testing.T) {
		h := hashtable.Ints()
		seen := make(map[uint32]bool)
		for i := 0; i < 100; i++ {
			seen[h.Hash(i)] = true
		}
		if len(seen) != 100 {
			t.Errorf("Ints() produced %d distinct hashes for 100 keys, want 100", len(seen))
		}
		if !h.Equal(7, 7) || h.Equal(7, 8) {
			t.Error("Ints() equality is inconsistent with ==")
		}
	})

	t.Run("strings deterministic", func(t *testing.T) {
		h := hashtable.Strings()
		if h.Hash("graph") != h.Hash("graph") {
			t.Error("Strings() hash is not deterministic")
		}
		if h.Hash("graph") == h.Hash("grapg") {
			t.Error("Strings() hash ignores the final byte")
		}
	})
}
