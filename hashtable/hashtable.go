// Package hashtable implements a byte-string keyed hash table with separate
// chaining. The bucket array is sized once at construction and never
// rehashed.
//
// The default hash is a plain multiply-by-31 accumulation. It is unkeyed and
// not collision resistant, so a Table must not be fed keys chosen by an
// adversary.
package hashtable

import (
	"bytes"
	"math"

	"github.com/pkg/errors"
)

// KeyString is a key length sentinel meaning "the key is NUL terminated
// text". The hash function scans up to the first NUL byte (or the end of the
// slice) and reports the discovered length.
const KeyString = -1

const (
	minBuckets = 1<<4 - 1
	maxBuckets = math.MaxUint32
)

// ErrAllocation is returned by New when the bucket array cannot be obtained.
var ErrAllocation = errors.New("hashtable: bucket array allocation failed")

// HashFunc hashes the first klen bytes of key. When klen is KeyString it
// hashes until a NUL byte and returns the length it found; otherwise n is
// klen.
type HashFunc func(key []byte, klen int) (hash uint32, n int)

// Destructor releases a value when the table is freed.
type Destructor func(value interface{})

// DefaultHash is the left-to-right polynomial hash: h = h*31 + b. A klen
// outside [0, len(key)] other than KeyString is clamped to that range.
func DefaultHash(key []byte, klen int) (uint32, int) {
	var h uint32
	klen = clampLen(key, klen)
	if klen == KeyString {
		n := 0
		for ; n < len(key) && key[n] != 0; n++ {
			h = h*31 + uint32(key[n])
		}
		return h, n
	}
	for _, b := range key[:klen] {
		h = h*31 + uint32(b)
	}
	return h, klen
}

// clampLen bounds klen to the key, leaving KeyString alone.
func clampLen(key []byte, klen int) int {
	switch {
	case klen == KeyString:
		return klen
	case klen < 0:
		return 0
	case klen > len(key):
		return len(key)
	}
	return klen
}

type entry struct {
	key   []byte
	value interface{}
	next  *entry
}

// Table is a chained hash table. The zero value is not usable; use New.
type Table struct {
	buckets []*entry
	size    uint32
	count   int
	hash    HashFunc
	destroy Destructor
}

// Option configures a Table at construction.
type Option interface {
	Apply(t *Table)
}

type optionFunc func(t *Table)

func (of optionFunc) Apply(t *Table) {
	of(t)
}

// WithHash replaces DefaultHash.
func WithHash(hash HashFunc) Option {
	return optionFunc(func(t *Table) {
		t.hash = hash
	})
}

// WithDestructor sets the callback invoked on every value by Free.
func WithDestructor(destroy Destructor) Option {
	return optionFunc(func(t *Table) {
		t.destroy = destroy
	})
}

// BucketCount returns the smallest value of the form 2^n-1, 4 <= n <= 32,
// that is at least capacity.
func BucketCount(capacity int) uint32 {
	size := uint64(minBuckets)
	for size < maxBuckets && size < uint64(max(capacity, 0)) {
		size = size*2 + 1
	}
	return uint32(size)
}

// New creates a table able to hold capacity entries with short chains. The
// number of buckets is BucketCount(capacity); hashes are masked with it, so
// bucket indexes run from 0 to Size() inclusive.
func New(capacity int, opts ...Option) (*Table, error) {
	t := &Table{
		size: BucketCount(capacity),
		hash: DefaultHash,
	}
	for _, opt := range opts {
		opt.Apply(t)
	}

	buckets, err := allocBuckets(uint64(t.size) + 1)
	if err != nil {
		return nil, err
	}
	t.buckets = buckets
	return t, nil
}

func allocBuckets(n uint64) (buckets []*entry, err error) {
	if n > math.MaxInt {
		return nil, errors.Wrapf(ErrAllocation, "%d buckets exceed the address space", n)
	}
	defer func() {
		if r := recover(); r != nil {
			buckets = nil
			err = errors.Wrapf(ErrAllocation, "%v", r)
		}
	}()
	return make([]*entry, n), nil
}

// Size returns the bucket mask, a value of the form 2^n-1.
func (t *Table) Size() uint32 {
	return t.size
}

// Len returns the number of live entries.
func (t *Table) Len() int {
	return t.count
}

// find returns the link pointing at the entry for key, or the nil link at the
// end of its chain. klen is normalized to the real key length, and bounded
// by len(key) even when a custom HashFunc reports more.
func (t *Table) find(key []byte, klen int) (link **entry, idx uint32, n int) {
	h, n := t.hash(key, clampLen(key, klen))
	if n = clampLen(key, n); n == KeyString {
		n = 0
	}
	idx = h & t.size
	link = &t.buckets[idx]
	for *link != nil {
		e := *link
		if len(e.key) == n && bytes.Equal(e.key, key[:n]) {
			break
		}
		link = &e.next
	}
	return link, idx, n
}

// Get returns the value stored under the first klen bytes of key. A klen
// other than KeyString is clamped to [0, len(key)].
func (t *Table) Get(key []byte, klen int) (interface{}, bool) {
	if t.buckets == nil {
		return nil, false
	}
	link, _, _ := t.find(key, klen)
	if *link == nil {
		return nil, false
	}
	return (*link).value, true
}

// Put stores value under key and returns the value it replaced, or nil if
// the key was new. A nil value is ignored and Put returns nil.
//
// New keys are copied and prepended to their bucket chain, so within one
// bucket the most recent insert is found first.
func (t *Table) Put(key []byte, klen int, value interface{}) interface{} {
	if value == nil {
		return nil
	}
	if t.buckets == nil {
		panic("hashtable: put on freed table")
	}

	link, idx, n := t.find(key, klen)
	if e := *link; e != nil {
		prev := e.value
		e.value = value
		return prev
	}

	k := make([]byte, n)
	copy(k, key)
	t.buckets[idx] = &entry{
		key:   k,
		value: value,
		next:  t.buckets[idx],
	}
	t.count++
	return nil
}

// Delete unlinks key and returns its value for the caller to dispose of. The
// destructor is not invoked.
func (t *Table) Delete(key []byte, klen int) (interface{}, bool) {
	if t.buckets == nil {
		return nil, false
	}
	link, _, _ := t.find(key, klen)
	e := *link
	if e == nil {
		return nil, false
	}
	*link = e.next
	e.next = nil
	t.count--
	return e.value, true
}

// Range calls fn for every entry in bucket index order, then chain order.
// The next link is read before fn runs, so fn may delete the entry it was
// handed.
func (t *Table) Range(fn func(key []byte, value interface{})) {
	for _, e := range t.buckets {
		for e != nil {
			next := e.next
			fn(e.key, e.value)
			e = next
		}
	}
}

// Free passes every value to the destructor, if one is set, and drops the
// bucket array. A freed table behaves as empty; Put on it panics.
func (t *Table) Free() {
	for i, e := range t.buckets {
		for e != nil {
			next := e.next
			if t.destroy != nil {
				t.destroy(e.value)
			}
			e.next = nil
			e = next
		}
		t.buckets[i] = nil
	}
	t.buckets = nil
	t.count = 0
}

// GetString is Get for a string key.
func (t *Table) GetString(key string) (interface{}, bool) {
	return t.Get([]byte(key), len(key))
}

// PutString is Put for a string key.
func (t *Table) PutString(key string, value interface{}) interface{} {
	return t.Put([]byte(key), len(key), value)
}

// DeleteString is Delete for a string key.
func (t *Table) DeleteString(key string) (interface{}, bool) {
	return t.Delete([]byte(key), len(key))
}
