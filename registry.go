package cflag

import (
	"github.com/isobit/cflag/hashtable"
)

// registry maps flag names to the FlagSet's own copies of the descriptors.
type registry struct {
	table *hashtable.Table
}

func newRegistry(capacity int) (*registry, error) {
	table, err := hashtable.New(capacity)
	if err != nil {
		return nil, err
	}
	return &registry{table: table}, nil
}

func (r *registry) lookup(name string) *Flag {
	v, ok := r.table.GetString(name)
	if !ok {
		return nil
	}
	return v.(*Flag)
}

// add registers f under its name and returns the descriptor it replaced.
func (r *registry) add(f *Flag) *Flag {
	prev := r.table.PutString(f.Name, f)
	if prev == nil {
		return nil
	}
	return prev.(*Flag)
}

// visit calls fn in bucket order, which is not registration order.
func (r *registry) visit(fn func(f *Flag)) {
	r.table.Range(func(key []byte, value interface{}) {
		fn(value.(*Flag))
	})
}

func (r *registry) len() int {
	return r.table.Len()
}

func (r *registry) free() {
	r.table.Free()
}
