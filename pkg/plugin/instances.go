package plugin

import (
	"sync"
	"sync/atomic"

	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

type instanceMap map[lv2.Handle]lv2.Instance

// Instances maps handles to live instances.
//
// Lookups read an immutable snapshot through an atomic pointer, so the
// audio thread never takes a lock. Add and Remove copy the map under a
// mutex; they only happen on the host's instantiation thread.
type Instances struct {
	mu       sync.Mutex
	snapshot atomic.Pointer[instanceMap]
	next     lv2.Handle
}

// NewInstances creates an empty table.
func NewInstances() *Instances {
	t := &Instances{next: 1}
	empty := instanceMap{}
	t.snapshot.Store(&empty)
	return t
}

// Add stores inst and returns its new handle. Handles are never reused.
func (t *Instances) Add(inst lv2.Instance) lv2.Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := t.next
	t.next++

	old := *t.snapshot.Load()
	m := make(instanceMap, len(old)+1)
	for k, v := range old {
		m[k] = v
	}
	m[h] = inst
	t.snapshot.Store(&m)
	return h
}

// Get returns the instance behind h, or nil.
func (t *Instances) Get(h lv2.Handle) lv2.Instance {
	if !h.Valid() {
		return nil
	}
	return (*t.snapshot.Load())[h]
}

// Remove forgets h and returns the instance it referred to, or nil.
func (t *Instances) Remove(h lv2.Handle) lv2.Instance {
	if !h.Valid() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	old := *t.snapshot.Load()
	inst, ok := old[h]
	if !ok {
		return nil
	}

	m := make(instanceMap, len(old))
	for k, v := range old {
		if k != h {
			m[k] = v
		}
	}
	t.snapshot.Store(&m)
	return inst
}

// Len returns the number of live instances.
func (t *Instances) Len() int {
	return len(*t.snapshot.Load())
}
