package mixin

import (
	"maps"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

type (
	// SlotKey identifies the hidden slot reserved by one
	// application of a Module.
	SlotKey string

	// KeySource issues SlotKey's unique within the process.
	KeySource interface {
		Next() (SlotKey, error)
	}

	// KeySourceFunc adapts a function to a KeySource.
	KeySourceFunc func() (SlotKey, error)

	counterKeys struct {
		next atomic.Uint64
	}

	randomKeys struct{}
)


func (f KeySourceFunc) Next() (SlotKey, error) {
	return f()
}


// counterKeys

func (c *counterKeys) Next() (SlotKey, error) {
	n := c.next.Add(1)
	if n == 0 {
		return "", &DuplicateApplicationKeyError{}
	}
	return SlotKey("slot:" + strconv.FormatUint(n, 10)), nil
}


// randomKeys

func (randomKeys) Next() (SlotKey, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return SlotKey("slot:" + id.String()), nil
}


// CounterKeys returns the KeySource issuing keys from the
// process-wide monotonic counter.
func CounterKeys() KeySource {
	return &counter
}

// RandomKeys returns a KeySource issuing random uuid keys.
func RandomKeys() KeySource {
	return randomKeys{}
}

// issueKey obtains the next key from source.
// Counter keys are unique by construction.  Keys from any other
// source are recorded in the process-wide registry so no key is
// ever handed out twice.
func issueKey(source KeySource) (SlotKey, error) {
	if source == nil {
		source = &counter
	}
	key, err := source.Next()
	if err != nil {
		return "", err
	}
	if _, ok := source.(*counterKeys); ok {
		return key, nil
	}
	if _, loaded := issued.LoadOrStore(key, struct{}{}); loaded {
		return "", &DuplicateApplicationKeyError{Key: key}
	}
	return key, nil
}


// Slot returns the private context held in the hidden slot.
func (o *Object) Slot(key SlotKey) (*Object, bool) {
	if o == nil {
		return nil, false
	}
	if slots := o.slots.Load(); slots != nil {
		ctx, ok := (*slots)[key]
		return ctx, ok
	}
	return nil, false
}

// SlotCount returns the number of materialized private contexts.
func (o *Object) SlotCount() int {
	if o == nil {
		return 0
	}
	if slots := o.slots.Load(); slots != nil {
		return len(*slots)
	}
	return 0
}

// Safekeep returns the private context kept by receiver under key,
// creating it from a proxy of the receiver on first use.
// The slot is hidden from enumeration and never replaced.
func Safekeep(receiver *Object, key SlotKey) (*Object, error) {
	ctx, _, err := safekeep(receiver, key)
	return ctx, err
}

func safekeep(receiver *Object, key SlotKey) (*Object, bool, error) {
	if receiver == nil {
		return nil, false, &InvalidReceiverError{}
	}
	if ctx, ok := receiver.Slot(key); ok {
		return ctx, false, nil
	}

	// Use copy-on-write idiom since reads should be more frequent than writes.
	receiver.slotLock.Lock()
	defer receiver.slotLock.Unlock()

	var slots map[SlotKey]*Object
	if current := receiver.slots.Load(); current != nil {
		if ctx, ok := (*current)[key]; ok {
			return ctx, false, nil
		}
		slots = maps.Clone(*current)
	} else {
		slots = make(map[SlotKey]*Object, 1)
	}

	ctx, err := NewProxy(receiver)
	if err != nil {
		return nil, false, err
	}
	slots[key] = ctx
	receiver.slots.Store(&slots)
	return ctx, true, nil
}

var (
	counter counterKeys
	issued  sync.Map
)
