package api

import "sync"

// Resource names a set of gateway data a caller may have cached.
type Resource string

// ResourceSummaries covers the summary list and every summary detail.
const ResourceSummaries Resource = "summaries"

type invalidator struct {
	lock   sync.Mutex
	nextID int
	subs   map[int]func(Resource)
}

func newInvalidator() *invalidator {
	return &invalidator{subs: make(map[int]func(Resource))}
}

func (i *invalidator) subscribe(fn func(Resource)) func() {
	i.lock.Lock()
	defer i.lock.Unlock()
	id := i.nextID
	i.nextID++
	i.subs[id] = fn
	return func() {
		i.lock.Lock()
		defer i.lock.Unlock()
		delete(i.subs, id)
	}
}

func (i *invalidator) emit(r Resource) {
	i.lock.Lock()
	subs := make([]func(Resource), 0, len(i.subs))
	for _, fn := range i.subs {
		subs = append(subs, fn)
	}
	i.lock.Unlock()

	for _, fn := range subs {
		fn(r)
	}
}

// OnInvalidate registers fn to be told when a successful call changed a resource.
// The returned function removes the subscription.
func (c *Client) OnInvalidate(fn func(Resource)) (unsubscribe func()) {
	return c.invalidator.subscribe(fn)
}
