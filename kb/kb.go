package kb

import (
	"fmt"
	"sort"
	"sync"

	"github.com/signalsfoundry/footprint-geometry/model"
)

// Event is emitted to subscribers after a station is added.
type Event struct {
	Station *model.Station
	Total   int // catalog size after the change
}

// Catalog is an in-memory, thread-safe store of ground stations keyed by ID.
// Stations are immutable once built, so the catalog hands out the stored
// pointers directly.
type Catalog struct {
	mu sync.RWMutex

	stations map[string]*model.Station

	subs   map[uint64]func(Event)
	nextID uint64
}

// NewCatalog constructs an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		stations: make(map[string]*model.Station),
		subs:     make(map[uint64]func(Event)),
	}
}

// AddStation adds a station. It returns an error if the ID is empty or
// already present.
func (c *Catalog) AddStation(st *model.Station) error {
	if st == nil || st.ID == "" {
		return fmt.Errorf("nil station or empty station ID")
	}

	c.mu.Lock()
	if _, exists := c.stations[st.ID]; exists {
		c.mu.Unlock()
		return fmt.Errorf("station with ID %q already exists", st.ID)
	}
	c.stations[st.ID] = st
	ev := Event{Station: st, Total: len(c.stations)}
	subs := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	// Notify subscribers outside the lock to avoid deadlocks.
	for _, sub := range subs {
		sub(ev)
	}
	return nil
}

// AddStations adds every station, stopping at the first failure.
func (c *Catalog) AddStations(stations []*model.Station) error {
	for _, st := range stations {
		if err := c.AddStation(st); err != nil {
			return err
		}
	}
	return nil
}

// ListStations returns a snapshot of all stations ordered by ID.
func (c *Catalog) ListStations() []*model.Station {
	c.mu.RLock()
	res := make([]*model.Station, 0, len(c.stations))
	for _, st := range c.stations {
		res = append(res, st)
	}
	c.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res
}

// Len is the number of stations in the catalog.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.stations)
}

// Subscribe registers a callback for catalog events. The returned function
// removes it and is safe to call more than once.
func (c *Catalog) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subs, id)
	}
}
