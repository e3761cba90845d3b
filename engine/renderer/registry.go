package renderer

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/jackal/engine/core"
)

// LiveResource describes a resource that has been created and not yet disposed.
type LiveResource struct {
	ID      uuid.UUID
	Kind    core.ResourceKind
	Handle  Handle
	Label   string
	Created time.Time

	seq uint64
}

// Registry tracks live GPU resources in debug contexts so leaks can be
// reported deterministically at shutdown.
type Registry struct {
	live map[uuid.UUID]*LiveResource
	seq  uint64
}

func NewRegistry() *Registry {
	return &Registry{
		live: make(map[uuid.UUID]*LiveResource),
	}
}

func (r *Registry) Track(kind core.ResourceKind, handle Handle, label string) uuid.UUID {
	id := uuid.New()
	r.seq++
	r.live[id] = &LiveResource{
		seq:     r.seq,
		ID:      id,
		Kind:    kind,
		Handle:  handle,
		Label:   label,
		Created: time.Now(),
	}
	return id
}

// Retarget records a new native handle after a reallocation.
func (r *Registry) Retarget(id uuid.UUID, handle Handle) {
	if res, ok := r.live[id]; ok {
		res.Handle = handle
	}
}

func (r *Registry) Relabel(id uuid.UUID, label string) {
	if res, ok := r.live[id]; ok {
		res.Label = label
	}
}

func (r *Registry) Untrack(id uuid.UUID) {
	delete(r.live, id)
}

func (r *Registry) Len() int {
	return len(r.live)
}

// Live returns the tracked resources, oldest first.
func (r *Registry) Live() []LiveResource {
	out := make([]LiveResource, 0, len(r.live))
	for _, res := range r.live {
		out = append(out, *res)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].seq < out[j].seq
	})
	return out
}

// Report logs every resource still alive and returns how many there are.
func (r *Registry) Report() int {
	leaks := r.Live()
	for _, res := range leaks {
		core.LogWarn("leaked %s %d (%s) created at %s, id %s", res.Kind, res.Handle, res.Label, res.Created.Format(time.RFC3339), res.ID)
	}
	return len(leaks)
}
