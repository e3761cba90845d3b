package renderer

import (
	"fmt"
	"runtime"

	"github.com/google/uuid"

	"github.com/spaghettifunk/jackal/engine/core"
)

// tracked is implemented by every GPU resource wrapper.
type tracked interface {
	base() *resource
}

// resource holds the lifecycle state shared by all GPU resources.
// A resource is Live from construction until Dispose, then Released.
type resource struct {
	ctx      *Context
	kind     core.ResourceKind
	handle   Handle
	label    string
	id       uuid.UUID
	released bool
	// bumped each time the native object is replaced
	generation uint64
}

func (r *resource) base() *resource {
	return r
}

// track registers the resource as live. owner must be the pointer returned
// to the caller so the leak warning fires when it becomes unreachable.
func (r *resource) track(ctx *Context, kind core.ResourceKind, handle Handle, label string, owner tracked) {
	r.ctx = ctx
	r.kind = kind
	r.handle = handle
	r.label = label
	if ctx.Registry != nil {
		r.id = ctx.Registry.Track(kind, handle, label)
	}
	runtime.SetFinalizer(owner, warnLeak)
}

// warnLeak runs on the finalizer goroutine where no GL context is current,
// so it only reports.
func warnLeak(t tracked) {
	r := t.base()
	if !r.released {
		core.LogWarn("%s %d (%s) was garbage collected without Dispose", r.kind, r.handle, r.label)
	}
}

// Handle returns the native handle, or InvalidHandle once released.
func (r *resource) Handle() Handle {
	if r.released {
		return InvalidHandle
	}
	return r.handle
}

// Generation counts how many times the native object was reallocated.
func (r *resource) Generation() uint64 {
	return r.generation
}

func (r *resource) Released() bool {
	return r.released
}

// live reports whether the resource may be used, logging a warning when it
// may not.
func (r *resource) live(op string) bool {
	if r.released {
		core.LogWarn("%s %d (%s): %s after Dispose ignored", r.kind, r.handle, r.label, op)
		return false
	}
	return true
}

func (r *resource) releasedError(op string) error {
	core.LogWarn("%s %d (%s): %s after Dispose rejected", r.kind, r.handle, r.label, op)
	return fmt.Errorf("%s %s: %w", r.kind, op, core.ErrResourceReleased)
}

func (r *resource) relabel(label string) {
	r.label = label
	if r.ctx.Registry != nil {
		r.ctx.Registry.Relabel(r.id, label)
	}
}

func (r *resource) retarget(handle Handle) {
	r.handle = handle
	r.generation++
	if r.ctx.Registry != nil {
		r.ctx.Registry.Retarget(r.id, handle)
	}
}

// release marks the resource as Released. It returns false when that
// already happened, in which case the caller must not free anything.
func (r *resource) release(owner tracked) bool {
	if r.released {
		return false
	}
	r.released = true
	if r.ctx.Registry != nil {
		r.ctx.Registry.Untrack(r.id)
	}
	runtime.SetFinalizer(owner, nil)
	return true
}
