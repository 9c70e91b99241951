package glx

// Deleter is any owned GPU resource that can release its handles.
type Deleter interface {
	Delete()
}

// Arena collects GPU resources so a demo can release everything in one call
// at context teardown instead of leaking handles for the process lifetime.
type Arena struct {
	objs []Deleter
}

// Track registers resources for release. Returns the arena for chaining at
// setup time.
func (a *Arena) Track(objs ...Deleter) *Arena {
	a.objs = append(a.objs, objs...)
	return a
}

// Release deletes every tracked resource in reverse registration order and
// empties the arena. Must run while the GL context is still current.
func (a *Arena) Release() {
	for i := len(a.objs) - 1; i >= 0; i-- {
		a.objs[i].Delete()
	}
	a.objs = nil
}
