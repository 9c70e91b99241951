package glx

import "github.com/go-gl/gl/v4.1-core/gl"

// FrameTimer measures GPU frame time with a ring of GL_TIME_ELAPSED queries.
// Results arrive a few frames late; Poll drains whatever is ready without
// stalling the pipeline.
type FrameTimer struct {
	queries []timerQuery
}

type timerQuery struct {
	id        uint32
	available bool
}

// Begin starts timing the current frame, reusing a finished query object or
// allocating a new one when all are still in flight.
func (t *FrameTimer) Begin() {
	for i := range t.queries {
		if t.queries[i].available {
			t.queries[i].available = false
			gl.BeginQuery(gl.TIME_ELAPSED, t.queries[i].id)
			return
		}
	}
	var id uint32
	gl.GenQueries(1, &id)
	t.queries = append(t.queries, timerQuery{id: id})
	gl.BeginQuery(gl.TIME_ELAPSED, id)
}

func (t *FrameTimer) End() {
	gl.EndQuery(gl.TIME_ELAPSED)
}

// Poll returns the GPU times (seconds) of all frames whose results are ready.
func (t *FrameTimer) Poll() []float64 {
	var out []float64
	for i := range t.queries {
		if t.queries[i].available {
			continue
		}
		var ready int32
		gl.GetQueryObjectiv(t.queries[i].id, gl.QUERY_RESULT_AVAILABLE, &ready)
		if ready == gl.TRUE {
			var ns uint64
			gl.GetQueryObjectui64v(t.queries[i].id, gl.QUERY_RESULT, &ns)
			out = append(out, float64(ns)*1e-9)
			t.queries[i].available = true
		}
	}
	return out
}

// InFlight reports how many queries are still awaiting results.
func (t *FrameTimer) InFlight() int {
	n := 0
	for i := range t.queries {
		if !t.queries[i].available {
			n++
		}
	}
	return n
}

func (t *FrameTimer) Delete() {
	for i := range t.queries {
		gl.DeleteQueries(1, &t.queries[i].id)
	}
	t.queries = nil
}
