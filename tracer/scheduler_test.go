package tracer

import (
	"testing"
	"time"
)

func TestNaiveScheduler(t *testing.T) {
	type spec struct {
		speed1   uint32
		speed2   uint32
		numRays  uint32
		expRays1 uint32
		expRays2 uint32
	}
	specs := []spec{
		{1, 2, 1000, 334, 666},
		{2, 1, 1000, 667, 333},
		{1, 1000, 1000, 1, 999},
	}

	for index, s := range specs {
		tr1 := makeMockTracer("mock-1", s.speed1)
		tr2 := makeMockTracer("mock-2", s.speed2)
		tracers := []Tracer{tr1, tr2}

		sch := NewNaiveScheduler()
		blockAssignment := sch.Schedule(tracers, s.numRays)

		if blockAssignment[0] != s.expRays1 {
			t.Fatalf("[spec %d] expected tracer 0 to be assigned %d rays; got %d", index, s.expRays1, blockAssignment[0])
		}

		if blockAssignment[1] != s.expRays2 {
			t.Fatalf("[spec %d] expected tracer 1 to be assigned %d rays; got %d", index, s.expRays2, blockAssignment[1])
		}

		if blockAssignment[0]+blockAssignment[1] != s.numRays {
			t.Fatalf("[spec %d] assignments sum to %d; expected %d", index, blockAssignment[0]+blockAssignment[1], s.numRays)
		}
	}
}

func TestNaiveSchedulerSmallBatch(t *testing.T) {
	type spec struct {
		numTracers int
		numRays    uint32
		expBlocks  []uint32
	}
	specs := []spec{
		// More tracers than rays: trailing blocks empty out, no wrap.
		{3, 1, []uint32{1, 0, 0}},
		{4, 2, []uint32{1, 1, 0, 0}},
		{2, 1, []uint32{1, 0}},
		{3, 3, []uint32{1, 1, 1}},
	}

	for index, s := range specs {
		tracers := make([]Tracer, s.numTracers)
		for idx := range tracers {
			tracers[idx] = makeMockTracer("mock", 1)
		}

		sch := NewNaiveScheduler()
		blockAssignment := sch.Schedule(tracers, s.numRays)

		var sum uint32
		for idx, block := range blockAssignment {
			if block != s.expBlocks[idx] {
				t.Fatalf("[spec %d] expected tracer %d to be assigned %d rays; got %d", index, idx, s.expBlocks[idx], block)
			}
			sum += block
		}
		if sum != s.numRays {
			t.Fatalf("[spec %d] assignments sum to %d; expected %d", index, sum, s.numRays)
		}
	}
}

func TestPerfectSchedulerUnusableFeedback(t *testing.T) {
	tr1 := makeMockTracer("mock-1", 1)
	tr2 := makeMockTracer("mock-2", 1)
	tracers := []Tracer{tr1, tr2}

	sch := NewPerfectScheduler()
	sch.Schedule(tracers, 1000)

	// A tracer that reports a zero batch time must not poison the
	// ratios; the call falls back to the naive split.
	tr1.stats = &Stats{NumRays: 500, BatchTime: 0}
	tr2.stats = &Stats{NumRays: 500, BatchTime: time.Duration(5)}

	blockAssignment := sch.Schedule(tracers, 1000)
	if blockAssignment[0] != 500 || blockAssignment[1] != 500 {
		t.Fatalf("expected fallback to the naive split (500, 500); got (%d, %d)", blockAssignment[0], blockAssignment[1])
	}
	if blockAssignment[0]+blockAssignment[1] != 1000 {
		t.Fatalf("assignments sum to %d; expected 1000", blockAssignment[0]+blockAssignment[1])
	}
}

func TestPerfectScheduler(t *testing.T) {
	type spec struct {
		numRays  uint32
		bTime1   time.Duration
		bTime2   time.Duration
		expRays1 uint32
		expRays2 uint32
	}
	specs := []spec{
		// First call always behaves like the naive scheduler
		{1000, time.Duration(1), time.Duration(5), 500, 500},
		// Second call should use the batch times to assign rays
		{1000, time.Duration(1), time.Duration(5), 834, 166},
		// This time tracer 2 performed much better
		{1000, time.Duration(5), time.Duration(1), 502, 498},
	}

	// Tracers have same speed
	tr1 := makeMockTracer("mock-1", 1)
	tr2 := makeMockTracer("mock-2", 1)
	tracers := []Tracer{tr1, tr2}

	sch := NewPerfectScheduler()
	var lastAssignment []uint32
	for index, s := range specs {
		// Feed the previous block assignment back as the last batch
		// statistics, timed with this spec's batch times.
		if lastAssignment != nil {
			tr1.stats = &Stats{NumRays: lastAssignment[0], BatchTime: s.bTime1}
			tr2.stats = &Stats{NumRays: lastAssignment[1], BatchTime: s.bTime2}
		}

		blockAssignment := sch.Schedule(tracers, s.numRays)

		if blockAssignment[0] != s.expRays1 {
			t.Fatalf("[spec %d] expected tracer 0 to be assigned %d rays; got %d", index, s.expRays1, blockAssignment[0])
		}

		if blockAssignment[1] != s.expRays2 {
			t.Fatalf("[spec %d] expected tracer 1 to be assigned %d rays; got %d", index, s.expRays2, blockAssignment[1])
		}

		lastAssignment = append(lastAssignment[:0], blockAssignment...)
	}
}

type mockTracer struct {
	id    string
	speed uint32
	stats *Stats
}

func makeMockTracer(id string, speed uint32) *mockTracer {
	return &mockTracer{
		id:    id,
		speed: speed,
		stats: &Stats{},
	}
}

func (tr *mockTracer) Id() string                         { return tr.id }
func (tr *mockTracer) Close()                             {}
func (tr *mockTracer) Speed() uint32                      { return tr.speed }
func (tr *mockTracer) Setup(_ *RayBatch) error            { return nil }
func (tr *mockTracer) Enqueue(_ BatchRequest)             {}
func (tr *mockTracer) Update(_ UpdateType, _ interface{}) {}
func (tr *mockTracer) Stats() *Stats                      { return tr.stats }
