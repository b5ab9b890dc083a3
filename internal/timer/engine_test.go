package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, p Params) *Engine {
	t.Helper()
	e, err := NewEngine(p)
	require.NoError(t, err)
	return e
}

// tickN вызывает Tick n раз и собирает все события
func tickN(t *testing.T, e *Engine, n int) []Event {
	t.Helper()
	var all []Event
	for range n {
		events, ok := e.Tick()
		require.True(t, ok, "tick must be accepted in state %s", e.State())
		all = append(all, events...)
	}
	return all
}

func countKind(events []Event, kind EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func countCue(events []Event, s Signal) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == EventCue && ev.Signal == s {
			n++
		}
	}
	return n
}

func TestNewEngine_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{name: "single set", params: Params{TotalSets: 1, InitialCountdown: 10}},
		{name: "zero durations allowed", params: Params{TotalSets: 3}},
		{name: "zero sets", params: Params{TotalSets: 0}, wantErr: true},
		{name: "negative rest", params: Params{TotalSets: 2, RestTime: -1}, wantErr: true},
		{name: "negative countdown", params: Params{TotalSets: 2, InitialCountdown: -5}, wantErr: true},
		{name: "negative threshold", params: Params{TotalSets: 2, WarnThreshold: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.params)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StateIdle, e.State())
			assert.Equal(t, 0, e.CurrentSet())
		})
	}
}

func TestEngine_TwoSetScenario(t *testing.T) {
	e := newTestEngine(t, Params{TotalSets: 2, InitialCountdown: 10, RestTime: 30, WarnThreshold: 10})

	events, ok := e.Start()
	require.True(t, ok)
	assert.Equal(t, StatePreparing, e.State())
	assert.Equal(t, 1, e.CurrentSet())
	assert.Equal(t, 10, e.Seconds())
	assert.Equal(t, 1, countKind(events, EventClockStarted))

	events = tickN(t, e, 9)
	assert.Equal(t, StatePreparing, e.State(), "после 9 тиков отсчет еще идет")
	assert.Equal(t, 1, e.Seconds())
	assert.Equal(t, 0, countCue(events, SignalCountdown), "короткие сигналы только в отдыхе")

	events = tickN(t, e, 1)
	assert.Equal(t, StateAwaitingConfirm, e.State())
	assert.Equal(t, 0, e.Seconds())
	assert.Equal(t, 1, countCue(events, SignalPhaseEnd))

	tickN(t, e, 42)
	pending, ok := e.PendingSet()
	require.True(t, ok)
	assert.Equal(t, PendingSet{SetNumber: 1, Duration: 42}, pending)

	_, ok = e.ConfirmSet()
	require.True(t, ok)
	assert.Equal(t, StateResting, e.State())
	assert.Equal(t, 2, e.CurrentSet())
	assert.Equal(t, 30, e.Seconds())

	events = tickN(t, e, 29)
	assert.Equal(t, StateResting, e.State())
	assert.Equal(t, 10, countCue(events, SignalCountdown), "сигналы на 10..1 секундах отдыха")

	events = tickN(t, e, 1)
	assert.Equal(t, StateAwaitingConfirm, e.State())
	assert.Equal(t, 1, countCue(events, SignalPhaseEnd))

	tickN(t, e, 37)
	pending, ok = e.PendingSet()
	require.True(t, ok)
	assert.Equal(t, PendingSet{SetNumber: 2, Duration: 37}, pending)

	events, ok = e.ConfirmSet()
	require.True(t, ok)
	assert.Equal(t, StateFinished, e.State())
	assert.Equal(t, 1, countKind(events, EventClockStopped))

	_, ok = e.Tick()
	assert.False(t, ok, "после завершения тики игнорируются")
}

func TestEngine_TotalSetsTermination(t *testing.T) {
	for k := 1; k <= 6; k++ {
		e := newTestEngine(t, Params{TotalSets: k, InitialCountdown: 3, RestTime: 2})

		_, ok := e.Start()
		require.True(t, ok)

		restPhases := 0
		confirms := 0
		for !e.State().Terminal() {
			if e.State() == StateAwaitingConfirm {
				tickN(t, e, 1)
				events, ok := e.ConfirmSet()
				require.True(t, ok)
				confirms++
				for _, ev := range events {
					if ev.Kind == EventPhaseChanged && ev.State == StateResting {
						restPhases++
					}
				}
				continue
			}
			tickN(t, e, 1)
		}

		assert.Equal(t, StateFinished, e.State())
		assert.Equal(t, k, confirms, "sets=%d", k)
		assert.Equal(t, k-1, restPhases, "sets=%d", k)
	}
}

func TestEngine_SingleSetSkipsRest(t *testing.T) {
	e := newTestEngine(t, Params{TotalSets: 1, InitialCountdown: 1, RestTime: 30})

	e.Start()
	tickN(t, e, 1)
	require.Equal(t, StateAwaitingConfirm, e.State())

	events, ok := e.ConfirmSet()
	require.True(t, ok)
	assert.Equal(t, StateFinished, e.State())
	for _, ev := range events {
		assert.NotEqual(t, StateResting, ev.State)
	}
}

func TestEngine_AwaitingHasNoLimit(t *testing.T) {
	e := newTestEngine(t, Params{TotalSets: 1, InitialCountdown: 0})

	e.Start()
	tickN(t, e, 1)
	require.Equal(t, StateAwaitingConfirm, e.State(), "нулевой отсчет завершается на первом тике")

	tickN(t, e, 10_000)
	assert.Equal(t, StateAwaitingConfirm, e.State())
	assert.Equal(t, 10_000, e.Seconds())
}

func TestEngine_ZeroRestGoesBackOnNextTick(t *testing.T) {
	e := newTestEngine(t, Params{TotalSets: 2, InitialCountdown: 0})

	e.Start()
	tickN(t, e, 1)
	e.ConfirmSet()
	require.Equal(t, StateResting, e.State())

	tickN(t, e, 1)
	assert.Equal(t, StateAwaitingConfirm, e.State())
	assert.Equal(t, 2, e.CurrentSet())
}

func TestEngine_MisuseIsIgnored(t *testing.T) {
	e := newTestEngine(t, Params{TotalSets: 2, InitialCountdown: 5, RestTime: 5})

	t.Run("confirm before start", func(t *testing.T) {
		events, ok := e.ConfirmSet()
		assert.False(t, ok)
		assert.Nil(t, events)
		assert.Equal(t, StateIdle, e.State())
	})

	t.Run("tick and stop before start", func(t *testing.T) {
		_, ok := e.Tick()
		assert.False(t, ok)
		_, ok = e.Stop()
		assert.False(t, ok)
		_, ok = e.PendingSet()
		assert.False(t, ok)
	})

	e.Start()

	t.Run("second start", func(t *testing.T) {
		_, ok := e.Start()
		assert.False(t, ok)
		assert.Equal(t, 5, e.Seconds())
	})

	t.Run("confirm while preparing", func(t *testing.T) {
		before := e.Snapshot()
		_, ok := e.ConfirmSet()
		assert.False(t, ok)
		assert.Equal(t, before, e.Snapshot())
	})

	tickN(t, e, 5)
	e.ConfirmSet()
	require.Equal(t, StateResting, e.State())

	t.Run("confirm while resting", func(t *testing.T) {
		before := e.Snapshot()
		_, ok := e.ConfirmSet()
		assert.False(t, ok)
		assert.Equal(t, before, e.Snapshot())
	})
}

func TestEngine_Stop(t *testing.T) {
	p := Params{TotalSets: 3, InitialCountdown: 2, RestTime: 2}

	tests := []struct {
		prepare func(e *Engine)
		name    string
	}{
		{name: "from preparing", prepare: func(e *Engine) { e.Start() }},
		{name: "from awaiting", prepare: func(e *Engine) {
			e.Start()
			e.Tick()
			e.Tick()
		}},
		{name: "from resting", prepare: func(e *Engine) {
			e.Start()
			e.Tick()
			e.Tick()
			e.ConfirmSet()
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, p)
			tt.prepare(e)
			require.True(t, e.State().Active())

			events, ok := e.Stop()
			require.True(t, ok)
			assert.Equal(t, StateStopped, e.State())
			assert.Equal(t, 1, countKind(events, EventClockStopped))

			_, ok = e.Stop()
			assert.False(t, ok, "повторная остановка игнорируется")
			_, ok = e.Tick()
			assert.False(t, ok)
			_, ok = e.Start()
			assert.False(t, ok, "остановленный движок не перезапускается")
		})
	}
}

func TestEngine_StopAfterFinishIgnored(t *testing.T) {
	e := newTestEngine(t, Params{TotalSets: 1})
	e.Start()
	e.Tick()
	e.ConfirmSet()
	require.Equal(t, StateFinished, e.State())

	_, ok := e.Stop()
	assert.False(t, ok)
	assert.Equal(t, StateFinished, e.State())
}

func TestEngine_WarnThresholdCovers(t *testing.T) {
	tests := []struct {
		name      string
		rest      int
		threshold int
		wantCues  int
	}{
		{name: "no threshold", rest: 10, threshold: 0, wantCues: 0},
		{name: "three last seconds", rest: 10, threshold: 3, wantCues: 3},
		{name: "threshold above rest", rest: 5, threshold: 10, wantCues: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, Params{TotalSets: 2, RestTime: tt.rest, WarnThreshold: tt.threshold})
			e.Start()
			e.Tick()
			e.ConfirmSet()

			events := tickN(t, e, tt.rest)
			assert.Equal(t, StateAwaitingConfirm, e.State())
			assert.Equal(t, tt.wantCues, countCue(events, SignalCountdown))
			assert.Equal(t, 1, countCue(events, SignalPhaseEnd))
		})
	}
}

func TestEngine_TickEventsExposeSeconds(t *testing.T) {
	e := newTestEngine(t, Params{TotalSets: 1, InitialCountdown: 3})
	e.Start()

	events, _ := e.Tick()
	require.NotEmpty(t, events)
	assert.Equal(t, EventTick, events[0].Kind)
	assert.Equal(t, 2, events[0].Seconds)
	assert.Equal(t, 1, events[0].Set)
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "awaiting_confirm", StateAwaitingConfirm.String())
	assert.Equal(t, "unknown", State(99).String())
	assert.Equal(t, "countdown", SignalCountdown.String())
	assert.Equal(t, "phase_changed", EventPhaseChanged.String())
}

func TestEstimateDuration(t *testing.T) {
	p := Params{TotalSets: 3, InitialCountdown: 10, RestTime: 30}
	assert.Equal(t, 10+3*40+2*30, EstimateDuration(p, 40))
	assert.Equal(t, 10+2*30, EstimateDuration(p, -5))
	assert.Equal(t, 0, EstimateDuration(Params{}, 40))
}
