// Package timer реализует конечный автомат таймера табата-тренировки.
//
// Движок не владеет ни горутинами, ни часами: слой представления вызывает
// Tick раз в секунду, пока активен сигнал EventClockStarted, и передает
// действия пользователя. Каждый метод возвращает список событий для отрисовки
// и звуков. Некорректные вызовы игнорируются и возвращают false.
package timer

import (
	"errors"
	"fmt"
)

// DefaultInitialCountdown стартовый отсчет перед первым подходом, сек
const DefaultInitialCountdown = 10

// ErrInvalidParams недопустимые параметры таймера
var ErrInvalidParams = errors.New("invalid timer params")

// Params параметры, фиксируемые при старте
type Params struct {
	TotalSets        int // количество подходов, >= 1
	InitialCountdown int // стартовый отсчет, сек
	RestTime         int // отдых между подходами, сек
	WarnThreshold    int // за сколько секунд до конца отдыха подавать короткий сигнал
}

// Validate проверяет параметры
func (p Params) Validate() error {
	if p.TotalSets < 1 {
		return fmt.Errorf("%w: total sets must be at least 1, got %d", ErrInvalidParams, p.TotalSets)
	}
	if p.InitialCountdown < 0 || p.RestTime < 0 || p.WarnThreshold < 0 {
		return fmt.Errorf("%w: durations cannot be negative", ErrInvalidParams)
	}
	return nil
}

// PendingSet результат подхода, ожидающий подтверждения
type PendingSet struct {
	SetNumber int
	Duration  int // сек, прошедшие в ожидании подтверждения
}

// Snapshot текущее состояние для отображения
type Snapshot struct {
	State      State
	CurrentSet int
	TotalSets  int
	Seconds    int // оставшееся (отсчет) или прошедшее (ожидание) время
}

// Engine конечный автомат таймера. Не потокобезопасен.
type Engine struct {
	params     Params
	state      State
	currentSet int
	seconds    int
}

// NewEngine создает движок в состоянии StateIdle
func NewEngine(p Params) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{params: p, state: StateIdle}, nil
}

// Params returns the parameters fixed at construction.
func (e *Engine) Params() Params { return e.params }

// State returns the current state.
func (e *Engine) State() State { return e.state }

// CurrentSet returns the set being performed (0 before start).
func (e *Engine) CurrentSet() int { return e.currentSet }

// Seconds returns the counter: remaining for countdowns, elapsed while awaiting confirmation.
func (e *Engine) Seconds() int { return e.seconds }

// Snapshot returns the current state for rendering.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:      e.state,
		CurrentSet: e.currentSet,
		TotalSets:  e.params.TotalSets,
		Seconds:    e.seconds,
	}
}

// Start запускает стартовый отсчет. Допустим только из StateIdle.
func (e *Engine) Start() ([]Event, bool) {
	if e.state != StateIdle {
		return nil, false
	}

	e.currentSet = 1
	e.seconds = e.params.InitialCountdown
	e.state = StatePreparing

	return []Event{
		e.event(EventClockStarted),
		e.event(EventPhaseChanged),
	}, true
}

// Tick продвигает движок на одну секунду.
// В отсчете счетчик уменьшается, и при достижении нуля на этом же тике
// происходит переход в ожидание подтверждения. В ожидании счетчик растет без ограничения.
func (e *Engine) Tick() ([]Event, bool) {
	switch e.state {
	case StatePreparing, StateResting:
		if e.seconds > 0 {
			e.seconds--
		}

		if e.seconds == 0 {
			return e.enterAwaiting(), true
		}

		events := []Event{e.event(EventTick)}
		if e.state == StateResting && e.seconds <= e.params.WarnThreshold {
			events = append(events, e.cue(SignalCountdown))
		}
		return events, true

	case StateAwaitingConfirm:
		e.seconds++
		return []Event{e.event(EventTick)}, true

	default:
		return nil, false
	}
}

func (e *Engine) enterAwaiting() []Event {
	e.state = StateAwaitingConfirm
	e.seconds = 0
	return []Event{
		e.cue(SignalPhaseEnd),
		e.event(EventPhaseChanged),
	}
}

// PendingSet возвращает номер и длительность подхода, который будет
// подтвержден следующим вызовом ConfirmSet.
// Позволяет сохранить результат до изменения состояния движка.
func (e *Engine) PendingSet() (PendingSet, bool) {
	if e.state != StateAwaitingConfirm {
		return PendingSet{}, false
	}
	return PendingSet{SetNumber: e.currentSet, Duration: e.seconds}, true
}

// ConfirmSet завершает текущий подход.
// После последнего подхода движок переходит в StateFinished, иначе в отдых.
func (e *Engine) ConfirmSet() ([]Event, bool) {
	if e.state != StateAwaitingConfirm {
		return nil, false
	}

	if e.currentSet+1 > e.params.TotalSets {
		e.state = StateFinished
		return []Event{
			e.event(EventClockStopped),
			e.event(EventPhaseChanged),
		}, true
	}

	e.currentSet++
	e.seconds = e.params.RestTime
	e.state = StateResting

	return []Event{e.event(EventPhaseChanged)}, true
}

// Stop немедленно прерывает тренировку. Допустим из любого активного состояния.
func (e *Engine) Stop() ([]Event, bool) {
	if !e.state.Active() {
		return nil, false
	}

	e.state = StateStopped

	return []Event{
		e.event(EventClockStopped),
		e.event(EventPhaseChanged),
	}, true
}

func (e *Engine) event(kind EventKind) Event {
	return Event{
		Kind:    kind,
		State:   e.state,
		Seconds: e.seconds,
		Set:     e.currentSet,
	}
}

func (e *Engine) cue(s Signal) Event {
	ev := e.event(EventCue)
	ev.Signal = s
	return ev
}
