package timer

// State фаза таймера тренировки
type State int

const (
	StateIdle State = iota
	StatePreparing
	StateAwaitingConfirm
	StateResting
	StateFinished
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreparing:
		return "preparing"
	case StateAwaitingConfirm:
		return "awaiting_confirm"
	case StateResting:
		return "resting"
	case StateFinished:
		return "finished"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Active reports whether the clock must be running in this state.
func (s State) Active() bool {
	return s == StatePreparing || s == StateAwaitingConfirm || s == StateResting
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateFinished || s == StateStopped
}

// Signal вид звукового сигнала
type Signal int

const (
	// SignalPhaseEnd длинный сигнал об окончании отсчета
	SignalPhaseEnd Signal = iota
	// SignalCountdown короткий сигнал на последних секундах отдыха
	SignalCountdown
)

func (s Signal) String() string {
	switch s {
	case SignalPhaseEnd:
		return "phase_end"
	case SignalCountdown:
		return "countdown"
	default:
		return "unknown"
	}
}

// EventKind тип события, которое движок отдает слою представления
type EventKind int

const (
	// EventTick обновление счетчика секунд
	EventTick EventKind = iota
	// EventPhaseChanged переход в новое состояние
	EventPhaseChanged
	// EventCue звуковой сигнал
	EventCue
	// EventClockStarted нужно начать подавать Tick раз в секунду
	EventClockStarted
	// EventClockStopped тики больше не нужны
	EventClockStopped
)

func (k EventKind) String() string {
	switch k {
	case EventTick:
		return "tick"
	case EventPhaseChanged:
		return "phase_changed"
	case EventCue:
		return "cue"
	case EventClockStarted:
		return "clock_started"
	case EventClockStopped:
		return "clock_stopped"
	default:
		return "unknown"
	}
}

// Event побочный эффект перехода
// Signal имеет смысл только для EventCue
type Event struct {
	Kind    EventKind
	State   State
	Signal  Signal
	Seconds int // значение счетчика после перехода
	Set     int // текущий подход
}
