package audit

import "log"

// Event is the booking-lifecycle record the notification/chat side
// consumes. Dispatch is fire-and-forget: the booking API never blocks
// or fails because of auditing.
type Event struct {
	ConsultantID uint
	ActorType    string
	ActorID      *uint
	Action       string
	Entity       string
	EntityID     string
	Metadata     any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		if err := d.logger.Log(
			ev.ConsultantID,
			ev.ActorType,
			ev.ActorID,
			ev.Action,
			ev.Entity,
			ev.EntityID,
			ev.Metadata,
		); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	select {
	case d.queue <- ev:
	default:
		// full queue: drop rather than stall the API
		log.Println("audit queue full, dropping event")
	}
}
