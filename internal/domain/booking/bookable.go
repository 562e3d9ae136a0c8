package booking

// ===============================
// Polymorphic References
// ===============================

// BookableKind tags what a booking is for: the consultant's generic
// session or one of their catalogued services.
type BookableKind string

const (
	BookableConsultant BookableKind = "consultant"
	BookableService    BookableKind = "service"
)

type BookableRef struct {
	Kind BookableKind
	ID   uint
}

func (r BookableRef) Valid() bool {
	if r.ID == 0 {
		return false
	}
	return r.Kind == BookableConsultant || r.Kind == BookableService
}

// ActorType tags who performed a cancellation.
type ActorType string

const (
	ActorClient ActorType = "client"
	ActorAdmin  ActorType = "admin"
)

type CancellerRef struct {
	ActorType ActorType
	ID        uint
}

func (r CancellerRef) Valid() bool {
	if r.ID == 0 {
		return false
	}
	return r.ActorType == ActorClient || r.ActorType == ActorAdmin
}
