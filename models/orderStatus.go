package models

type OrderStatus string

const (
	StatusDraft     OrderStatus = "DRAFT"
	StatusPlaced    OrderStatus = "PLACED"
	StatusAccepted  OrderStatus = "ACCEPTED"
	StatusPreparing OrderStatus = "PREPARING"
	StatusReady     OrderStatus = "READY"
	StatusServed    OrderStatus = "SERVED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// statusTransitions lists the legal successors of every status. Terminal
// statuses keep an empty set. Adding a status is a one-place change here.
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusDraft:     {StatusPlaced, StatusCancelled},
	StatusPlaced:    {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusServed, StatusCancelled},
	StatusServed:    {},
	StatusCancelled: {},
}

func ValidOrderStatus(s OrderStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

func IsTerminalStatus(s OrderStatus) bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// CanTransition reports whether requested is in the outgoing set of current.
func CanTransition(current, requested OrderStatus) bool {
	for _, next := range statusTransitions[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the outgoing set of s.
func NextStatuses(s OrderStatus) []OrderStatus {
	next := statusTransitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}
