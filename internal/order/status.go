package order

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// rank orders the forward path; cancelled sits outside it.
var rank = map[Status]int{
	StatusPending:    0,
	StatusProcessing: 1,
	StatusShipped:    2,
	StatusDelivered:  3,
}

func (s Status) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := rank[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo allows exactly one step forward along
// pending → processing → shipped → delivered, or a cancel from any
// non-terminal state. Everything else, including backward moves and skips,
// is rejected.
func (s Status) CanTransitionTo(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return rank[next] == rank[s]+1
}
