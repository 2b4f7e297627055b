package model

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusSeated    Status = "seated"
	StatusFinished  Status = "finished"
	StatusCancelled Status = "cancelled"
)

// transitions holds the allowed state changes. Anything not listed is rejected.
var transitions = map[Status][]Status{
	StatusBooked: {StatusSeated, StatusCancelled},
	StatusSeated: {StatusFinished},
}

// Valid reports whether s is one of the known reservation statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusBooked, StatusSeated, StatusFinished, StatusCancelled:
		return true
	}

	return false
}

// Terminal reports whether s is an end state that accepts no further changes.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// CanTransition reports whether a reservation in state s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}
