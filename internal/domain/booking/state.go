package booking

// State of one booking flow.
type State string

const (
	StateBrowsing        State = "browsing"
	StateSelecting       State = "selecting"
	StateDraftPending    State = "draft_pending"
	StateAwaitingPayment State = "awaiting_payment"
	StateCompleted       State = "completed"
	StateCancelled       State = "cancelled"
)

// IsTerminal reports whether no further events are accepted.
func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Event names a user action on the flow.
type Event string

const (
	EventSelectRoom    Event = "select_room"
	EventSubmitDetails Event = "submit_details"
	EventProceed       Event = "proceed"
	EventReturnToDraft Event = "return_to_draft"
	EventSubmitPayment Event = "submit_payment"
	EventCancel        Event = "cancel"
)

// transitions lists the states each event is accepted from.
var transitions = map[Event][]State{
	EventSelectRoom:    {StateBrowsing},
	EventSubmitDetails: {StateSelecting, StateDraftPending},
	EventProceed:       {StateDraftPending},
	EventReturnToDraft: {StateAwaitingPayment},
	EventSubmitPayment: {StateAwaitingPayment},
	EventCancel:        {StateBrowsing, StateSelecting, StateDraftPending, StateAwaitingPayment},
}

func allowed(from State, ev Event) bool {
	for _, s := range transitions[ev] {
		if s == from {
			return true
		}
	}
	return false
}
