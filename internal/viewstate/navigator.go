package viewstate

// Mode is the view mode of a list/detail panel.
type Mode string

const (
	ModeBrowsing Mode = "browsing"
	ModeViewing  Mode = "viewing"
	ModeEditing  Mode = "editing"
	ModeCreating Mode = "creating"
)

// Event drives the navigator between modes.
type Event string

const (
	EventSelect Event = "select"
	EventEdit   Event = "edit"
	EventCreate Event = "create"
	EventSave   Event = "save"
	EventCancel Event = "cancel"
	EventClose  Event = "close"
)

// State is the selection and view mode of a panel.
type State struct {
	Mode       Mode   `json:"mode"`
	SelectedID string `json:"selected_id,omitempty"`
}

var transitions = map[Mode]map[Event]Mode{
	ModeBrowsing: {
		EventSelect: ModeViewing,
		EventCreate: ModeCreating,
	},
	ModeViewing: {
		EventSelect: ModeViewing,
		EventEdit:   ModeEditing,
		EventClose:  ModeBrowsing,
		EventCreate: ModeCreating,
	},
	ModeEditing: {
		EventSave:   ModeViewing,
		EventCancel: ModeViewing,
	},
	ModeCreating: {
		EventSave:   ModeBrowsing,
		EventCancel: ModeBrowsing,
	},
}

// Navigator is the list/detail/edit state machine.
type Navigator struct {
	state State
}

// NewNavigator starts in browsing mode with nothing selected.
func NewNavigator() *Navigator {
	return &Navigator{state: State{Mode: ModeBrowsing}}
}

// State returns the current state.
func (n *Navigator) State() State {
	return n.state
}

// Fire applies ev. id is only read by EventSelect.
func (n *Navigator) Fire(ev Event, id string) (State, error) {
	next, ok := transitions[n.state.Mode][ev]
	if !ok {
		return n.state, ErrInvalidTransition
	}
	if ev == EventSelect && id == "" {
		return n.state, ErrNoSelection
	}

	switch next {
	case ModeBrowsing, ModeCreating:
		n.state = State{Mode: next}
	case ModeViewing:
		if ev == EventSelect {
			n.state = State{Mode: next, SelectedID: id}
		} else {
			n.state.Mode = next
		}
	default:
		n.state.Mode = next
	}
	return n.state, nil
}

// Reset returns to browsing, dropping the selection.
func (n *Navigator) Reset() {
	n.state = State{Mode: ModeBrowsing}
}

func (n *Navigator) Select(id string) (State, error) { return n.Fire(EventSelect, id) }
func (n *Navigator) Edit() (State, error)            { return n.Fire(EventEdit, "") }
func (n *Navigator) Create() (State, error)          { return n.Fire(EventCreate, "") }
func (n *Navigator) Save() (State, error)            { return n.Fire(EventSave, "") }
func (n *Navigator) Cancel() (State, error)          { return n.Fire(EventCancel, "") }
func (n *Navigator) Close() (State, error)           { return n.Fire(EventClose, "") }
