package gate

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionUpdate Action = "update"
	ActionList   Action = "list"
)
