package engine

// Confirmer is the external confirmation channel used to gate destructive
// tool calls. Confirm blocks until the user answers; false or a missing
// channel means the action is skipped.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }
