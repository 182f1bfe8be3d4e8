package state

// FunctionRegistry is implemented by the command handler that exposes
// named operations to script code. How registered functions are invoked
// is the handler's concern, not this package's.
type FunctionRegistry interface {
	// Register publishes named operations. Re-registering a name
	// replaces the previous entry.
	Register(functions map[string]any)
}

// AllStates is a read-only view over every state variable, exposed to
// expression evaluators as the "states" object.
type AllStates struct {
	acc *Accessor
}

// NewAllStates creates the read-only view over acc's store.
func NewAllStates(acc *Accessor) *AllStates {
	return &AllStates{acc: acc}
}

// Get resolves a 2- or 3-part name, same semantics as Accessor.Get.
func (s *AllStates) Get(name string) (any, bool) {
	return s.acc.Get(name)
}

// Names returns the IDs of all known entities.
func (s *AllStates) Names() []string {
	return s.acc.store.EntityIDs()
}

// RegisterFunctions publishes the state operations with the handler's
// function registry: a getter, a setter, and the all-states view.
func (a *Accessor) RegisterFunctions(reg FunctionRegistry) {
	reg.Register(map[string]any{
		"state.get": a.Get,
		"state.set": a.Set,
		"states":    NewAllStates(a),
	})
}
