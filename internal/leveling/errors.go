package leveling

import "errors"

var (
	// ErrCircularDependency is returned in strict mode when the prerequisites
	// of the input skills contain a cycle.
	ErrCircularDependency = errors.New("circular skill dependency")

	// ErrLevelCeilingReached is returned in strict mode when propagation was
	// cut off by the level ceiling.
	ErrLevelCeilingReached = errors.New("level ceiling reached")
)
