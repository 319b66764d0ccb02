package container

// Lifetime controls how long a resolved instance is retained.
type Lifetime int

const (
	// Singleton instances are created once per Host and shared by the host
	// and every Scope it creates.
	Singleton Lifetime = iota

	// Scoped instances are created once per Scope and are never visible from
	// the Host.
	Scoped

	// Transient instances are created on every access and never stored.
	Transient
)

// String returns the human-readable name of the lifetime.
func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the declared lifetimes.
func (l Lifetime) Valid() bool {
	return l >= Singleton && l <= Transient
}
