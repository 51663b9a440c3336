package session

// Tristate models a signal that may not have been loaded yet. Unknown is
// distinct from False: Unknown means the first cache read has not
// completed, and no routing decision may be made while any signal is
// Unknown.
type Tristate int

const (
	Unknown Tristate = iota
	False
	True
)

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// TristateOf converts a loaded boolean into its known Tristate.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}
