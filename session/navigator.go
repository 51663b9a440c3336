package session

// Navigator applies routing decisions. The mobile shell implements it
// with a replace-style navigation (no back-stack entry); tests implement
// it with a recorder. Replace is never called with a Stay decision, and
// never called twice in a row with the same target: the controller
// dedupes before issuing.
type Navigator interface {
	Replace(d Decision)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(d Decision)

func (f NavigatorFunc) Replace(d Decision) { f(d) }
