package mediator

// Unit is the response type of requests that produce no value.
// All Unit values are interchangeable.
type Unit struct{}

// Value is the canonical Unit.
var Value Unit

func (Unit) Equal(Unit) bool { return true }

func (Unit) Compare(Unit) int { return 0 }

func (Unit) Hash() uint64 { return 0 }

func (Unit) String() string { return "()" }
