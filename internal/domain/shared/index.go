package shared

import "fmt"

// Index is a position in a displayed list. It is stored zero-based and can be
// created from either base.
type Index struct {
	zeroBased int
}

// FromZeroBased creates an Index from a zero-based position.
func FromZeroBased(zeroBased int) (Index, error) {
	if zeroBased < 0 {
		return Index{}, NewDomainError("shared", "FromZeroBased", ErrPrecondition, "index cannot be negative")
	}
	return Index{zeroBased: zeroBased}, nil
}

// FromOneBased creates an Index from a one-based position.
func FromOneBased(oneBased int) (Index, error) {
	if oneBased < 1 {
		return Index{}, NewDomainError("shared", "FromOneBased", ErrPrecondition, "one-based index must be positive")
	}
	return Index{zeroBased: oneBased - 1}, nil
}

// ZeroBased returns the zero-based position.
func (i Index) ZeroBased() int {
	return i.zeroBased
}

// OneBased returns the one-based position.
func (i Index) OneBased() int {
	return i.zeroBased + 1
}

// String returns the one-based representation shown to users.
func (i Index) String() string {
	return fmt.Sprintf("%d", i.OneBased())
}
