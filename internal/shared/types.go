package shared

import "errors"

var (
	ErrNegativeLimit  = errors.New("limit must be >= 0")
	ErrNegativeOffset = errors.New("offset must be >= 0")
)

// Limit bounds the page size of a listing query. The zero-value check
// happens at construction, never at query time.
type Limit struct {
	value int
}

// DefaultLimit is applied when the caller does not supply one
var DefaultLimit = Limit{value: 20}

// NewLimit rejects negative input at construction
func NewLimit(value int) (Limit, error) {
	if value < 0 {
		return Limit{}, ErrNegativeLimit
	}
	return Limit{value: value}, nil
}

func (l Limit) Value() int { return l.value }

// Offset is the number of rows skipped by a listing query
type Offset struct {
	value int
}

// DefaultOffset is applied when the caller does not supply one
var DefaultOffset = Offset{value: 0}

// NewOffset rejects negative input at construction
func NewOffset(value int) (Offset, error) {
	if value < 0 {
		return Offset{}, ErrNegativeOffset
	}
	return Offset{value: value}, nil
}

func (o Offset) Value() int { return o.value }
