package entity

import (
	"strconv"

	"github.com/samber/lo"
)

// ID identifies a stored record. It is a string in the domain and in API
// payloads, while the store keys rows by auto-incremented uint.
type ID string

// NewID wraps a store key (uint) or an already-formatted string.
func NewID(id any) ID {
	switch v := id.(type) {
	case string:
		return ID(v)
	case uint:
		return ID(strconv.FormatUint(uint64(v), 10))
	}
	panic("unsupported ID type")
}

func (id ID) String() string { return string(id) }

// Uint converts back to the store key. It panics on IDs that did not
// originate from one.
func (id ID) Uint() uint { return uint(lo.Must(strconv.ParseUint(id.String(), 10, 64))) }
