package mixing

import (
	"errors"
	"fmt"
	"sort"
)

// Construction fallbacks for non-positive arguments.
const (
	DefaultDepth     = 2
	DefaultVariables = 2
)

// History errors.
var (
	// ErrLengthMismatch is returned when an append supplies a
	// different number of values than target slots.
	ErrLengthMismatch = errors.New("append requires same length input")

	// ErrNoSuchVariable is returned for a slot index outside the
	// configured variable count.
	ErrNoSuchVariable = errors.New("no such history variable")

	// ErrIndexOutOfRange is returned for a position outside a slot's
	// current depth.
	ErrIndexOutOfRange = errors.New("history index out of range")
)

// History retains a bounded rolling history for a fixed number of
// variables. Each variable owns one slot holding at most Max values;
// appending beyond capacity evicts the oldest value automatically.
//
// Operations that target all variables keep every slot the same
// length. A History is not safe for concurrent use.
type History struct {
	slots [][]any
	max   int
}

// NewHistory creates a history with the given depth and variable
// count. Non-positive arguments fall back to the defaults of 2.
func NewHistory(history, variables int) *History {
	if history <= 0 {
		history = DefaultDepth
	}
	if variables <= 0 {
		variables = DefaultVariables
	}
	slots := make([][]any, variables)
	for i := range slots {
		slots[i] = make([]any, 0, history)
	}
	return &History{slots: slots, max: history}
}

// Variables returns the number of slots. Fixed after construction.
func (h *History) Variables() int {
	return len(h.slots)
}

// Max returns the maximum depth of each slot. Fixed after
// construction.
func (h *History) Max() int {
	return h.max
}

// Len returns the current occupied depth of the first slot.
func (h *History) Len() int {
	return len(h.slots[0])
}

// Append adds one value per slot, in slot order.
func (h *History) Append(values ...any) error {
	if len(values) != len(h.slots) {
		return fmt.Errorf("%w: %d values for %d variables", ErrLengthMismatch, len(values), len(h.slots))
	}
	for i, v := range values {
		h.push(i, v)
	}
	return nil
}

// AppendTo adds values to an explicit selection of slots; values[i]
// goes to slot variables[i]. The lengths must match and every slot
// index must be valid; nothing is appended otherwise.
func (h *History) AppendTo(variables []int, values ...any) error {
	if len(values) != len(variables) {
		return fmt.Errorf("%w: %d values for %d variables", ErrLengthMismatch, len(values), len(variables))
	}
	for _, v := range variables {
		if v < 0 || v >= len(h.slots) {
			return fmt.Errorf("%w: %d", ErrNoSuchVariable, v)
		}
	}
	for i, v := range variables {
		h.push(v, values[i])
	}
	return nil
}

// push appends to one slot, evicting the oldest value past capacity.
func (h *History) push(slot int, v any) {
	s := append(h.slots[slot], v)
	if excess := len(s) - h.max; excess > 0 {
		s = s[excess:]
	}
	h.slots[slot] = s
}

// Clear empties the selected slots entirely. With no arguments it
// clears every slot.
func (h *History) Clear(variables ...int) error {
	vars, err := h.selectVars(variables)
	if err != nil {
		return err
	}
	for _, v := range vars {
		h.slots[v] = h.slots[v][:0]
	}
	return nil
}

// Remove deletes the given positions from each selected slot (all
// slots when none given). Positions are counted from the pre-call
// state: deletion processes indices from highest to lowest so earlier
// deletions do not shift the meaning of later ones.
func (h *History) Remove(index []int, variables ...int) error {
	vars, err := h.selectVars(variables)
	if err != nil {
		return err
	}

	idx := append([]int(nil), index...)
	sort.Sort(sort.Reverse(sort.IntSlice(idx)))

	for _, v := range vars {
		for _, i := range idx {
			if i < 0 || i >= len(h.slots[v]) {
				return fmt.Errorf("%w: %d in variable %d", ErrIndexOutOfRange, i, v)
			}
			h.slots[v] = append(h.slots[v][:i], h.slots[v][i+1:]...)
		}
	}
	return nil
}

// At returns the value at a position of a slot, oldest first.
func (h *History) At(variable, index int) (any, error) {
	if variable < 0 || variable >= len(h.slots) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchVariable, variable)
	}
	if index < 0 || index >= len(h.slots[variable]) {
		return nil, fmt.Errorf("%w: %d in variable %d", ErrIndexOutOfRange, index, variable)
	}
	return h.slots[variable][index], nil
}

// selectVars resolves a variable selection, defaulting to all slots.
func (h *History) selectVars(variables []int) ([]int, error) {
	if len(variables) == 0 {
		all := make([]int, len(h.slots))
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	for _, v := range variables {
		if v < 0 || v >= len(h.slots) {
			return nil, fmt.Errorf("%w: %d", ErrNoSuchVariable, v)
		}
	}
	return variables, nil
}
