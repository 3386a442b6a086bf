package core

import "fmt"

// PaintAction is one reversible edit of a single cell. Value holds the value
// that restores the other side of the edit: the pre-edit value while the
// action is applied, the post-edit value once it has been undone. The live
// value is in the cell itself.
type PaintAction struct {
	Chemical int
	Cell     int
	Value    float64
	Applied  bool
	GroupEnd bool
}

// FlipFunc swaps the stored cell value with a.Value. It is supplied by the
// engine that owns the cells; the stack toggles Applied itself.
type FlipFunc func(a *PaintAction)

// UndoStack is a grouped log of paint actions. Undone actions always form a
// contiguous suffix of the log.
type UndoStack struct {
	actions []PaintAction
	flip    FlipFunc
}

// NewUndoStack returns an empty stack that reverses edits through flip.
func NewUndoStack(flip FlipFunc) *UndoStack {
	return &UndoStack{flip: flip}
}

// Len returns the number of logged actions, applied or not.
func (u *UndoStack) Len() int { return len(u.actions) }

// Actions returns a copy of the log.
func (u *UndoStack) Actions() []PaintAction {
	return append([]PaintAction(nil), u.actions...)
}

// Reset discards the whole log.
func (u *UndoStack) Reset() { u.actions = u.actions[:0] }

// CanUndo reports whether at least one applied action exists.
func (u *UndoStack) CanUndo() bool {
	return len(u.actions) > 0 && u.actions[0].Applied
}

// CanRedo reports whether at least one undone action exists.
func (u *UndoStack) CanRedo() bool {
	return len(u.actions) > 0 && !u.actions[len(u.actions)-1].Applied
}

// Record logs an edit of cell in chemical whose value before the edit was
// old. Any undone actions are dropped first: editing after an undo abandons
// the redo branch.
func (u *UndoStack) Record(chemical, cell int, old float64) {
	for len(u.actions) > 0 && !u.actions[len(u.actions)-1].Applied {
		u.actions = u.actions[:len(u.actions)-1]
	}
	u.actions = append(u.actions, PaintAction{
		Chemical: chemical,
		Cell:     cell,
		Value:    old,
		Applied:  true,
	})
}

// CloseGroup ends the current group at the most recent action, e.g. when a
// paint stroke finishes.
func (u *UndoStack) CloseGroup() {
	if len(u.actions) > 0 {
		u.actions[len(u.actions)-1].GroupEnd = true
	}
}

// Undo reverses the most recent applied group, newest action first.
func (u *UndoStack) Undo() error {
	if !u.CanUndo() {
		return fmt.Errorf("%w: nothing to undo", ErrInvalidOperation)
	}
	i := len(u.actions) - 1
	for !u.actions[i].Applied {
		i--
	}
	for {
		u.apply(i, false)
		i--
		if i < 0 || u.actions[i].GroupEnd {
			return nil
		}
	}
}

// Redo re-applies the oldest undone group, oldest action first.
func (u *UndoStack) Redo() error {
	if !u.CanRedo() {
		return fmt.Errorf("%w: nothing to redo", ErrInvalidOperation)
	}
	i := 0
	for u.actions[i].Applied {
		i++
	}
	for ; i < len(u.actions); i++ {
		u.apply(i, true)
		if u.actions[i].GroupEnd {
			break
		}
	}
	return nil
}

func (u *UndoStack) apply(i int, applied bool) {
	a := &u.actions[i]
	if u.flip != nil {
		u.flip(a)
	}
	a.Applied = applied
}
