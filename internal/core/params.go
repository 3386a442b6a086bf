package core

import "fmt"

// Parameter is a single named value consumed by a rule.
type Parameter struct {
	Name  string
	Value float64
}

// ParameterStore holds the ordered parameter list of a rule. Names are not
// required to be unique; lookups by name return the first match, so callers
// that need uniqueness check Contains before Add.
//
// Index arguments follow slice semantics: an out-of-range index panics.
type ParameterStore struct {
	params   []Parameter
	onChange func()
}

// NewParameterStore returns an empty store. onChange, if non-nil, runs after
// every mutation.
func NewParameterStore(onChange func()) *ParameterStore {
	return &ParameterStore{onChange: onChange}
}

func (s *ParameterStore) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Add appends a parameter.
func (s *ParameterStore) Add(name string, value float64) {
	s.params = append(s.params, Parameter{Name: name, Value: value})
	s.changed()
}

// DeleteAt removes the parameter at index i.
func (s *ParameterStore) DeleteAt(i int) {
	s.params = append(s.params[:i], s.params[i+1:]...)
	s.changed()
}

// Clear removes every parameter.
func (s *ParameterStore) Clear() {
	s.params = s.params[:0]
	s.changed()
}

// Replace swaps in a complete parameter list in one mutation.
func (s *ParameterStore) Replace(params []Parameter) {
	s.params = append(s.params[:0], params...)
	s.changed()
}

// Count returns the number of parameters.
func (s *ParameterStore) Count() int { return len(s.params) }

// NameAt returns the name of parameter i.
func (s *ParameterStore) NameAt(i int) string { return s.params[i].Name }

// ValueAt returns the value of parameter i.
func (s *ParameterStore) ValueAt(i int) float64 { return s.params[i].Value }

// RenameAt changes the name of parameter i.
func (s *ParameterStore) RenameAt(i int, name string) {
	s.params[i].Name = name
	s.changed()
}

// SetValueAt changes the value of parameter i.
func (s *ParameterStore) SetValueAt(i int, value float64) {
	s.params[i].Value = value
	s.changed()
}

// IndexOf returns the index of the first parameter called name, or -1.
func (s *ParameterStore) IndexOf(name string) int {
	for i, p := range s.params {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// Contains reports whether any parameter is called name.
func (s *ParameterStore) Contains(name string) bool {
	return s.IndexOf(name) >= 0
}

// ValueByName returns the value of the first parameter called name.
func (s *ParameterStore) ValueByName(name string) (float64, error) {
	i := s.IndexOf(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: parameter %q", ErrNotFound, name)
	}
	return s.params[i].Value, nil
}

// All returns a copy of the parameter list.
func (s *ParameterStore) All() []Parameter {
	return append([]Parameter(nil), s.params...)
}
