package validation

// State holds the ephemeral validation results for an authoring session. It
// is recomputed per pass, never persisted. A field key stays in Errors only
// while its current value fails a rule.
type State struct {
	Errors  map[string]string
	Touched map[string]struct{}
}

// NewState creates an empty validation state.
func NewState() *State {
	return &State{
		Errors:  make(map[string]string),
		Touched: make(map[string]struct{}),
	}
}

// Apply replaces the results for the given keys with a fresh pass. Keys with
// no entry in errs are cleared, so fixing a value removes its message on the
// next pass; keys outside the pass scope are untouched.
func (s *State) Apply(keys []string, errs map[string]string) {
	for _, key := range keys {
		if msg, ok := errs[key]; ok {
			s.Errors[key] = msg
		} else {
			delete(s.Errors, key)
		}
	}
}

// TouchAll marks the given keys as touched so the UI surfaces their errors.
func (s *State) TouchAll(keys []string) {
	for _, key := range keys {
		s.Touched[key] = struct{}{}
	}
}

// Error returns the message for key, if any.
func (s *State) Error(key string) (string, bool) {
	msg, ok := s.Errors[key]
	return msg, ok
}

// IsTouched reports whether the field was part of a failing pass.
func (s *State) IsTouched(key string) bool {
	_, ok := s.Touched[key]
	return ok
}

// HasErrors reports whether any field currently fails a rule.
func (s *State) HasErrors() bool {
	return len(s.Errors) > 0
}
