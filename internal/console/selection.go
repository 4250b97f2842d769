package console

// SetSelected adds or removes a user id from the selection. It is
// idempotent: selecting an already-selected id or deselecting an absent one
// leaves the set unchanged. Insertion order is preserved so the first
// selected id is stable.
func (s *State) SetSelected(userID string, selected bool) {
	idx := s.selectionIndex(userID)
	switch {
	case selected && idx < 0:
		s.Selected = append(s.Selected, userID)
	case !selected && idx >= 0:
		s.Selected = append(s.Selected[:idx], s.Selected[idx+1:]...)
	}
}

// ToggleSelected flips a user id's membership and reports the new state.
func (s *State) ToggleSelected(userID string) bool {
	selected := s.selectionIndex(userID) < 0
	s.SetSelected(userID, selected)
	return selected
}

// SelectAllVisible replaces the selection with every row on the cached
// page, in page order.
func (s *State) SelectAllVisible() {
	s.Selected = make([]string, 0, len(s.Users))
	for _, u := range s.Users {
		s.Selected = append(s.Selected, u.ID)
	}
}

func (s *State) ClearSelection() {
	s.Selected = nil
}

func (s *State) IsSelected(userID string) bool {
	return s.selectionIndex(userID) >= 0
}

// SelectedIDs returns a copy so callers can't mutate the set behind the
// state's back.
func (s *State) SelectedIDs() []string {
	if len(s.Selected) == 0 {
		return nil
	}
	ids := make([]string, len(s.Selected))
	copy(ids, s.Selected)
	return ids
}

func (s *State) selectionIndex(userID string) int {
	for i, id := range s.Selected {
		if id == userID {
			return i
		}
	}
	return -1
}
