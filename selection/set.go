// Package selection maintains the order-preserving, duplicate-free set of
// clauses the user has chosen, along with per-clause image attachments.
package selection

import (
	"github.com/google/uuid"

	"bidcond-backend/models"
)

// ChangeListener receives the current selection, each entry annotated with
// its attachments, synchronously after every mutation
type ChangeListener func(current []models.SelectedClause)

// Set is the mutable clause selection. It preserves insertion order and
// rejects duplicate identity pairs. Set is not safe for concurrent use; the
// owning service serializes access.
type Set struct {
	entries     []models.Clause
	members     map[models.ClauseKey]bool
	attachments map[string][]models.ImageAttachment
	onChange    ChangeListener
}

// New creates an empty selection set
func New() *Set {
	return &Set{
		entries:     make([]models.Clause, 0),
		members:     make(map[models.ClauseKey]bool),
		attachments: make(map[string][]models.ImageAttachment),
	}
}

// SetOnChange registers the document-assembly notification callback
func (s *Set) SetOnChange(fn ChangeListener) {
	s.onChange = fn
}

// Len returns the number of selected clauses
func (s *Set) Len() int {
	return len(s.entries)
}

// Contains reports membership by identity key
func (s *Set) Contains(c models.Clause) bool {
	return s.members[c.Key()]
}

// Toggle adds the clause if absent and removes it if present. It returns
// whether the clause is selected afterwards.
func (s *Set) Toggle(c models.Clause) bool {
	if s.members[c.Key()] {
		s.remove(c.Key())
		s.notify()
		return false
	}
	s.add(c)
	s.notify()
	return true
}

// Add appends the clause if its identity is not already present. It returns
// false for duplicates.
func (s *Set) Add(c models.Clause) bool {
	if s.members[c.Key()] {
		return false
	}
	s.add(c)
	s.notify()
	return true
}

// Remove deletes the clause and returns its orphaned attachments so the
// caller can destroy the stored payloads
func (s *Set) Remove(c models.Clause) []models.ImageAttachment {
	if !s.members[c.Key()] {
		return nil
	}
	orphaned := s.remove(c.Key())
	s.notify()
	return orphaned
}

// Clear empties the selection and returns all orphaned attachments
func (s *Set) Clear() []models.ImageAttachment {
	orphaned := make([]models.ImageAttachment, 0)
	for _, atts := range s.attachments {
		orphaned = append(orphaned, atts...)
	}
	s.entries = s.entries[:0]
	s.members = make(map[models.ClauseKey]bool)
	s.attachments = make(map[string][]models.ImageAttachment)
	s.notify()
	return orphaned
}

// ToggleAll operates on the currently visible filtered view. If every view
// member is already selected, exactly those members are deselected; otherwise
// the missing ones are added in view order. It returns whether the view is
// selected afterwards, plus any orphaned attachments.
func (s *Set) ToggleAll(view []models.Clause) (bool, []models.ImageAttachment) {
	if len(view) == 0 {
		return false, nil
	}

	allSelected := true
	for _, c := range view {
		if !s.members[c.Key()] {
			allSelected = false
			break
		}
	}

	if allSelected {
		orphaned := make([]models.ImageAttachment, 0)
		for _, c := range view {
			orphaned = append(orphaned, s.remove(c.Key())...)
		}
		s.notify()
		return false, orphaned
	}

	for _, c := range view {
		if !s.members[c.Key()] {
			s.add(c)
		}
	}
	s.notify()
	return true, nil
}

// Attach records an image attachment under its clause key
func (s *Set) Attach(att models.ImageAttachment) {
	s.attachments[att.ClauseKey] = append(s.attachments[att.ClauseKey], att)
	s.notify()
}

// Detach removes a single attachment by id and returns it
func (s *Set) Detach(clauseKey string, id uuid.UUID) (models.ImageAttachment, bool) {
	atts := s.attachments[clauseKey]
	for i, att := range atts {
		if att.ID == id {
			s.attachments[clauseKey] = append(atts[:i], atts[i+1:]...)
			if len(s.attachments[clauseKey]) == 0 {
				delete(s.attachments, clauseKey)
			}
			s.notify()
			return att, true
		}
	}
	return models.ImageAttachment{}, false
}

// Attachments returns the attachments recorded for a clause key
func (s *Set) Attachments(clauseKey string) []models.ImageAttachment {
	return s.attachments[clauseKey]
}

// Snapshot returns the current selection in insertion order, each entry
// annotated with its attachments
func (s *Set) Snapshot() []models.SelectedClause {
	snapshot := make([]models.SelectedClause, 0, len(s.entries))
	for _, c := range s.entries {
		snapshot = append(snapshot, models.SelectedClause{
			Clause:      c,
			Attachments: s.attachments[c.Key().String()],
		})
	}
	return snapshot
}

func (s *Set) add(c models.Clause) {
	s.entries = append(s.entries, c)
	s.members[c.Key()] = true
}

func (s *Set) remove(key models.ClauseKey) []models.ImageAttachment {
	for i, e := range s.entries {
		if e.Key() == key {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}
	delete(s.members, key)

	orphaned := s.attachments[key.String()]
	delete(s.attachments, key.String())
	return orphaned
}

func (s *Set) notify() {
	if s.onChange != nil {
		s.onChange(s.Snapshot())
	}
}
