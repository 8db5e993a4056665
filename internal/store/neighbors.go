package store

import "github.com/vanshika/degrees/internal/domain"

// Neighbors returns a (work, co-participant) step for every participant of every work the
// person appeared in, the person included. Order follows link insertion order so repeated
// calls on an unchanged store return the same sequence.
func (s *Store) Neighbors(personID string) []domain.Step {
	p, ok := s.people[personID]
	if !ok {
		return nil
	}

	size := 0
	for _, workID := range p.works {
		size += len(s.works[workID].stars)
	}

	steps := make([]domain.Step, 0, size)
	for _, workID := range p.works {
		for _, coID := range s.works[workID].stars {
			steps = append(steps, domain.Step{WorkID: workID, PersonID: coID})
		}
	}
	return steps
}
