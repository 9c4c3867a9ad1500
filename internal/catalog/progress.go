package catalog

import "sync"

// ProgressTracker records which pathway steps the learner has ticked off.
// Progress is superficial session state: it is not reported to the server
// and does not survive a restart.
type ProgressTracker struct {
	mu   sync.Mutex
	done map[string]map[int]bool
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{done: make(map[string]map[int]bool)}
}

// ToggleStep flips the completion mark of one step.
func (t *ProgressTracker) ToggleStep(pathwayID string, step int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	steps := t.done[pathwayID]
	if steps == nil {
		steps = make(map[int]bool)
		t.done[pathwayID] = steps
	}
	steps[step] = !steps[step]
}

// StepDone reports whether a step is marked complete.
func (t *ProgressTracker) StepDone(pathwayID string, step int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done[pathwayID][step]
}

// Completion returns completed and total step counts for a pathway.
func (t *ProgressTracker) Completion(p *Pathway) (completed, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := range p.Steps {
		if t.done[p.ID][i] {
			completed++
		}
	}
	return completed, len(p.Steps)
}
