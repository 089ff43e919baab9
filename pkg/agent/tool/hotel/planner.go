package hotel

import (
	"sync"

	"github.com/stayops-lab/xenia/pkg/domain/model"
)

// Planner holds the request candidate staged during one conversation.
// Staging replaces any earlier candidate; committing consumes it. The
// planner never touches the store.
type Planner struct {
	mu     sync.Mutex
	staged *model.MaintenanceRequest
}

// NewPlanner returns an empty planner
func NewPlanner() *Planner {
	return &Planner{}
}

// Put replaces the staged candidate
func (p *Planner) Put(req *model.MaintenanceRequest) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.staged = req
}

// Staged returns the current candidate, or nil when nothing is staged
func (p *Planner) Staged() *model.MaintenanceRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.staged
}

// Take removes and returns the current candidate
func (p *Planner) Take() *model.MaintenanceRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	req := p.staged
	p.staged = nil
	return req
}
