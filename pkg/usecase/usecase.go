package usecase

import (
	"sync"

	"github.com/m-mizutani/gollem"
	"github.com/stayops-lab/xenia/pkg/chat"
	"github.com/stayops-lab/xenia/pkg/domain/interfaces"
	"github.com/stayops-lab/xenia/pkg/domain/types"
	"github.com/stayops-lab/xenia/pkg/service/archive"
	"github.com/stayops-lab/xenia/pkg/service/notify"
)

// UseCases wires the repositories, the model client, and the optional
// side-effect services into the application operations
type UseCases struct {
	repo          interfaces.Repository
	llm           gollem.LLMClient
	notifier      notify.Service
	archive       archive.Service
	maxIterations int

	sessionMu sync.Mutex
	sessions  map[types.SessionID]*chat.Session
}

type Option func(*UseCases)

// WithNotifier enables notifications when a maintenance request is committed
func WithNotifier(svc notify.Service) Option {
	return func(uc *UseCases) {
		uc.notifier = svc
	}
}

// WithArchive enables conversation transcript archival
func WithArchive(svc archive.Service) Option {
	return func(uc *UseCases) {
		uc.archive = svc
	}
}

// WithMaxIterations overrides the copilot's model-call cap per user message
func WithMaxIterations(n int) Option {
	return func(uc *UseCases) {
		if n >= 1 {
			uc.maxIterations = n
		}
	}
}

func New(repo interfaces.Repository, llm gollem.LLMClient, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:          repo,
		llm:           llm,
		maxIterations: chat.DefaultMaxIterations,
		sessions:      map[types.SessionID]*chat.Session{},
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
