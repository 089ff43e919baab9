package archive

import (
	"context"

	"github.com/stayops-lab/xenia/pkg/domain/model"
)

// Service stores conversation transcripts for audit and later analysis
type Service interface {
	SaveTranscript(ctx context.Context, transcript *model.Transcript) error
}
