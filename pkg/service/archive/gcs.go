package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/stayops-lab/xenia/pkg/domain/model"
)

// gcsArchive writes one JSON object per session to a Cloud Storage bucket.
// Re-archiving a session overwrites the object, so the stored transcript is
// always the latest snapshot.
type gcsArchive struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS creates a transcript archive backed by Cloud Storage
func NewGCS(ctx context.Context, bucket, prefix string) (Service, error) {
	if bucket == "" {
		return nil, goerr.New("bucket name is required")
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &gcsArchive{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (a *gcsArchive) SaveTranscript(ctx context.Context, transcript *model.Transcript) error {
	raw, err := json.Marshal(transcript)
	if err != nil {
		return goerr.Wrap(err, "failed to encode transcript",
			goerr.V("session_id", transcript.SessionID),
		)
	}

	name := fmt.Sprintf("%s%s.json", a.prefix, transcript.SessionID)
	w := a.client.Bucket(a.bucket).Object(name).NewWriter(ctx)
	w.ContentType = "application/json"

	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write transcript",
			goerr.V("bucket", a.bucket),
			goerr.V("object", name),
		)
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to finalize transcript",
			goerr.V("bucket", a.bucket),
			goerr.V("object", name),
		)
	}
	return nil
}
