package config

import (
	"context"

	"github.com/stayops-lab/xenia/pkg/service/archive"
	"github.com/urfave/cli/v3"
)

// Archive holds CLI flags for transcript archival configuration
type Archive struct {
	bucket string
	prefix string
}

// Flags returns CLI flags for archive configuration
func (x *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket for conversation transcripts (archival is disabled when empty)",
			Sources:     cli.EnvVars("XENIA_ARCHIVE_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "archive-prefix",
			Usage:       "Object name prefix for archived transcripts",
			Value:       "transcripts/",
			Sources:     cli.EnvVars("XENIA_ARCHIVE_PREFIX"),
			Destination: &x.prefix,
		},
	}
}

// Configured reports whether archival is enabled
func (x *Archive) Configured() bool {
	return x.bucket != ""
}

// Configure builds the transcript archive. Returns nil when not configured.
func (x *Archive) Configure(ctx context.Context) (archive.Service, error) {
	if !x.Configured() {
		return nil, nil
	}
	return archive.NewGCS(ctx, x.bucket, x.prefix)
}
