package usecases

import (
	"context"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/audio"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/domain/minutes"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/store"
)

// FinalReporter produces the final minutes from a transcript snapshot.
type FinalReporter interface {
	Final(ctx context.Context, snapshot string) (string, error)
}

// RecordCreator persists a finished meeting.
type RecordCreator interface {
	Create(rec store.Record) (string, error)
}

// Finalize closes a capture session: merge the audio segments, generate the
// final minutes exactly once from the full transcript, and persist the
// meeting atomically.
type Finalize struct {
	Reporter FinalReporter
	Records  RecordCreator
}

type FinalizeOptions struct {
	Title            string
	OriginalFilename string

	// AllowPartial saves the transcript with an empty report when minutes
	// generation fails, instead of aborting. The report can be regenerated
	// later from the stored transcript.
	AllowPartial bool
}

type FinalizeResult struct {
	ID      string
	Partial bool // saved without a report
}

func (f *Finalize) Execute(ctx context.Context, sess *minutes.Session, opts FinalizeOptions) (*FinalizeResult, error) {
	if err := sess.BeginFinalize(); err != nil {
		return nil, err
	}

	var audioAsset []byte
	if merged, ok := sess.Segments.Merge(); ok {
		audioAsset = audio.EncodeWAV(merged)
	}

	snapshot := sess.Transcript.Snapshot()

	var partial bool
	report, err := f.Reporter.Final(ctx, snapshot)
	if err != nil {
		if !opts.AllowPartial {
			return nil, err
		}
		report = ""
		partial = true
	}

	id, err := f.Records.Create(store.Record{
		Title:            opts.Title,
		Transcript:       snapshot,
		Report:           report,
		OriginalFilename: opts.OriginalFilename,
		AudioAsset:       audioAsset,
	})
	if err != nil {
		return nil, err
	}

	if err := sess.MarkSaved(); err != nil {
		return nil, err
	}

	return &FinalizeResult{ID: id, Partial: partial}, nil
}
