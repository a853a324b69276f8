package usecases

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/audio"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/domain/minutes"
	"github.com/ezcaretechglobal/meeting-minutes-ai/internal/store"
)

type fakeReporter struct {
	report    string
	err       error
	calls     int
	snapshots []string
}

func (f *fakeReporter) Final(ctx context.Context, snapshot string) (string, error) {
	f.calls++
	f.snapshots = append(f.snapshots, snapshot)
	if f.err != nil {
		return "", f.err
	}
	return f.report, nil
}

type fakeRecords struct {
	created []store.Record
	err     error
}

func (f *fakeRecords) Create(rec store.Record) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.created = append(f.created, rec)
	return "id-1", nil
}

func stamp(hour, min, sec int) time.Time {
	return time.Date(2026, 8, 28, hour, min, sec, 0, time.UTC)
}

func TestFinalizeEndToEnd(t *testing.T) {
	sess := minutes.NewSession()
	sess.Start()
	sess.Record("hello", stamp(10, 0, 1))
	sess.Record("we discussed budget", stamp(10, 0, 7))
	sess.Record("meeting adjourned", stamp(10, 0, 15))

	reporter := &fakeReporter{report: "the minutes"}
	records := &fakeRecords{}
	fin := &Finalize{Reporter: reporter, Records: records}

	result, err := fin.Execute(context.Background(), sess, FinalizeOptions{Title: "Standup"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	wantSnapshot := strings.Join([]string{
		"[10:00:01] hello",
		"[10:00:07] we discussed budget",
		"[10:00:15] meeting adjourned",
	}, "\n")

	// Final report is generated exactly once, from exactly the snapshot.
	if reporter.calls != 1 {
		t.Fatalf("final report calls = %d, want 1", reporter.calls)
	}
	if reporter.snapshots[0] != wantSnapshot {
		t.Errorf("report input =\n%s\nwant\n%s", reporter.snapshots[0], wantSnapshot)
	}

	if len(records.created) != 1 {
		t.Fatalf("records created = %d, want 1", len(records.created))
	}
	rec := records.created[0]
	if rec.Title != "Standup" || rec.Transcript != wantSnapshot || rec.Report != "the minutes" {
		t.Errorf("persisted record = %+v", rec)
	}

	if result.ID != "id-1" || result.Partial {
		t.Errorf("result = %+v", result)
	}
	if sess.State() != minutes.StateSaved {
		t.Errorf("session state = %s, want saved", sess.State())
	}
}

func TestFinalizeMergesAudio(t *testing.T) {
	sess := minutes.NewSession()
	sess.Start()

	format := audio.Format{SampleRate: 16000, Channels: 1, BitsPerSample: 16}
	sess.Segments.Append(audio.Segment{Format: format, Frames: []byte{1, 2}})
	sess.Segments.Append(audio.Segment{Format: format, Frames: []byte{3, 4}})
	sess.Record("hello", stamp(10, 0, 0))

	records := &fakeRecords{}
	fin := &Finalize{Reporter: &fakeReporter{report: "m"}, Records: records}

	if _, err := fin.Execute(context.Background(), sess, FinalizeOptions{Title: "T"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	asset := records.created[0].AudioAsset
	seg, err := audio.DecodeWAV(asset)
	if err != nil {
		t.Fatalf("stored asset is not a WAV: %v", err)
	}
	if !bytes.Equal(seg.Frames, []byte{1, 2, 3, 4}) {
		t.Errorf("asset frames = %v, want [1 2 3 4]", seg.Frames)
	}
}

func TestFinalizeNoAudioLeavesAssetEmpty(t *testing.T) {
	sess := minutes.NewSession()
	sess.Start()
	sess.Record("text only", stamp(10, 0, 0))

	records := &fakeRecords{}
	fin := &Finalize{Reporter: &fakeReporter{report: "m"}, Records: records}

	if _, err := fin.Execute(context.Background(), sess, FinalizeOptions{Title: "T"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(records.created[0].AudioAsset) != 0 {
		t.Errorf("asset = %d bytes, want empty", len(records.created[0].AudioAsset))
	}
}

func TestFinalizeReportFailureAborts(t *testing.T) {
	sess := minutes.NewSession()
	sess.Start()
	sess.Record("hello", stamp(10, 0, 0))

	reporter := &fakeReporter{err: &ReportError{Cause: errors.New("model unavailable")}}
	records := &fakeRecords{}
	fin := &Finalize{Reporter: reporter, Records: records}

	_, err := fin.Execute(context.Background(), sess, FinalizeOptions{Title: "T"})
	var reportErr *ReportError
	if !errors.As(err, &reportErr) {
		t.Fatalf("err = %v, want ReportError", err)
	}

	// Nothing persisted; the session did not reach Saved.
	if len(records.created) != 0 {
		t.Errorf("records created = %d, want 0", len(records.created))
	}
	if sess.State() == minutes.StateSaved {
		t.Error("session must not be saved after an aborted finalize")
	}
}

func TestFinalizeReportFailurePartialSave(t *testing.T) {
	sess := minutes.NewSession()
	sess.Start()
	sess.Record("hello", stamp(10, 0, 0))

	reporter := &fakeReporter{err: &ReportError{Cause: errors.New("model unavailable")}}
	records := &fakeRecords{}
	fin := &Finalize{Reporter: reporter, Records: records}

	result, err := fin.Execute(context.Background(), sess, FinalizeOptions{Title: "T", AllowPartial: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if !result.Partial {
		t.Error("result should be marked partial")
	}
	if len(records.created) != 1 {
		t.Fatalf("records created = %d, want 1", len(records.created))
	}
	if records.created[0].Report != "" {
		t.Errorf("report = %q, want empty", records.created[0].Report)
	}
	if records.created[0].Transcript == "" {
		t.Error("transcript must still be persisted")
	}
	if sess.State() != minutes.StateSaved {
		t.Errorf("session state = %s, want saved", sess.State())
	}
}
