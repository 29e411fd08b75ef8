package sync

import (
	"errors"
	"testing"
	"time"
)

func TestRegistryStartFinish(t *testing.T) {
	r := NewRegistry()

	j := r.Start()
	if j.ID == "" {
		t.Fatal("expected generated job ID")
	}
	if j.Status != JobPending {
		t.Fatalf("status = %q, want %q", j.Status, JobPending)
	}
	if !r.Running() {
		t.Fatal("expected a running job")
	}

	report := &Report{VideosInserted: 3}
	r.Finish(j.ID, report, nil)

	got, ok := r.Get(j.ID)
	if !ok {
		t.Fatal("job not found after finish")
	}
	if got.Status != JobDone {
		t.Fatalf("status = %q, want %q", got.Status, JobDone)
	}
	if got.Report.VideosInserted != 3 {
		t.Fatalf("report videos = %d, want 3", got.Report.VideosInserted)
	}
	if got.FinishedAt.IsZero() {
		t.Fatal("expected FinishedAt to be set")
	}
	if r.Running() {
		t.Fatal("expected no running jobs")
	}
}

func TestRegistryFinishWithError(t *testing.T) {
	r := NewRegistry()

	j := r.Start()
	r.Finish(j.ID, nil, errors.New("scan blew up"))

	got, _ := r.Get(j.ID)
	if got.Status != JobError {
		t.Fatalf("status = %q, want %q", got.Status, JobError)
	}
	if got.Error != "scan blew up" {
		t.Fatalf("error = %q", got.Error)
	}
}

func TestRegistryFinishUnknownID(t *testing.T) {
	r := NewRegistry()
	r.Finish("no-such-job", nil, nil) // must not panic
}

func TestRegistryGetMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Get("missing"); ok {
		t.Fatal("expected miss")
	}
}

func TestRegistryListOrder(t *testing.T) {
	r := NewRegistry()

	first := r.Start()
	time.Sleep(time.Millisecond)
	second := r.Start()

	jobs := r.List()
	if len(jobs) != 2 {
		t.Fatalf("len = %d, want 2", len(jobs))
	}
	if jobs[0].ID != second.ID {
		t.Fatalf("jobs[0] = %s, want most recent %s", jobs[0].ID, second.ID)
	}
	if jobs[1].ID != first.ID {
		t.Fatalf("jobs[1] = %s, want %s", jobs[1].ID, first.ID)
	}
}
