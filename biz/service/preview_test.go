package service

import (
	"testing"
	"time"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
)

func TestPreviewApplies(t *testing.T) {
	stager := NewAttachmentStager(model.SlotPhoto)
	ref := FileRef{Name: "p.jpg", Size: 3, LastModified: 1}
	stager.AddFile(ref)

	results := LoadPreview(ref, func(FileRef) ([]byte, error) { return []byte("img"), nil })

	var res PreviewResult
	select {
	case res = <-results:
	case <-time.After(time.Second):
		t.Fatalf("preview read did not settle")
	}

	var applied *PreviewResult
	if !stager.ApplyPreview(res, func(r PreviewResult) { applied = &r }) {
		t.Fatalf("preview of a staged entry must be applied")
	}
	if applied == nil || string(applied.Data) != "img" || applied.Err != nil {
		t.Fatalf("unexpected preview result: %+v", applied)
	}
}

func TestPreviewDiscardsStaleRead(t *testing.T) {
	stager := NewAttachmentStager(model.SlotPhoto)
	ref := FileRef{Name: "p.jpg", Size: 3, LastModified: 1}
	stager.AddFile(ref)

	release := make(chan struct{})
	results := LoadPreview(ref, func(FileRef) ([]byte, error) {
		<-release
		return []byte("late"), nil
	})

	// the user removes the file while the read is still in flight
	stager.RemoveFile(ref)
	close(release)

	var res PreviewResult
	select {
	case res = <-results:
	case <-time.After(time.Second):
		t.Fatalf("preview read did not settle")
	}

	if stager.ApplyPreview(res, func(PreviewResult) {
		t.Fatalf("stale preview must be discarded")
	}) {
		t.Fatalf("ApplyPreview reported a stale result as applied")
	}
}

// The session goroutine mutates the stager while the read is in flight
// with no synchronization against the read goroutine. Safe because the
// read goroutine never touches the stager; run with -race.
func TestPreviewRemovalConcurrentWithRead(t *testing.T) {
	stager := NewAttachmentStager(model.SlotPhoto)
	ref := FileRef{Name: "p.jpg", Size: 3, LastModified: 1}
	stager.AddFile(ref)

	results := LoadPreview(ref, func(FileRef) ([]byte, error) {
		time.Sleep(5 * time.Millisecond)
		return []byte("late"), nil
	})

	stager.RemoveFile(ref)

	var res PreviewResult
	select {
	case res = <-results:
	case <-time.After(time.Second):
		t.Fatalf("preview read did not settle")
	}

	if stager.ApplyPreview(res, func(PreviewResult) {}) {
		t.Fatalf("result for a removed entry must not be applied")
	}

	// re-adding after the discard starts a clean session entry
	if !stager.AddFile(ref) {
		t.Fatalf("entry should be addable again after removal")
	}
}
