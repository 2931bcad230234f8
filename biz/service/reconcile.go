package service

import (
	"context"
	"sync"

	"github.com/yi-nology/asset_harbor/biz/dal/model"
)

// AttachmentStore is the storage collaborator the reconciliation step
// talks to. Deletes are idempotent: removing a path that no longer
// exists succeeds silently.
type AttachmentStore interface {
	UploadAttachment(ctx context.Context, file FileRef, slot model.AttachmentSlot, ownerID string) (model.Attachment, error)
	DeleteAttachmentFile(ctx context.Context, path string) error
}

// UploadFailure reports one file whose upload failed. The save still
// completes with the files that did upload.
type UploadFailure struct {
	Slot   model.AttachmentSlot `json:"slot"`
	Name   string               `json:"name"`
	Reason string               `json:"reason"`
}

// DeleteFailure reports one stored file whose physical removal failed.
// The path is dropped from the entity regardless, so the stored object
// may be orphaned.
type DeleteFailure struct {
	Slot   model.AttachmentSlot `json:"slot"`
	Path   string               `json:"path"`
	Reason string               `json:"reason"`
}

// SaveReport aggregates the per-file outcomes of one save.
type SaveReport struct {
	Uploaded      []model.Attachment `json:"uploaded,omitempty"`
	FailedUploads []UploadFailure    `json:"failed_uploads,omitempty"`
	FailedDeletes []DeleteFailure    `json:"failed_deletes,omitempty"`
}

// Partial reports whether any individual file operation failed.
func (r *SaveReport) Partial() bool {
	return len(r.FailedUploads) > 0 || len(r.FailedDeletes) > 0
}

func (r *SaveReport) merge(other *SaveReport) {
	r.Uploaded = append(r.Uploaded, other.Uploaded...)
	r.FailedUploads = append(r.FailedUploads, other.FailedUploads...)
	r.FailedDeletes = append(r.FailedDeletes, other.FailedDeletes...)
}

// ReconciliationEngine turns staged attachment intent into the final
// persisted lists at save time.
type ReconciliationEngine struct {
	store AttachmentStore
}

func NewReconciliationEngine(store AttachmentStore) *ReconciliationEngine {
	return &ReconciliationEngine{store: store}
}

// uploadOutcome keeps a new file's result at its staging position so
// the appended order matches the order the user added files in.
type uploadOutcome struct {
	attachment model.Attachment
	err        error
}

// ReconcileSlot merges one slot: kept persisted entries first, then the
// successfully uploaded new files in staging order. Uploads run
// concurrently and independently; the call joins on all of them before
// returning. Removed paths are deleted from storage; a failed delete is
// reported but the path is dropped from the list anyway.
func (e *ReconciliationEngine) ReconcileSlot(ctx context.Context, ownerID string, stager *AttachmentStager, persisted []model.Attachment) ([]model.Attachment, *SaveReport) {
	report := &SaveReport{}
	slot := stager.Slot()

	final := make([]model.Attachment, 0, len(persisted))
	for _, att := range persisted {
		if stager.IsPendingDeletion(att.Path) {
			continue
		}
		final = append(final, att)
	}

	newFiles := stager.NewFiles()
	outcomes := make([]uploadOutcome, len(newFiles))
	var wg sync.WaitGroup
	for i, file := range newFiles {
		wg.Add(1)
		go func(i int, file FileRef) {
			defer wg.Done()
			att, err := e.store.UploadAttachment(ctx, file, slot, ownerID)
			outcomes[i] = uploadOutcome{attachment: att, err: err}
		}(i, file)
	}
	wg.Wait()

	for i, outcome := range outcomes {
		if outcome.err != nil {
			report.FailedUploads = append(report.FailedUploads, UploadFailure{
				Slot:   slot,
				Name:   newFiles[i].Name,
				Reason: outcome.err.Error(),
			})
			continue
		}
		report.Uploaded = append(report.Uploaded, outcome.attachment)
		final = append(final, outcome.attachment)
	}

	for _, path := range stager.PendingDeletions() {
		if err := e.store.DeleteAttachmentFile(ctx, path); err != nil {
			report.FailedDeletes = append(report.FailedDeletes, DeleteFailure{
				Slot:   slot,
				Path:   path,
				Reason: err.Error(),
			})
		}
	}

	return final, report
}

// ReconcileEntity reconciles every slot of the carrier and writes the
// merged lists back, refreshing the legacy singular path mirrors.
func (e *ReconciliationEngine) ReconcileEntity(ctx context.Context, carrier model.AttachmentCarrier, stagers map[model.AttachmentSlot]*AttachmentStager) *SaveReport {
	report := &SaveReport{}
	for _, slot := range model.Slots {
		stager, ok := stagers[slot]
		if !ok {
			continue
		}
		final, slotReport := e.ReconcileSlot(ctx, carrier.OwnerID(), stager, carrier.Slot(slot))
		carrier.SetSlot(slot, final)
		report.merge(slotReport)
	}
	return report
}
