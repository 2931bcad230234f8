package service

import (
	"github.com/yi-nology/asset_harbor/biz/dal/model"
)

// StagedState tags a staged file entry within an edit session.
type StagedState int

const (
	// StagedExisting marks a file already persisted on the entity.
	StagedExisting StagedState = iota
	// StagedNew marks a file added during this session, not yet uploaded.
	StagedNew
	// StagedDeleted marks an existing file the user removed; the entry is
	// kept so the deletion intent survives until save.
	StagedDeleted
)

// FileRef describes one file the editing client is working with. For
// existing attachments Path carries the persisted storage path; for new
// files Data carries the payload to upload.
type FileRef struct {
	Name         string
	Size         int64
	LastModified int64
	MimeType     string
	Path         string
	Data         []byte
}

// dedupKey identifies a file within a session. Two picks of the same
// on-disk file collapse into one entry.
type dedupKey struct {
	name         string
	size         int64
	lastModified int64
}

func keyOf(ref FileRef) dedupKey {
	return dedupKey{name: ref.Name, size: ref.Size, lastModified: ref.LastModified}
}

// StagedEntry is one bookkeeping record of the stager.
type StagedEntry struct {
	File  FileRef
	State StagedState
}

// AttachmentStager tracks the working set of files being attached to or
// removed from one slot during one edit session. It performs no I/O and
// belongs to a single edit session (single goroutine); a fresh instance
// is created per session instead of any process-wide flags.
type AttachmentStager struct {
	slot           model.AttachmentSlot
	order          []dedupKey
	entries        map[dedupKey]*StagedEntry
	pendingDeletes map[string]struct{}
}

func NewAttachmentStager(slot model.AttachmentSlot) *AttachmentStager {
	return &AttachmentStager{
		slot:           slot,
		entries:        make(map[dedupKey]*StagedEntry),
		pendingDeletes: make(map[string]struct{}),
	}
}

// Slot returns the attachment slot this stager manages.
func (s *AttachmentStager) Slot() model.AttachmentSlot {
	return s.slot
}

// AddFile stages a newly picked file. Re-adding a file with the same
// (name, size, lastModified) is a no-op. Returns true when the entry
// was inserted.
func (s *AttachmentStager) AddFile(ref FileRef) bool {
	key := keyOf(ref)
	if _, ok := s.entries[key]; ok {
		return false
	}
	s.entries[key] = &StagedEntry{File: ref, State: StagedNew}
	s.order = append(s.order, key)
	return true
}

// AddExistingFile stages a marker for a file already persisted on the
// entity. Existing entries are never re-uploaded; they only drive
// previews and removal bookkeeping.
func (s *AttachmentStager) AddExistingFile(ref FileRef) bool {
	key := keyOf(ref)
	if _, ok := s.entries[key]; ok {
		return false
	}
	s.entries[key] = &StagedEntry{File: ref, State: StagedExisting}
	s.order = append(s.order, key)
	return true
}

// RemoveFile resolves the entry by dedup key. A New entry is dropped
// outright; an Existing entry transitions to a deletion marker and its
// persisted path is recorded for save time. Removing an unknown or
// already removed file is a no-op.
func (s *AttachmentStager) RemoveFile(ref FileRef) {
	s.removeByKey(keyOf(ref))
}

// RemoveByPath removes the entry whose persisted path matches. This is
// how removal intents arrive over the API, where the client only knows
// the stored path of an existing attachment.
func (s *AttachmentStager) RemoveByPath(path string) {
	if path == "" {
		return
	}
	for key, entry := range s.entries {
		if entry.File.Path == path {
			s.removeByKey(key)
			return
		}
	}
}

func (s *AttachmentStager) removeByKey(key dedupKey) {
	entry, ok := s.entries[key]
	if !ok {
		return
	}
	switch entry.State {
	case StagedNew:
		delete(s.entries, key)
		s.order = removeKey(s.order, key)
	case StagedExisting:
		entry.State = StagedDeleted
		if entry.File.Path != "" {
			s.pendingDeletes[entry.File.Path] = struct{}{}
		}
	case StagedDeleted:
		// already removed, keep the marker
	}
}

func removeKey(keys []dedupKey, key dedupKey) []dedupKey {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

// AllFiles returns the visible entries (existing + new) in staging
// order; deletion markers are filtered out.
func (s *AttachmentStager) AllFiles() []StagedEntry {
	out := make([]StagedEntry, 0, len(s.order))
	for _, key := range s.order {
		entry := s.entries[key]
		if entry.State == StagedDeleted {
			continue
		}
		out = append(out, *entry)
	}
	return out
}

// NewFiles returns the files added this session, in staging order.
func (s *AttachmentStager) NewFiles() []FileRef {
	var out []FileRef
	for _, key := range s.order {
		entry := s.entries[key]
		if entry.State == StagedNew {
			out = append(out, entry.File)
		}
	}
	return out
}

// PendingDeletions returns the persisted paths the user removed.
func (s *AttachmentStager) PendingDeletions() []string {
	out := make([]string, 0, len(s.pendingDeletes))
	for path := range s.pendingDeletes {
		out = append(out, path)
	}
	return out
}

// IsPendingDeletion reports whether the path was removed this session.
func (s *AttachmentStager) IsPendingDeletion(path string) bool {
	_, ok := s.pendingDeletes[path]
	return ok
}

// Contains reports whether the file is still staged and visible.
func (s *AttachmentStager) Contains(ref FileRef) bool {
	entry, ok := s.entries[keyOf(ref)]
	return ok && entry.State != StagedDeleted
}

// Len counts the visible entries, for UI badges.
func (s *AttachmentStager) Len() int {
	n := 0
	for _, entry := range s.entries {
		if entry.State != StagedDeleted {
			n++
		}
	}
	return n
}

// Reset discards all staged state; used when the edit session is
// cancelled or closed without saving.
func (s *AttachmentStager) Reset() {
	s.order = nil
	s.entries = make(map[dedupKey]*StagedEntry)
	s.pendingDeletes = make(map[string]struct{})
}

// SeedFromSlot populates Existing markers from the entity's persisted
// attachment list, the way an edit session opens.
func (s *AttachmentStager) SeedFromSlot(list []model.Attachment) {
	for _, att := range list {
		s.AddExistingFile(FileRef{
			Name:         att.OriginalName,
			Size:         att.Size,
			LastModified: att.LastModified,
			MimeType:     att.MimeType,
			Path:         att.Path,
		})
	}
}

// NewSessionStagers builds one stager per slot, seeded from the carrier's
// persisted attachments.
func NewSessionStagers(carrier model.AttachmentCarrier) map[model.AttachmentSlot]*AttachmentStager {
	stagers := make(map[model.AttachmentSlot]*AttachmentStager, len(model.Slots))
	for _, slot := range model.Slots {
		stager := NewAttachmentStager(slot)
		if carrier != nil {
			stager.SeedFromSlot(carrier.Slot(slot))
		}
		stagers[slot] = stager
	}
	return stagers
}
