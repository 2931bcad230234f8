package service

// PreviewResult carries the outcome of a background preview read.
type PreviewResult struct {
	File FileRef
	Data []byte
	Err  error
}

// LoadPreview reads the staged file's content in the background, purely
// to drive an in-UI preview. The returned channel delivers exactly one
// result when the read settles. The read goroutine never touches the
// stager; the session goroutine that owns it receives the result and
// hands it to ApplyPreview, which is where stale results get dropped.
func LoadPreview(ref FileRef, read func(FileRef) ([]byte, error)) <-chan PreviewResult {
	out := make(chan PreviewResult, 1)
	go func() {
		data, err := read(ref)
		out <- PreviewResult{File: ref, Data: data, Err: err}
	}()
	return out
}

// ApplyPreview applies a completed preview read on the session
// goroutine. A result whose entry was removed while the read was in
// flight is discarded instead of applied. Reports whether the result
// was applied.
func (s *AttachmentStager) ApplyPreview(res PreviewResult, apply func(PreviewResult)) bool {
	if !s.Contains(res.File) {
		return false
	}
	apply(res)
	return true
}
