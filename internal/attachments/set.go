// Package attachments manages the image attachment lifecycle shared by
// the article create and edit flows: previously persisted references,
// newly staged files, the attachment count limit, and the submission
// payload sent upstream.
package attachments

import "errors"

// MaxImages is the combined limit of existing and staged images per
// article.
const MaxImages = 10

// ErrIndexOutOfRange is returned by RemoveExisting for an invalid index.
var ErrIndexOutOfRange = errors.New("attachments: index out of range")

// StagedFile is a user-selected image not yet submitted upstream.
type StagedFile struct {
	Filename string
	Content  []byte
}

// Set holds the ordered persisted references and the ordered staged
// files for one article form.
type Set struct {
	existing []string
	staged   []StagedFile
}

// NewSet seeds a set with the article's persisted image references.
// Pass nil for the create flow.
func NewSet(existing []string) *Set {
	s := &Set{existing: make([]string, len(existing))}
	copy(s.existing, existing)
	return s
}

// Stage replaces the staged list with files. Selections are not
// cumulative: re-invoking Stage discards the previous staged list. When
// existing plus staged would exceed MaxImages the staged list is
// truncated to the remaining capacity and the number of dropped files
// is returned so the caller can warn the user.
func (s *Set) Stage(files []StagedFile) (dropped int) {
	capacity := MaxImages - len(s.existing)
	if capacity < 0 {
		capacity = 0
	}

	kept := files
	if len(files) > capacity {
		kept = files[:capacity]
		dropped = len(files) - capacity
	}

	s.staged = make([]StagedFile, len(kept))
	copy(s.staged, kept)
	return dropped
}

// RemoveExisting deletes the persisted reference at index. Subsequent
// indices shift down.
func (s *Set) RemoveExisting(index int) error {
	if index < 0 || index >= len(s.existing) {
		return ErrIndexOutOfRange
	}
	s.existing = append(s.existing[:index], s.existing[index+1:]...)
	return nil
}

// Existing returns a copy of the remaining persisted references.
func (s *Set) Existing() []string {
	out := make([]string, len(s.existing))
	copy(out, s.existing)
	return out
}

// Staged returns a copy of the currently staged files.
func (s *Set) Staged() []StagedFile {
	out := make([]StagedFile, len(s.staged))
	copy(out, s.staged)
	return out
}

// Count returns the combined existing and staged count.
func (s *Set) Count() int {
	return len(s.existing) + len(s.staged)
}

// Payload is the outbound submission data: the existing references the
// API must retain followed by the staged files it must store. Nothing
// else ever reaches the API; files superseded by a later Stage call are
// gone.
type Payload struct {
	Existing []string
	Files    []StagedFile
}

// Payload builds the submission payload. It does not mutate the set, so
// repeated calls without intervening mutation yield identical payloads
// and a failed submission can simply be retried.
func (s *Set) Payload() Payload {
	return Payload{
		Existing: s.Existing(),
		Files:    s.Staged(),
	}
}
