package attachments

import (
	"sync"

	"github.com/google/uuid"
)

// Preview is a transient displayable handle for one staged file. The
// token is only valid until the staged list is replaced or the owning
// form is closed; previews are display aids and are never submitted.
type Preview struct {
	Token    string `json:"token"`
	Filename string `json:"filename"`
}

// PreviewStore issues and serves preview tokens for staged files.
type PreviewStore struct {
	mu       sync.Mutex
	previews []Preview
	data     map[string][]byte
}

func NewPreviewStore() *PreviewStore {
	return &PreviewStore{data: make(map[string][]byte)}
}

// Replace releases all current previews and issues one token per
// staged file, in staged-list order.
func (p *PreviewStore) Replace(files []StagedFile) []Preview {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.data = make(map[string][]byte, len(files))
	p.previews = make([]Preview, 0, len(files))
	for _, f := range files {
		token := uuid.New().String()
		p.data[token] = f.Content
		p.previews = append(p.previews, Preview{Token: token, Filename: f.Filename})
	}

	out := make([]Preview, len(p.previews))
	copy(out, p.previews)
	return out
}

// Get returns the bytes behind a preview token.
func (p *PreviewStore) Get(token string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	data, ok := p.data[token]
	return data, ok
}

// Previews returns the current previews in staged-list order.
func (p *PreviewStore) Previews() []Preview {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Preview, len(p.previews))
	copy(out, p.previews)
	return out
}

// Release invalidates every outstanding preview. Must be called when
// the owning form is torn down, or the staged bytes are held for the
// life of the session.
func (p *PreviewStore) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.previews = nil
	p.data = make(map[string][]byte)
}
