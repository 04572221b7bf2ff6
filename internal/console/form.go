package console

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/gazetadovale/newsdesk/internal/attachments"
	"github.com/gazetadovale/newsdesk/internal/models"
	"github.com/gazetadovale/newsdesk/internal/upstream"
)

// NewsAPI is the slice of the upstream client the article form needs.
type NewsAPI interface {
	GetNews(ctx context.Context, id int) (*models.Article, error)
	CreateNews(ctx context.Context, sub *upstream.NewsSubmission) (*models.Article, error)
	UpdateNews(ctx context.Context, id int, sub *upstream.NewsSubmission) (*models.Article, error)
}

// FormMode distinguishes the create and edit flows.
type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

// ValidationError reports the required fields missing from a
// submission. It is raised locally; nothing reaches the API.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// FormFields are the non-attachment article fields.
type FormFields struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Category models.Category `json:"category"`
	CityID   int             `json:"city_id"`
}

// ArticleForm is the create/edit state machine for a single article.
// A form starts in create mode with everything blank; OpenEdit re-seeds
// it from a fresh upstream fetch. Submission failures leave every field
// and staged file in place so the user can retry.
type ArticleForm struct {
	mu sync.Mutex

	api      NewsAPI
	mode     FormMode
	article  int
	fields   FormFields
	set      *attachments.Set
	previews *attachments.PreviewStore
}

// NewArticleForm returns a form in create mode.
func NewArticleForm(api NewsAPI) *ArticleForm {
	return &ArticleForm{
		api:      api,
		mode:     ModeCreate,
		set:      attachments.NewSet(nil),
		previews: attachments.NewPreviewStore(),
	}
}

// OpenEdit switches the form to edit mode, seeded from the current
// server copy of the article (never a cached one). Any in-progress
// create state is discarded.
func (f *ArticleForm) OpenEdit(ctx context.Context, id int) error {
	article, err := f.api.GetNews(ctx, id)
	if err != nil {
		return fmt.Errorf("load article %d: %w", id, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.previews.Release()
	f.mode = ModeEdit
	f.article = article.ID
	f.fields = FormFields{
		Title:    article.Title,
		Content:  article.Content,
		Category: article.Category,
		CityID:   article.CityID,
	}
	f.set = attachments.NewSet(article.Images)
	return nil
}

// SetFields updates the non-attachment fields.
func (f *ArticleForm) SetFields(fields FormFields) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fields = fields
}

// StageImages replaces the staged selection, truncating to the
// remaining attachment capacity, and issues fresh previews. The dropped
// count is the capacity-exceeded signal.
func (f *ArticleForm) StageImages(files []attachments.StagedFile) (previews []attachments.Preview, dropped int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	dropped = f.set.Stage(files)
	previews = f.previews.Replace(f.set.Staged())
	return previews, dropped
}

// RemoveExistingImage drops a persisted image reference by position.
func (f *ArticleForm) RemoveExistingImage(index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.set.RemoveExisting(index)
}

// Preview returns the bytes behind a preview token.
func (f *ArticleForm) Preview(token string) ([]byte, bool) {
	return f.previews.Get(token)
}

// State is the form snapshot returned to the frontend.
type State struct {
	Mode      FormMode              `json:"mode"`
	ArticleID int                   `json:"article_id,omitempty"`
	Fields    FormFields            `json:"fields"`
	Existing  []string              `json:"existing_images"`
	Previews  []attachments.Preview `json:"previews"`
}

// State snapshots the current form.
func (f *ArticleForm) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		Mode:      f.mode,
		ArticleID: f.article,
		Fields:    f.fields,
		Existing:  f.set.Existing(),
		Previews:  f.previews.Previews(),
	}
}

// validate checks the locally required fields.
func (f *ArticleForm) validate() error {
	var missing []string
	if strings.TrimSpace(f.fields.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.fields.Content) == "" {
		missing = append(missing, "content")
	}
	if !f.fields.Category.Valid() {
		missing = append(missing, "category")
	}
	if f.fields.CityID == 0 {
		missing = append(missing, "city_id")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// Submit validates the form and sends it upstream. On success the form
// resets to a blank create state and the saved server copy is returned.
// On any failure the form, including staged files, is left untouched.
func (f *ArticleForm) Submit(ctx context.Context) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.validate(); err != nil {
		return nil, err
	}

	payload := f.set.Payload()
	sub := &upstream.NewsSubmission{
		Title:          f.fields.Title,
		Content:        f.fields.Content,
		Category:       f.fields.Category,
		CityID:         f.fields.CityID,
		ExistingImages: payload.Existing,
		Images:         toFileParts(payload.Files),
	}

	var saved *models.Article
	var err error
	if f.mode == ModeEdit {
		saved, err = f.api.UpdateNews(ctx, f.article, sub)
	} else {
		saved, err = f.api.CreateNews(ctx, sub)
	}
	if err != nil {
		return nil, err
	}

	f.reset()
	return saved, nil
}

// Cancel discards the form state and returns to a blank create form.
func (f *ArticleForm) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reset()
}

// Close releases held resources. The form is unusable afterwards.
func (f *ArticleForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.previews.Release()
}

func (f *ArticleForm) reset() {
	f.previews.Release()
	f.mode = ModeCreate
	f.article = 0
	f.fields = FormFields{}
	f.set = attachments.NewSet(nil)
}

func toFileParts(files []attachments.StagedFile) []upstream.FilePart {
	parts := make([]upstream.FilePart, 0, len(files))
	for _, f := range files {
		parts = append(parts, upstream.FilePart{Filename: f.Filename, Content: f.Content})
	}
	return parts
}
