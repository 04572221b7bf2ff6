package console

import (
	"context"

	"github.com/gazetadovale/newsdesk/internal/models"
)

// API is the slice of the upstream client the console needs.
type API interface {
	NewsAPI
	ListNews(ctx context.Context) ([]models.Article, error)
	DeleteNews(ctx context.Context, id int) error
	ListRegions(ctx context.Context) ([]models.Region, error)
	DeleteRegion(ctx context.Context, id int) error
	ListCities(ctx context.Context, regionID int) ([]models.City, error)
	DeleteCity(ctx context.Context, id int) error
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int) error
	ListAds(ctx context.Context) ([]models.Advertisement, error)
	DeleteAd(ctx context.Context, id int) error
	ListPartners(ctx context.Context) ([]models.Partner, error)
	DeletePartner(ctx context.Context, id int) error
}

// Console is the per-session admin state: one article form plus a list
// store and delete flow per entity kind.
type Console struct {
	api  API
	Form *ArticleForm

	News     *Store[models.Article]
	Regions  *Store[models.Region]
	Cities   *Store[models.City]
	Users    *Store[models.User]
	Ads      *Store[models.Advertisement]
	Partners *Store[models.Partner]

	flows map[Kind]*ListCoordinator
}

// NewConsole builds the console state for one session.
func NewConsole(api API) *Console {
	c := &Console{
		api:      api,
		Form:     NewArticleForm(api),
		News:     &Store[models.Article]{},
		Regions:  &Store[models.Region]{},
		Cities:   &Store[models.City]{},
		Users:    &Store[models.User]{},
		Ads:      &Store[models.Advertisement]{},
		Partners: &Store[models.Partner]{},
	}

	c.flows = map[Kind]*ListCoordinator{
		KindNews:     NewListCoordinator(KindNews, api.DeleteNews, c.RefreshNews),
		KindRegions:  NewListCoordinator(KindRegions, api.DeleteRegion, c.RefreshRegions),
		KindCities:   NewListCoordinator(KindCities, api.DeleteCity, c.RefreshCities),
		KindUsers:    NewListCoordinator(KindUsers, api.DeleteUser, c.RefreshUsers),
		KindAds:      NewListCoordinator(KindAds, api.DeleteAd, c.RefreshAds),
		KindPartners: NewListCoordinator(KindPartners, api.DeletePartner, c.RefreshPartners),
	}
	return c
}

// Flow returns the delete coordinator for an entity kind.
func (c *Console) Flow(kind Kind) (*ListCoordinator, bool) {
	flow, ok := c.flows[kind]
	return flow, ok
}

// refreshStore runs one guarded fetch cycle: take a ticket, fetch,
// apply. A result superseded by a newer fetch is silently discarded.
func refreshStore[T any](ctx context.Context, store *Store[T], fetch func(context.Context) ([]T, error)) error {
	ticket := store.Begin()
	items, err := fetch(ctx)
	if err != nil {
		return err
	}
	store.Apply(ticket, items)
	return nil
}

func (c *Console) RefreshNews(ctx context.Context) error {
	return refreshStore(ctx, c.News, c.api.ListNews)
}

func (c *Console) RefreshRegions(ctx context.Context) error {
	return refreshStore(ctx, c.Regions, c.api.ListRegions)
}

func (c *Console) RefreshCities(ctx context.Context) error {
	return refreshStore(ctx, c.Cities, func(ctx context.Context) ([]models.City, error) {
		return c.api.ListCities(ctx, 0)
	})
}

func (c *Console) RefreshUsers(ctx context.Context) error {
	return refreshStore(ctx, c.Users, c.api.ListUsers)
}

func (c *Console) RefreshAds(ctx context.Context) error {
	return refreshStore(ctx, c.Ads, c.api.ListAds)
}

func (c *Console) RefreshPartners(ctx context.Context) error {
	return refreshStore(ctx, c.Partners, c.api.ListPartners)
}

// Close releases console resources (staged preview bytes).
func (c *Console) Close() {
	c.Form.Close()
}
