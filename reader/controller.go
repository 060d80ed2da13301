package reader

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"newsdesk/config"
	"newsdesk/newsapi"
	"newsdesk/store"
	"newsdesk/types"

	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
)

// LoadFailedMessage is the banner shown when every fetch attempt failed
const LoadFailedMessage = "Failed to load news. Showing offline articles, please try again."

var (
	// ErrArticleNotFound is returned when an id matches no loaded, searched or bookmarked article
	ErrArticleNotFound = errors.New("article not found")

	// ErrNotBookmarked is returned when removing an id that is not bookmarked
	ErrNotBookmarked = errors.New("article is not bookmarked")

	// ErrSuperseded is returned by a load that a newer load replaced
	ErrSuperseded = errors.New("load superseded by a newer request")
)

// Fetcher is the fetch service as seen by the controller
type Fetcher interface {
	FetchRemote(ctx context.Context, p newsapi.Params) newsapi.Result
	SupplyFallback(p newsapi.Params) []types.Article
	Search(ctx context.Context, query string) []types.Article
}

// Options tunes retries and background refresh
type Options struct {
	Count           int
	MaxAttempts     int
	RetryDelay      time.Duration
	RefreshSchedule string // cron schedule; empty disables background refresh
}

// OptionsFromConfig maps the fetch configuration onto controller options
func OptionsFromConfig(cfg config.FetchConfig) Options {
	return Options{
		Count:           cfg.Count,
		MaxAttempts:     cfg.MaxAttempts,
		RetryDelay:      cfg.RetryDelay,
		RefreshSchedule: cfg.RefreshSchedule,
	}
}

// Controller owns the store and the fetch service. UI collaborators only
// talk to the controller.
type Controller struct {
	store *store.Store
	news  Fetcher
	opts  Options

	cron   *cron.Cron
	cronID cron.EntryID

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu            sync.Mutex
	seq           uint64
	cancelLoad    context.CancelFunc
	online        bool
	visible       bool
	searchResults []types.Article
}

// New creates a controller. Zero options use the configured defaults.
func New(st *store.Store, news Fetcher, opts Options) *Controller {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = config.DefaultMaxAttempts
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = config.DefaultRetryDelay
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		store:      st,
		news:       news,
		opts:       opts,
		cron:       cron.New(),
		baseCtx:    ctx,
		baseCancel: cancel,
		online:     true,
		visible:    true,
	}
}

// Store exposes the state container for read access and subscriptions
func (c *Controller) Store() *store.Store {
	return c.store
}

// Start hydrates persisted state, loads the selected category and starts
// the background refresh schedule
func (c *Controller) Start(ctx context.Context) error {
	if err := c.store.Hydrate(ctx); err != nil {
		log.Printf("⚠️ Could not read persisted state, using defaults: %v", err)
	}

	if err := c.LoadNews(ctx, true); err != nil && !errors.Is(err, ErrSuperseded) {
		log.Printf("⚠️ Initial load failed: %v", err)
	}

	return c.StartRefresh(c.opts.RefreshSchedule)
}

// StartRefresh schedules background reloads. Ticks are skipped while the
// reader is offline or hidden.
func (c *Controller) StartRefresh(schedule string) error {
	if schedule == "" {
		log.Println("Background refresh disabled")
		return nil
	}

	id, err := c.cron.AddFunc(schedule, c.backgroundRefresh)
	if err != nil {
		return fmt.Errorf("failed to add refresh job: %w", err)
	}

	c.cronID = id
	c.cron.Start()
	log.Printf("🔄 Background refresh scheduled: %s", schedule)
	return nil
}

func (c *Controller) backgroundRefresh() {
	if !c.refreshAllowed() {
		log.Println("Refresh skipped: reader is offline or hidden")
		return
	}

	if err := c.LoadNews(c.baseCtx, false); err != nil && !errors.Is(err, ErrSuperseded) {
		log.Printf("⚠️ Background refresh failed: %v", err)
	}
}

func (c *Controller) refreshAllowed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online && c.visible
}

// Stop halts background refresh and cancels any in-flight load
func (c *Controller) Stop() {
	c.baseCancel()

	c.mu.Lock()
	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	c.mu.Unlock()

	<-c.cron.Stop().Done()
}

// LoadNews fetches the selected category. A newer load cancels this one and
// only the newest load may write to the store. When every attempt fails the
// feed is filled with generated articles and the error banner is set.
func (c *Controller) LoadNews(ctx context.Context, showLoading bool) error {
	loadCtx, seq := c.beginLoad(ctx)
	defer c.endLoad(seq)

	category := c.store.State().SelectedCategory
	p := newsapi.Params{Category: category, Count: c.opts.Count}

	if showLoading {
		c.dispatch(loadCtx, store.SetLoading(true))
	}

	articles, err := c.fetchWithRetry(loadCtx, p)

	return c.applyIfCurrent(seq, func() error {
		if err != nil && loadCtx.Err() != nil {
			c.dispatch(ctx, store.SetLoading(false))
			return err
		}

		if err != nil {
			log.Printf("❌ All %d attempts for %s failed: %v", c.opts.MaxAttempts, category, err)
			c.dispatch(ctx, store.SetArticles(c.news.SupplyFallback(p)))
			c.dispatch(ctx, store.SetError(LoadFailedMessage))
			return nil
		}

		c.dispatch(ctx, store.SetArticles(articles))
		if !showLoading {
			log.Printf("✅ News updated: loaded %d new %s articles", len(articles), category)
		}
		return nil
	})
}

// beginLoad cancels the in-flight load and issues a new sequence number
func (c *Controller) beginLoad(ctx context.Context) (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancelLoad != nil {
		c.cancelLoad()
	}
	c.seq++

	loadCtx, cancel := context.WithCancel(ctx)
	c.cancelLoad = cancel
	return loadCtx, c.seq
}

func (c *Controller) endLoad(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seq == seq && c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
}

// applyIfCurrent runs apply only if seq is still the newest load
func (c *Controller) applyIfCurrent(seq uint64, apply func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seq != seq {
		return ErrSuperseded
	}
	return apply()
}

// fetchWithRetry calls FetchRemote up to MaxAttempts times with exponential backoff
func (c *Controller) fetchWithRetry(ctx context.Context, p newsapi.Params) ([]types.Article, error) {
	var articles []types.Article
	attempt := 0

	operation := func() error {
		attempt++
		result := c.news.FetchRemote(ctx, p)
		if result.OK() {
			articles = result.Articles
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		log.Printf("⚠️ Attempt %d/%d for %s failed: %v", attempt, c.opts.MaxAttempts, p.Category, result.Err)
		return result.Err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.opts.RetryDelay
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.opts.MaxAttempts-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return articles, nil
}

// dispatch logs persistence failures; the in-memory state has already advanced
func (c *Controller) dispatch(ctx context.Context, a store.Action) {
	if err := c.store.Dispatch(ctx, a); err != nil {
		log.Printf("⚠️ %s not persisted: %v", a.Type, err)
	}
}

// SelectCategory switches the feed and reloads it
func (c *Controller) SelectCategory(ctx context.Context, name string) error {
	category, err := types.ParseCategory(name)
	if err != nil {
		return err
	}

	c.dispatch(ctx, store.SetCategory(category))
	return c.LoadNews(ctx, true)
}

// Refresh reloads the selected category with the loading indicator
func (c *Controller) Refresh(ctx context.Context) error {
	return c.LoadNews(ctx, true)
}

// Search runs a search and remembers the results so they can be opened or bookmarked
func (c *Controller) Search(ctx context.Context, query string) []types.Article {
	results := c.news.Search(ctx, query)

	c.mu.Lock()
	c.searchResults = results
	c.mu.Unlock()

	return results
}

// Article finds an article by id in the feed, the last search or the bookmarks
func (c *Controller) Article(id string) (types.Article, bool) {
	state := c.store.State()
	if a, ok := types.FindArticle(state.Articles, id); ok {
		return a, true
	}

	c.mu.Lock()
	results := c.searchResults
	c.mu.Unlock()
	if a, ok := types.FindArticle(results, id); ok {
		return a, true
	}

	return types.FindArticle(state.Bookmarks, id)
}

// AddBookmark bookmarks a loaded or searched article. Adding twice is a no-op.
func (c *Controller) AddBookmark(ctx context.Context, id string) (types.Article, error) {
	a, ok := c.Article(id)
	if !ok {
		return types.Article{}, fmt.Errorf("%w: %s", ErrArticleNotFound, id)
	}
	return a, c.store.Dispatch(ctx, store.AddBookmark(a))
}

// RemoveBookmark drops a bookmark by id
func (c *Controller) RemoveBookmark(ctx context.Context, id string) error {
	if !c.store.State().IsBookmarked(id) {
		return fmt.Errorf("%w: %s", ErrNotBookmarked, id)
	}
	return c.store.Dispatch(ctx, store.RemoveBookmark(id))
}

// ToggleBookmark flips the bookmark state and reports whether id is now bookmarked
func (c *Controller) ToggleBookmark(ctx context.Context, id string) (bool, error) {
	if c.store.State().IsBookmarked(id) {
		return false, c.RemoveBookmark(ctx, id)
	}
	_, err := c.AddBookmark(ctx, id)
	return err == nil, err
}

// SetOnline records connectivity. Coming back online triggers a refresh.
func (c *Controller) SetOnline(online bool) {
	c.setPresence(&c.online, online)
}

// SetVisible records whether the reader is on screen. Becoming visible triggers a refresh.
func (c *Controller) SetVisible(visible bool) {
	c.setPresence(&c.visible, visible)
}

// Presence reports the online and visible flags
func (c *Controller) Presence() (online, visible bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online, c.visible
}

func (c *Controller) setPresence(flag *bool, value bool) {
	c.mu.Lock()
	wasAllowed := c.online && c.visible
	*flag = value
	nowAllowed := c.online && c.visible
	c.mu.Unlock()

	if !wasAllowed && nowAllowed {
		go c.backgroundRefresh()
	}
}
