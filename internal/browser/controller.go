package browser

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"memedir/internal/config"
	"memedir/internal/upload"
)

// Controller owns the application state, the directory snapshot, and
// the thumbnail cache. Everything it owns is mutated only from the
// goroutine calling Tick and the action methods; the worker never
// touches it, so no shared state crosses the channel boundary.
type Controller struct {
	worker *Worker

	state    AppState
	snapshot Snapshot
	cache    *ThumbCache

	workdir string
	search  string
	page    int
	perPage int
	exts    []string

	// dirty-check markers: nil means "never checked", which forces the
	// first rescan.
	lastWorkdir *string
	lastSearch  *string
	lastPage    *int

	watcher *fsnotify.Watcher
	fsDirty atomic.Bool
}

// NewController wires a controller to its worker. cfg.Workdir may
// contain a leading ~.
func NewController(cfg config.BrowserConfig, worker *Worker) *Controller {
	return &Controller{
		worker:  worker,
		state:   BrowserState(),
		cache:   NewThumbCache(),
		workdir: config.ExpandWorkdir(cfg.Workdir),
		perPage: cfg.PerPage,
		exts:    cfg.Extensions,
	}
}

// State returns the current UI state
func (c *Controller) State() AppState {
	return c.state
}

// Snapshot returns the most recent directory listing
func (c *Controller) Snapshot() Snapshot {
	return c.snapshot
}

// Cache exposes the thumbnail cache for rendering
func (c *Controller) Cache() *ThumbCache {
	return c.cache
}

// PageIndex returns the current page of the listing
func (c *Controller) PageIndex() int {
	return c.page
}

// CurrentPage returns the file paths visible on the current page
func (c *Controller) CurrentPage() []string {
	return c.snapshot.Page(c.page, c.perPage)
}

// Search returns the active search filter text
func (c *Controller) Search() string {
	return c.search
}

// Workdir returns the directory being browsed
func (c *Controller) Workdir() string {
	return c.workdir
}

// SetSearch updates the filter text; the next Tick notices the change
// and rescans.
func (c *Controller) SetSearch(search string) {
	c.search = search
}

// SetWorkdir switches the browsed directory and moves the filesystem
// watch along with it.
func (c *Controller) SetWorkdir(dir string) {
	dir = config.ExpandWorkdir(dir)
	if dir == c.workdir {
		return
	}
	if c.watcher != nil {
		if err := c.watcher.Remove(c.workdir); err != nil {
			logrus.WithError(err).Debugf("Failed to unwatch %s", c.workdir)
		}
		if err := c.watcher.Add(dir); err != nil {
			logrus.WithError(err).Warnf("Failed to watch %s", dir)
		}
	}
	c.workdir = dir
	c.page = 0
}

// StartWatcher begins watching the workdir so file churn between ticks
// marks the listing dirty. The browser still works without it; the
// per-tick dirty check covers page/search/dir changes either way.
func (c *Controller) StartWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(c.workdir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", c.workdir, err)
	}
	c.watcher = watcher

	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				c.fsDirty.Store(true)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logrus.WithError(err).Warn("Directory watcher error")
			}
		}
	}()
	return nil
}

// Close stops the filesystem watcher
func (c *Controller) Close() error {
	if c.watcher != nil {
		return c.watcher.Close()
	}
	return nil
}

// Tick runs once per UI frame: it applies the backlog of worker
// responses without waiting, then rescans if anything the listing
// depends on changed since the last tick.
func (c *Controller) Tick() {
	c.Drain()
	c.checkNeedsRescan()
}

// Drain applies every response already sitting in the channel. It
// never blocks; an empty channel means nothing to do this frame.
func (c *Controller) Drain() {
	for {
		select {
		case resp := <-c.worker.Responses():
			c.Apply(resp)
		default:
			return
		}
	}
}

// checkNeedsRescan is the per-tick dirty check: directory, page, or
// search changed, a watcher event fired, or nothing was ever scanned.
func (c *Controller) checkNeedsRescan() {
	dirty := c.fsDirty.Swap(false)
	if c.lastWorkdir == nil || *c.lastWorkdir != c.workdir {
		dirty = true
	}
	if c.lastSearch == nil || *c.lastSearch != c.search {
		dirty = true
	}
	if c.lastPage == nil || *c.lastPage != c.page {
		dirty = true
	}

	if dirty {
		c.Rescan()
	}

	workdir, search, page := c.workdir, c.search, c.page
	c.lastWorkdir = &workdir
	c.lastSearch = &search
	c.lastPage = &page
}

// Rescan rebuilds the snapshot, prunes the cache against it, and
// enqueues a load for every visible file that is not yet cached.
// Prune runs before any request goes out so a just-deleted file can
// never be re-queued from stale state.
func (c *Controller) Rescan() {
	snapshot, err := Scan(c.workdir, c.exts, c.search)
	if err != nil {
		logrus.WithError(err).Warnf("Failed to scan %s", c.workdir)
		snapshot = Snapshot{}
	}
	c.snapshot = snapshot
	c.cache.Prune(snapshot)

	for _, path := range c.snapshot.Page(c.page, c.perPage) {
		if c.cache.Has(path) {
			continue
		}
		logrus.Debugf("Requesting thumbnail for %s", path)
		c.worker.Submit(LoadRequest{Path: path, Page: c.page})
	}
}

// Apply merges one worker response into the controller's state
func (c *Controller) Apply(resp Response) {
	switch resp := resp.(type) {
	case LoadResult:
		if resp.Err != nil {
			// Reported once, no negative caching: the placeholder
			// stays and the file is retried on the next rescan.
			logrus.WithError(resp.Err).Errorf("Failed to load thumbnail for %s", resp.Path)
			return
		}
		// Inserted even when resp.Page is no longer current: the
		// entry is keyed by path and simply warm for a revisit.
		c.cache.Insert(CacheEntry{
			Path:         resp.Path,
			Thumb:        resp.Thumb,
			LoadedAtPage: resp.Page,
		})

	case UploadDone:
		c.applyUploadOutcome(resp)

	case StateChange:
		c.state = resp.State

	default:
		logrus.Errorf("Controller received unknown response type %T", resp)
	}
}

func (c *Controller) applyUploadOutcome(resp UploadDone) {
	out := resp.Outcome
	next := EditorState(out.LocalPath)

	switch out.Status {
	case upload.StatusUploaded:
		logrus.Infof("Uploaded %s as %s", out.LocalPath, out.Key)
		c.state = next
	case upload.StatusAlreadyExists:
		msg := fmt.Sprintf("Already in bucket as %s", out.Key)
		if out.Remote != nil && out.Remote.Size > 0 {
			msg = fmt.Sprintf("%s (%s)", msg, humanize.Bytes(uint64(out.Remote.Size)))
		}
		c.state = ShowErrorState(msg, &next)
	case upload.StatusAborted:
		c.state = ShowErrorState("Upload aborted: "+out.Reason, &next)
	default:
		c.state = ShowErrorState(fmt.Sprintf("Upload failed: %v", out.Err), &next)
	}
}

// Select opens the editor on a file from the browser grid
func (c *Controller) Select(path string) {
	if c.state.Mode != ModeBrowser {
		return
	}
	c.state = EditorState(path)
}

// Back returns from the editor to the browser, and from any prompt to
// the editor for its file. In the browser it clears the search.
func (c *Controller) Back() {
	switch c.state.Mode {
	case ModeBrowser:
		c.search = ""
	case ModeEditor, ModeConfiguration:
		c.state = BrowserState()
	case ModeRenameConfirm, ModeDeletePrompt, ModeUploadPrompt:
		c.state = EditorState(c.state.Path)
	case ModeShowError:
		c.state = c.state.Acknowledged()
	}
	// ModeUploading deliberately ignores Back: there is no way to
	// abort an in-flight upload.
}

// RequestDelete asks for confirmation before deleting the edited file
func (c *Controller) RequestDelete() {
	if c.state.Mode != ModeEditor {
		return
	}
	c.state = DeletePromptState(c.state.Path)
}

// ConfirmDelete deletes the file, rescans, and returns to the browser.
// Failure surfaces as ShowError with the editor as continuation.
func (c *Controller) ConfirmDelete() {
	if c.state.Mode != ModeDeletePrompt {
		return
	}
	path := c.state.Path
	if err := os.Remove(path); err != nil {
		next := EditorState(path)
		c.state = ShowErrorState(fmt.Sprintf("Failed to delete file: %v", err), &next)
		return
	}
	logrus.Infof("Deleted %s", path)
	c.Rescan()
	c.state = BrowserState()
}

// RequestRename asks for confirmation before renaming the edited file
func (c *Controller) RequestRename(newPath string) {
	if c.state.Mode != ModeEditor || newPath == "" || newPath == c.state.Path {
		return
	}
	c.state = RenameConfirmState(c.state.Path, newPath)
}

// ConfirmRename renames the file, rescans, and reopens the editor on
// the new path.
func (c *Controller) ConfirmRename() {
	if c.state.Mode != ModeRenameConfirm {
		return
	}
	oldPath, newPath := c.state.Path, c.state.NewPath
	if err := os.Rename(oldPath, newPath); err != nil {
		next := EditorState(oldPath)
		c.state = ShowErrorState(fmt.Sprintf("Failed to rename file: %v", err), &next)
		return
	}
	logrus.Debugf("Renamed %s to %s", oldPath, newPath)
	c.Rescan()
	c.state = EditorState(newPath)
}

// RequestUpload asks for confirmation before uploading the edited file
func (c *Controller) RequestUpload() {
	if c.state.Mode != ModeEditor {
		return
	}
	c.state = UploadPromptState(c.state.Path)
}

// ConfirmUpload hands the file to the worker and waits in the
// Uploading state for its single outcome.
func (c *Controller) ConfirmUpload() {
	if c.state.Mode != ModeUploadPrompt {
		return
	}
	path := c.state.Path
	c.state = UploadingState(path)
	c.worker.Submit(UploadRequest{Path: path})
}

// Acknowledge dismisses a ShowError into its continuation
func (c *Controller) Acknowledge() {
	c.state = c.state.Acknowledged()
}

// OpenConfiguration switches from the browser to the settings screen
func (c *Controller) OpenConfiguration() {
	if c.state.Mode != ModeBrowser {
		return
	}
	c.state = ConfigurationState()
}

// NextPage advances the browser one page if there is one
func (c *Controller) NextPage() {
	if c.state.Mode != ModeBrowser {
		return
	}
	if c.page < c.snapshot.Pages(c.perPage)-1 {
		c.page++
	}
}

// PrevPage goes back one page
func (c *Controller) PrevPage() {
	if c.state.Mode != ModeBrowser {
		return
	}
	if c.page > 0 {
		c.page--
	}
}

// FirstPage jumps to the start of the listing
func (c *Controller) FirstPage() {
	if c.state.Mode != ModeBrowser {
		return
	}
	c.page = 0
}

// Refresh forces a rescan on the next tick and routes a Browser
// transition through the worker, exercising the shared channel pair
// in both directions.
func (c *Controller) Refresh() {
	c.lastSearch = nil
	c.worker.Submit(StateChange{State: BrowserState()})
}
