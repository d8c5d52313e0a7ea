package wardrobe

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/smart-wardrobe/pkg/util"
)

// Controller turns user actions into gateway calls, cache updates and view refreshes.
// Actions never return errors: failures are logged and shown to the user.
type Controller interface {
	Init(ctx context.Context)
	Upload(ctx context.Context, files []UploadFile)
	EditItem(ctx context.Context, id string, prompter Prompter)
	DeleteItem(ctx context.Context, id string, prompter Prompter)
	Filter(ctx context.Context, filter Filter)
	Refresh(ctx context.Context)
	SuggestOutfits(ctx context.Context, occasion, date string)
	SaveOutfit(ctx context.Context, outfitID, occasion, date string)
	SendChat(ctx context.Context, text string)
	Organize(ctx context.Context)
	ToggleChat()
	ImportFromDrive(ctx context.Context, folderID string)
	Items() []Item
}

type controller struct {
	cfg     Config
	cache   *Cache
	gateway Gateway
	view    View
	outfits OutfitStore
	ext     Extensions
	logger  *slog.Logger
	now     func() time.Time
}

// NewController wires the interaction controller.
func NewController(cfg Config, cache *Cache, gateway Gateway, view View, outfits OutfitStore, ext Extensions, logger *slog.Logger) Controller {
	return &controller{
		cfg:     cfg,
		cache:   cache,
		gateway: gateway,
		view:    view,
		outfits: outfits,
		ext:     ext,
		logger:  logger.With("component", "wardrobe.controller"),
		now:     util.NowLocal,
	}
}

// Init loads the wardrobe into the cache and greets the user once it is shown.
func (c *controller) Init(ctx context.Context) {
	page, err := c.gateway.FetchWardrobe(ctx, Filter{}.Normalize())
	if err != nil {
		c.logger.Error("initial wardrobe load failed", "action", "init", "error", err)
		c.view.RenderGrid(c.cache.Items())
		return
	}
	c.cache.ReplaceAll(page.Items)
	c.view.RenderGrid(c.cache.Items())
	c.logger.Info("wardrobe loaded", "items", c.cache.Len(), "total", page.TotalItems)

	if c.cfg.WelcomeMessage == "" {
		return
	}
	if c.cfg.WelcomeDelay > 0 {
		timer := time.NewTimer(c.cfg.WelcomeDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
	c.view.AppendChatMessage(c.cfg.WelcomeMessage, SenderAssistant)
}

// Filter shows the server-side filtered listing without touching the cache.
func (c *controller) Filter(ctx context.Context, filter Filter) {
	page, err := c.gateway.FetchWardrobe(ctx, filter.Normalize())
	if err != nil {
		c.logger.Error("filter wardrobe failed", "action", "filter", "error", err)
		c.view.RenderGrid(nil)
		return
	}
	c.view.RenderGrid(page.Items)
}

// Refresh shows the full cached wardrobe again.
func (c *controller) Refresh(_ context.Context) {
	c.view.RenderGrid(c.cache.Items())
}

func (c *controller) EditItem(ctx context.Context, id string, prompter Prompter) {
	name, ok := prompter.Prompt(PromptNewName)
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return
	}

	result, err := c.gateway.UpdateItem(ctx, id, ItemPatch{Name: &name})
	if err != nil {
		c.fail("edit", MsgEditFailed, err, "item_id", id)
		return
	}
	if !result.OK() {
		c.reject("edit", MsgEditFailed, result.Status, result.Message, "item_id", id)
		return
	}

	item := result.Item
	if item.ID == "" {
		item, err = c.gateway.FetchItem(ctx, id)
		if err != nil {
			c.fail("edit", MsgEditFailed, err, "item_id", id)
			return
		}
	}
	if previous, cached := c.cache.Get(id); cached {
		c.logger.Info("item renamed", "item_id", id, "from", previous.Name, "to", item.Name)
	}
	c.cache.Upsert(item)
	c.view.RenderGrid(c.cache.Items())
}

func (c *controller) DeleteItem(ctx context.Context, id string, prompter Prompter) {
	if !prompter.Confirm(PromptConfirmDeletion) {
		return
	}

	result, err := c.gateway.DeleteItem(ctx, id)
	if err != nil {
		c.fail("delete", MsgDeleteFailed, err, "item_id", id)
		return
	}
	if !result.OK() {
		c.reject("delete", MsgDeleteFailed, result.Status, result.Message, "item_id", id)
		return
	}
	c.cache.Remove(id)
	c.view.RenderGrid(c.cache.Items())
}

func (c *controller) Organize(ctx context.Context) {
	org, err := c.gateway.OrganizeWardrobe(ctx)
	if err != nil {
		c.fail("organize", MsgOrganizeFailed, err)
		return
	}
	if msg := strings.TrimSpace(org.Message); msg != "" {
		c.view.AppendChatMessage(msg, SenderAssistant)
	}
}

func (c *controller) ToggleChat() {
	visible := c.view.ToggleChat()
	c.logger.Debug("chat toggled", "visible", visible)
}

func (c *controller) Items() []Item {
	return c.cache.Items()
}

// fail logs a transport failure and tells the user.
func (c *controller) fail(action, userMessage string, err error, attrs ...any) {
	args := append([]any{"action", action, "error", err}, attrs...)
	c.logger.Error("action failed", args...)
	if userMessage != "" {
		c.view.AppendChatMessage(userMessage, SenderAssistant)
	}
}

// reject logs a non-success payload and tells the user.
func (c *controller) reject(action, userMessage, status, message string, attrs ...any) {
	args := append([]any{"action", action, "status", status, "message", message}, attrs...)
	c.logger.Warn("action rejected by service", args...)
	c.view.AppendChatMessage(userMessage, SenderAssistant)
}
