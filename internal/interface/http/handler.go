package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
	"github.com/yanqian/smart-wardrobe/internal/infra/dispatch"
	"github.com/yanqian/smart-wardrobe/internal/interface/view"
	"github.com/yanqian/smart-wardrobe/pkg/metrics"
	"github.com/yanqian/smart-wardrobe/pkg/util"
)

// LookbookExporter prints a page to PDF.
type LookbookExporter interface {
	ExportPDF(ctx context.Context, pageURL string) ([]byte, error)
}

// Options toggles the optional console features.
type Options struct {
	DriveEnabled   bool
	LookbookURL    string
	MaxUploadBytes int64
}

// Handler binds console routes to controller actions.
type Handler struct {
	controller wardrobe.Controller
	page       *view.Page
	renderer   *view.Renderer
	dispatcher dispatch.Dispatcher
	stats      *metrics.ActionStats
	exporter   LookbookExporter
	opts       Options
	logger     *slog.Logger
}

// NewHandler constructs the console handler. A nil exporter disables PDF export.
func NewHandler(
	controller wardrobe.Controller,
	page *view.Page,
	renderer *view.Renderer,
	dispatcher dispatch.Dispatcher,
	stats *metrics.ActionStats,
	exporter LookbookExporter,
	opts Options,
	logger *slog.Logger,
) *Handler {
	if stats == nil {
		stats = metrics.NewActionStats()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 16 << 20
	}
	return &Handler{
		controller: controller,
		page:       page,
		renderer:   renderer,
		dispatcher: dispatcher,
		stats:      stats,
		exporter:   exporter,
		opts:       opts,
		logger:     logger.With("component", "http.handler"),
	}
}

// Index renders the full console page.
func (h *Handler) Index(c *gin.Context) {
	doc := view.Document{
		Snapshot:        h.page.Snapshot(),
		Busy:            h.stats.InFlight() > 0,
		DriveEnabled:    h.opts.DriveEnabled,
		LookbookEnabled: h.exporter != nil,
		Today:           util.NowLocal().Format(util.DateLayout),
	}
	var buf bytes.Buffer
	if err := h.renderer.WriteDocument(&buf, doc); err != nil {
		abortWithError(c, internalError("could not render page", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// Lookbook renders the print layout of the cached wardrobe.
func (h *Handler) Lookbook(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.renderer.WriteLookbook(&buf, h.controller.Items()); err != nil {
		abortWithError(c, internalError("could not render lookbook", err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// LookbookPDF exports the lookbook through headless Chrome.
func (h *Handler) LookbookPDF(c *gin.Context) {
	if h.exporter == nil {
		abortWithError(c, codedError(wardrobe.CodeNotFound, "lookbook export is disabled", nil))
		return
	}
	pdf, err := h.exporter.ExportPDF(c.Request.Context(), h.opts.LookbookURL)
	if err != nil {
		abortWithError(c, codedError(wardrobe.CodeTransportFailure, "could not export lookbook", err))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="lookbook.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// State returns the page snapshot as JSON.
func (h *Handler) State(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"page":    h.page.Snapshot(),
		"items":   h.controller.Items(),
		"actions": h.stats.Snapshot(),
	})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Upload dispatches the selected files.
func (h *Handler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.opts.MaxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		abortWithError(c, invalidInput("could not read upload", err))
		return
	}
	headers := form.File["file"]
	if len(headers) == 0 {
		abortWithError(c, invalidInput("no file selected", nil))
		return
	}
	files := make([]wardrobe.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := readUpload(header)
		if err != nil {
			abortWithError(c, invalidInput("could not read upload", err))
			return
		}
		files = append(files, file)
	}
	h.dispatch(c, "upload", func(ctx context.Context) { h.controller.Upload(ctx, files) })
}

// Filter dispatches a wardrobe query.
func (h *Handler) Filter(c *gin.Context) {
	filter := wardrobe.Filter{
		Category: c.PostForm("category"),
		Color:    c.PostForm("color"),
		Season:   c.PostForm("season"),
		Occasion: c.PostForm("occasion"),
	}.Normalize()
	h.page.RememberFilter(filter)
	h.dispatch(c, "filter", func(ctx context.Context) { h.controller.Filter(ctx, filter) })
}

// Refresh re-renders the grid from the cache.
func (h *Handler) Refresh(c *gin.Context) {
	h.dispatch(c, "refresh", h.controller.Refresh)
}

// EditItem dispatches a rename. A blank name declines the prompt.
func (h *Handler) EditItem(c *gin.Context) {
	id := c.Param("id")
	prompter := formPrompter{value: c.PostForm("name")}
	h.dispatch(c, "edit", func(ctx context.Context) { h.controller.EditItem(ctx, id, prompter) })
}

// DeleteItem dispatches a deletion guarded by the confirm field.
func (h *Handler) DeleteItem(c *gin.Context) {
	id := c.Param("id")
	prompter := formPrompter{confirmed: isAffirmative(c.PostForm("confirm"))}
	h.dispatch(c, "delete", func(ctx context.Context) { h.controller.DeleteItem(ctx, id, prompter) })
}

// SuggestOutfits dispatches a suggestion request.
func (h *Handler) SuggestOutfits(c *gin.Context) {
	occasion := strings.TrimSpace(c.PostForm("occasion"))
	date := strings.TrimSpace(c.PostForm("date"))
	h.page.RememberOccasion(occasion, date)
	h.dispatch(c, "suggest", func(ctx context.Context) { h.controller.SuggestOutfits(ctx, occasion, date) })
}

// SaveOutfit dispatches a save of a displayed suggestion.
func (h *Handler) SaveOutfit(c *gin.Context) {
	id := c.Param("id")
	occasion := c.PostForm("occasion")
	date := c.PostForm("date")
	h.dispatch(c, "save_outfit", func(ctx context.Context) { h.controller.SaveOutfit(ctx, id, occasion, date) })
}

// Chat dispatches a chat message.
func (h *Handler) Chat(c *gin.Context) {
	text := c.PostForm("message")
	h.dispatch(c, "chat", func(ctx context.Context) { h.controller.SendChat(ctx, text) })
}

// ToggleChat flips the transcript visibility.
func (h *Handler) ToggleChat(c *gin.Context) {
	h.controller.ToggleChat()
	h.accepted(c)
}

// Organize dispatches the organizer.
func (h *Handler) Organize(c *gin.Context) {
	h.dispatch(c, "organize", h.controller.Organize)
}

// ImportDrive dispatches a Drive folder import.
func (h *Handler) ImportDrive(c *gin.Context) {
	folderID := strings.TrimSpace(c.PostForm("folderId"))
	if folderID == "" {
		abortWithError(c, invalidInput("folderId is required", nil))
		return
	}
	h.dispatch(c, "drive_import", func(ctx context.Context) { h.controller.ImportFromDrive(ctx, folderID) })
}

// DismissAlerts clears pending acknowledgments.
func (h *Handler) DismissAlerts(c *gin.Context) {
	h.page.DismissAlerts()
	h.accepted(c)
}

func (h *Handler) dispatch(c *gin.Context, name string, action dispatch.Action) {
	h.dispatcher.Dispatch(name, action)
	h.accepted(c)
}

func (h *Handler) accepted(c *gin.Context) {
	if c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON {
		c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func readUpload(header *multipart.FileHeader) (wardrobe.UploadFile, error) {
	file, err := header.Open()
	if err != nil {
		return wardrobe.UploadFile{}, fmt.Errorf("open %s: %w", header.Filename, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return wardrobe.UploadFile{}, fmt.Errorf("read %s: %w", header.Filename, err)
	}
	return wardrobe.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

func isAffirmative(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "on", "1":
		return true
	}
	return false
}

// formPrompter answers controller prompts with values the browser already submitted.
type formPrompter struct {
	value     string
	confirmed bool
}

func (p formPrompter) Confirm(string) bool {
	return p.confirmed
}

func (p formPrompter) Prompt(string) (string, bool) {
	if strings.TrimSpace(p.value) == "" {
		return "", false
	}
	return p.value, true
}
