package view

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer projects domain data into HTML fragments and keeps them on a Page.
type Renderer struct {
	page      *Page
	assetBase *url.URL
	templates *template.Template
}

// NewRenderer builds a renderer. Relative image URLs are resolved against assetBase.
func NewRenderer(page *Page, assetBase string) *Renderer {
	r := &Renderer{page: page}
	if base, err := url.Parse(strings.TrimSpace(assetBase)); err == nil && base.Host != "" {
		r.assetBase = base
	}
	r.templates = template.Must(template.New("view").Funcs(template.FuncMap{
		"imageURL":     r.imageURL,
		"join":         strings.Join,
		"pathEscape":   url.PathEscape,
		"inc":          func(i int) int { return i + 1 },
		"selected":     func(current, option string) bool { return strings.EqualFold(current, option) },
		"msgNoItems":   func() string { return wardrobe.MsgNoItems },
		"msgNeedItems": func() string { return wardrobe.MsgNeedMoreItems },
		"options":      func(name string) []string { return controlOptions[name] },
	}).ParseFS(templateFS, "templates/*.html"))
	return r
}

// Grid renders the item grid fragment. Empty input yields the no-items placeholder.
func (r *Renderer) Grid(items []wardrobe.Item) template.HTML {
	return r.fragment("grid", items)
}

// Outfits renders the outfit panel fragment. Empty input yields the need-more-items placeholder.
func (r *Renderer) Outfits(outfits []wardrobe.Outfit) template.HTML {
	return r.fragment("outfits", outfits)
}

// Notice renders an inline message for the outfit panel.
func (r *Renderer) Notice(text string) template.HTML {
	if text == "" {
		return ""
	}
	return r.fragment("notice", text)
}

// ChatMessage renders one transcript entry.
func (r *Renderer) ChatMessage(msg wardrobe.ChatMessage) template.HTML {
	return r.fragment("message", msg)
}

func (r *Renderer) fragment(name string, data any) template.HTML {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTML(template.HTMLEscapeString(err.Error()))
	}
	return template.HTML(buf.String())
}

// RenderGrid implements wardrobe.View.
func (r *Renderer) RenderGrid(items []wardrobe.Item) {
	r.page.setGrid(r.Grid(items))
}

// RenderOutfits implements wardrobe.View.
func (r *Renderer) RenderOutfits(outfits []wardrobe.Outfit) {
	r.page.setOutfits(r.Outfits(outfits), len(outfits))
}

// RenderOutfitsNotice implements wardrobe.View.
func (r *Renderer) RenderOutfitsNotice(text string) {
	r.page.setOutfits(r.Notice(text), 0)
}

// AppendChatMessage implements wardrobe.View.
func (r *Renderer) AppendChatMessage(text string, sender wardrobe.Sender) {
	r.page.appendMessage(text, sender)
}

// SetProgress implements wardrobe.View.
func (r *Renderer) SetProgress(percent int, visible bool) {
	switch {
	case percent < 0:
		percent = 0
	case percent > 100:
		percent = 100
	}
	r.page.setProgress(percent, visible)
}

// Alert implements wardrobe.View.
func (r *Renderer) Alert(message string) {
	r.page.pushAlert(message)
}

// OutfitCount implements wardrobe.View.
func (r *Renderer) OutfitCount() int {
	return r.page.outfitTotal()
}

// ToggleChat implements wardrobe.View.
func (r *Renderer) ToggleChat() bool {
	return r.page.toggleChat()
}

// Document is the data behind the full console page.
type Document struct {
	Snapshot
	Chat            []template.HTML
	Busy            bool
	DriveEnabled    bool
	LookbookEnabled bool
	Today           string
}

// WriteDocument renders the full console page for snap.
func (r *Renderer) WriteDocument(w io.Writer, doc Document) error {
	doc.Chat = make([]template.HTML, 0, len(doc.Transcript))
	for _, msg := range doc.Transcript {
		doc.Chat = append(doc.Chat, r.ChatMessage(msg))
	}
	if doc.Selection.Date == "" {
		doc.Selection.Date = doc.Today
	}
	return r.templates.ExecuteTemplate(w, "page", doc)
}

// WriteLookbook renders the print layout of items.
func (r *Renderer) WriteLookbook(w io.Writer, items []wardrobe.Item) error {
	return r.templates.ExecuteTemplate(w, "lookbook", items)
}

func (r *Renderer) imageURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || r.assetBase == nil {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil || parsed.IsAbs() {
		return ref
	}
	return r.assetBase.ResolveReference(parsed).String()
}

var _ wardrobe.View = (*Renderer)(nil)
