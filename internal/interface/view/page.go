package view

import (
	"html/template"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
)

// Progress is the upload indicator state.
type Progress struct {
	Visible bool `json:"visible"`
	Percent int  `json:"percent"`
}

// Selection remembers the last values of the page controls.
type Selection struct {
	Filter   wardrobe.Filter `json:"filter"`
	Occasion string          `json:"occasion"`
	Date     string          `json:"date"`
}

// Snapshot is a consistent copy of everything the page shows.
type Snapshot struct {
	Grid        template.HTML          `json:"grid"`
	Outfits     template.HTML          `json:"outfits"`
	OutfitCount int                    `json:"outfitCount"`
	Transcript  []wardrobe.ChatMessage `json:"transcript"`
	ChatVisible bool                   `json:"chatVisible"`
	Progress    Progress               `json:"progress"`
	Alerts      []string               `json:"alerts"`
	Selection   Selection              `json:"selection"`
}

// Page is the mutable display state shared by the renderer and the web console.
type Page struct {
	mu          sync.RWMutex
	grid        template.HTML
	outfits     template.HTML
	outfitCount int
	transcript  []wardrobe.ChatMessage
	chatVisible bool
	progress    Progress
	alerts      []string
	selection   Selection
	now         func() time.Time
}

// NewPage constructs an empty page with the chat panel open.
func NewPage() *Page {
	return &Page{chatVisible: true, now: time.Now}
}

func (p *Page) setGrid(fragment template.HTML) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.grid = fragment
}

func (p *Page) setOutfits(fragment template.HTML, count int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outfits = fragment
	p.outfitCount = count
}

func (p *Page) appendMessage(text string, sender wardrobe.Sender) wardrobe.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	msg := wardrobe.ChatMessage{
		ID:     uuid.NewString(),
		Sender: sender,
		Text:   text,
		SentAt: p.now(),
	}
	p.transcript = append(p.transcript, msg)
	return msg
}

func (p *Page) setProgress(percent int, visible bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.progress = Progress{Visible: visible, Percent: percent}
}

func (p *Page) pushAlert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

// DismissAlerts clears pending acknowledgments.
func (p *Page) DismissAlerts() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = nil
}

func (p *Page) outfitTotal() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.outfitCount
}

func (p *Page) toggleChat() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chatVisible = !p.chatVisible
	return p.chatVisible
}

// RememberFilter keeps the submitted filter so the controls show it again.
func (p *Page) RememberFilter(filter wardrobe.Filter) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection.Filter = filter
}

// RememberOccasion keeps the submitted suggestion controls.
func (p *Page) RememberOccasion(occasion, date string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selection.Occasion = occasion
	p.selection.Date = date
}

// Snapshot copies the page state.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Grid:        p.grid,
		Outfits:     p.outfits,
		OutfitCount: p.outfitCount,
		Transcript:  append([]wardrobe.ChatMessage(nil), p.transcript...),
		ChatVisible: p.chatVisible,
		Progress:    p.progress,
		Alerts:      append([]string(nil), p.alerts...),
		Selection:   p.selection,
	}
}
