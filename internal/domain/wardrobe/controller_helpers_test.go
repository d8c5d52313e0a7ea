package wardrobe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

var errUnreachable = errors.New("dial tcp 127.0.0.1:5000: connect: connection refused")

func newTestController(t *testing.T, gateway *stubGateway, view *stubView) *controller {
	t.Helper()
	return &controller{
		cfg: Config{
			UserID:           "user123",
			SuggestionCount:  3,
			ProgressStep:     50,
			ProgressInterval: time.Millisecond,
		},
		cache:   NewCache(),
		gateway: gateway,
		view:    view,
		outfits: newStubOutfitStore(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now: func() time.Time {
			return time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
		},
	}
}

type stubGateway struct {
	uploadFn   func(ctx context.Context, files []UploadFile) (UploadResult, error)
	fetchFn    func(ctx context.Context, filter Filter) (WardrobePage, error)
	fetchOneFn func(ctx context.Context, id string) (Item, error)
	updateFn   func(ctx context.Context, id string, patch ItemPatch) (MutationResult, error)
	deleteFn   func(ctx context.Context, id string) (MutationResult, error)
	suggestFn  func(ctx context.Context, occasion, date string, count int) ([]Outfit, error)
	saveFn     func(ctx context.Context, itemIDs []string, occasion, name string) (SaveResult, error)
	chatFn     func(ctx context.Context, text string) (string, error)
	organizeFn func(ctx context.Context) (Organization, error)

	mu    sync.Mutex
	calls map[string]int
}

func (s *stubGateway) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[op]++
}

func (s *stubGateway) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *stubGateway) UploadItem(ctx context.Context, files []UploadFile) (UploadResult, error) {
	s.record("upload")
	if s.uploadFn != nil {
		return s.uploadFn(ctx, files)
	}
	return UploadResult{}, nil
}

func (s *stubGateway) FetchWardrobe(ctx context.Context, filter Filter) (WardrobePage, error) {
	s.record("fetch")
	if s.fetchFn != nil {
		return s.fetchFn(ctx, filter)
	}
	return WardrobePage{}, nil
}

func (s *stubGateway) FetchItem(ctx context.Context, id string) (Item, error) {
	s.record("fetch_item")
	if s.fetchOneFn != nil {
		return s.fetchOneFn(ctx, id)
	}
	return Item{}, nil
}

func (s *stubGateway) UpdateItem(ctx context.Context, id string, patch ItemPatch) (MutationResult, error) {
	s.record("update")
	if s.updateFn != nil {
		return s.updateFn(ctx, id, patch)
	}
	return MutationResult{}, nil
}

func (s *stubGateway) DeleteItem(ctx context.Context, id string) (MutationResult, error) {
	s.record("delete")
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return MutationResult{}, nil
}

func (s *stubGateway) FetchOutfitSuggestions(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
	s.record("suggest")
	if s.suggestFn != nil {
		return s.suggestFn(ctx, occasion, date, count)
	}
	return nil, nil
}

func (s *stubGateway) SaveOutfit(ctx context.Context, itemIDs []string, occasion, name string) (SaveResult, error) {
	s.record("save")
	if s.saveFn != nil {
		return s.saveFn(ctx, itemIDs, occasion, name)
	}
	return SaveResult{}, nil
}

func (s *stubGateway) SendChatMessage(ctx context.Context, text string) (string, error) {
	s.record("chat")
	if s.chatFn != nil {
		return s.chatFn(ctx, text)
	}
	return "", nil
}

func (s *stubGateway) OrganizeWardrobe(ctx context.Context) (Organization, error) {
	s.record("organize")
	if s.organizeFn != nil {
		return s.organizeFn(ctx)
	}
	return Organization{}, nil
}

type progressState struct {
	percent int
	visible bool
}

type stubView struct {
	mu          sync.Mutex
	grids       [][]Item
	outfits     [][]Outfit
	notices     []string
	messages    []ChatMessage
	progress    []progressState
	alerts      []string
	outfitCount int
	chatVisible bool
}

func (v *stubView) RenderGrid(items []Item) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.grids = append(v.grids, append([]Item(nil), items...))
}

func (v *stubView) RenderOutfits(outfits []Outfit) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.outfits = append(v.outfits, outfits)
	v.outfitCount = len(outfits)
}

func (v *stubView) RenderOutfitsNotice(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notices = append(v.notices, text)
	v.outfitCount = 0
}

func (v *stubView) AppendChatMessage(text string, sender Sender) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.messages = append(v.messages, ChatMessage{Sender: sender, Text: text})
}

func (v *stubView) SetProgress(percent int, visible bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.progress = append(v.progress, progressState{percent: percent, visible: visible})
}

func (v *stubView) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

func (v *stubView) OutfitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.outfitCount
}

func (v *stubView) ToggleChat() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chatVisible = !v.chatVisible
	return v.chatVisible
}

func (v *stubView) lastGrid() []Item {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.grids) == 0 {
		return nil
	}
	return v.grids[len(v.grids)-1]
}

func (v *stubView) transcript() []ChatMessage {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]ChatMessage(nil), v.messages...)
}

func (v *stubView) lastProgress() progressState {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.progress) == 0 {
		return progressState{}
	}
	return v.progress[len(v.progress)-1]
}

type stubPrompter struct {
	confirm bool
	answer  string
	ok      bool
	asked   []string
}

func (p *stubPrompter) Confirm(message string) bool {
	p.asked = append(p.asked, message)
	return p.confirm
}

func (p *stubPrompter) Prompt(message string) (string, bool) {
	p.asked = append(p.asked, message)
	return p.answer, p.ok
}

type stubOutfitStore struct {
	mu      sync.Mutex
	outfits map[string]Outfit
	err     error
}

func newStubOutfitStore() *stubOutfitStore {
	return &stubOutfitStore{outfits: make(map[string]Outfit)}
}

func (s *stubOutfitStore) SaveOutfits(_ context.Context, outfits []Outfit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outfits = make(map[string]Outfit, len(outfits))
	for _, outfit := range outfits {
		s.outfits[outfit.ID] = outfit
	}
	return s.err
}

func (s *stubOutfitStore) GetOutfit(_ context.Context, id string) (Outfit, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outfit, ok := s.outfits[id]
	return outfit, ok, s.err
}

type stubOptimizer struct {
	fn func(file UploadFile) (UploadFile, error)
}

func (s stubOptimizer) Optimize(file UploadFile) (UploadFile, error) {
	return s.fn(file)
}

type stubArchive struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (s *stubArchive) Put(_ context.Context, key string, data []byte, mimeType string) (StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	return StoredObject{Key: key, Size: int64(len(data)), MimeType: mimeType}, s.err
}

type stubImageSource struct {
	images  []RemoteImage
	listErr error
	data    map[string][]byte
}

func (s *stubImageSource) ListImages(_ context.Context, _ string) ([]RemoteImage, error) {
	return s.images, s.listErr
}

func (s *stubImageSource) Download(_ context.Context, fileID string) ([]byte, error) {
	data, ok := s.data[fileID]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}
