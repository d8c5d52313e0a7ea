package wardrobe

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/smart-wardrobe/pkg/errors"
)

func TestUploadAddsItemAndAnnouncesIt(t *testing.T) {
	shirt := Item{ID: "item-1", Name: "shirt", Category: "Shirt", Colors: []string{"Blue"}, Seasons: []string{"spring"}}
	gateway := &stubGateway{
		uploadFn: func(ctx context.Context, files []UploadFile) (UploadResult, error) {
			require.Len(t, files, 1)
			require.Equal(t, "shirt.jpg", files[0].Name)
			return UploadResult{
				Status:       StatusSuccess,
				Item:         shirt,
				Organization: Organization{Message: "I've organized your wardrobe!"},
			}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	before := ctrl.cache.Len()

	ctrl.Upload(context.Background(), []UploadFile{{Name: "shirt.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}})

	require.Equal(t, before+1, ctrl.cache.Len())
	require.Equal(t, []ChatMessage{
		{Sender: SenderAssistant, Text: "I've added your Blue Shirt to your wardrobe."},
		{Sender: SenderAssistant, Text: "I've organized your wardrobe!"},
	}, view.transcript())
	grid := view.lastGrid()
	require.Len(t, grid, 1)
	require.Equal(t, "Blue Shirt", grid[0].Label())

	require.Eventually(t, func() bool {
		return view.lastProgress() == progressState{percent: 100, visible: false}
	}, time.Second, 5*time.Millisecond)
}

func TestUploadTransportFailureHidesProgress(t *testing.T) {
	gateway := &stubGateway{
		uploadFn: func(ctx context.Context, files []UploadFile) (UploadResult, error) {
			return UploadResult{}, apperrors.Wrap(CodeTransportFailure, "upload failed", errUnreachable)
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cfg.ProgressInterval = time.Hour

	ctrl.Upload(context.Background(), []UploadFile{{Name: "a.png"}})

	require.Zero(t, ctrl.cache.Len())
	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: MsgUploadFailed}}, view.transcript())
	require.Equal(t, progressState{percent: 0, visible: false}, view.lastProgress())
	require.Empty(t, view.grids)
}

func TestUploadRejectedPayloadLeavesCache(t *testing.T) {
	gateway := &stubGateway{
		uploadFn: func(ctx context.Context, files []UploadFile) (UploadResult, error) {
			return UploadResult{Status: "error", Message: "Invalid file"}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.Upload(context.Background(), []UploadFile{{Name: "notes.txt"}})

	require.Zero(t, ctrl.cache.Len())
	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: MsgUploadFailed}}, view.transcript())
}

func TestUploadWithoutFilesIsNoop(t *testing.T) {
	gateway := &stubGateway{}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.Upload(context.Background(), nil)

	require.Zero(t, gateway.count("upload"))
	require.Empty(t, view.progress)
}

func TestUploadArchivesOriginalAndSendsOptimized(t *testing.T) {
	var sent []UploadFile
	gateway := &stubGateway{
		uploadFn: func(ctx context.Context, files []UploadFile) (UploadResult, error) {
			sent = files
			return UploadResult{Status: StatusSuccess, Item: Item{ID: "x", Category: "tops"}}, nil
		},
	}
	archive := &stubArchive{}
	ctrl := newTestController(t, gateway, &stubView{})
	ctrl.ext = Extensions{
		Archive: archive,
		Optimizer: stubOptimizer{fn: func(file UploadFile) (UploadFile, error) {
			file.Name = "small.jpg"
			file.Data = []byte("small")
			return file, nil
		}},
	}

	ctrl.Upload(context.Background(), []UploadFile{{Name: "Big.PNG", Data: []byte("large original")}})

	require.Len(t, sent, 1)
	require.Equal(t, "small.jpg", sent[0].Name)
	require.Equal(t, []byte("small"), sent[0].Data)
	require.Len(t, archive.keys, 1)
	require.True(t, strings.HasPrefix(archive.keys[0], "uploads/user123/"))
	require.True(t, strings.HasSuffix(archive.keys[0], ".png"))
}

func TestUploadKeepsOriginalWhenOptimizerFails(t *testing.T) {
	var sent []UploadFile
	gateway := &stubGateway{
		uploadFn: func(ctx context.Context, files []UploadFile) (UploadResult, error) {
			sent = files
			return UploadResult{Status: StatusSuccess, Item: Item{ID: "x"}}, nil
		},
	}
	ctrl := newTestController(t, gateway, &stubView{})
	ctrl.ext = Extensions{
		Archive: &stubArchive{err: errors.New("bucket offline")},
		Optimizer: stubOptimizer{fn: func(file UploadFile) (UploadFile, error) {
			return UploadFile{}, errors.New("corrupt image")
		}},
	}

	ctrl.Upload(context.Background(), []UploadFile{{Name: "a.jpg", Data: []byte("orig")}})

	require.Equal(t, []UploadFile{{Name: "a.jpg", Data: []byte("orig")}}, sent)
	require.Equal(t, 1, ctrl.cache.Len())
}

func TestFilterRendersServerResultWithoutTouchingCache(t *testing.T) {
	filtered := []Item{{ID: "b", Category: "tops"}, {ID: "a", Category: "tops"}}
	gateway := &stubGateway{
		fetchFn: func(ctx context.Context, filter Filter) (WardrobePage, error) {
			require.Equal(t, Filter{Category: "tops", Color: FilterAll, Season: "summer", Occasion: FilterAll}, filter)
			return WardrobePage{Items: filtered, FilteredCount: 2}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cache.ReplaceAll([]Item{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	ctrl.Filter(context.Background(), Filter{Category: "tops", Season: "summer"})

	require.Equal(t, filtered, view.lastGrid())
	require.Equal(t, 3, ctrl.cache.Len())
}

func TestFilterFailureRendersEmptyGrid(t *testing.T) {
	gateway := &stubGateway{
		fetchFn: func(ctx context.Context, filter Filter) (WardrobePage, error) {
			return WardrobePage{}, errUnreachable
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cache.Upsert(Item{ID: "a"})

	ctrl.Filter(context.Background(), Filter{})

	require.Len(t, view.grids, 1)
	require.Empty(t, view.lastGrid())
	require.Empty(t, view.transcript())
}

func TestRefreshShowsCache(t *testing.T) {
	view := &stubView{}
	ctrl := newTestController(t, &stubGateway{}, view)
	ctrl.cache.ReplaceAll([]Item{{ID: "a"}, {ID: "b"}})

	ctrl.Refresh(context.Background())

	require.Equal(t, []string{"a", "b"}, ids(view.lastGrid()))
}

func TestEditDeclinedIsNoop(t *testing.T) {
	gateway := &stubGateway{}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	prompter := &stubPrompter{answer: "", ok: false}
	ctrl.EditItem(context.Background(), "a", prompter)
	ctrl.EditItem(context.Background(), "a", &stubPrompter{answer: "   ", ok: true})

	require.Equal(t, []string{PromptNewName}, prompter.asked)
	require.Zero(t, gateway.count("update"))
	require.Empty(t, view.grids)
	require.Empty(t, view.transcript())
}

func TestEditUpdatesCacheInPlace(t *testing.T) {
	gateway := &stubGateway{
		updateFn: func(ctx context.Context, id string, patch ItemPatch) (MutationResult, error) {
			require.Equal(t, "b", id)
			require.NotNil(t, patch.Name)
			require.Equal(t, "Favourite jeans", *patch.Name)
			return MutationResult{Status: StatusSuccess, Item: Item{ID: "b", Name: *patch.Name}}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cache.ReplaceAll([]Item{{ID: "a"}, {ID: "b", Name: "jeans"}, {ID: "c"}})

	ctrl.EditItem(context.Background(), "b", &stubPrompter{answer: " Favourite jeans ", ok: true})

	require.Equal(t, 3, ctrl.cache.Len())
	grid := view.lastGrid()
	require.Equal(t, []string{"a", "b", "c"}, ids(grid))
	require.Equal(t, "Favourite jeans", grid[1].Name)
}

func TestEditRefetchesWhenResponseOmitsItem(t *testing.T) {
	gateway := &stubGateway{
		updateFn: func(ctx context.Context, id string, patch ItemPatch) (MutationResult, error) {
			return MutationResult{Status: StatusSuccess}, nil
		},
		fetchOneFn: func(ctx context.Context, id string) (Item, error) {
			return Item{ID: id, Name: "renamed"}, nil
		},
	}
	ctrl := newTestController(t, gateway, &stubView{})
	ctrl.cache.Upsert(Item{ID: "a", Name: "old"})

	ctrl.EditItem(context.Background(), "a", &stubPrompter{answer: "renamed", ok: true})

	item, ok := ctrl.cache.Get("a")
	require.True(t, ok)
	require.Equal(t, "renamed", item.Name)
	require.Equal(t, 1, gateway.count("fetch_item"))
}

func TestEditLogsPreviousName(t *testing.T) {
	gateway := &stubGateway{
		updateFn: func(ctx context.Context, id string, patch ItemPatch) (MutationResult, error) {
			return MutationResult{Status: StatusSuccess, Item: Item{ID: id, Name: *patch.Name}}, nil
		},
	}
	ctrl := newTestController(t, gateway, &stubView{})
	var logs bytes.Buffer
	ctrl.logger = slog.New(slog.NewJSONHandler(&logs, nil))
	ctrl.cache.Upsert(Item{ID: "a", Name: "old"})

	ctrl.EditItem(context.Background(), "a", &stubPrompter{answer: "new", ok: true})
	require.Contains(t, logs.String(), `"msg":"item renamed"`)
	require.Contains(t, logs.String(), `"from":"old"`)
	require.Contains(t, logs.String(), `"to":"new"`)

	logs.Reset()
	ctrl.EditItem(context.Background(), "unknown", &stubPrompter{answer: "x", ok: true})
	require.NotContains(t, logs.String(), "item renamed")
	_, ok := ctrl.cache.Get("unknown")
	require.True(t, ok)
}

func TestEditFailureKeepsCache(t *testing.T) {
	gateway := &stubGateway{
		updateFn: func(ctx context.Context, id string, patch ItemPatch) (MutationResult, error) {
			return MutationResult{}, errUnreachable
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cache.Upsert(Item{ID: "a", Name: "old"})

	ctrl.EditItem(context.Background(), "a", &stubPrompter{answer: "new", ok: true})

	item, _ := ctrl.cache.Get("a")
	require.Equal(t, "old", item.Name)
	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: MsgEditFailed}}, view.transcript())
	require.Empty(t, view.grids)
}

func TestDeleteFlow(t *testing.T) {
	gateway := &stubGateway{
		deleteFn: func(ctx context.Context, id string) (MutationResult, error) {
			return MutationResult{Status: StatusSuccess, Message: "Item deleted"}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cache.ReplaceAll([]Item{{ID: "a"}, {ID: "b"}})

	declined := &stubPrompter{confirm: false}
	ctrl.DeleteItem(context.Background(), "a", declined)
	require.Equal(t, []string{PromptConfirmDeletion}, declined.asked)
	require.Zero(t, gateway.count("delete"))
	require.Equal(t, 2, ctrl.cache.Len())

	ctrl.DeleteItem(context.Background(), "a", &stubPrompter{confirm: true})
	require.Equal(t, []string{"b"}, ids(view.lastGrid()))
	require.Equal(t, 1, ctrl.cache.Len())
}

func TestDeleteRejectedKeepsItem(t *testing.T) {
	gateway := &stubGateway{
		deleteFn: func(ctx context.Context, id string) (MutationResult, error) {
			return MutationResult{Status: "error", Message: "Item not found"}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cache.Upsert(Item{ID: "a"})

	ctrl.DeleteItem(context.Background(), "a", &stubPrompter{confirm: true})

	require.Equal(t, 1, ctrl.cache.Len())
	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: MsgDeleteFailed}}, view.transcript())
}

func TestSuggestOutfitsRendersCardsAndSummary(t *testing.T) {
	outfits := []Outfit{
		{ID: "o1", Occasion: "Casual", Items: []Item{{ID: "a"}, {ID: "b"}}},
		{ID: "o2", Occasion: "Casual", Items: []Item{{ID: "c"}}},
	}
	gateway := &stubGateway{
		suggestFn: func(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
			require.Equal(t, "Casual", occasion)
			require.Equal(t, "2024-01-01", date)
			require.Equal(t, 3, count)
			return outfits, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.SuggestOutfits(context.Background(), "Casual", "2024-01-01")

	require.Len(t, view.outfits, 1)
	require.Len(t, view.outfits[0], 2)
	messages := view.transcript()
	require.Len(t, messages, 1)
	require.Equal(t, SenderAssistant, messages[0].Sender)
	require.Contains(t, messages[0].Text, "2")
	require.Contains(t, messages[0].Text, "Casual")
	require.Equal(t, "I've created 2 outfit suggestions for your Casual occasion on 2024-01-01.", messages[0].Text)

	stored, ok, err := ctrl.outfits.GetOutfit(context.Background(), "o2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, outfits[1], stored)
}

func TestSuggestOutfitsEmptyIsNotAnError(t *testing.T) {
	gateway := &stubGateway{
		suggestFn: func(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
			return nil, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.SuggestOutfits(context.Background(), "formal", "")

	require.Len(t, view.outfits, 1)
	require.Empty(t, view.outfits[0])
	require.Empty(t, view.transcript())
}

func TestSuggestOutfitsDefaultsDateToToday(t *testing.T) {
	var gotDate, gotOccasion string
	gateway := &stubGateway{
		suggestFn: func(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
			gotOccasion, gotDate = occasion, date
			return nil, nil
		},
	}
	ctrl := newTestController(t, gateway, &stubView{})

	ctrl.SuggestOutfits(context.Background(), "", " ")

	require.Equal(t, "2024-01-01", gotDate)
	require.Equal(t, "casual", gotOccasion)
}

func TestSuggestOutfitsFailureAndInvalidDate(t *testing.T) {
	gateway := &stubGateway{
		suggestFn: func(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
			return nil, errUnreachable
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.SuggestOutfits(context.Background(), "work", "01/02/2024")
	require.Zero(t, gateway.count("suggest"))
	require.Equal(t, []string{MsgInvalidDate}, view.notices)

	ctrl.SuggestOutfits(context.Background(), "work", "2024-01-02")
	require.Equal(t, []string{MsgInvalidDate, "", MsgSuggestionsFailed}, view.notices)
	require.Empty(t, view.transcript())
}

func TestSaveOutfitUsesStoredSuggestion(t *testing.T) {
	var gotIDs []string
	var gotOccasion, gotName string
	gateway := &stubGateway{
		saveFn: func(ctx context.Context, itemIDs []string, occasion, name string) (SaveResult, error) {
			gotIDs, gotOccasion, gotName = itemIDs, occasion, name
			return SaveResult{Status: StatusSuccess, Outfit: SavedOutfit{ID: "saved-1"}}, nil
		},
	}
	view := &stubView{outfitCount: 2}
	ctrl := newTestController(t, gateway, view)
	require.NoError(t, ctrl.outfits.SaveOutfits(context.Background(), []Outfit{
		{ID: "o1", Occasion: "work", Items: []Item{{ID: "a"}, {ID: "b"}}},
	}))

	ctrl.SaveOutfit(context.Background(), "o1", "ignored", "2024-01-01")

	require.Zero(t, gateway.count("suggest"))
	require.Equal(t, []string{"a", "b"}, gotIDs)
	require.Equal(t, "work", gotOccasion)
	require.Equal(t, "Outfit 3", gotName)
	require.Equal(t, []string{MsgOutfitSaved}, view.alerts)
}

func TestSaveOutfitFallsBackToRequery(t *testing.T) {
	gateway := &stubGateway{
		suggestFn: func(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
			require.Equal(t, "formal", occasion)
			require.Equal(t, "2024-02-14", date)
			return []Outfit{{ID: "other"}, {ID: "o9", Occasion: "formal", Items: []Item{{ID: "dress"}}}}, nil
		},
		saveFn: func(ctx context.Context, itemIDs []string, occasion, name string) (SaveResult, error) {
			require.Equal(t, []string{"dress"}, itemIDs)
			require.Equal(t, "Outfit 1", name)
			return SaveResult{Status: StatusSuccess}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.SaveOutfit(context.Background(), "o9", "formal", "2024-02-14")

	require.Equal(t, 1, gateway.count("suggest"))
	require.Equal(t, []string{MsgOutfitSaved}, view.alerts)
}

func TestSaveOutfitNotFound(t *testing.T) {
	gateway := &stubGateway{
		suggestFn: func(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
			return []Outfit{{ID: "fresh-id"}}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.SaveOutfit(context.Background(), "stale-id", "casual", "2024-01-01")

	require.Zero(t, gateway.count("save"))
	require.Empty(t, view.alerts)
	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: MsgSaveFailed}}, view.transcript())
}

func TestSaveOutfitFromPreviousCycleRequeries(t *testing.T) {
	cycle := [][]Outfit{
		{{ID: "old", Occasion: "casual", Items: []Item{{ID: "a"}}}},
		{{ID: "new", Occasion: "casual", Items: []Item{{ID: "b"}}}},
		{{ID: "newer", Occasion: "casual", Items: []Item{{ID: "c"}}}},
	}
	calls := 0
	gateway := &stubGateway{
		suggestFn: func(ctx context.Context, occasion, date string, count int) ([]Outfit, error) {
			batch := cycle[calls]
			calls++
			return batch, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.SuggestOutfits(context.Background(), "casual", "2024-01-01")
	ctrl.SuggestOutfits(context.Background(), "casual", "2024-01-01")
	_, ok, err := ctrl.outfits.GetOutfit(context.Background(), "old")
	require.NoError(t, err)
	require.False(t, ok)

	ctrl.SaveOutfit(context.Background(), "old", "casual", "2024-01-01")

	require.Equal(t, 3, gateway.count("suggest"))
	require.Zero(t, gateway.count("save"))
	require.Empty(t, view.alerts)
	transcript := view.transcript()
	require.NotEmpty(t, transcript)
	require.Equal(t, ChatMessage{Sender: SenderAssistant, Text: MsgSaveFailed}, transcript[len(transcript)-1])
}

func TestSendChatUnreachableShowsFallback(t *testing.T) {
	gateway := &stubGateway{
		chatFn: func(ctx context.Context, text string) (string, error) {
			return "", apperrors.Wrap(CodeTransportFailure, "chat request failed", errUnreachable)
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.SendChat(context.Background(), "hello")

	require.Equal(t, []ChatMessage{
		{Sender: SenderUser, Text: "hello"},
		{Sender: SenderAssistant, Text: "Sorry, I couldn’t process that. Try again!"},
	}, view.transcript())
}

func TestSendChatAppendsUserBeforeReply(t *testing.T) {
	view := &stubView{}
	gateway := &stubGateway{
		chatFn: func(ctx context.Context, text string) (string, error) {
			require.Equal(t, []ChatMessage{{Sender: SenderUser, Text: "organize my closet"}}, view.transcript())
			return "Done!", nil
		},
	}
	ctrl := newTestController(t, gateway, view)

	ctrl.SendChat(context.Background(), "  organize my closet ")
	ctrl.SendChat(context.Background(), "   ")

	require.Equal(t, 1, gateway.count("chat"))
	require.Equal(t, []ChatMessage{
		{Sender: SenderUser, Text: "organize my closet"},
		{Sender: SenderAssistant, Text: "Done!"},
	}, view.transcript())
}

func TestInitLoadsWardrobeThenWelcomes(t *testing.T) {
	gateway := &stubGateway{
		fetchFn: func(ctx context.Context, filter Filter) (WardrobePage, error) {
			require.Equal(t, FilterAll, filter.Category)
			return WardrobePage{Items: []Item{{ID: "a"}, {ID: "b"}}, TotalItems: 2}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cfg.WelcomeMessage = "Welcome!"

	ctrl.Init(context.Background())

	require.Equal(t, 2, ctrl.cache.Len())
	require.Equal(t, []string{"a", "b"}, ids(view.lastGrid()))
	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: "Welcome!"}}, view.transcript())
}

func TestInitFailureOnlyRendersEmptyGrid(t *testing.T) {
	gateway := &stubGateway{
		fetchFn: func(ctx context.Context, filter Filter) (WardrobePage, error) {
			return WardrobePage{}, errUnreachable
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cfg.WelcomeMessage = "Welcome!"

	ctrl.Init(context.Background())

	require.Len(t, view.grids, 1)
	require.Empty(t, view.lastGrid())
	require.Empty(t, view.transcript())
}

func TestInitWelcomeStopsWithContext(t *testing.T) {
	gateway := &stubGateway{}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)
	ctrl.cfg.WelcomeMessage = "Welcome!"
	ctrl.cfg.WelcomeDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctrl.Init(ctx)

	require.Empty(t, view.transcript())
}

func TestOrganizeAndToggle(t *testing.T) {
	gateway := &stubGateway{
		organizeFn: func(ctx context.Context) (Organization, error) {
			return Organization{Message: "I've organized your wardrobe!\n- Daily Wear: tee\n"}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.Organize(context.Background())
	ctrl.ToggleChat()

	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: "I've organized your wardrobe!\n- Daily Wear: tee"}}, view.transcript())
	require.True(t, view.chatVisible)
}

func TestImportFromDrive(t *testing.T) {
	var uploaded []string
	gateway := &stubGateway{
		uploadFn: func(ctx context.Context, files []UploadFile) (UploadResult, error) {
			uploaded = append(uploaded, files[0].Name)
			return UploadResult{Status: StatusSuccess, Item: Item{ID: files[0].Name, Category: "tops"}}, nil
		},
	}
	view := &stubView{}
	ctrl := newTestController(t, gateway, view)

	ctrl.ImportFromDrive(context.Background(), "folder")
	require.Equal(t, []ChatMessage{{Sender: SenderAssistant, Text: MsgDriveDisabled}}, view.transcript())

	ctrl.ext.Images = &stubImageSource{
		images: []RemoteImage{
			{ID: "1", Name: "tee.jpg", MimeType: "image/jpeg"},
			{ID: "missing", Name: "gone.jpg", MimeType: "image/jpeg"},
			{ID: "2", Name: "skirt.png", MimeType: "image/png"},
		},
		data: map[string][]byte{"1": []byte("a"), "2": []byte("b")},
	}
	ctrl.ImportFromDrive(context.Background(), "folder")

	require.Equal(t, []string{"tee.jpg", "skirt.png"}, uploaded)
	require.Equal(t, 2, ctrl.cache.Len())
}
