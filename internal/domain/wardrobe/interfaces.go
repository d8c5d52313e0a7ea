package wardrobe

import "context"

// Gateway issues the typed calls to the remote wardrobe service.
type Gateway interface {
	UploadItem(ctx context.Context, files []UploadFile) (UploadResult, error)
	FetchWardrobe(ctx context.Context, filter Filter) (WardrobePage, error)
	FetchItem(ctx context.Context, id string) (Item, error)
	UpdateItem(ctx context.Context, id string, patch ItemPatch) (MutationResult, error)
	DeleteItem(ctx context.Context, id string) (MutationResult, error)
	FetchOutfitSuggestions(ctx context.Context, occasion, date string, count int) ([]Outfit, error)
	SaveOutfit(ctx context.Context, itemIDs []string, occasion, name string) (SaveResult, error)
	SendChatMessage(ctx context.Context, text string) (string, error)
	OrganizeWardrobe(ctx context.Context) (Organization, error)
}

// View is the display surface the controller projects state onto.
type View interface {
	// RenderGrid fully replaces the item grid.
	RenderGrid(items []Item)
	// RenderOutfits fully replaces the outfit panel with cards.
	RenderOutfits(outfits []Outfit)
	// RenderOutfitsNotice replaces the outfit panel with a message; "" clears it.
	RenderOutfitsNotice(text string)
	// AppendChatMessage adds to the transcript.
	AppendChatMessage(text string, sender Sender)
	SetProgress(percent int, visible bool)
	// Alert shows an acknowledgment the user has to dismiss.
	Alert(message string)
	OutfitCount() int
	ToggleChat() bool
}

// Prompter asks the user for synchronous input before a mutation.
type Prompter interface {
	Confirm(message string) bool
	Prompt(message string) (string, bool)
}

// OutfitStore keeps the suggestions currently on display by id so a save does not need
// to re-query. SaveOutfits replaces the whole set.
type OutfitStore interface {
	SaveOutfits(ctx context.Context, outfits []Outfit) error
	GetOutfit(ctx context.Context, id string) (Outfit, bool, error)
}

// ImageOptimizer shrinks an image before upload.
type ImageOptimizer interface {
	Optimize(file UploadFile) (UploadFile, error)
}

// ObjectStorage archives uploaded originals.
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, mimeType string) (StoredObject, error)
}

// ImageSource lists and downloads images from an external folder.
type ImageSource interface {
	ListImages(ctx context.Context, folderID string) ([]RemoteImage, error)
	Download(ctx context.Context, fileID string) ([]byte, error)
}

// Extensions are optional collaborators; nil fields disable the feature.
type Extensions struct {
	Optimizer ImageOptimizer
	Archive   ObjectStorage
	Images    ImageSource
}
