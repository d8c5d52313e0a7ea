package wardrobe

import (
	"strings"
	"time"
)

// StatusSuccess is the payload status the service reports for confirmed mutations.
const StatusSuccess = "success"

// FilterAll is the wildcard value for every filter criterion.
const FilterAll = "all"

// Item is a single garment as the wardrobe service reports it.
type Item struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Colors     []string `json:"colors"`
	Seasons    []string `json:"seasons"`
	Occasions  []string `json:"occasions,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	ImageURL   string   `json:"image_url"`
	UploadDate string   `json:"upload_date,omitempty"`
	FilePath   string   `json:"filepath,omitempty"`
}

// Label is the primary color followed by the category, e.g. "Blue Shirt".
func (i Item) Label() string {
	if len(i.Colors) == 0 || strings.TrimSpace(i.Colors[0]) == "" {
		return i.Category
	}
	return i.Colors[0] + " " + i.Category
}

// Weather is the forecast the service attached to an outfit.
type Weather struct {
	Temp           float64 `json:"temp"`
	Conditions     string  `json:"conditions"`
	Recommendation string  `json:"recommendation,omitempty"`
}

// Outfit is an ephemeral suggestion. Its items are full Item objects.
type Outfit struct {
	ID          string  `json:"id"`
	Occasion    string  `json:"occasion"`
	Date        string  `json:"date"`
	Weather     Weather `json:"weather"`
	Items       []Item  `json:"items"`
	Score       float64 `json:"score"`
	Description string  `json:"description"`
}

// ItemIDs returns the ids of the outfit's items in order.
func (o Outfit) ItemIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// SavedOutfit is the server record created by a save.
type SavedOutfit struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Occasion    string   `json:"occasion"`
	DateCreated string   `json:"date_created"`
	Items       []string `json:"items"`
}

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// ChatMessage is one transcript entry. Messages are never mutated once appended.
type ChatMessage struct {
	ID     string    `json:"id"`
	Sender Sender    `json:"sender"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// Filter holds the wardrobe query criteria. Blank criteria mean FilterAll.
type Filter struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Season   string `json:"season"`
	Occasion string `json:"occasion"`
}

// Normalize trims every criterion and replaces blanks with FilterAll.
func (f Filter) Normalize() Filter {
	return Filter{
		Category: orAll(f.Category),
		Color:    orAll(f.Color),
		Season:   orAll(f.Season),
		Occasion: orAll(f.Occasion),
	}
}

func orAll(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return FilterAll
	}
	return v
}

// Placement is where the organizer suggests keeping an item.
type Placement struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Color     string `json:"color"`
	Placement string `json:"placement"`
}

// Section groups placements under a closet area.
type Section struct {
	Name  string      `json:"name"`
	Items []Placement `json:"items"`
}

// Organization is the organizer's summary of the wardrobe.
type Organization struct {
	Message  string    `json:"message"`
	Sections []Section `json:"sections"`
}

// WardrobePage is one wardrobe query result.
type WardrobePage struct {
	Items         []Item `json:"wardrobe"`
	TotalItems    int    `json:"total_items"`
	FilteredCount int    `json:"filtered_count"`
}

// UploadFile is one file selected for upload.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult is the service's answer to an upload.
type UploadResult struct {
	Status       string       `json:"status"`
	Message      string       `json:"message"`
	Item         Item         `json:"item"`
	Organization Organization `json:"organization"`
}

// OK reports whether the service confirmed the upload.
func (r UploadResult) OK() bool { return r.Status == StatusSuccess }

// ItemPatch carries the fields to change on an item. Nil fields are left untouched.
type ItemPatch struct {
	Name      *string  `json:"name,omitempty"`
	Category  *string  `json:"category,omitempty"`
	Colors    []string `json:"colors,omitempty"`
	Seasons   []string `json:"seasons,omitempty"`
	Occasions []string `json:"occasions,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// MutationResult is the service's answer to an update or delete.
type MutationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Item    Item   `json:"item"`
}

// OK reports whether the service confirmed the mutation.
func (r MutationResult) OK() bool { return r.Status == StatusSuccess }

// SaveResult is the service's answer to an outfit save.
type SaveResult struct {
	Status string      `json:"status"`
	Outfit SavedOutfit `json:"outfit"`
}

// OK reports whether the service stored the outfit.
func (r SaveResult) OK() bool { return r.Status == StatusSuccess }

// RemoteImage is an image file offered by an external image source.
type RemoteImage struct {
	ID       string
	Name     string
	MimeType string
}

// StoredObject describes an archived upload.
type StoredObject struct {
	Key      string
	Size     int64
	MimeType string
	ETag     string
}
