package wardrobe

import "time"

// Config tunes the interaction controller.
type Config struct {
	UserID           string
	SuggestionCount  int
	ProgressStep     int
	ProgressInterval time.Duration
	WelcomeDelay     time.Duration
	WelcomeMessage   string
}

const defaultOccasion = "casual"

// User facing texts.
const (
	MsgNoItems            = "No items match your filters."
	MsgNeedMoreItems      = "You need more items in your wardrobe to get outfit suggestions."
	MsgSuggestionsFailed  = "Error fetching outfit suggestions."
	MsgInvalidDate        = "Please pick a date formatted as YYYY-MM-DD."
	MsgUploadFailed       = "Sorry, there was an error uploading your file."
	MsgEditFailed         = "Sorry, I couldn't update that item."
	MsgDeleteFailed       = "Sorry, I couldn't delete that item."
	MsgSaveFailed         = "Sorry, I couldn't save that outfit."
	MsgOutfitSaved        = "Outfit saved!"
	MsgChatFallback       = "Sorry, I couldn’t process that. Try again!"
	MsgOrganizeFailed     = "Sorry, I couldn't organize your wardrobe right now."
	MsgDriveDisabled      = "Drive import is not configured."
	MsgDriveListFailed    = "Sorry, I couldn't read that Drive folder."
	MsgDriveEmpty         = "I couldn't find any images in that Drive folder."
	PromptNewName         = "Enter new name:"
	PromptConfirmDeletion = "Are you sure you want to delete this item?"
)
