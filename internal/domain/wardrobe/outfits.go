package wardrobe

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/yanqian/smart-wardrobe/pkg/errors"
	"github.com/yanqian/smart-wardrobe/pkg/util"
)

// SuggestOutfits asks the service for fresh suggestions and shows them.
func (c *controller) SuggestOutfits(ctx context.Context, occasion, date string) {
	occasion = resolveOccasion(occasion)
	resolved, err := util.ResolveDate(date, c.now())
	if err != nil {
		c.logger.Warn("invalid suggestion date", "action", "suggest", "date", date, "error", err)
		c.view.RenderOutfitsNotice(MsgInvalidDate)
		return
	}

	c.view.RenderOutfitsNotice("")
	outfits, err := c.gateway.FetchOutfitSuggestions(ctx, occasion, resolved, c.cfg.SuggestionCount)
	if err != nil {
		c.logger.Error("outfit suggestions failed", "action", "suggest", "error", err)
		c.view.RenderOutfitsNotice(MsgSuggestionsFailed)
		return
	}
	if err := c.outfits.SaveOutfits(ctx, outfits); err != nil {
		c.logger.Warn("store suggestions failed", "action", "suggest", "error", err)
	}

	c.view.RenderOutfits(outfits)
	if len(outfits) == 0 {
		return
	}
	c.view.AppendChatMessage(
		fmt.Sprintf("I've created %d outfit suggestions for your %s occasion on %s.", len(outfits), occasion, resolved),
		SenderAssistant,
	)
}

// SaveOutfit persists a previously suggested outfit under the next free display name.
func (c *controller) SaveOutfit(ctx context.Context, outfitID, occasion, date string) {
	outfit, err := c.resolveOutfit(ctx, outfitID, occasion, date)
	if err != nil {
		c.fail("save_outfit", MsgSaveFailed, err, "outfit_id", outfitID)
		return
	}

	name := fmt.Sprintf("Outfit %d", c.view.OutfitCount()+1)
	result, err := c.gateway.SaveOutfit(ctx, outfit.ItemIDs(), outfit.Occasion, name)
	if err != nil {
		c.fail("save_outfit", MsgSaveFailed, err, "outfit_id", outfitID)
		return
	}
	if !result.OK() {
		c.reject("save_outfit", MsgSaveFailed, result.Status, "", "outfit_id", outfitID)
		return
	}
	c.logger.Info("outfit saved", "outfit_id", outfitID, "saved_id", result.Outfit.ID, "name", name)
	c.view.Alert(MsgOutfitSaved)
}

// resolveOutfit prefers the stored suggestion and falls back to re-querying by occasion and date.
func (c *controller) resolveOutfit(ctx context.Context, outfitID, occasion, date string) (Outfit, error) {
	outfit, ok, err := c.outfits.GetOutfit(ctx, outfitID)
	if err != nil {
		c.logger.Warn("outfit store lookup failed", "outfit_id", outfitID, "error", err)
	}
	if ok {
		return outfit, nil
	}

	resolved, err := util.ResolveDate(date, c.now())
	if err != nil {
		return Outfit{}, apperrors.Wrap(CodeInvalidInput, "date must be formatted as YYYY-MM-DD", err)
	}
	outfits, err := c.gateway.FetchOutfitSuggestions(ctx, resolveOccasion(occasion), resolved, 0)
	if err != nil {
		return Outfit{}, err
	}
	for _, candidate := range outfits {
		if candidate.ID == outfitID {
			return candidate, nil
		}
	}
	return Outfit{}, apperrors.Wrap(CodeNotFound, "outfit is no longer offered", nil)
}

func resolveOccasion(occasion string) string {
	occasion = strings.TrimSpace(occasion)
	if occasion == "" {
		return defaultOccasion
	}
	return occasion
}
