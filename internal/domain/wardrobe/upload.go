package wardrobe

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Upload sends the selected files and, once the service confirms, adds the item locally.
func (c *controller) Upload(ctx context.Context, files []UploadFile) {
	if len(files) == 0 {
		return
	}

	progress := startProgress(c.view, c.cfg.ProgressStep, c.cfg.ProgressInterval)
	prepared := c.prepareUploads(ctx, files)

	result, err := c.gateway.UploadItem(ctx, prepared)
	if err != nil {
		progress.stop()
		c.fail("upload", MsgUploadFailed, err, "files", len(files))
		return
	}
	if !result.OK() {
		c.reject("upload", MsgUploadFailed, result.Status, result.Message, "files", len(files))
		return
	}

	c.cache.Upsert(result.Item)
	c.view.RenderGrid(c.cache.Items())
	c.view.AppendChatMessage(fmt.Sprintf("I've added your %s to your wardrobe.", result.Item.Label()), SenderAssistant)
	if msg := strings.TrimSpace(result.Organization.Message); msg != "" {
		c.view.AppendChatMessage(msg, SenderAssistant)
	}
	c.logger.Info("item uploaded", "item_id", result.Item.ID, "category", result.Item.Category)
}

// prepareUploads archives the originals and downscales oversized images.
// Neither step can fail the upload.
func (c *controller) prepareUploads(ctx context.Context, files []UploadFile) []UploadFile {
	out := make([]UploadFile, 0, len(files))
	for _, file := range files {
		if c.ext.Archive != nil {
			key := c.archiveKey(file.Name)
			if _, err := c.ext.Archive.Put(ctx, key, file.Data, file.ContentType); err != nil {
				c.logger.Warn("archive upload original failed", "key", key, "error", err)
			}
		}
		if c.ext.Optimizer != nil {
			optimized, err := c.ext.Optimizer.Optimize(file)
			if err != nil {
				c.logger.Warn("image optimization failed, sending original", "file", file.Name, "error", err)
			} else {
				file = optimized
			}
		}
		out = append(out, file)
	}
	return out
}

func (c *controller) archiveKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return path.Join("uploads", c.cfg.UserID, uuid.NewString()+ext)
}

// ImportFromDrive uploads every image found in an external folder, one upload per file.
func (c *controller) ImportFromDrive(ctx context.Context, folderID string) {
	if c.ext.Images == nil {
		c.view.AppendChatMessage(MsgDriveDisabled, SenderAssistant)
		return
	}
	images, err := c.ext.Images.ListImages(ctx, folderID)
	if err != nil {
		c.fail("drive_import", MsgDriveListFailed, err, "folder_id", folderID)
		return
	}
	if len(images) == 0 {
		c.view.AppendChatMessage(MsgDriveEmpty, SenderAssistant)
		return
	}
	for _, image := range images {
		data, err := c.ext.Images.Download(ctx, image.ID)
		if err != nil {
			c.logger.Error("drive download failed", "action", "drive_import", "file_id", image.ID, "error", err)
			continue
		}
		c.Upload(ctx, []UploadFile{{Name: image.Name, ContentType: image.MimeType, Data: data}})
	}
}
