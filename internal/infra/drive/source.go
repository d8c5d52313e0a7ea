package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	drivev3 "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
)

const maxImageBytes = 32 << 20

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Source lists and downloads garment photos from a Google Drive folder.
type Source struct {
	client *drivev3.Service
}

// NewSource authenticates with a service account credentials file.
func NewSource(ctx context.Context, credentialsFile string) (*Source, error) {
	return NewSourceWithOptions(ctx, option.WithCredentialsFile(credentialsFile))
}

// NewSourceWithOptions builds a source from arbitrary client options.
func NewSourceWithOptions(ctx context.Context, opts ...option.ClientOption) (*Source, error) {
	svc, err := drivev3.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Source{client: svc}, nil
}

// ListImages returns the image files directly inside folderID.
func (s *Source) ListImages(ctx context.Context, folderID string) ([]wardrobe.RemoteImage, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, fmt.Errorf("folder id is required")
	}

	var images []wardrobe.RemoteImage
	pageToken := ""
	for {
		call := s.client.Files.List().
			Context(ctx).
			Q(folderQuery(folderID)).
			Fields("nextPageToken, files(id, name, mimeType)")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list files: %w", err)
		}
		for _, file := range r.Files {
			if !isImage(file.MimeType) {
				continue
			}
			images = append(images, wardrobe.RemoteImage{ID: file.Id, Name: file.Name, MimeType: strings.ToLower(file.MimeType)})
		}

		pageToken = r.NextPageToken
		if pageToken == "" {
			break
		}
	}
	return images, nil
}

// Download fetches the file content.
func (s *Source) Download(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := s.client.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", fileID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fileID, err)
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("download %s: file exceeds %d bytes", fileID, maxImageBytes)
	}
	return data, nil
}

func folderQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and trashed=false", strings.ReplaceAll(folderID, "'", `\'`))
}

func isImage(mimeType string) bool {
	return imageMimeTypes[strings.ToLower(mimeType)]
}

var _ wardrobe.ImageSource = (*Source)(nil)
