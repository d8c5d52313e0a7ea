package wardrobeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
	apperrors "github.com/yanqian/smart-wardrobe/pkg/errors"
)

const requestIDHeader = "X-Request-ID"

// Client talks to the remote wardrobe service on behalf of one user.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

// NewClient builds an API client. A zero timeout leaves requests unbounded.
func NewClient(baseURL, userID string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		userID:     userID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// UploadItem posts the files as one multipart request.
func (c *Client) UploadItem(ctx context.Context, files []wardrobe.UploadFile) (wardrobe.UploadResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(file.Name)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return wardrobe.UploadResult{}, c.fail("upload item", 0, fmt.Errorf("build multipart: %w", err))
		}
		if _, err := part.Write(file.Data); err != nil {
			return wardrobe.UploadResult{}, c.fail("upload item", 0, fmt.Errorf("write multipart: %w", err))
		}
	}
	if err := writer.Close(); err != nil {
		return wardrobe.UploadResult{}, c.fail("upload item", 0, fmt.Errorf("close multipart: %w", err))
	}

	var result wardrobe.UploadResult
	err := c.do(ctx, "upload item", http.MethodPost, c.endpoint(nil, "api", "upload", c.userID), writer.FormDataContentType(), &body, &result)
	return result, err
}

// FetchWardrobe queries the user's items. Blank criteria are sent as "all".
func (c *Client) FetchWardrobe(ctx context.Context, filter wardrobe.Filter) (wardrobe.WardrobePage, error) {
	filter = filter.Normalize()
	query := url.Values{}
	query.Set("category", filter.Category)
	query.Set("color", filter.Color)
	query.Set("season", filter.Season)
	if filter.Occasion != wardrobe.FilterAll {
		query.Set("occasion", filter.Occasion)
	}

	var page wardrobe.WardrobePage
	err := c.getJSON(ctx, "fetch wardrobe", c.endpoint(query, "api", "wardrobe", c.userID), &page)
	return page, err
}

// FetchItem loads a single item.
func (c *Client) FetchItem(ctx context.Context, id string) (wardrobe.Item, error) {
	var item wardrobe.Item
	err := c.getJSON(ctx, "fetch item", c.endpoint(nil, "api", "wardrobe", c.userID, id), &item)
	return item, err
}

// UpdateItem sends the set fields of patch.
func (c *Client) UpdateItem(ctx context.Context, id string, patch wardrobe.ItemPatch) (wardrobe.MutationResult, error) {
	var result wardrobe.MutationResult
	err := c.sendJSON(ctx, "update item", http.MethodPut, c.endpoint(nil, "api", "wardrobe", c.userID, id), patch, &result)
	return result, err
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id string) (wardrobe.MutationResult, error) {
	var result wardrobe.MutationResult
	err := c.do(ctx, "delete item", http.MethodDelete, c.endpoint(nil, "api", "wardrobe", c.userID, id), "", nil, &result)
	return result, err
}

// FetchOutfitSuggestions asks the service for outfits. count <= 0 leaves the service default.
func (c *Client) FetchOutfitSuggestions(ctx context.Context, occasion, date string, count int) ([]wardrobe.Outfit, error) {
	query := url.Values{}
	if occasion != "" {
		query.Set("occasion", occasion)
	}
	if date != "" {
		query.Set("date", date)
	}
	if count > 0 {
		query.Set("count", strconv.Itoa(count))
	}

	var payload struct {
		Outfits []wardrobe.Outfit `json:"outfits"`
		Count   int               `json:"count"`
	}
	if err := c.getJSON(ctx, "fetch outfits", c.endpoint(query, "api", "outfits", c.userID), &payload); err != nil {
		return nil, err
	}
	return payload.Outfits, nil
}

// SaveOutfit stores a named outfit made of itemIDs.
func (c *Client) SaveOutfit(ctx context.Context, itemIDs []string, occasion, name string) (wardrobe.SaveResult, error) {
	payload := struct {
		Items    []string `json:"items"`
		Occasion string   `json:"occasion"`
		Name     string   `json:"name"`
	}{Items: itemIDs, Occasion: occasion, Name: name}
	if payload.Items == nil {
		payload.Items = []string{}
	}

	var result wardrobe.SaveResult
	err := c.sendJSON(ctx, "save outfit", http.MethodPost, c.endpoint(nil, "api", "outfits", c.userID), payload, &result)
	return result, err
}

// SendChatMessage returns the assistant's reply to text.
func (c *Client) SendChatMessage(ctx context.Context, text string) (string, error) {
	var reply struct {
		Response *string `json:"response"`
	}
	if err := c.sendJSON(ctx, "send chat", http.MethodPost, c.endpoint(nil, "api", "chat", c.userID), map[string]string{"query": text}, &reply); err != nil {
		return "", err
	}
	if reply.Response == nil {
		return "", c.fail("send chat", 0, fmt.Errorf("reply has no response field"))
	}
	return *reply.Response, nil
}

// OrganizeWardrobe asks the service to regroup the wardrobe into closet sections.
func (c *Client) OrganizeWardrobe(ctx context.Context) (wardrobe.Organization, error) {
	var org wardrobe.Organization
	err := c.getJSON(ctx, "organize wardrobe", c.endpoint(nil, "api", "organize", c.userID), &org)
	return org, err
}

func (c *Client) getJSON(ctx context.Context, op, endpoint string, out any) error {
	return c.do(ctx, op, http.MethodGet, endpoint, "", nil, out)
}

func (c *Client) sendJSON(ctx context.Context, op, method, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return c.fail(op, 0, fmt.Errorf("encode request: %w", err))
	}
	return c.do(ctx, op, method, endpoint, "application/json", bytes.NewReader(body), out)
}

func (c *Client) do(ctx context.Context, op, method, endpoint, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return c.fail(op, 0, fmt.Errorf("build request: %w", err))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.fail(op, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return c.fail(op, resp.StatusCode, fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(payload))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) fail(op string, status int, err error) error {
	return apperrors.Wrap(wardrobe.CodeTransportFailure, op+" failed", &wardrobe.NetworkError{Op: op, Status: status, Err: err})
}

func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, 0, len(segments))
	for _, segment := range segments {
		escaped = append(escaped, url.PathEscape(segment))
	}
	endpoint := c.baseURL + "/" + strings.Join(escaped, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func escapeQuotes(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

var _ wardrobe.Gateway = (*Client)(nil)
