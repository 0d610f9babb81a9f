// Package remote mirrors the local plan store against a folder in a
// Drive-style object store: plain list/upload/download/create-folder calls
// authorized by a bearer token. The token comes from an external OAuth flow
// and reaches us through the keyring.
package remote

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

	"github.com/julianstephens/dayplan/internal/constants"
)

const folderMimeType = "application/vnd.google-apps.folder"

type Client struct {
	httpClient *http.Client
	baseURL    string
	uploadURL  string
	token      string
}

func NewClient(baseURL, uploadURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: constants.RemoteTimeout},
		baseURL:    baseURL,
		uploadURL:  uploadURL,
		token:      token,
	}
}

// File is a remote record entry.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type fileList struct {
	Files []File `json:"files"`
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+c.token)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		res.Body.Close()
		return nil, fmt.Errorf("remote returned status %d: %s", res.StatusCode, string(body))
	}
	return res, nil
}

func (c *Client) search(ctx context.Context, query string) ([]File, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", "files(id,name)")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var list fileList
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode file list: %w", err)
	}
	return list.Files, nil
}

// EnsureFolder finds the sync folder by name, creating it when absent, and
// returns its id.
func (c *Client) EnsureFolder(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("name='%s' and mimeType='%s' and trashed=false", name, folderMimeType)
	files, err := c.search(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to look up sync folder: %w", err)
	}
	if len(files) > 0 {
		return files[0].ID, nil
	}

	body, err := json.Marshal(map[string]any{"name": name, "mimeType": folderMimeType})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/files", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.do(req)
	if err != nil {
		return "", fmt.Errorf("failed to create sync folder: %w", err)
	}
	defer res.Body.Close()

	var folder File
	if err := json.NewDecoder(res.Body).Decode(&folder); err != nil {
		return "", fmt.Errorf("failed to decode folder response: %w", err)
	}
	return folder.ID, nil
}

// ListFiles lists every record in the folder.
func (c *Client) ListFiles(ctx context.Context, folderID string) ([]File, error) {
	return c.search(ctx, fmt.Sprintf("'%s' in parents and trashed=false", folderID))
}

// Upload creates or replaces the named record in the folder.
func (c *Client) Upload(ctx context.Context, folderID, name string, data []byte) error {
	existing, err := c.search(ctx, fmt.Sprintf("name='%s' and '%s' in parents and trashed=false", name, folderID))
	if err != nil {
		return fmt.Errorf("failed to check for existing file: %w", err)
	}
	if len(existing) > 0 {
		return c.update(ctx, existing[0].ID, data)
	}
	return c.create(ctx, folderID, name, data)
}

func (c *Client) create(ctx context.Context, folderID, name string, data []byte) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := w.CreatePart(metaHeader)
	if err != nil {
		return err
	}
	meta := map[string]any{"name": name, "parents": []string{folderID}}
	if err := json.NewEncoder(metaPart).Encode(meta); err != nil {
		return err
	}

	dataHeader := textproto.MIMEHeader{}
	dataHeader.Set("Content-Type", "application/json")
	dataPart, err := w.CreatePart(dataHeader)
	if err != nil {
		return err
	}
	if _, err := dataPart.Write(data); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL+"/files?uploadType=multipart", &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "multipart/related; boundary="+w.Boundary())

	res, err := c.do(req)
	if err != nil {
		return fmt.Errorf("upload of %s failed: %w", name, err)
	}
	res.Body.Close()
	return nil
}

func (c *Client) update(ctx context.Context, fileID string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		c.uploadURL+"/files/"+fileID+"?uploadType=media", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.do(req)
	if err != nil {
		return fmt.Errorf("update of file %s failed: %w", fileID, err)
	}
	res.Body.Close()
	return nil
}

// Download fetches a record's content.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/"+fileID+"?alt=media", nil)
	if err != nil {
		return nil, err
	}
	res, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("download of file %s failed: %w", fileID, err)
	}
	defer res.Body.Close()
	return io.ReadAll(res.Body)
}
