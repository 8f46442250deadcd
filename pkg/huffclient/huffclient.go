package huffclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
)

// FileRequest names a file on the server's filesystem.
type FileRequest struct {
	Path     string `json:"path"`
	Output   string `json:"output,omitempty"`
	Alphabet string `json:"alphabet,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/v1/",
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError carries the server's error message and status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (c *Client) doRequest(method, target, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, c.baseURL+target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
		}
		return nil, &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	return data, nil
}

func doJSON[T any](c *Client, method, target string, payload any) (T, error) {
	var out T
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return out, err
		}
		body = bytes.NewReader(b)
	}
	data, err := c.doRequest(method, target, "application/json", body)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("decode %s response: %w", target, err)
	}
	return out, nil
}

func (c *Client) Compress(req FileRequest) (*model.Run, error) {
	return doJSON[*model.Run](c, http.MethodPost, "compress", req)
}

func (c *Client) Decompress(req FileRequest) (*model.Run, error) {
	return doJSON[*model.Run](c, http.MethodPost, "decompress", req)
}

func (c *Client) Runs() ([]*model.Run, error) {
	return doJSON[[]*model.Run](c, http.MethodGet, "runs", nil)
}

func (c *Client) Run(id string) (*model.Run, error) {
	return doJSON[*model.Run](c, http.MethodGet, "runs/"+url.PathEscape(id), nil)
}

// Encode sends raw data and returns the compressed container.
func (c *Client) Encode(data []byte, alphabet string) ([]byte, error) {
	return c.doRequest(http.MethodPost, "encode?alphabet="+url.QueryEscape(alphabet), "application/octet-stream", bytes.NewReader(data))
}

func (c *Client) Decode(container []byte, alphabet string) ([]byte, error) {
	return c.doRequest(http.MethodPost, "decode?alphabet="+url.QueryEscape(alphabet), "application/octet-stream", bytes.NewReader(container))
}
