package gdrive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"time"
)

const (
	UploadURL = "https://www.googleapis.com/upload/drive/v3/files"
	FilesURL  = "https://www.googleapis.com/drive/v3/files"
)

// File is the uploaded artifact: its Drive ID and the shareable link.
type File struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"webViewLink"`
}

type Client struct {
	AccessToken string
	HTTP        *http.Client
}

func NewClient(accessToken string) *Client {
	return &Client{
		AccessToken: accessToken,
		HTTP:        &http.Client{Timeout: 300 * time.Second},
	}
}

// Upload pushes the file into the given Drive folder with a multipart/related
// request and returns the created file with its webViewLink.
func (c *Client) Upload(filePath, name, folderID string) (*File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading file %s: %v", filePath, err)
	}

	metadata := map[string]interface{}{"name": name}
	if folderID != "" {
		metadata["parents"] = []string{folderID}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("error marshaling metadata: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	metaHeader := textproto.MIMEHeader{}
	metaHeader.Set("Content-Type", "application/json; charset=UTF-8")
	metaPart, err := writer.CreatePart(metaHeader)
	if err != nil {
		return nil, fmt.Errorf("error creating metadata part: %v", err)
	}
	metaPart.Write(metadataJSON)

	fileHeader := textproto.MIMEHeader{}
	fileHeader.Set("Content-Type", "video/mp4")
	filePart, err := writer.CreatePart(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("error creating file part: %v", err)
	}
	filePart.Write(data)
	writer.Close()

	url := fmt.Sprintf("%s?uploadType=multipart&fields=id,name,webViewLink", UploadURL)
	req, err := http.NewRequest("POST", url, &body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "multipart/related; boundary="+writer.Boundary())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error uploading file: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Drive API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var file File
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return nil, fmt.Errorf("error decoding response: %v", err)
	}

	return &file, nil
}

// ShareWithLink grants anyone-with-the-link read access so the webViewLink
// actually opens for viewers.
func (c *Client) ShareWithLink(fileID string) error {
	permission := map[string]string{
		"role": "reader",
		"type": "anyone",
	}
	permJSON, err := json.Marshal(permission)
	if err != nil {
		return fmt.Errorf("error marshaling permission: %v", err)
	}

	url := fmt.Sprintf("%s/%s/permissions", FilesURL, fileID)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(permJSON))
	if err != nil {
		return fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("error creating permission: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Drive API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return nil
}
