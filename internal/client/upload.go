package client

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/musicmanager"
)

// RegisterUploader announces this client to the upload service. It must
// succeed once per identity before metadata calls are accepted.
func (c *Client) RegisterUploader(ctx context.Context) (*musicmanager.UploadAuthResponse, error) {
	raw, err := c.doUploadCall(ctx, "upload_auth", c.mm.UploadAuth().Marshal())
	if err != nil {
		return nil, err
	}

	var resp musicmanager.UploadAuthResponse
	if err := resp.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("failed to decode upload_auth response: %w", err)
	}
	return &resp, nil
}

// ReportUploaderState refreshes the server's view of this client.
func (c *Client) ReportUploaderState(ctx context.Context) (*musicmanager.ClientStateResponse, error) {
	raw, err := c.doUploadCall(ctx, "client_state", c.mm.ClientState().Marshal())
	if err != nil {
		return nil, err
	}

	var resp musicmanager.ClientStateResponse
	if err := resp.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("failed to decode client_state response: %w", err)
	}
	return &resp, nil
}

// sessionAttempts bounds the retries for one upload session. Only a
// still-syncing server answer retries without spending an attempt.
const sessionAttempts = 3

// Upload uploads the given files and returns filename to server id pairs
// for each success. Per-file failures are logged, not returned; an empty map
// means every file failed.
func (c *Client) Upload(ctx context.Context, filenames []string) (map[string]string, error) {
	results := map[string]string{}
	if len(filenames) == 0 {
		return results, nil
	}

	req, filemap, err := c.mm.BuildMetadataRequest(filenames)
	if err != nil {
		return nil, err
	}

	raw, err := c.doUploadCall(ctx, "metadata", req.Marshal())
	if err != nil {
		return nil, err
	}
	var mdResp musicmanager.MetadataResponse
	if err := mdResp.Unmarshal(raw); err != nil {
		return nil, fmt.Errorf("failed to decode metadata response: %w", err)
	}

	sessions, err := c.mm.BuildUploadSessionRequests(&mdResp, filemap)
	if err != nil {
		return nil, err
	}

	for _, session := range sessions {
		serverID, err := c.uploadOne(ctx, session)
		if err != nil {
			c.log.Warn("upload failed", "file", session.Filename, "err", err)
			continue
		}
		if serverID != "" {
			results[session.Filename] = serverID
		}
	}

	return results, nil
}

// uploadOne negotiates a session for one file and transfers its bytes.
// An empty server id with nil error means the service declined the file.
func (c *Client) uploadOne(ctx context.Context, session musicmanager.SessionRequest) (string, error) {
	body, err := json.Marshal(session.Payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode session payload: %w", err)
	}

	var transfer map[string]any
	for attempt := 0; attempt < sessionAttempts; attempt++ {
		res, err := c.doJumperCall(ctx, &Request{
			Method:      http.MethodPost,
			URL:         c.jumperURL("/uploadsj/rupio"),
			Body:        body,
			ContentType: "application/json",
		})
		if err != nil {
			return "", err
		}

		if status, ok := res["sessionStatus"].(map[string]any); ok {
			transfers, _ := status["externalFieldTransfers"].([]any)
			if len(transfers) == 0 {
				return "", fmt.Errorf("session carries no transfer target")
			}
			transfer, _ = transfers[0].(map[string]any)
			break
		}

		switch code := sessionErrorCode(res); code {
		case 503:
			// Servers still syncing; retry with no penalty.
			c.log.Info("upload servers still syncing, retrying", "file", session.Filename)
			attempt--
		case 200:
			// The hash matched a server-side file; nothing to transfer.
			c.log.Warn("file already uploaded", "file", session.Filename, "serverID", session.ServerID)
			return session.ServerID, nil
		case 404:
			return "", fmt.Errorf("upload service rejected the session")
		default:
			c.log.Warn("upload service reported an unknown error", "code", code)
		}
	}

	if transfer == nil {
		return "", fmt.Errorf("could not establish an upload session")
	}

	putInfo, _ := transfer["putInfo"].(map[string]any)
	putURL, _ := putInfo["url"].(string)
	contentType, _ := transfer["content_type"].(string)
	if putURL == "" {
		return "", fmt.Errorf("session transfer carries no put url")
	}

	audio, err := os.ReadFile(session.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", session.Filename, err)
	}

	res, err := c.doJumperCall(ctx, &Request{
		Method:      http.MethodPut,
		URL:         c.jumperURL(putURL),
		Body:        audio,
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	status, _ := res["sessionStatus"].(map[string]any)
	if state, _ := status["state"].(string); state != "FINALIZED" {
		return "", fmt.Errorf("transfer ended in state %q", state)
	}
	return session.ServerID, nil
}

func (c *Client) jumperURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.cfg.Services.JumperURL + path
}

func (c *Client) doJumperCall(ctx context.Context, req *Request) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	raw, err := c.transport.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	var res map[string]any
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode upload service response: %w", err)
	}
	return res, nil
}

// sessionErrorCode digs the service-specific response code out of an upload
// error body. Zero means the body had no recognizable code.
func sessionErrorCode(res map[string]any) int {
	v := res
	for _, key := range []string{
		"errorMessage", "additionalInfo",
		"uploader_service.GoogleRupioAdditionalInfo", "completionInfo",
		"customerSpecificInfo",
	} {
		next, ok := v[key].(map[string]any)
		if !ok {
			return 0
		}
		v = next
	}

	switch code := v["ResponseCode"].(type) {
	case float64:
		return int(code)
	case json.Number:
		n, _ := code.Int64()
		return int(n)
	}
	return 0
}
