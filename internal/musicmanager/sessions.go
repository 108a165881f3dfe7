package musicmanager

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dhowden/tag"
)

// SessionRequest is one prepared upload-session negotiation.
type SessionRequest struct {
	Filename string
	ServerID string
	Payload  SessionPayload
}

// SessionPayload is the JSON body of a session request. The transport is a
// flat string-typed multipart form, so every inlined value is serialized as
// its string form regardless of its type.
type SessionPayload struct {
	ClientID             string               `json:"clientId"`
	CreateSessionRequest CreateSessionRequest `json:"createSessionRequest"`
	ProtocolVersion      string               `json:"protocolVersion"`
}

type CreateSessionRequest struct {
	Fields []SessionField `json:"fields"`
}

// SessionField carries exactly one of an external or inlined part.
type SessionField struct {
	External *ExternalField `json:"external,omitempty"`
	Inlined  *InlinedField  `json:"inlined,omitempty"`
}

// ExternalField describes the file to be uploaded.
type ExternalField struct {
	Filename string   `json:"filename"`
	Name     string   `json:"name"`
	Put      struct{} `json:"put"`
	Size     int64    `json:"size"`
}

// InlinedField is one string-valued form part.
type InlinedField struct {
	Content string `json:"content"`
	Name    string `json:"name"`
}

// uploaderName is the client name reported in every session payload.
const uploaderName = "Jumper Uploader"

// BuildUploadSessionRequests prepares one session request per accepted
// upload in the server's metadata response. filemap is the id to filename
// map returned by [Protocol.BuildMetadataRequest]. An accepted id missing
// from filemap is an error; it means the response does not belong to the
// batch that produced the map.
func (p *Protocol) BuildUploadSessionRequests(resp *MetadataResponse, filemap map[string]string) ([]SessionRequest, error) {
	uploads := resp.Response.Uploads
	sessions := make([]SessionRequest, 0, len(uploads))

	for _, upload := range uploads {
		filename, ok := filemap[upload.ID]
		if !ok {
			return nil, fmt.Errorf("server accepted unknown track id %q", upload.ID)
		}

		info, err := os.Stat(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", filename, err)
		}

		title, bitrate := sessionTrackInfo(filename)
		abspath, err := filepath.Abs(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", filename, err)
		}

		fields := []SessionField{{
			External: &ExternalField{
				Filename: filepath.Base(filename),
				Name:     abspath,
				Size:     info.Size(),
			},
		}}

		inlined := []InlinedField{
			{Name: "title", Content: "jumper-uploader-title-42"},
			{Name: "ClientId", Content: upload.ID},
			{Name: "ClientTotalSongCount", Content: strconv.Itoa(len(uploads))},
			{Name: "CurrentTotalUploadedCount", Content: "0"},
			{Name: "CurrentUploadingTrack", Content: title},
			{Name: "ServerId", Content: upload.ServerID},
			{Name: "SyncNow", Content: "true"},
			{Name: "TrackBitRate", Content: strconv.FormatInt(bitrate, 10)},
			{Name: "TrackDoNotRematch", Content: "false"},
			{Name: "UploaderId", Content: p.identity.Address},
		}
		for i := range inlined {
			fields = append(fields, SessionField{Inlined: &inlined[i]})
		}

		sessions = append(sessions, SessionRequest{
			Filename: filename,
			ServerID: upload.ServerID,
			Payload: SessionPayload{
				ClientID:             uploaderName,
				CreateSessionRequest: CreateSessionRequest{Fields: fields},
				ProtocolVersion:      "0.8",
			},
		})
	}

	return sessions, nil
}

// sessionTrackInfo re-reads title and bitrate for the session payload,
// falling back to the basename and zero when the file cannot be read.
func sessionTrackInfo(filename string) (title string, bitrate int64) {
	title = filepath.Base(filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return title, 0
	}

	if br, _, err := scanAudio(data); err == nil {
		bitrate = br
	}
	if md, err := tag.ReadFrom(bytes.NewReader(data)); err == nil && md.Title() != "" {
		title = md.Title()
	}
	return title, bitrate
}
