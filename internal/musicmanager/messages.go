package musicmanager

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// The upload endpoints speak length-prefixed binary messages. The structs
// below carry the fields with their wire numbers spelled out next to each
// append/consume site; no generated bindings are involved.

// UploadAuth registers the client before uploading.
type UploadAuth struct {
	Address  string // 1
	Hostname string // 2
}

// Marshal encodes the message to its wire form.
func (m *UploadAuth) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Address)
	b = appendString(b, 2, m.Hostname)
	return b
}

// Unmarshal decodes the wire form into m.
func (m *UploadAuth) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case 1:
			m.Address = string(payload)
		case 2:
			m.Hostname = string(payload)
		}
		return nil
	})
}

// UploadAuthResponse acknowledges client registration.
type UploadAuthResponse struct {
	Status string // 1
}

func (m *UploadAuthResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Status)
	return b
}

func (m *UploadAuthResponse) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		if num == 1 {
			m.Status = string(payload)
		}
		return nil
	})
}

// ClientState reports the client's presence between uploads.
type ClientState struct {
	Address string // 1
}

func (m *ClientState) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Address)
	return b
}

func (m *ClientState) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		if num == 1 {
			m.Address = string(payload)
		}
		return nil
	})
}

// ClientStateResponse carries the server's view of the library.
type ClientStateResponse struct {
	Status          string // 1
	TotalTrackCount int64  // 2
}

func (m *ClientStateResponse) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Status)
	b = appendVarint(b, 2, uint64(m.TotalTrackCount))
	return b
}

func (m *ClientStateResponse) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case 1:
			m.Status = string(payload)
		case 2:
			m.TotalTrackCount = int64(varintOf(payload))
		}
		return nil
	})
}

// Track is one file's metadata inside a MetadataRequest.
type Track struct {
	ID             string // 1
	Title          string // 2
	Album          string // 3
	Artist         string // 4
	Composer       string // 5
	AlbumArtist    string // 6
	Genre          string // 7
	Year           int64  // 8
	BeatsPerMinute int64  // 9
	TrackNumber    int64  // 10
	TotalTracks    int64  // 11
	Disc           int64  // 12
	TotalDiscs     int64  // 13
	FileSize       int64  // 14
	Bitrate        int64  // 15, kbps
	Duration       int64  // 16, milliseconds
}

func (m *Track) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.Title)
	b = appendOptString(b, 3, m.Album)
	b = appendOptString(b, 4, m.Artist)
	b = appendOptString(b, 5, m.Composer)
	b = appendOptString(b, 6, m.AlbumArtist)
	b = appendOptString(b, 7, m.Genre)
	b = appendOptVarint(b, 8, m.Year)
	b = appendOptVarint(b, 9, m.BeatsPerMinute)
	b = appendOptVarint(b, 10, m.TrackNumber)
	b = appendOptVarint(b, 11, m.TotalTracks)
	b = appendOptVarint(b, 12, m.Disc)
	b = appendOptVarint(b, 13, m.TotalDiscs)
	b = appendVarint(b, 14, uint64(m.FileSize))
	b = appendVarint(b, 15, uint64(m.Bitrate))
	b = appendVarint(b, 16, uint64(m.Duration))
	return b
}

func (m *Track) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case 1:
			m.ID = string(payload)
		case 2:
			m.Title = string(payload)
		case 3:
			m.Album = string(payload)
		case 4:
			m.Artist = string(payload)
		case 5:
			m.Composer = string(payload)
		case 6:
			m.AlbumArtist = string(payload)
		case 7:
			m.Genre = string(payload)
		case 8:
			m.Year = int64(varintOf(payload))
		case 9:
			m.BeatsPerMinute = int64(varintOf(payload))
		case 10:
			m.TrackNumber = int64(varintOf(payload))
		case 11:
			m.TotalTracks = int64(varintOf(payload))
		case 12:
			m.Disc = int64(varintOf(payload))
		case 13:
			m.TotalDiscs = int64(varintOf(payload))
		case 14:
			m.FileSize = int64(varintOf(payload))
		case 15:
			m.Bitrate = int64(varintOf(payload))
		case 16:
			m.Duration = int64(varintOf(payload))
		}
		return nil
	})
}

// MetadataRequest submits a batch of tracks for upload matching.
type MetadataRequest struct {
	Address string  // 1
	Tracks  []Track // 2
}

func (m *MetadataRequest) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.Address)
	for i := range m.Tracks {
		b = appendMessage(b, 2, m.Tracks[i].Marshal())
	}
	return b
}

func (m *MetadataRequest) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case 1:
			m.Address = string(payload)
		case 2:
			var t Track
			if err := t.Unmarshal(payload); err != nil {
				return err
			}
			m.Tracks = append(m.Tracks, t)
		}
		return nil
	})
}

// Upload is the server's acceptance of one submitted track.
type Upload struct {
	ID       string // 1, client-generated
	ServerID string // 2, server-assigned
}

func (m *Upload) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.ServerID)
	return b
}

func (m *Upload) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case 1:
			m.ID = string(payload)
		case 2:
			m.ServerID = string(payload)
		}
		return nil
	})
}

// SignedChallengeInfo accompanies uploads the server wants re-verified.
type SignedChallengeInfo struct {
	ChallengeInfo string // 1
	Signature     string // 2
}

func (m *SignedChallengeInfo) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.ChallengeInfo)
	b = appendString(b, 2, m.Signature)
	return b
}

func (m *SignedChallengeInfo) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case 1:
			m.ChallengeInfo = string(payload)
		case 2:
			m.Signature = string(payload)
		}
		return nil
	})
}

// UploadResponse is the body of a MetadataResponse.
type UploadResponse struct {
	Uploads    []Upload              // 1
	Challenges []SignedChallengeInfo // 2
}

func (m *UploadResponse) Marshal() []byte {
	var b []byte
	for i := range m.Uploads {
		b = appendMessage(b, 1, m.Uploads[i].Marshal())
	}
	for i := range m.Challenges {
		b = appendMessage(b, 2, m.Challenges[i].Marshal())
	}
	return b
}

func (m *UploadResponse) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case 1:
			var u Upload
			if err := u.Unmarshal(payload); err != nil {
				return err
			}
			m.Uploads = append(m.Uploads, u)
		case 2:
			var c SignedChallengeInfo
			if err := c.Unmarshal(payload); err != nil {
				return err
			}
			m.Challenges = append(m.Challenges, c)
		}
		return nil
	})
}

// MetadataResponse answers a MetadataRequest.
type MetadataResponse struct {
	Response UploadResponse // 1
}

func (m *MetadataResponse) Marshal() []byte {
	var b []byte
	b = appendMessage(b, 1, m.Response.Marshal())
	return b
}

func (m *MetadataResponse) Unmarshal(data []byte) error {
	return walkFields(data, func(num protowire.Number, payload []byte) error {
		if num == 1 {
			return m.Response.Unmarshal(payload)
		}
		return nil
	})
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendOptString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	return appendString(b, num, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendOptVarint(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	return appendVarint(b, num, uint64(v))
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// walkFields iterates the fields of data, handing each field's number and
// payload to fn. Varint payloads are re-encoded so that fn can treat every
// payload as bytes.
func walkFields(data []byte, fn func(num protowire.Number, payload []byte) error) error {
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("malformed message: %w", protowire.ParseError(n))
		}
		data = data[n:]

		switch typ {
		case protowire.BytesType:
			payload, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("malformed field %d: %w", num, protowire.ParseError(n))
			}
			if err := fn(num, payload); err != nil {
				return err
			}
			data = data[n:]
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("malformed field %d: %w", num, protowire.ParseError(n))
			}
			if err := fn(num, protowire.AppendVarint(nil, v)); err != nil {
				return err
			}
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("malformed field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return nil
}

// varintOf decodes a re-encoded varint payload from walkFields.
func varintOf(payload []byte) uint64 {
	v, n := protowire.ConsumeVarint(payload)
	if n < 0 {
		return 0
	}
	return v
}
