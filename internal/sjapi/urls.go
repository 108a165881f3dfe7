// package sjapi speaks the REST/JSON service family: entity URL building,
// kind-dispatched response decoding, and batch mutation reconciliation.
package sjapi

import (
	"fmt"
	"net/url"
)

const (
	// DefaultBase is the versioned REST endpoint root.
	DefaultBase = "https://www.googleapis.com/sj/v1beta1/"

	// DefaultStreamBase serves direct audio streams.
	DefaultStreamBase = "https://music.google.com/music/play"

	// DefaultBitrate is the stream bitrate in kbps when none is requested.
	DefaultBitrate = 256
)

// URLs builds request URLs for the REST endpoints.
type URLs struct {
	Base       string
	StreamBase string
}

// DefaultURLs returns a URLs bound to the production endpoints.
func DefaultURLs() URLs {
	return URLs{Base: DefaultBase, StreamBase: DefaultStreamBase}
}

// Tracks is the track collection endpoint.
func (u URLs) Tracks() string { return u.Base + "tracks" }

// Track addresses a single track.
func (u URLs) Track(trackID string) string {
	return fmt.Sprintf("%stracks/%s", u.Base, url.PathEscape(trackID))
}

// TrackAudio is the direct-stream URL for a track. A bitrate of zero or less
// falls back to [DefaultBitrate].
func (u URLs) TrackAudio(trackID string, bitrate int) string {
	if bitrate <= 0 {
		bitrate = DefaultBitrate
	}
	return fmt.Sprintf("%s?songid=%s&targetkbps=%d&pt=e", u.StreamBase, url.QueryEscape(trackID), bitrate)
}

// Playlists is the playlist collection endpoint.
func (u URLs) Playlists() string { return u.Base + "playlists" }

// Playlist addresses a single playlist.
func (u URLs) Playlist(playlistID string) string {
	return fmt.Sprintf("%splaylists/%s", u.Base, url.PathEscape(playlistID))
}

// PlaylistEntries lists the entries of a playlist.
func (u URLs) PlaylistEntries(playlistID string) string {
	return fmt.Sprintf("%splentries?plid=%s", u.Base, url.QueryEscape(playlistID))
}

// PlaylistEntry addresses a single playlist entry.
func (u URLs) PlaylistEntry(entryID string) string {
	return fmt.Sprintf("%splentries/%s", u.Base, url.PathEscape(entryID))
}

// PlaylistBatch is the playlist mutation endpoint.
func (u URLs) PlaylistBatch() string { return u.Base + "playlistbatch" }

// PlaylistEntriesBatch is the playlist entry mutation endpoint.
func (u URLs) PlaylistEntriesBatch() string { return u.Base + "plentriesbatch" }
