package musicmanager

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"

	"github.com/simon-weber/Unofficial-Google-Music-API/internal/shared"
)

// supportedFiletypes lists the extensions the upload endpoints accept.
var supportedFiletypes = []string{"mp3"}

// BuildMetadataRequest builds a metadata batch for the given local files and
// returns it together with a map from generated track id to source filename,
// needed later to correlate the server's acceptances.
//
// Tag reading is best effort; a file with no readable tags still uploads
// with its basename as the title. The audio scan is not: a file whose frames
// cannot be read fails the whole batch.
func (p *Protocol) BuildMetadataRequest(filenames []string) (*MetadataRequest, map[string]string, error) {
	req := p.MetadataRequest()
	filemap := make(map[string]string, len(filenames))

	for _, filename := range filenames {
		if !supportedFiletype(filename) {
			return nil, nil, &shared.UnsupportedFiletypeError{Filename: filename, Supported: supportedFiletypes}
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %q: %w", filename, err)
		}

		track, err := trackFor(filename, data)
		if err != nil {
			return nil, nil, err
		}

		filemap[track.ID] = filename
		req.Tracks = append(req.Tracks, track)
	}

	return req, filemap, nil
}

func supportedFiletype(filename string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	for _, s := range supportedFiletypes {
		if ext == s {
			return true
		}
	}
	return false
}

func trackFor(filename string, data []byte) (Track, error) {
	bitrate, duration, err := scanAudio(data)
	if err != nil {
		return Track{}, fmt.Errorf("failed to scan %q: %w", filename, err)
	}

	track := Track{
		ID:       TrackID(data),
		Title:    filepath.Base(filename),
		FileSize: int64(len(data)),
		Bitrate:  bitrate,
		Duration: duration,
	}

	md, err := tag.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return track, nil
	}

	// A title is required server-side; everything else is optional.
	if md.Title() != "" {
		track.Title = md.Title()
	}
	track.Album = md.Album()
	track.Artist = md.Artist()
	track.Composer = md.Composer()
	track.AlbumArtist = md.AlbumArtist()
	track.Genre = md.Genre()
	track.Year = int64(md.Year())
	track.BeatsPerMinute = rawBPM(md)

	n, total := md.Track()
	track.TrackNumber = int64(n)
	track.TotalTracks = int64(total)

	n, total = md.Disc()
	track.Disc = int64(n)
	track.TotalDiscs = int64(total)

	return track, nil
}

// rawBPM digs the beats-per-minute frame out of the raw tag data; there is
// no first-class accessor for it.
func rawBPM(md tag.Metadata) int64 {
	for _, key := range []string{"TBPM", "bpm", "BPM"} {
		v, ok := md.Raw()[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return int64(n)
			}
		}
	}
	return 0
}

// scanAudio walks every frame of an mpeg stream and returns the average
// bitrate in kbps and the total duration in milliseconds.
func scanAudio(data []byte) (bitrate, duration int64, err error) {
	dec := mp3.NewDecoder(bytes.NewReader(data))

	var (
		frame      mp3.Frame
		skipped    int
		totalBytes int64
		totalSecs  float64
	)
	for {
		if err := dec.Decode(&frame, &skipped); err != nil {
			break
		}
		totalBytes += int64(frame.Size())
		totalSecs += frame.Duration().Seconds()
	}

	if totalSecs == 0 {
		return 0, 0, fmt.Errorf("no decodable audio frames")
	}

	bitrate = int64(float64(totalBytes*8) / totalSecs / 1000)
	duration = int64(totalSecs * 1000)
	return bitrate, duration, nil
}
