// Package profile defines the taste snapshot that scoring operates on.
package profile

import (
	"fmt"

	"github.com/tastemap/tastemap/internal/weighting"
)

// MaxTopAlbums is the number of ranked album slots in a profile.
const MaxTopAlbums = 3

// MaxSongsPerAlbum is the number of ranked song slots per ranked album.
const MaxSongsPerAlbum = 3

// Profile is a user's taste snapshot: ranked albums, an optional point
// allocation over those albums, ranked songs per album, and one chosen lyric
// line per song. Scoring treats a Profile as an immutable input.
type Profile struct {
	User string `yaml:"user"`

	// TopAlbums is rank-significant: index 0 is the #1 album.
	TopAlbums []string `yaml:"top_albums"`

	// AlbumWeights, when non-empty, maps every album in TopAlbums to an
	// integer point value; the values sum to exactly 100.
	AlbumWeights map[string]int `yaml:"album_weights,omitempty"`

	// AlbumSongs maps an album id to its ranked songs (up to three).
	AlbumSongs map[string][]string `yaml:"album_songs,omitempty"`

	// SongLyrics maps a song id to its single chosen lyric line. Presence of
	// a key means "this song's lyric was picked".
	SongLyrics map[string]string `yaml:"song_lyrics,omitempty"`
}

// Validate checks the structural invariants: album and song lists carry no
// duplicates and respect the slot limits, and a non-empty weight map covers
// exactly the ranked albums and sums to 100.
func (p *Profile) Validate() error {
	if len(p.TopAlbums) > MaxTopAlbums {
		return fmt.Errorf("profile has %d top albums, max is %d", len(p.TopAlbums), MaxTopAlbums)
	}

	seen := make(map[string]bool, len(p.TopAlbums))
	for _, album := range p.TopAlbums {
		if seen[album] {
			return fmt.Errorf("duplicate album %q in top albums", album)
		}
		seen[album] = true
	}

	for album, songs := range p.AlbumSongs {
		if len(songs) > MaxSongsPerAlbum {
			return fmt.Errorf("album %q has %d songs, max is %d", album, len(songs), MaxSongsPerAlbum)
		}
		seenSongs := make(map[string]bool, len(songs))
		for _, song := range songs {
			if seenSongs[song] {
				return fmt.Errorf("duplicate song %q for album %q", song, album)
			}
			seenSongs[song] = true
		}
	}

	if len(p.AlbumWeights) > 0 {
		if err := weighting.ValidateWeights(p.AlbumWeights, p.TopAlbums); err != nil {
			return fmt.Errorf("album weights: %w", err)
		}
	}

	return nil
}

// HasAlbums reports whether the profile carries enough data to be compared.
func (p *Profile) HasAlbums() bool {
	return p != nil && len(p.TopAlbums) > 0
}
