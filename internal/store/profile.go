package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/tastemap/tastemap/internal/compat"
	"github.com/tastemap/tastemap/internal/profile"
)

// SaveTopAlbums replaces the user's ranked album list. Existing weights are
// cleared since they no longer cover the new ranking.
func (s *Store) SaveTopAlbums(user string, albums []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ProfileAlbum WHERE user = ?", user); err != nil {
		return fmt.Errorf("clearing top albums: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM AlbumWeight WHERE user = ?", user); err != nil {
		return fmt.Errorf("clearing weights: %w", err)
	}

	for position, album := range albums {
		if _, err := tx.Exec("INSERT INTO ProfileAlbum (user, position, album) VALUES (?, ?, ?)",
			user, position, album); err != nil {
			return fmt.Errorf("inserting top album %q: %w", album, err)
		}
	}

	return tx.Commit()
}

// SaveAlbumSongs replaces the ranked songs stored for one of the user's
// ranked albums.
func (s *Store) SaveAlbumSongs(user, album string, songs []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM ProfileSong WHERE user = ? AND album = ?", user, album); err != nil {
		return fmt.Errorf("clearing songs for %q: %w", album, err)
	}
	for position, song := range songs {
		if _, err := tx.Exec("INSERT INTO ProfileSong (user, album, position, track) VALUES (?, ?, ?, ?)",
			user, album, position, song); err != nil {
			return fmt.Errorf("inserting song %q: %w", song, err)
		}
	}

	return tx.Commit()
}

// SaveLyric stores the user's chosen lyric line for a song.
func (s *Store) SaveLyric(user, song, line string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO ProfileLyric (user, track, line) VALUES (?, ?, ?)",
		user, song, line)
	if err != nil {
		return fmt.Errorf("saving lyric for %q: %w", song, err)
	}
	return nil
}

// SaveWeights replaces the user's album weight map.
func (s *Store) SaveWeights(user string, weights map[string]int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM AlbumWeight WHERE user = ?", user); err != nil {
		return fmt.Errorf("clearing weights: %w", err)
	}
	for album, points := range weights {
		if _, err := tx.Exec("INSERT INTO AlbumWeight (user, album, points) VALUES (?, ?, ?)",
			user, album, points); err != nil {
			return fmt.Errorf("inserting weight for %q: %w", album, err)
		}
	}

	return tx.Commit()
}

// GetProfile assembles the user's stored taste profile. A user with no
// stored albums yields a profile with an empty TopAlbums list.
func (s *Store) GetProfile(user string) (*profile.Profile, error) {
	p := &profile.Profile{User: user}

	rows, err := s.db.Query("SELECT album FROM ProfileAlbum WHERE user = ? ORDER BY position", user)
	if err != nil {
		return nil, fmt.Errorf("querying top albums: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var album string
		if err := rows.Scan(&album); err != nil {
			return nil, err
		}
		p.TopAlbums = append(p.TopAlbums, album)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	weightRows, err := s.db.Query("SELECT album, points FROM AlbumWeight WHERE user = ?", user)
	if err != nil {
		return nil, fmt.Errorf("querying weights: %w", err)
	}
	defer weightRows.Close()
	for weightRows.Next() {
		var album string
		var points int
		if err := weightRows.Scan(&album, &points); err != nil {
			return nil, err
		}
		if p.AlbumWeights == nil {
			p.AlbumWeights = make(map[string]int)
		}
		p.AlbumWeights[album] = points
	}
	if err := weightRows.Err(); err != nil {
		return nil, err
	}

	songRows, err := s.db.Query("SELECT album, track FROM ProfileSong WHERE user = ? ORDER BY album, position", user)
	if err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	defer songRows.Close()
	for songRows.Next() {
		var album, track string
		if err := songRows.Scan(&album, &track); err != nil {
			return nil, err
		}
		if p.AlbumSongs == nil {
			p.AlbumSongs = make(map[string][]string)
		}
		p.AlbumSongs[album] = append(p.AlbumSongs[album], track)
	}
	if err := songRows.Err(); err != nil {
		return nil, err
	}

	lyricRows, err := s.db.Query("SELECT track, line FROM ProfileLyric WHERE user = ?", user)
	if err != nil {
		return nil, fmt.Errorf("querying lyrics: %w", err)
	}
	defer lyricRows.Close()
	for lyricRows.Next() {
		var track, line string
		if err := lyricRows.Scan(&track, &line); err != nil {
			return nil, err
		}
		if p.SongLyrics == nil {
			p.SongLyrics = make(map[string]string)
		}
		p.SongLyrics[track] = line
	}
	if err := lyricRows.Err(); err != nil {
		return nil, err
	}

	return p, nil
}

// EnsureShareID returns the user's share id, minting one on first use.
func (s *Store) EnsureShareID(user string) (string, error) {
	existing, err := s.GetShareID(user)
	if err != nil {
		return "", err
	}
	if existing != "" {
		return existing, nil
	}

	id := uuid.NewString()
	if _, err := s.db.Exec("INSERT INTO Share (user, id) VALUES (?, ?)", user, id); err != nil {
		return "", fmt.Errorf("inserting share id: %w", err)
	}
	return id, nil
}

func (s *Store) GetShareID(user string) (string, error) {
	row := s.db.QueryRow("SELECT id FROM Share WHERE user = ?", user)
	var id string
	err := row.Scan(&id)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting share id: %w", err)
	}
	return id, nil
}

// SaveComparison caches a completed comparison, replacing any previous one
// against the same share id.
func (s *Store) SaveComparison(user string, record compat.ComparisonRecord) error {
	albums, err := json.Marshal(record.TheirAlbums)
	if err != nil {
		return fmt.Errorf("encoding albums: %w", err)
	}
	names, err := json.Marshal(record.AlbumNames)
	if err != nil {
		return fmt.Errorf("encoding names: %w", err)
	}
	colors, err := json.Marshal(record.AlbumColors)
	if err != nil {
		return fmt.Errorf("encoding colors: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO Comparison
		(user, share_id, their_albums, album_names, album_colors, score, compared_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user, record.ShareID, string(albums), string(names), string(colors),
		record.Score, record.ComparedAt)
	if err != nil {
		return fmt.Errorf("saving comparison: %w", err)
	}
	return nil
}

// GetComparison loads a cached comparison, or nil if none is stored.
func (s *Store) GetComparison(user, shareID string) (*compat.ComparisonRecord, error) {
	row := s.db.QueryRow(`
		SELECT their_albums, album_names, album_colors, score, compared_at
		FROM Comparison WHERE user = ? AND share_id = ?`, user, shareID)

	var albums, names, colors string
	record := compat.ComparisonRecord{ShareID: shareID}
	err := row.Scan(&albums, &names, &colors, &record.Score, &record.ComparedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading comparison: %w", err)
	}

	if err := json.Unmarshal([]byte(albums), &record.TheirAlbums); err != nil {
		return nil, fmt.Errorf("decoding albums: %w", err)
	}
	if err := json.Unmarshal([]byte(names), &record.AlbumNames); err != nil {
		return nil, fmt.Errorf("decoding names: %w", err)
	}
	if err := json.Unmarshal([]byte(colors), &record.AlbumColors); err != nil {
		return nil, fmt.Errorf("decoding colors: %w", err)
	}

	return &record, nil
}
