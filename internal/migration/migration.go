// Package migration holds the SQLite schema for the tastemap database.
package migration

// Create builds every table the tool uses. All statements are idempotent so
// the schema can be applied to both fresh and existing databases.
const Create = `
CREATE TABLE IF NOT EXISTS User (
  name TEXT PRIMARY KEY,
  session_key TEXT DEFAULT '',
  last_updated DATETIME
);

CREATE TABLE IF NOT EXISTS Artist (
  name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS Album (
  artist TEXT,
  name TEXT,
  FOREIGN KEY (artist) REFERENCES Artist(name),
  PRIMARY KEY (artist, name)
);

CREATE TABLE IF NOT EXISTS Track (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  artist TEXT,
  album TEXT,
  name TEXT,
  FOREIGN KEY (artist) REFERENCES Artist(name)
);

CREATE TABLE IF NOT EXISTS Listen (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user TEXT,
  track INTEGER,
  date TEXT,
  FOREIGN KEY (user) REFERENCES User(name),
  FOREIGN KEY (track) REFERENCES Track(id)
);

CREATE TABLE IF NOT EXISTS ProfileAlbum (
  user TEXT,
  position INTEGER,
  album TEXT,
  FOREIGN KEY (user) REFERENCES User(name),
  PRIMARY KEY (user, position)
);

CREATE TABLE IF NOT EXISTS ProfileSong (
  user TEXT,
  album TEXT,
  position INTEGER,
  track TEXT,
  FOREIGN KEY (user) REFERENCES User(name),
  PRIMARY KEY (user, album, position)
);

CREATE TABLE IF NOT EXISTS ProfileLyric (
  user TEXT,
  track TEXT,
  line TEXT,
  FOREIGN KEY (user) REFERENCES User(name),
  PRIMARY KEY (user, track)
);

CREATE TABLE IF NOT EXISTS AlbumWeight (
  user TEXT,
  album TEXT,
  points INTEGER,
  FOREIGN KEY (user) REFERENCES User(name),
  PRIMARY KEY (user, album)
);

CREATE TABLE IF NOT EXISTS Share (
  user TEXT PRIMARY KEY,
  id TEXT,
  FOREIGN KEY (user) REFERENCES User(name)
);

CREATE TABLE IF NOT EXISTS Comparison (
  user TEXT,
  share_id TEXT,
  their_albums TEXT,
  album_names TEXT,
  album_colors TEXT,
  score INTEGER,
  compared_at DATETIME,
  FOREIGN KEY (user) REFERENCES User(name),
  PRIMARY KEY (user, share_id)
);
`
