package database

// Schema contains all SQL statements for creating tables and indexes.
const Schema = `
-- Rider profile: one row per user id
CREATE TABLE IF NOT EXISTS rider_profiles (
    user_id TEXT PRIMARY KEY,
    height_m REAL NOT NULL,
    weight_kg REAL NOT NULL,
    ftp_watts REAL NOT NULL,
    updated_at INTEGER NOT NULL
);

-- Activities: the ride log
CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    date TEXT NOT NULL,        -- raw imported form; parsed on read, never compared lexically
    name TEXT NOT NULL,
    duration_seconds INTEGER NOT NULL,
    data_json TEXT NOT NULL,   -- full Activity record
    created_at INTEGER NOT NULL
);

-- User-defined climbs with their persisted profiles
CREATE TABLE IF NOT EXISTS user_climbs (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    data_json TEXT NOT NULL,   -- full Climb record including profile segments
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_activities_user ON activities(user_id);
CREATE INDEX IF NOT EXISTS idx_user_climbs_user ON user_climbs(user_id);

-- Backs the commit-time dedup safety net: one activity per (user, date, name)
CREATE UNIQUE INDEX IF NOT EXISTS idx_activities_user_date_name ON activities(user_id, date, name);
`
