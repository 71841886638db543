package db

// SchemaSQL is the complete schema for fresh installs. It reflects the
// current state after all migrations.
//
// This is the single source of truth for the database schema: repository
// tests build their databases from GetSchemaSQL(), so a repository that
// references a column missing here fails immediately with "no such column".
// Keep this in sync with internal/db/migrations/files/.
const SchemaSQL = `
-- Clients (counter owners with package assignments)
CREATE TABLE IF NOT EXISTS clients (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT DEFAULT '',
	phone TEXT DEFAULT '',
	status TEXT NOT NULL DEFAULT 'active',
	current_package_id TEXT DEFAULT '',
	remaining_servings INTEGER NOT NULL DEFAULT 0,
	remaining_images INTEGER NOT NULL DEFAULT 0,
	consumed_images INTEGER NOT NULL DEFAULT 0,
	reserved_images INTEGER NOT NULL DEFAULT 0,
	ai_training_units INTEGER NOT NULL DEFAULT 0,
	notes TEXT DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Affiliates (counter owners with commission)
CREATE TABLE IF NOT EXISTS affiliates (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT DEFAULT '',
	phone TEXT DEFAULT '',
	commission_percent INTEGER NOT NULL DEFAULT 0,
	current_package_id TEXT DEFAULT '',
	remaining_servings INTEGER NOT NULL DEFAULT 0,
	remaining_images INTEGER NOT NULL DEFAULT 0,
	consumed_images INTEGER NOT NULL DEFAULT 0,
	reserved_images INTEGER NOT NULL DEFAULT 0,
	ai_training_units INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Leads (prospects without counters)
CREATE TABLE IF NOT EXISTS leads (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT DEFAULT '',
	phone TEXT DEFAULT '',
	source TEXT DEFAULT '',
	status TEXT NOT NULL DEFAULT 'new' CHECK(status IN ('new', 'contacted', 'converted', 'lost')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Service packages
CREATE TABLE IF NOT EXISTS packages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT DEFAULT '',
	total_servings INTEGER NOT NULL DEFAULT 0,
	total_images INTEGER NOT NULL DEFAULT 0,
	price REAL NOT NULL DEFAULT 0,
	is_active INTEGER NOT NULL DEFAULT 1,
	max_edits_per_serving INTEGER NOT NULL DEFAULT 0,
	max_processing_time_days INTEGER NOT NULL DEFAULT 0,
	features_tags TEXT DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Submissions (image URL lists stored as JSON arrays)
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	owner_type TEXT NOT NULL CHECK(owner_type IN ('client', 'lead')),
	owner_id TEXT NOT NULL,
	item_name TEXT NOT NULL,
	item_type TEXT DEFAULT '',
	ingredients TEXT DEFAULT '',
	category TEXT DEFAULT '',
	status TEXT NOT NULL DEFAULT 'awaiting-processing',
	original_image_urls TEXT DEFAULT '[]',
	processed_image_urls TEXT DEFAULT '[]',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_submissions_owner ON submissions(owner_type, owner_id);
CREATE INDEX IF NOT EXISTS idx_submissions_status ON submissions(status);

-- Submission comments
CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	submission_id TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('internal', 'client-visible', 'editor-note')),
	visibility TEXT NOT NULL CHECK(visibility IN ('staff', 'client')),
	content TEXT NOT NULL,
	author_id TEXT DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (submission_id) REFERENCES submissions(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_comments_submission ON comments(submission_id);

-- Work sessions (append-only)
CREATE TABLE IF NOT EXISTS work_sessions (
	id TEXT PRIMARY KEY,
	owner_type TEXT NOT NULL CHECK(owner_type IN ('client', 'lead')),
	owner_id TEXT NOT NULL,
	duration_minutes INTEGER NOT NULL,
	work_type TEXT DEFAULT '',
	description TEXT DEFAULT '',
	session_date TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_work_sessions_owner ON work_sessions(owner_type, owner_id);
`

// GetSchemaSQL returns the full schema. Tests build their fixture databases
// from this instead of hardcoding CREATE TABLE statements.
func GetSchemaSQL() string {
	return SchemaSQL
}
