// munui/database/migrations.go
package database

// migration represents a single database schema migration.
type migration struct {
	Version uint
	Query   string
}

// allMigrations holds all schema changes in order.
var allMigrations = []migration{
	{
		Version: 1,
		Query: `
-- Status became filterable in the admin frontend
CREATE INDEX IF NOT EXISTS idx_posts_status ON posts(status);
		`,
	},
}
