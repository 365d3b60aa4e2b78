package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationVersion(t *testing.T) {
	assert.Equal(t, "001", MigrationVersion("001_init.sql"))
	assert.Equal(t, "002", MigrationVersion("migrations/002_add_notes_index.sql"))
	assert.Equal(t, "init.sql", MigrationVersion("init.sql"))
}

func TestSortedMigrationFiles(t *testing.T) {
	got := SortedMigrationFiles([]string{"010_late.sql", "README.md", "001_init.sql", "002_more.sql"})
	assert.Equal(t, []string{"001_init.sql", "002_more.sql", "010_late.sql"}, got)
	assert.Empty(t, SortedMigrationFiles(nil))
}
