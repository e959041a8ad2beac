package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.StartTarget("frontend", "Removing comments from ts/tsx files in src...")
	r.Success("app.ts", "frontend")
	r.Success("components/button.tsx", "frontend")
	r.Failure("/project/src/locked.ts", "frontend", errors.New("permission denied"))

	r.StartTarget("migrations", "Removing comments from sql files in supabase/migrations...")
	r.Missing("/project/supabase/migrations")

	assert.Equal(t, 2, r.Total())
	assert.Equal(t, 2, r.Count("frontend"))
	assert.Equal(t, 0, r.Count("migrations"))
	require.True(t, r.HasFailures())
	require.Len(t, r.Failures(), 1)
	assert.Equal(t, "/project/src/locked.ts", r.Failures()[0].Path)

	r.Summary()

	assert.Equal(t, `
Removing comments from ts/tsx files in src...
✓ app.ts
✓ components/button.tsx
✗ /project/src/locked.ts

Removing comments from sql files in supabase/migrations...
Path not found: /project/supabase/migrations

Done! Processed 2 files total.
  - frontend: 2
  - migrations: 0

1 error:
  - /project/src/locked.ts: permission denied
`, buf.String())
}

func TestReporter_noFailures(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.StartTarget("db", "sql")
	r.Success("001_init.sql", "db")
	r.Summary()

	assert.False(t, r.HasFailures())
	assert.NotContains(t, buf.String(), "errors:")
	assert.Contains(t, buf.String(), "Done! Processed 1 file total.")
}

func TestReporter_pluralizesCounts(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.StartTarget("db", "sql")
	r.Failure("/project/a.sql", "db", errors.New("boom"))
	r.Failure("/project/b.sql", "db", errors.New("boom"))
	r.Summary()

	assert.Contains(t, buf.String(), "Done! Processed 0 files total.")
	assert.Contains(t, buf.String(), "\n2 errors:\n")
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "files", Plural(0, "file", "files"))
	assert.Equal(t, "file", Plural(1, "file", "files"))
	assert.Equal(t, "files", Plural(2, "file", "files"))
}

func TestReporter_color(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)

	r.Success("a.ts", "frontend")

	assert.Contains(t, buf.String(), "\x1b[32m")
	assert.Contains(t, buf.String(), "a.ts\n")
}
