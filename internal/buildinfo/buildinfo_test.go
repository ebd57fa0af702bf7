package buildinfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintBuildData(t *testing.T) {
	origV, origD, origC := buildVersion, buildDate, buildCommit
	t.Cleanup(func() { buildVersion, buildDate, buildCommit = origV, origD, origC })

	buildVersion, buildDate, buildCommit = "", "", ""
	var buf bytes.Buffer
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())

	buildVersion, buildDate, buildCommit = "v1.2.3", "2026-10-16", "abc123"
	buf.Reset()
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: v1.2.3\nBuild date: 2026-10-16\nBuild commit: abc123\n", buf.String())
}
