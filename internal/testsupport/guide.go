package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// GuideProgramme describes one programme entry for a generated test guide.
type GuideProgramme struct {
	Title    string
	Category string
	IconSrc  string
}

// WriteGuide renders a minimal XMLTV document containing the given programmes
// and writes it to path.
func WriteGuide(t testing.TB, path string, programmes ...GuideProgramme) {
	t.Helper()

	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	b.WriteString("<tv source-info-name=\"test\">\n")
	b.WriteString("  <channel id=\"ch1\"><display-name>Channel One</display-name></channel>\n")
	for i, p := range programmes {
		fmt.Fprintf(&b, "  <programme start=\"2026082406%02d00 +0000\" channel=\"ch1\">\n", i)
		fmt.Fprintf(&b, "    <title>%s</title>\n", p.Title)
		if p.Category != "" {
			fmt.Fprintf(&b, "    <category>%s</category>\n", p.Category)
		}
		if p.IconSrc != "" {
			fmt.Fprintf(&b, "    <icon src=%q/>\n", p.IconSrc)
		}
		b.WriteString("  </programme>\n")
	}
	b.WriteString("</tv>\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write guide %s: %v", path, err)
	}
}
