package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriterPrefixesMessages(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewWithWriter(&buf, "config").Printf("cannot read %s", "config.yaml")

	line := strings.TrimSpace(buf.String())
	if !strings.HasSuffix(line, "profilescanner/config: cannot read config.yaml") {
		t.Fatalf("unexpected line %q", line)
	}
}
