package version

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	bi := Info()
	if bi.Service != "akkadian-api" || bi.Version == "" {
		t.Fatalf("unexpected build info %+v", bi)
	}
	if !strings.HasSuffix(bi.Table, "@v1") {
		t.Fatalf("sign table revision %q", bi.Table)
	}
}
