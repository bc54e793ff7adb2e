package trust

import (
	"testing"

	"github.com/inkwell-labs/mathlayout/pkg/options"
)

func TestDefaultOptionsDenyEverything(t *testing.T) {
	o := options.Default()
	for _, c := range []Command{Href, URL, HTMLId, HTMLClass, HTMLStyle, HTMLData} {
		if Check(o, c) {
			t.Fatalf("%s should be denied by default", c)
		}
	}
}

func TestAllowListPermitsOnlyListedCommands(t *testing.T) {
	o := options.Default()
	o.Trust = AllowList(Href, HTMLClass)
	if !Check(o, Href) {
		t.Fatalf("href should be allowed")
	}
	if Check(o, URL) {
		t.Fatalf("url should still be denied")
	}
	if !Check(o, HTMLClass) {
		t.Fatalf("htmlClass should be allowed")
	}
}

func TestRequireReturnsErrorWhenDenied(t *testing.T) {
	o := options.Default()
	err := Require(o, Href)
	if err == nil {
		t.Fatalf("expected an UntrustedCommand error")
	}
	if err.ErrorCode() == 0 {
		t.Fatalf("expected a non-zero error code")
	}
}

func TestRequireReturnsNilWhenAllowed(t *testing.T) {
	o := options.Default()
	o.Trust = AllowList(Href)
	if err := Require(o, Href); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
