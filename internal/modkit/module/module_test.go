package module

import (
	"strings"
	"testing"

	phttp "akkadian/internal/platform/net/http"
)

type Recorder interface{ Record(key string) }

type recorder struct{ keys []string }

func (r *recorder) Record(key string) { r.keys = append(r.keys, key) }

type usagePorts struct {
	Recorder Recorder
	hidden   Recorder
}

type stub struct {
	name  string
	ports any
}

func (s stub) Name() string             { return s.name }
func (s stub) MountRoutes(phttp.Router) {}
func (s stub) Ports() any               { return s.ports }

func TestPortsOf(t *testing.T) {
	rec := &recorder{}
	cases := []struct {
		name  string
		ports any
		want  bool
	}{
		{"nil", nil, false},
		{"direct", rec, true},
		{"field", usagePorts{Recorder: rec}, true},
		{"pointer to struct", &usagePorts{Recorder: rec}, true},
		{"nil pointer", (*usagePorts)(nil), false},
		{"unexported only", usagePorts{hidden: rec}, false},
		{"scalar", 42, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PortsOf[Recorder](stub{name: "signusage", ports: c.ports})
			if ok != c.want {
				t.Fatalf("ok %v want %v", ok, c.want)
			}
			if ok {
				got.Record("ša")
			}
		})
	}
	if len(rec.keys) != 3 {
		t.Fatalf("recorded %v", rec.keys)
	}
}

func TestMustPortsOf_PanicNamesModule(t *testing.T) {
	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "stats") || !strings.Contains(msg, "Recorder") {
			t.Fatalf("panic %q", msg)
		}
	}()
	MustPortsOf[Recorder](stub{name: "stats"})
}

func TestRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	Register("translate", nil)
	Register("signusage", usagePorts{Recorder: &recorder{}})
	Register("cuneiform", "first")
	Register("cuneiform", "all")

	if got := Names(); strings.Join(got, ",") != "cuneiform,signusage,translate" {
		t.Fatalf("names %v", got)
	}
	if p, ok := Lookup[usagePorts]("signusage"); !ok || p.Recorder == nil {
		t.Fatal("lookup signusage")
	}
	if v, _ := Lookup[string]("cuneiform"); v != "all" {
		t.Fatalf("replace: %q", v)
	}
	if _, ok := Lookup[usagePorts]("translate"); ok {
		t.Fatal("nil ports should not match")
	}
	if _, ok := Lookup[string]("search"); ok {
		t.Fatal("unknown module")
	}
}
