package json

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/zoobzio/mapper"
	mappertest "github.com/zoobzio/mapper/testing"
)

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/json" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/json")
	}
}

func TestExport_RoundTrip(t *testing.T) {
	r := mapper.New()
	if err := mappertest.Configure(r); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}

	data, err := Export(r)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	restored, err := mapper.ReadManifest(New(), data)
	if err != nil {
		t.Fatalf("ReadManifest() error: %v", err)
	}

	want := r.Plans()
	if !reflect.DeepEqual(restored.Maps, want) {
		t.Errorf("round-trip failed:\ngot  %+v\nwant %+v", restored.Maps, want)
	}
}

func TestReadManifest_Invalid(t *testing.T) {
	_, err := mapper.ReadManifest(New(), []byte("invalid json"))
	if err == nil {
		t.Fatal("ReadManifest(invalid) should return error")
	}
	if !errors.Is(err, mapper.ErrUnmarshal) {
		t.Errorf("ReadManifest(invalid) error = %v, want ErrUnmarshal", err)
	}
}

func TestExport_Indented(t *testing.T) {
	r := mapper.New()
	if err := mappertest.Configure(r); err != nil {
		t.Fatalf("Configure() error: %v", err)
	}

	data, err := Export(r)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	for _, want := range []string{
		`"identifier": "testing.Model||testing.View"`,
		`"destination": "FullName"`,
		`"kind": "custom"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Export() missing %s:\n%s", want, data)
		}
	}
}

func TestMarshal_Compact(t *testing.T) {
	data, err := New().Marshal(mapper.Rule{Source: "Value1", Destination: "Value1", Kind: mapper.RuleConvert})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"source":"Value1","destination":"Value1","kind":"convert"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
