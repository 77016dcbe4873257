package modules

import (
	"errors"
	"testing"
)

func TestNewRegistry(t *testing.T) {
	records := []Record{
		{Name: "CoreModule", Path: "src/app/core/core.module.ts", Kind: KindCore},
		{Name: "SharedModule", Path: "src/app/shared/shared.module.ts", Kind: KindShared},
		{Name: "UserModule", Path: "src/app/features/user/user.module.ts", Kind: KindFeature},
	}

	reg, err := NewRegistry(records)
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	if reg.Len() != 3 {
		t.Errorf("expected 3 records, got %d", reg.Len())
	}

	// Registration order must be preserved
	got := reg.Records()
	for i, rec := range records {
		if got[i].Name != rec.Name {
			t.Errorf("record %d: expected %s, got %s", i, rec.Name, got[i].Name)
		}
	}
}

func TestNewRegistry_DuplicateIdentity(t *testing.T) {
	records := []Record{
		{Name: "CoreModule", Path: "src/app/core/core.module.ts"},
		{Name: "CoreModule", Path: "src/other/core.module.ts"},
	}

	_, err := NewRegistry(records)
	if err == nil {
		t.Fatal("expected error for duplicate identity")
	}
	if !errors.Is(err, ErrDuplicateIdentity) {
		t.Errorf("expected ErrDuplicateIdentity, got %v", err)
	}
}

func TestNewRegistry_MalformedRecord(t *testing.T) {
	records := []Record{
		{Name: "", Path: "src/app/broken.module.ts"},
	}

	_, err := NewRegistry(records)
	if err == nil {
		t.Fatal("expected error for record without a name")
	}
	if !errors.Is(err, ErrMalformedRecord) {
		t.Errorf("expected ErrMalformedRecord, got %v", err)
	}
}

func TestNewRegistry_Empty(t *testing.T) {
	reg, err := NewRegistry(nil)
	if err != nil {
		t.Fatalf("NewRegistry failed on empty input: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("expected 0 records, got %d", reg.Len())
	}
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := NewRegistry([]Record{
		{Name: "SharedModule", Kind: KindShared},
	})
	if err != nil {
		t.Fatalf("NewRegistry failed: %v", err)
	}

	rec, ok := reg.Lookup("SharedModule")
	if !ok {
		t.Fatal("expected SharedModule to be found")
	}
	if rec.Kind != KindShared {
		t.Errorf("expected kind Shared, got %s", rec.Kind)
	}

	if _, ok := reg.Lookup("MissingModule"); ok {
		t.Error("expected MissingModule to be absent")
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in    string
		want  Kind
		valid bool
	}{
		{"Core", KindCore, true},
		{"Shared", KindShared, true},
		{"Feature", KindFeature, true},
		{"Unknown", KindUnknown, true},
		{"core", KindCore, true},
		{"FEATURE", KindFeature, true},
		{"", KindUnknown, false},
		{"Widget", KindUnknown, false},
	}

	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.valid {
			t.Errorf("ParseKind(%q) = (%s, %v), expected (%s, %v)", tt.in, got, ok, tt.want, tt.valid)
		}
	}
}
