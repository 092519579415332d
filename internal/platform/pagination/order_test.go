package pagination

import "testing"

func TestParseOrderBy(t *testing.T) {
	t.Parallel()

	cfg := OrderByConfig{Default: "id", Allowed: []string{"id", "name"}}
	tests := []struct {
		name    string
		raw     string
		want    Order
		wantErr bool
	}{
		{name: "default", raw: "", want: Order{Path: "id"}},
		{name: "ascending", raw: "name", want: Order{Path: "name"}},
		{name: "descending", raw: "name desc", want: Order{Path: "name", Desc: true}},
		{name: "surrounding space", raw: "  id desc ", want: Order{Path: "id", Desc: true}},
		{name: "unknown field", raw: "height", wantErr: true},
		{name: "multiple fields", raw: "id, name desc", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOrderBy(tc.raw, cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %+v", tc.raw, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOrderBy(%q): %v", tc.raw, err)
			}
			if got != tc.want {
				t.Fatalf("ParseOrderBy(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseOrderByRequiresValueOrDefault(t *testing.T) {
	t.Parallel()

	if _, err := ParseOrderBy("", OrderByConfig{}); err == nil {
		t.Fatal("expected error without default")
	}
}

func TestNormalizeOrderBy(t *testing.T) {
	t.Parallel()

	cfg := OrderByConfig{Default: "id", Allowed: []string{"id", "name"}}
	got, err := NormalizeOrderBy("name desc", cfg)
	if err != nil {
		t.Fatalf("NormalizeOrderBy: %v", err)
	}
	if got != "name desc" {
		t.Fatalf("NormalizeOrderBy = %q, want %q", got, "name desc")
	}
	got, err = NormalizeOrderBy("", cfg)
	if err != nil {
		t.Fatalf("NormalizeOrderBy default: %v", err)
	}
	if got != "id" {
		t.Fatalf("NormalizeOrderBy default = %q, want %q", got, "id")
	}
}
