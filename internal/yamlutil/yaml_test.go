package yamlutil_test

// Notes:
// - Marshal error branch: not tested because yaml.Marshal only fails with
//   unmarshalable types (channels, functions), which are not realistic here.
// - JSON input is covered once: records are often exported as JSON.

import (
	"errors"
	"strings"
	"testing"

	"github.com/dendoesit/carte/internal/yamlutil"
)

type testItem struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	Included bool   `yaml:"included"`
}

type testRecord struct {
	Name  string     `yaml:"name"`
	Items []testItem `yaml:"items"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML and JSON into Go structs
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		want    *testRecord
	}{
		{
			name: "valid YAML",
			data: []byte("name: Bloc A\nitems:\n  - id: pv\n    label: Proces verbal\n    included: true\n"),
			dest: &testRecord{},
			want: &testRecord{Name: "Bloc A", Items: []testItem{{ID: "pv", Label: "Proces verbal", Included: true}}},
		},
		{
			name: "JSON input",
			data: []byte(`{"name": "Bloc A", "items": [{"id": "pv", "label": "Proces verbal", "included": false}]}`),
			dest: &testRecord{},
			want: &testRecord{Name: "Bloc A", Items: []testItem{{ID: "pv", Label: "Proces verbal"}}},
		},
		{
			name: "unknown fields are ignored",
			data: []byte("name: Bloc A\nextra: true\n"),
			dest: &testRecord{},
			want: &testRecord{Name: "Bloc A"},
		},
		{
			name: "diacritics survive decoding",
			data: []byte("name: Locuință Ștefănești\n"),
			dest: &testRecord{},
			want: &testRecord{Name: "Locuință Ștefănești"},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testRecord{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("name: [unclosed"),
			dest:    &testRecord{},
			wantErr: errors.New("yamlutil:"), // partial match
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				assertErr(t, err, tt.wantErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := tt.dest.(*testRecord)
			if got.Name != tt.want.Name || len(got.Items) != len(tt.want.Items) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got.Items {
				if got.Items[i] != tt.want.Items[i] {
					t.Errorf("Items[%d] = %+v, want %+v", i, got.Items[i], tt.want.Items[i])
				}
			}
		})
	}
}

func assertErr(t *testing.T, err, want error) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}
	if errors.Is(err, want) {
		return
	}
	if !strings.Contains(err.Error(), want.Error()) {
		t.Fatalf("error = %q, want containing %q", err, want)
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("known fields only", func(t *testing.T) {
		t.Parallel()

		var rec testRecord
		if err := yamlutil.UnmarshalStrict([]byte("name: Hala\n"), &rec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Name != "Hala" {
			t.Errorf("Name = %q, want %q", rec.Name, "Hala")
		}
	})

	t.Run("unknown field causes error", func(t *testing.T) {
		t.Parallel()

		var rec testRecord
		err := yamlutil.UnmarshalStrict([]byte("name: Hala\nnmae: typo\n"), &rec)
		assertErr(t, err, errors.New("yamlutil:"))
	})

	t.Run("nested unknown field causes error", func(t *testing.T) {
		t.Parallel()

		var rec testRecord
		err := yamlutil.UnmarshalStrict([]byte("items:\n  - id: a\n    lable: typo\n"), &rec)
		assertErr(t, err, errors.New("yamlutil:"))
	})
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes Go structs to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(&testRecord{
		Name:  "Bloc A",
		Items: []testItem{{ID: "pv", Label: "Proces verbal", Included: true}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s := string(data)
	for _, want := range []string{"name: Bloc A", "  - id: pv", "included: true"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q, got:\n%s", want, s)
		}
	}

	var back testRecord
	if err := yamlutil.UnmarshalStrict(data, &back); err != nil {
		t.Fatalf("output does not decode strictly: %v", err)
	}
	if back.Name != "Bloc A" || len(back.Items) != 1 {
		t.Errorf("decoded = %+v", back)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Verifies size limits
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	t.Parallel()

	padded := func(n int) []byte {
		data := []byte(strings.Repeat(" ", n))
		copy(data, "name: x")
		return data
	}

	tests := []struct {
		name    string
		data    []byte
		opts    []yamlutil.Option
		strict  bool
		wantErr bool
	}{
		{name: "at custom limit", data: padded(100), opts: []yamlutil.Option{yamlutil.WithMaxSize(100)}},
		{name: "over custom limit", data: padded(101), opts: []yamlutil.Option{yamlutil.WithMaxSize(100)}, wantErr: true},
		{name: "strict over custom limit", data: padded(101), opts: []yamlutil.Option{yamlutil.WithMaxSize(100)}, strict: true, wantErr: true},
		{name: "over default limit", data: padded(yamlutil.DefaultMaxSize + 1), wantErr: true},
		{name: "raised limit", data: padded(yamlutil.DefaultMaxSize + 1), opts: []yamlutil.Option{yamlutil.WithMaxSize(2 * yamlutil.DefaultMaxSize)}},
		{name: "non-positive limit keeps default", data: padded(200), opts: []yamlutil.Option{yamlutil.WithMaxSize(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var rec testRecord
			var err error
			if tt.strict {
				err = yamlutil.UnmarshalStrict(tt.data, &rec, tt.opts...)
			} else {
				err = yamlutil.Unmarshal(tt.data, &rec, tt.opts...)
			}

			if tt.wantErr {
				if !errors.Is(err, yamlutil.ErrInputTooLarge) {
					t.Errorf("error = %v, want ErrInputTooLarge", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
