package carte

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestDefaultChecklists - Built-in templates
// ---------------------------------------------------------------------------

func TestDefaultChecklists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		template string
		want     map[CategoryKey]int
	}{
		{template: "", want: map[CategoryKey]int{CategoryDesign: 12, CategoryExecution: 13, CategoryReception: 9, CategoryMonitoring: 13}},
		{template: "standard", want: map[CategoryKey]int{CategoryDesign: 12, CategoryExecution: 13, CategoryReception: 9, CategoryMonitoring: 13}},
		{template: "minimal", want: map[CategoryKey]int{CategoryDesign: 3, CategoryExecution: 2, CategoryReception: 2, CategoryMonitoring: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			t.Parallel()

			rec, err := DefaultChecklists(tt.template)
			if err != nil {
				t.Fatalf("DefaultChecklists(%q) error = %v", tt.template, err)
			}
			got := make(map[CategoryKey]int)
			for _, key := range CategoryKeys {
				items := rec.Categories.Items(key)
				got[key] = len(items)
				for _, item := range items {
					if item.Included || item.Attachment != nil {
						t.Errorf("%s/%s starts included or attached", key, item.ID)
					}
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("item counts mismatch (-want +got):\n%s", diff)
			}
			if err := rec.Validate(); err != nil {
				t.Errorf("skeleton does not validate: %v", err)
			}
		})
	}
}

func TestDefaultChecklists_Unknown(t *testing.T) {
	t.Parallel()

	if _, err := DefaultChecklists("hala"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("DefaultChecklists(hala) error = %v, want ErrTemplateNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestChecklistsFrom - Custom template directories
// ---------------------------------------------------------------------------

func TestChecklistsFrom(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o750); err != nil {
		t.Fatal(err)
	}
	custom := `name: hala
design:
  - id: pth
    label: Proiect tehnic hala
execution: []
reception:
  - id: pvr
    label: Proces verbal de receptie
monitoring: []
`
	if err := os.WriteFile(filepath.Join(dir, "templates", "hala.yaml"), []byte(custom), 0o600); err != nil {
		t.Fatal(err)
	}

	rec, err := ChecklistsFrom(dir, "hala")
	if err != nil {
		t.Fatalf("ChecklistsFrom() error = %v", err)
	}
	want := Categories{
		Design:     []ChecklistItem{{ID: "pth", Label: "Proiect tehnic hala"}},
		Execution:  []ChecklistItem{},
		Reception:  []ChecklistItem{{ID: "pvr", Label: "Proces verbal de receptie"}},
		Monitoring: []ChecklistItem{},
	}
	if diff := cmp.Diff(want, rec.Categories); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}

	// Built-in templates stay reachable.
	if _, err := ChecklistsFrom(dir, "minimal"); err != nil {
		t.Errorf("ChecklistsFrom(minimal) error = %v", err)
	}

	names, err := Templates(dir)
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	if diff := cmp.Diff([]string{"hala", "minimal", "standard"}, names); diff != "" {
		t.Errorf("Templates() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewItem(t *testing.T) {
	t.Parallel()

	want := ChecklistItem{ID: "custom-1", Label: NewItemLabel, Included: true}
	if diff := cmp.Diff(want, NewItem("custom-1")); diff != "" {
		t.Errorf("NewItem() mismatch (-want +got):\n%s", diff)
	}
}
