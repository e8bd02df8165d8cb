package carte

// Notes:
// - buildProject is tested directly: the page layout it feeds is covered by
//   the pipeline package and by the end-to-end tests in assembler_test.go.

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dendoesit/carte/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestBuildProject - Record to page model
// ---------------------------------------------------------------------------

func TestBuildProject(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t, WithTitles("DOSAR", "TEHNIC"))
	rec := &ProjectRecord{
		Name:          "Bloc A",
		Description:   "Structura din **beton armat**",
		Beneficiary:   "Primaria Cluj",
		PermitDate:    "2023-06-01T09:00:00+03:00",
		ReceptionDate: "iunie 2024",
		Categories: Categories{
			Design: []ChecklistItem{
				{ID: "pte", Label: "Proiect tehnic", Included: true, Attachment: &Attachment{Path: "pte.pdf"}},
				{ID: "cu", Label: "Certificat de urbanism"},
			},
			Monitoring: []ChecklistItem{
				{ID: "jurnal", Label: "Jurnal de urmarire", Included: true},
			},
		},
	}

	p, err := a.buildProject(context.Background(), rec, "05.03.2024")
	if err != nil {
		t.Fatalf("buildProject() error = %v", err)
	}

	if p.Title != "DOSAR" || p.Subtitle != "TEHNIC" || p.Name != "Bloc A" || p.Date != "05.03.2024" {
		t.Errorf("title page = %q %q %q %q", p.Title, p.Subtitle, p.Name, p.Date)
	}
	if !p.Created.Equal(fixedNow) {
		t.Errorf("Created = %v, want %v", p.Created, fixedNow)
	}

	general := make(map[string]string)
	for _, f := range p.General {
		general[f.Label] = f.Value
	}
	wantGeneral := map[string]string{
		labelDescription:   "Structura din beton armat",
		labelBeneficiary:   "Primaria Cluj",
		labelPermitDate:    "2023-06-01",
		labelReceptionDate: "iunie 2024",
	}
	for label, want := range wantGeneral {
		if got := general[label]; got != want {
			t.Errorf("general[%q] = %q, want %q", label, got, want)
		}
	}
	for _, f := range p.General {
		if f.Value == rec.Name {
			t.Errorf("project name printed in general data under %q", f.Label)
		}
	}

	wantSections := [pipeline.NumCategories][]pipeline.Item{
		pipeline.Design: {
			{ID: "pte", Label: "Proiect tehnic", Attachment: rec.Categories.Design[0].Attachment.source()},
		},
		pipeline.Monitoring: {
			{ID: "jurnal", Label: "Jurnal de urmarire"},
		},
	}
	if diff := cmp.Diff(wantSections, p.Sections); diff != "" {
		t.Errorf("Sections mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildProject_TextFailure(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	a.text = failingText{}

	_, err := a.buildProject(context.Background(), &ProjectRecord{Description: "x"}, "")
	if !errors.Is(err, ErrStagingFailure) {
		t.Errorf("buildProject() error = %v, want ErrStagingFailure", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.buildProject(ctx, &ProjectRecord{Description: "x"}, "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("buildProject() error = %v, want context.Canceled", err)
	}
}

func TestTitleDetails(t *testing.T) {
	t.Parallel()

	got := titleDetails(&ProjectRecord{Beneficiary: "Primaria Cluj", Builder: "Constructii SRL"})
	want := []pipeline.Field{
		{Label: "Beneficiar:", Value: "Primaria Cluj"},
		{Label: "Proiectant:", Value: ""},
		{Label: "Constructor:", Value: "Constructii SRL"},
		{Label: "Adresa:", Value: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("titleDetails() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type failingText struct{}

func (failingText) ToText(ctx context.Context, markdown string) (string, error) {
	return "", errors.New("converter broken")
}
