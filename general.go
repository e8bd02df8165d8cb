package carte

import (
	"context"
	"fmt"

	"github.com/dendoesit/carte/internal/dateutil"
	"github.com/dendoesit/carte/internal/pipeline"
)

// Labels of the general-data rows, in print order.
const (
	labelConstruction       = "Denumire construcție"
	labelDescription        = "Descriere"
	labelAddress            = "Adresa"
	labelBeneficiary        = "Beneficiar"
	labelBeneficiaryAddress = "Adresa beneficiar"
	labelCounty             = "Județ"
	labelDesigner           = "Proiectant"
	labelBuilder            = "Constructor"
	labelPermitNumber       = "Autorizație de construire nr."
	labelPermitDate         = "Data autorizației"
	labelExecutionTerm      = "Termen de execuție"
	labelISCNotice          = "Anunț ISC nr."
	labelISCNoticeDate      = "Data anunț ISC"
	labelReceptionDate      = "Data recepției"
	labelSiteAddress        = "Adresa șantier"
)

// generalFields returns the general-data rows. description is the already
// flattened Markdown. The project name is printed on the title page only.
func generalFields(r *ProjectRecord, description string) []pipeline.Field {
	return []pipeline.Field{
		{Label: labelConstruction, Value: r.ConstructionName},
		{Label: labelDescription, Value: description},
		{Label: labelAddress, Value: r.Address},
		{Label: labelBeneficiary, Value: r.Beneficiary},
		{Label: labelBeneficiaryAddress, Value: r.BeneficiaryAddress},
		{Label: labelCounty, Value: r.County},
		{Label: labelDesigner, Value: r.Designer},
		{Label: labelBuilder, Value: r.Builder},
		{Label: labelPermitNumber, Value: r.PermitNumber},
		{Label: labelPermitDate, Value: dateutil.Display(r.PermitDate)},
		{Label: labelExecutionTerm, Value: r.ExecutionTerm},
		{Label: labelISCNotice, Value: r.ISCNoticeNumber},
		{Label: labelISCNoticeDate, Value: dateutil.Display(r.ISCNoticeDate)},
		{Label: labelReceptionDate, Value: dateutil.Display(r.ReceptionDate)},
		{Label: labelSiteAddress, Value: r.SiteAddress},
	}
}

// titleDetails returns the block printed under the project name.
func titleDetails(r *ProjectRecord) []pipeline.Field {
	return []pipeline.Field{
		{Label: labelBeneficiary + ":", Value: r.Beneficiary},
		{Label: labelDesigner + ":", Value: r.Designer},
		{Label: labelBuilder + ":", Value: r.Builder},
		{Label: labelAddress + ":", Value: r.Address},
	}
}

// buildProject converts a validated record into what the stager draws.
// Excluded items are dropped here.
func (a *Assembler) buildProject(ctx context.Context, r *ProjectRecord, date string) (*pipeline.Project, error) {
	description, err := a.text.ToText(ctx, r.Description)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: description: %v", ErrStagingFailure, err)
	}

	p := &pipeline.Project{
		Title:    a.cfg.title,
		Subtitle: a.cfg.subtitle,
		Name:     r.Name,
		Date:     date,
		Created:  a.cfg.clock(),
		Details:  titleDetails(r),
		General:  generalFields(r, description),
	}
	for i, cat := range pipeline.Categories {
		for _, item := range r.Categories.Items(CategoryKeys[i]) {
			if !item.Included {
				continue
			}
			p.Sections[cat] = append(p.Sections[cat], pipeline.Item{
				ID:         item.ID,
				Label:      item.Label,
				Attachment: item.Attachment.source(),
			})
		}
	}
	return p, nil
}
