// Package report folds page-level verdicts into a deterministic compliance report.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/Treedy2020/FinalCheck/internal/domain"
)

// Aggregate combines per-page verdicts into one report. The result depends
// only on the inputs, never on the order verdicts arrived in: sections follow
// the order of standards, and page verdicts within a section are sorted by
// page number.
//
// Verdict folding: a standard is non-compliant if any page is non-compliant,
// inconclusive if any page is inconclusive (and none non-compliant), and
// compliant only when every page is compliant. The overall verdict folds the
// per-standard verdicts the same way.
func Aggregate(documentName string, pageCount int, standards []domain.Standard, verdicts []domain.PageVerdict) domain.ComplianceReport {
	byStandard := make(map[string][]domain.PageVerdict, len(standards))
	for _, v := range verdicts {
		byStandard[v.StandardID] = append(byStandard[v.StandardID], v)
	}

	rep := domain.ComplianceReport{
		DocumentName: documentName,
		PageCount:    pageCount,
		Overall:      domain.VerdictCompliant,
		Standards:    make([]domain.StandardReport, 0, len(standards)),
		GeneratedAt:  time.Now().UTC(),
	}

	for _, std := range standards {
		section := buildSection(std, byStandard[std.ID], pageCount)
		rep.Overall = worse(rep.Overall, section.Verdict)
		rep.Standards = append(rep.Standards, section)
	}

	rep.CompliantPages, rep.NonCompliantPages, rep.InconclusivePages = pageCounts(pageCount, verdicts)

	if len(standards) == 0 {
		rep.Overall = domain.VerdictInconclusive
	}
	return rep
}

func buildSection(std domain.Standard, verdicts []domain.PageVerdict, pageCount int) domain.StandardReport {
	section := domain.StandardReport{
		StandardID:   std.ID,
		Title:        std.Title,
		Verdict:      domain.VerdictCompliant,
		PageVerdicts: make([]domain.PageVerdict, len(verdicts)),
	}

	copy(section.PageVerdicts, verdicts)
	sort.Slice(section.PageVerdicts, func(i, j int) bool {
		return section.PageVerdicts[i].PageNumber < section.PageVerdicts[j].PageNumber
	})

	for _, v := range section.PageVerdicts {
		switch v.Verdict {
		case domain.VerdictCompliant:
			section.CompliantPages = append(section.CompliantPages, v.PageNumber)
		case domain.VerdictNonCompliant:
			section.NonCompliantPages = append(section.NonCompliantPages, v.PageNumber)
		default:
			section.InconclusivePages = append(section.InconclusivePages, v.PageNumber)
		}
		section.Verdict = worse(section.Verdict, v.Verdict)
	}

	if len(section.PageVerdicts) == 0 {
		section.Verdict = domain.VerdictInconclusive
		section.Note = "no pages were evaluated against this standard"
		return section
	}
	if len(section.PageVerdicts) < pageCount {
		section.Verdict = worse(section.Verdict, domain.VerdictInconclusive)
		section.Note = fmt.Sprintf("only %d of %d pages were evaluated", len(section.PageVerdicts), pageCount)
	}
	return section
}

// pageCounts classifies each page by its worst verdict across all standards.
func pageCounts(pageCount int, verdicts []domain.PageVerdict) (compliant, nonCompliant, inconclusive int) {
	worst := make(map[int]domain.Verdict, pageCount)
	for _, v := range verdicts {
		current, ok := worst[v.PageNumber]
		if !ok {
			current = domain.VerdictCompliant
		}
		worst[v.PageNumber] = worse(current, v.Verdict)
	}

	for page := 1; page <= pageCount; page++ {
		switch worst[page] {
		case domain.VerdictCompliant:
			compliant++
		case domain.VerdictNonCompliant:
			nonCompliant++
		default:
			inconclusive++
		}
	}
	return compliant, nonCompliant, inconclusive
}

// worse returns the more severe of two verdicts. Non-compliance dominates,
// then inconclusive, then compliant.
func worse(a, b domain.Verdict) domain.Verdict {
	if a == domain.VerdictNonCompliant || b == domain.VerdictNonCompliant {
		return domain.VerdictNonCompliant
	}
	if a == domain.VerdictInconclusive || b == domain.VerdictInconclusive {
		return domain.VerdictInconclusive
	}
	return domain.VerdictCompliant
}
