package usecase

import (
	"context"
	"fmt"
	"strings"

	"org-assistant/internal/core/domain"
	"org-assistant/internal/core/ports"
)

const adminContactSuffix = "If the problem persists, please contact an administrator."

// Resolver answers structured personnel queries by exact filtering over the
// roster. It never calls the completion service.
type Resolver struct {
	records ports.RecordSource
	vocab   Vocabulary
}

func NewResolver(records ports.RecordSource, vocab Vocabulary) *Resolver {
	return &Resolver{records: records, vocab: vocab}
}

// Resolve returns (payload, true) when the structured path produced a final
// answer, and (nil, false) when no department matched so the caller should
// fall back to semantic retrieval. Filter disagreement is a routing signal,
// not an error.
func (r *Resolver) Resolve(ctx context.Context, question, department, role string) (*domain.AnswerPayload, bool) {
	if department == "" {
		return nil, false
	}

	records, err := r.records.Records(ctx)
	if err != nil {
		if domain.IsKind(err, domain.ErrDataSourceMissing) {
			return structuredPayload("The employee roster file could not be found. " + adminContactSuffix), true
		}
		return structuredPayload(fmt.Sprintf("Employee search failed: %v. %s", err, adminContactSuffix)), true
	}

	deptRows := filterByDepartment(records, department)
	// Row count is checked before any role filtering so an empty department
	// is reported as such instead of triggering the role fallback.
	if len(deptRows) == 0 {
		return structuredPayload(fmt.Sprintf("No employees found in %s.", department)), true
	}

	rows := deptRows
	roleNotice := ""
	if role != "" {
		roleRows := r.filterByRole(deptRows, role)
		if len(roleRows) == 0 {
			roleNotice = fmt.Sprintf(
				"Note: no %s was found in %s, so the full department roster is shown instead.",
				role, department,
			)
		} else {
			rows = roleRows
		}
	}

	var b strings.Builder
	b.WriteString(countHeader(len(rows)))
	b.WriteString("\n\n")
	b.WriteString(renderTable(rows))
	if roleNotice != "" {
		b.WriteString("\n\n")
		b.WriteString(roleNotice)
	}
	if wantsSkillDetails(question) {
		b.WriteString("\n\n")
		b.WriteString(renderSkillDetails(rows))
	}

	return structuredPayload(b.String()), true
}

func structuredPayload(text string) *domain.AnswerPayload {
	return &domain.AnswerPayload{
		Text:      text,
		Citations: []domain.Citation{},
		Mode:      domain.ModeStructured,
	}
}

func filterByDepartment(records []domain.Record, department string) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if rec.Department == department {
			out = append(out, rec)
		}
	}
	return out
}

// filterByRole treats the staff role as the complement of the management
// tier rather than a literal role value.
func (r *Resolver) filterByRole(records []domain.Record, role string) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	if role == r.vocab.StaffRole {
		management := make(map[string]struct{}, len(r.vocab.ManagementTier))
		for _, tier := range r.vocab.ManagementTier {
			management[tier] = struct{}{}
		}
		for _, rec := range records {
			if _, ok := management[rec.Role]; !ok {
				out = append(out, rec)
			}
		}
		return out
	}
	for _, rec := range records {
		if rec.Role == role {
			out = append(out, rec)
		}
	}
	return out
}

func countHeader(n int) string {
	if n == 1 {
		return "1 employee found"
	}
	return fmt.Sprintf("%d employees found", n)
}

func renderTable(rows []domain.Record) string {
	var b strings.Builder
	b.WriteString("| ID | Name | Gender | Age | Employment Type | Department | Role | Hire Date |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, rec := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %s | %s |\n",
			rec.ID, rec.FullName, rec.Gender, rec.Age,
			rec.EmploymentType, rec.Department, rec.Role, rec.HireDate,
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func wantsSkillDetails(question string) bool {
	lower := strings.ToLower(question)
	for _, keyword := range []string{"skill", "qualification", "certification"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func renderSkillDetails(rows []domain.Record) string {
	var b strings.Builder
	b.WriteString("Skills and qualifications:\n")
	for _, rec := range rows {
		fmt.Fprintf(&b, "\n%s\n- Skills: %s\n- Qualifications: %s\n",
			rec.FullName, orNone(rec.Skills), orNone(rec.Qualifications))
	}
	return strings.TrimRight(b.String(), "\n")
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "none listed"
	}
	return v
}
