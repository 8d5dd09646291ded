package models

// DefaultFiscalYear is applied wherever a project predates the fiscal-year
// field. All call sites go through FiscalYearOrDefault rather than repeating
// the literal.
const DefaultFiscalYear = "2569"

// Project is a tracked initiative scoped to one owning unit and one fiscal
// year, optionally grouped. DeletedAt (epoch millis) set means the project
// sits in the trash awaiting restore or the retention sweep.
type Project struct {
	ID         string  `json:"id" db:"id"`
	UnitID     string  `json:"unitId" db:"unit_id"`
	Name       string  `json:"name" db:"name"`
	FiscalYear string  `json:"fiscalYear" db:"fiscal_year"`
	GroupID    *string `json:"groupId,omitempty" db:"group_id"`
	DeletedAt  *int64  `json:"deletedAt,omitempty" db:"deleted_at"`
}

// FiscalYearOrDefault returns the project's fiscal year, falling back to
// DefaultFiscalYear for legacy records without one.
func (p Project) FiscalYearOrDefault() string {
	if p.FiscalYear == "" {
		return DefaultFiscalYear
	}
	return p.FiscalYear
}

// Active reports whether the project is not soft-deleted.
func (p Project) Active() bool {
	return p.DeletedAt == nil
}
