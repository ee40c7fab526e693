package grading

// Department names a school section.
type Department string

const (
	DepartmentDaycare      Department = "Daycare"
	DepartmentNursery      Department = "Nursery"
	DepartmentKindergarten Department = "Kindergarten"
	DepartmentLowerBasic   Department = "Lower Basic School"
	DepartmentUpperBasic   Department = "Upper Basic School"
	DepartmentJuniorHigh   Department = "Junior High School"
)

// Departments lists every school section in ascending order.
var Departments = []Department{
	DepartmentDaycare,
	DepartmentNursery,
	DepartmentKindergarten,
	DepartmentLowerBasic,
	DepartmentUpperBasic,
	DepartmentJuniorHigh,
}

// Valid reports whether d is one of Departments.
func (d Department) Valid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// EarlyChildhood reports whether the department uses the daycare indicator scheme instead
// of norm-referenced grading.
func (d Department) EarlyChildhood() bool {
	return d == DepartmentDaycare || d == DepartmentNursery || d == DepartmentKindergarten
}

// JHSSubjects is the Junior High School subject list.
var JHSSubjects = []string{
	"English Language",
	"Mathematics",
	"Science",
	"Social Studies",
	"Career Technology",
	"Creative Arts and Designing",
	"Ghana Language (Twi)",
	"Religious and Moral Education",
	"Computing",
	"French",
}

// BasicSubjects is the Lower and Upper Basic School subject list.
var BasicSubjects = []string{
	"English Language",
	"Mathematics",
	"Science",
	"History",
	"Physical Education",
	"Creativity",
	"Ghana Language (Twi)",
	"Religious and Moral Education",
	"I.C.T",
	"French",
}

// coreSubjects are counted in the best-four core pool. All other subjects are electives.
var coreSubjects = map[string]struct{}{
	"Mathematics":      {},
	"English Language": {},
	"Social Studies":   {},
	"Science":          {},
	"History":          {},
}

// IsCore reports whether subject belongs to the fixed core set.
func IsCore(subject string) bool {
	_, ok := coreSubjects[subject]
	return ok
}

// SubjectsForDepartment returns a copy of the department's subject list. Unknown
// departments fall back to the Junior High list.
func SubjectsForDepartment(d Department) []string {
	var list []string
	switch d {
	case DepartmentLowerBasic, DepartmentUpperBasic:
		list = BasicSubjects
	default:
		list = JHSSubjects
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// SubjectList is the department list followed by any custom subjects it does not
// already contain, in the order given.
func SubjectList(d Department, custom []string) []string {
	list := SubjectsForDepartment(d)
	seen := make(map[string]struct{}, len(list)+len(custom))
	for _, s := range list {
		seen[s] = struct{}{}
	}
	for _, s := range custom {
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		list = append(list, s)
	}
	return list
}

// DefaultFacilitators is the legacy subject to facilitator mapping used before a staff
// roster is configured.
var DefaultFacilitators = map[string]string{
	"Science":                       "SIR JOSHUA",
	"Computing":                     "SIR ISAAC",
	"I.C.T":                         "SIR ISAAC",
	"Mathematics":                   "SIR SAMMY",
	"Religious and Moral Education": "MADAM JANE",
	"Creative Arts and Designing":   "MADAM NORTEY",
	"Creative Arts":                 "MADAM NORTEY",
	"Creativity":                    "MADAM NORTEY",
	"French":                        "SIR CHARLES",
	"Social Studies":                "SIR ASHMIE",
	"History":                       "SIR ASHMIE",
	"English Language":              "MADAM NANCY",
	"Ghana Language (Twi)":          "MADAM RITA",
	"Career Technology":             "SIR JOSHUA",
	"Physical Education":            "SIR JOSHUA",
}
