package domain

// SectionKind selects how a section's text becomes blocks.
type SectionKind int

const (
	FreeText SectionKind = iota
	BulletList
	ScenarioTable
)

func (k SectionKind) String() string {
	switch k {
	case FreeText:
		return "free_text"
	case BulletList:
		return "bullet_list"
	case ScenarioTable:
		return "scenario_table"
	}
	return "unknown"
}

// Section is the static descriptor of a content slot.
type Section struct {
	Key   SectionKey
	Title string
	Kind  SectionKind
}

// Sections lists the content slots in document order.
var Sections = []Section{
	{Key: KeyExecSummary, Title: "Executive Summary", Kind: FreeText},
	{Key: KeyOpportunities, Title: "Strategic Opportunities", Kind: BulletList},
	{Key: KeyRisks, Title: "Risk Assessment", Kind: BulletList},
	{Key: KeyScenarios, Title: "Scenario Analysis", Kind: ScenarioTable},
	{Key: KeyReflection, Title: "Professional Insights", Kind: FreeText},
	{Key: KeyLogoText, Title: "Design Case Study", Kind: FreeText},
}

// LookupSection finds the descriptor of key.
func LookupSection(key SectionKey) (Section, bool) {
	for _, s := range Sections {
		if s.Key == key {
			return s, true
		}
	}
	return Section{}, false
}
