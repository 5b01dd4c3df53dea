package signals

// Archetype is a coarse project category
type Archetype string

const (
	Python  Archetype = "Python"
	Node    Archetype = "Node.js"
	Web     Archetype = "Web"
	CLI     Archetype = "CLI"
	Library Archetype = "Library"
	Unknown Archetype = "Unknown"
)

// archetypeOrder is also the headline priority
var archetypeOrder = []struct {
	flag Flag
	kind Archetype
}{
	{IsPythonProject, Python},
	{IsNodeProject, Node},
	{IsWebProject, Web},
	{IsCLIProject, CLI},
	{IsLibrary, Library},
}

// Archetypes returns every archetype whose flag is set, in priority order
func (fs Features) Archetypes() []Archetype {
	var out []Archetype
	for _, a := range archetypeOrder {
		if fs.Has(a.flag) {
			out = append(out, a.kind)
		}
	}
	return out
}

// Headline picks the single highest-priority archetype, or Unknown
func (fs Features) Headline() Archetype {
	if all := fs.Archetypes(); len(all) > 0 {
		return all[0]
	}
	return Unknown
}

// PackageManager names the install tool implied by the manifests present
func (fs Features) PackageManager() string {
	switch {
	case fs.Has(HasPackageJSON):
		return "npm/yarn"
	case fs.Has(HasRequirements):
		return "pip"
	default:
		return "None"
	}
}
