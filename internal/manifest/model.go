package manifest

// Manifest is the parsed view of a package.json document. Only the fields the
// release flow reads are decoded; the raw document remains the source of truth
// for everything else.
type Manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	PublishConfig        PublishConfig     `json:"publishConfig"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
}

// PublishConfig mirrors the publishConfig block of a package.json.
type PublishConfig struct {
	Access   string `json:"access"`
	Registry string `json:"registry"`
}

// DependencyGroups lists the package.json dependency maps that may reference
// sibling workspaces, in the order they are rewritten during a bump.
var DependencyGroups = []string{
	"dependencies",
	"devDependencies",
	"optionalDependencies",
	"peerDependencies",
}

// DependenciesFor returns the dependency map for the given group, or nil if
// the manifest does not declare that group.
func (m *Manifest) DependenciesFor(group string) map[string]string {
	switch group {
	case "dependencies":
		return m.Dependencies
	case "devDependencies":
		return m.DevDependencies
	case "optionalDependencies":
		return m.OptionalDependencies
	case "peerDependencies":
		return m.PeerDependencies
	}
	return nil
}
