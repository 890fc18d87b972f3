package mcstatus

// UnknownVersion is reported for plugins that do not expose a version.
const UnknownVersion = "Unknown"

// NameVersion is one entry of a VersionMap.
type NameVersion struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// VersionMap maps mod or plugin names to versions in the order the server
// reported them. A repeated name keeps its first position and takes the
// latest version.
type VersionMap []NameVersion

// Get returns the version recorded for name.
func (m VersionMap) Get(name string) (string, bool) {
	for _, nv := range m {
		if nv.Name == name {
			return nv.Version, true
		}
	}
	return "", false
}

// Names returns the names in order.
func (m VersionMap) Names() []string {
	names := make([]string, 0, len(m))
	for _, nv := range m {
		names = append(names, nv.Name)
	}
	return names
}

// Map returns an unordered copy.
func (m VersionMap) Map() map[string]string {
	out := make(map[string]string, len(m))
	for _, nv := range m {
		out[nv.Name] = nv.Version
	}
	return out
}

type versionMapBuilder struct {
	m     VersionMap
	index map[string]int
}

func newVersionMapBuilder(size int) *versionMapBuilder {
	return &versionMapBuilder{
		m:     make(VersionMap, 0, size),
		index: make(map[string]int, size),
	}
}

func (b *versionMapBuilder) put(name, version string) {
	if i, ok := b.index[name]; ok {
		b.m[i].Version = version
		return
	}
	b.index[name] = len(b.m)
	b.m = append(b.m, NameVersion{Name: name, Version: version})
}
