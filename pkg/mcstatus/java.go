package mcstatus

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// javaDocument keeps online-only fields raw so that an offline document is
// never rejected for their shape.
type javaDocument struct {
	statusFields
	SRVRecord *SRVRecord      `json:"srv_record"`
	Version   json.RawMessage `json:"version"`
	Players   json.RawMessage `json:"players"`
	MOTD      json.RawMessage `json:"motd"`
	Icon      json.RawMessage `json:"icon"`
	Mods      json.RawMessage `json:"mods"`
	Software  json.RawMessage `json:"software"`
	Plugins   json.RawMessage `json:"plugins"`
}

type javaVersion struct {
	NameRaw   *string `json:"name_raw"`
	NameClean *string `json:"name_clean"`
	NameHTML  *string `json:"name_html"`
	Protocol  *int    `json:"protocol"`
}

type javaPlayers struct {
	Online *int          `json:"online"`
	Max    *int          `json:"max"`
	List   []playerEntry `json:"list"`
}

type playerEntry struct {
	UUID      *string `json:"uuid"`
	NameRaw   *string `json:"name_raw"`
	NameClean *string `json:"name_clean"`
}

type modEntry struct {
	Name    *string `json:"name"`
	Version *string `json:"version"`
}

type pluginEntry struct {
	Name    *string `json:"name"`
	Version *string `json:"version"`
}

// SRVRecord is the DNS SRV record the API followed to reach the server.
type SRVRecord struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Player is one entry of the online player sample. ID is uuid.Nil when the
// API did not report a parseable UUID.
type Player struct {
	ID        uuid.UUID `json:"id"`
	NameRaw   string    `json:"name_raw"`
	NameClean string    `json:"name_clean"`
}

// Mod is a Forge/Fabric mod reported by the server.
type Mod struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Plugin is a server plugin reported through the query protocol. Version is
// nil when the server did not report one.
type Plugin struct {
	Name    string  `json:"name"`
	Version *string `json:"version,omitempty"`
}

// JavaStatus is the parsed status of a Java edition server. It is immutable
// and safe for concurrent reads.
type JavaStatus struct {
	common
	doc javaDocument
}

// ParseJavaStatus parses a Java status document as returned by the API.
func ParseJavaStatus(body []byte) (*JavaStatus, error) {
	s := &JavaStatus{}
	if err := decodeDocument(body, &s.doc, &s.doc.statusFields); err != nil {
		return nil, err
	}
	s.common = common{f: &s.doc.statusFields}
	return s, nil
}

// SRVRecord returns the followed SRV record, or nil.
func (s *JavaStatus) SRVRecord() *SRVRecord {
	if s.doc.SRVRecord == nil {
		return nil
	}
	rec := *s.doc.SRVRecord
	return &rec
}

func (s *JavaStatus) version() (*javaVersion, error) {
	var v *javaVersion
	if err := decodeField(s.doc.Version, "version", &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, missing("version")
	}
	return v, nil
}

func (s *JavaStatus) versionName(field string, pick func(*javaVersion) *string) (*string, error) {
	if !s.IsOnline() {
		return nil, nil
	}
	v, err := s.version()
	if err != nil {
		return nil, err
	}
	name := pick(v)
	if name == nil {
		return nil, missing("version." + field)
	}
	return copyString(name), nil
}

// VersionNameRaw returns the version name with formatting codes, or nil when offline.
func (s *JavaStatus) VersionNameRaw() (*string, error) {
	return s.versionName("name_raw", func(v *javaVersion) *string { return v.NameRaw })
}

func (s *JavaStatus) VersionNameClean() (*string, error) {
	return s.versionName("name_clean", func(v *javaVersion) *string { return v.NameClean })
}

func (s *JavaStatus) VersionNameHTML() (*string, error) {
	return s.versionName("name_html", func(v *javaVersion) *string { return v.NameHTML })
}

// VersionProtocol returns the protocol version, or -1 when offline.
func (s *JavaStatus) VersionProtocol() (int, error) {
	if !s.IsOnline() {
		return -1, nil
	}
	v, err := s.version()
	if err != nil {
		return -1, err
	}
	if v.Protocol == nil {
		return -1, missing("version.protocol")
	}
	return *v.Protocol, nil
}

func (s *JavaStatus) players() (*javaPlayers, error) {
	var p *javaPlayers
	if err := decodeField(s.doc.Players, "players", &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, missing("players")
	}
	return p, nil
}

// PlayersOnline returns the number of connected players, or 0 when offline.
func (s *JavaStatus) PlayersOnline() (int, error) {
	if !s.IsOnline() {
		return 0, nil
	}
	p, err := s.players()
	if err != nil {
		return 0, err
	}
	if p.Online == nil {
		return 0, missing("players.online")
	}
	return *p.Online, nil
}

// MaxPlayers returns the player limit, or 0 when offline.
func (s *JavaStatus) MaxPlayers() (int, error) {
	if !s.IsOnline() {
		return 0, nil
	}
	p, err := s.players()
	if err != nil {
		return 0, err
	}
	if p.Max == nil {
		return 0, missing("players.max")
	}
	return *p.Max, nil
}

// PlayerList returns the player sample, or nil when offline or when the
// server does not publish one.
func (s *JavaStatus) PlayerList() ([]Player, error) {
	if !s.IsOnline() {
		return nil, nil
	}
	p, err := s.players()
	if err != nil {
		return nil, err
	}
	if p.List == nil {
		return nil, nil
	}

	list := make([]Player, 0, len(p.List))
	for _, e := range p.List {
		player := Player{}
		if e.NameRaw != nil {
			player.NameRaw = *e.NameRaw
		}
		if e.NameClean != nil {
			player.NameClean = *e.NameClean
		}
		if e.UUID != nil {
			if id, err := uuid.Parse(*e.UUID); err == nil {
				player.ID = id
			}
		}
		list = append(list, player)
	}
	return list, nil
}

// PlayerNames returns the clean names of the player sample.
func (s *JavaStatus) PlayerNames() ([]string, error) {
	return s.playerNames("name_clean", func(e playerEntry) *string { return e.NameClean })
}

// PlayerNamesRaw returns the player names including formatting codes.
func (s *JavaStatus) PlayerNamesRaw() ([]string, error) {
	return s.playerNames("name_raw", func(e playerEntry) *string { return e.NameRaw })
}

func (s *JavaStatus) playerNames(field string, pick func(playerEntry) *string) ([]string, error) {
	names := []string{}
	if !s.IsOnline() {
		return names, nil
	}
	p, err := s.players()
	if err != nil {
		return names, err
	}
	for i, e := range p.List {
		name := pick(e)
		if name == nil {
			return []string{}, missing(fmt.Sprintf("players.list[%d].%s", i, field))
		}
		names = append(names, *name)
	}
	return names, nil
}

func (s *JavaStatus) MOTDRaw() (*string, error) {
	return motdField(s.IsOnline(), s.doc.MOTD, "raw", func(m *motdFields) *string { return m.Raw })
}

func (s *JavaStatus) MOTDClean() (*string, error) {
	return motdField(s.IsOnline(), s.doc.MOTD, "clean", func(m *motdFields) *string { return m.Clean })
}

func (s *JavaStatus) MOTDHTML() (*string, error) {
	return motdField(s.IsOnline(), s.doc.MOTD, "html", func(m *motdFields) *string { return m.HTML })
}

// Icon returns the server icon as a base64 data URI, or nil. An icon that is
// not a string is treated as absent.
func (s *JavaStatus) Icon() *string {
	return s.optionalString("icon", s.doc.Icon)
}

// Software returns the server software reported by the query protocol, or nil.
func (s *JavaStatus) Software() *string {
	return s.optionalString("software", s.doc.Software)
}

func (s *JavaStatus) optionalString(field string, raw json.RawMessage) *string {
	if !s.IsOnline() {
		return nil
	}
	var v *string
	if err := decodeField(raw, field, &v); err != nil {
		return nil
	}
	return v
}

func (s *JavaStatus) mods() ([]modEntry, error) {
	var entries []modEntry
	err := decodeField(s.doc.Mods, "mods", &entries)
	return entries, err
}

func (s *JavaStatus) plugins() ([]pluginEntry, error) {
	var entries []pluginEntry
	err := decodeField(s.doc.Plugins, "plugins", &entries)
	return entries, err
}

// Mods returns the reported mods, or nil when offline or none are reported.
// Missing names or versions are left empty; a malformed list reads as none.
func (s *JavaStatus) Mods() []Mod {
	if !s.IsOnline() {
		return nil
	}
	entries, err := s.mods()
	if err != nil || entries == nil {
		return nil
	}
	mods := make([]Mod, 0, len(entries))
	for _, e := range entries {
		m := Mod{}
		if e.Name != nil {
			m.Name = *e.Name
		}
		if e.Version != nil {
			m.Version = *e.Version
		}
		mods = append(mods, m)
	}
	return mods
}

func (s *JavaStatus) ModNames() ([]string, error) {
	names := []string{}
	if !s.IsOnline() {
		return names, nil
	}
	entries, err := s.mods()
	if err != nil {
		return names, err
	}
	for i, e := range entries {
		if e.Name == nil {
			return []string{}, missing(fmt.Sprintf("mods[%d].name", i))
		}
		names = append(names, *e.Name)
	}
	return names, nil
}

// ModsWithVersions maps mod names to versions. Unlike plugins, a mod without
// a version is an error.
func (s *JavaStatus) ModsWithVersions() (VersionMap, error) {
	if !s.IsOnline() {
		return VersionMap{}, nil
	}
	entries, err := s.mods()
	if err != nil {
		return VersionMap{}, err
	}
	b := newVersionMapBuilder(len(entries))
	for i, e := range entries {
		if e.Name == nil {
			return VersionMap{}, missing(fmt.Sprintf("mods[%d].name", i))
		}
		if e.Version == nil {
			return VersionMap{}, missing(fmt.Sprintf("mods[%d].version", i))
		}
		b.put(*e.Name, *e.Version)
	}
	return b.m, nil
}

// Plugins returns the reported plugins, or nil when offline or none are reported.
func (s *JavaStatus) Plugins() []Plugin {
	if !s.IsOnline() {
		return nil
	}
	entries, err := s.plugins()
	if err != nil || entries == nil {
		return nil
	}
	plugins := make([]Plugin, 0, len(entries))
	for _, e := range entries {
		p := Plugin{Version: copyString(e.Version)}
		if e.Name != nil {
			p.Name = *e.Name
		}
		plugins = append(plugins, p)
	}
	return plugins
}

func (s *JavaStatus) PluginNames() ([]string, error) {
	names := []string{}
	if !s.IsOnline() {
		return names, nil
	}
	entries, err := s.plugins()
	if err != nil {
		return names, err
	}
	for i, e := range entries {
		if e.Name == nil {
			return []string{}, missing(fmt.Sprintf("plugins[%d].name", i))
		}
		names = append(names, *e.Name)
	}
	return names, nil
}

// PluginsWithVersions maps plugin names to versions, using UnknownVersion
// for plugins that do not report one.
func (s *JavaStatus) PluginsWithVersions() (VersionMap, error) {
	if !s.IsOnline() {
		return VersionMap{}, nil
	}
	entries, err := s.plugins()
	if err != nil {
		return VersionMap{}, err
	}
	b := newVersionMapBuilder(len(entries))
	for i, e := range entries {
		if e.Name == nil {
			return VersionMap{}, missing(fmt.Sprintf("plugins[%d].name", i))
		}
		version := UnknownVersion
		if e.Version != nil {
			version = *e.Version
		}
		b.put(*e.Name, version)
	}
	return b.m, nil
}
