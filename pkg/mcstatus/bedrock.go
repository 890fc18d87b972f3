package mcstatus

import "encoding/json"

type bedrockDocument struct {
	statusFields
	Version  json.RawMessage `json:"version"`
	Players  json.RawMessage `json:"players"`
	MOTD     json.RawMessage `json:"motd"`
	Gamemode json.RawMessage `json:"gamemode"`
	ServerID json.RawMessage `json:"server_id"`
	Edition  json.RawMessage `json:"edition"`
}

type bedrockVersion struct {
	Name     *string `json:"name"`
	Protocol *int    `json:"protocol"`
}

type bedrockPlayers struct {
	Online *int `json:"online"`
	Max    *int `json:"max"`
}

// BedrockStatus is the parsed status of a Bedrock edition server.
type BedrockStatus struct {
	common
	doc bedrockDocument
}

// ParseBedrockStatus parses a Bedrock status document as returned by the API.
func ParseBedrockStatus(body []byte) (*BedrockStatus, error) {
	s := &BedrockStatus{}
	if err := decodeDocument(body, &s.doc, &s.doc.statusFields); err != nil {
		return nil, err
	}
	s.common = common{f: &s.doc.statusFields}
	return s, nil
}

func (s *BedrockStatus) version() (*bedrockVersion, error) {
	var v *bedrockVersion
	if err := decodeField(s.doc.Version, "version", &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, missing("version")
	}
	return v, nil
}

func (s *BedrockStatus) players() (*bedrockPlayers, error) {
	var p *bedrockPlayers
	if err := decodeField(s.doc.Players, "players", &p); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, missing("players")
	}
	return p, nil
}

func (s *BedrockStatus) VersionName() (*string, error) {
	if !s.IsOnline() {
		return nil, nil
	}
	v, err := s.version()
	if err != nil {
		return nil, err
	}
	if v.Name == nil {
		return nil, missing("version.name")
	}
	return v.Name, nil
}

// VersionProtocol returns the protocol version, or -1 when offline.
func (s *BedrockStatus) VersionProtocol() (int, error) {
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

func (s *BedrockStatus) PlayersOnline() (int, error) {
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

func (s *BedrockStatus) MaxPlayers() (int, error) {
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

func (s *BedrockStatus) MOTDRaw() (*string, error) {
	return motdField(s.IsOnline(), s.doc.MOTD, "raw", func(m *motdFields) *string { return m.Raw })
}

func (s *BedrockStatus) MOTDClean() (*string, error) {
	return motdField(s.IsOnline(), s.doc.MOTD, "clean", func(m *motdFields) *string { return m.Clean })
}

func (s *BedrockStatus) MOTDHTML() (*string, error) {
	return motdField(s.IsOnline(), s.doc.MOTD, "html", func(m *motdFields) *string { return m.HTML })
}

// Gamemode returns the default game mode, e.g. "Survival".
func (s *BedrockStatus) Gamemode() (*string, error) {
	return s.onlineString("gamemode", s.doc.Gamemode)
}

// ServerID returns the server's unique identifier.
func (s *BedrockStatus) ServerID() (*string, error) {
	return s.onlineString("server_id", s.doc.ServerID)
}

// Edition returns "MCPE" or "MCEE".
func (s *BedrockStatus) Edition() (*string, error) {
	return s.onlineString("edition", s.doc.Edition)
}

func (s *BedrockStatus) onlineString(field string, raw json.RawMessage) (*string, error) {
	if !s.IsOnline() {
		return nil, nil
	}
	var v *string
	if err := decodeField(raw, field, &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, missing(field)
	}
	return v, nil
}
