package models

import (
	"time"

	"github.com/payperplay/mcstatus/pkg/mcstatus"
)

// Edition identifies the server flavour a status belongs to
type Edition string

const (
	EditionJava    Edition = "java"
	EditionBedrock Edition = "bedrock"
)

// ParseEdition returns the edition for s and whether it is known
func ParseEdition(s string) (Edition, bool) {
	switch Edition(s) {
	case EditionJava, EditionBedrock:
		return Edition(s), true
	}
	return "", false
}

// MOTDView is the message of the day in its three renderings
type MOTDView struct {
	Raw   string `json:"raw"`
	Clean string `json:"clean"`
	HTML  string `json:"html"`
}

// StatusBase holds the fields shared by both editions
type StatusBase struct {
	Online      bool      `json:"online"`
	Host        string    `json:"host"`
	Port        int       `json:"port"`
	IPAddress   *string   `json:"ip_address,omitempty"`
	EULABlocked bool      `json:"eula_blocked"`
	RetrievedAt time.Time `json:"retrieved_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// JavaVersionView is the version block of a Java server
type JavaVersionView struct {
	NameRaw   string `json:"name_raw"`
	NameClean string `json:"name_clean"`
	NameHTML  string `json:"name_html"`
	Protocol  int    `json:"protocol"`
}

// JavaPlayersView is the player block of a Java server
type JavaPlayersView struct {
	Online int               `json:"online"`
	Max    int               `json:"max"`
	List   []mcstatus.Player `json:"list"`
}

// JavaStatusView is the JSON form of a Java server status. Online-only
// blocks are omitted for offline servers.
type JavaStatusView struct {
	StatusBase
	SRVRecord *mcstatus.SRVRecord `json:"srv_record,omitempty"`
	Version   *JavaVersionView    `json:"version,omitempty"`
	Players   *JavaPlayersView    `json:"players,omitempty"`
	MOTD      *MOTDView           `json:"motd,omitempty"`
	Icon      *string             `json:"icon,omitempty"`
	Software  *string             `json:"software,omitempty"`
	Mods      []mcstatus.Mod      `json:"mods,omitempty"`
	Plugins   []mcstatus.Plugin   `json:"plugins,omitempty"`
}

// BedrockVersionView is the version block of a Bedrock server
type BedrockVersionView struct {
	Name     string `json:"name"`
	Protocol int    `json:"protocol"`
}

// BedrockPlayersView is the player block of a Bedrock server
type BedrockPlayersView struct {
	Online int `json:"online"`
	Max    int `json:"max"`
}

// BedrockStatusView is the JSON form of a Bedrock server status
type BedrockStatusView struct {
	StatusBase
	Version  *BedrockVersionView `json:"version,omitempty"`
	Players  *BedrockPlayersView `json:"players,omitempty"`
	MOTD     *MOTDView           `json:"motd,omitempty"`
	Gamemode *string             `json:"gamemode,omitempty"`
	ServerID *string             `json:"server_id,omitempty"`
	Edition  *string             `json:"edition,omitempty"`
}

// statusSource is satisfied by both mcstatus status types
type statusSource interface {
	IsOnline() bool
	Host() (string, error)
	Port() (int, error)
	IPAddress() *string
	EULABlocked() (bool, error)
	RetrievedTime() (time.Time, error)
	ExpiresTime() (time.Time, error)
	MOTDRaw() (*string, error)
	MOTDClean() (*string, error)
	MOTDHTML() (*string, error)
}

func newStatusBase(s statusSource) (StatusBase, error) {
	var (
		b   = StatusBase{Online: s.IsOnline(), IPAddress: s.IPAddress()}
		err error
	)
	if b.Host, err = s.Host(); err != nil {
		return b, err
	}
	if b.Port, err = s.Port(); err != nil {
		return b, err
	}
	if b.EULABlocked, err = s.EULABlocked(); err != nil {
		return b, err
	}
	if b.RetrievedAt, err = s.RetrievedTime(); err != nil {
		return b, err
	}
	if b.ExpiresAt, err = s.ExpiresTime(); err != nil {
		return b, err
	}
	return b, nil
}

func newMOTDView(s statusSource) (*MOTDView, error) {
	raw, err := s.MOTDRaw()
	if err != nil {
		return nil, err
	}
	clean, err := s.MOTDClean()
	if err != nil {
		return nil, err
	}
	html, err := s.MOTDHTML()
	if err != nil {
		return nil, err
	}
	return &MOTDView{Raw: deref(raw), Clean: deref(clean), HTML: deref(html)}, nil
}

// NewJavaStatusView builds the view from a parsed status. A required field
// missing from the document is returned as a *mcstatus.MissingFieldError.
func NewJavaStatusView(s *mcstatus.JavaStatus) (*JavaStatusView, error) {
	base, err := newStatusBase(s)
	if err != nil {
		return nil, err
	}
	view := &JavaStatusView{StatusBase: base, SRVRecord: s.SRVRecord()}
	if !s.IsOnline() {
		return view, nil
	}

	version := &JavaVersionView{}
	nameRaw, err := s.VersionNameRaw()
	if err != nil {
		return nil, err
	}
	nameClean, err := s.VersionNameClean()
	if err != nil {
		return nil, err
	}
	nameHTML, err := s.VersionNameHTML()
	if err != nil {
		return nil, err
	}
	version.NameRaw, version.NameClean, version.NameHTML = deref(nameRaw), deref(nameClean), deref(nameHTML)
	if version.Protocol, err = s.VersionProtocol(); err != nil {
		return nil, err
	}
	view.Version = version

	players := &JavaPlayersView{}
	if players.Online, err = s.PlayersOnline(); err != nil {
		return nil, err
	}
	if players.Max, err = s.MaxPlayers(); err != nil {
		return nil, err
	}
	if players.List, err = s.PlayerList(); err != nil {
		return nil, err
	}
	if players.List == nil {
		players.List = []mcstatus.Player{}
	}
	view.Players = players

	if view.MOTD, err = newMOTDView(s); err != nil {
		return nil, err
	}

	view.Icon = s.Icon()
	view.Software = s.Software()
	view.Mods = s.Mods()
	view.Plugins = s.Plugins()
	return view, nil
}

// NewBedrockStatusView builds the view from a parsed status.
func NewBedrockStatusView(s *mcstatus.BedrockStatus) (*BedrockStatusView, error) {
	base, err := newStatusBase(s)
	if err != nil {
		return nil, err
	}
	view := &BedrockStatusView{StatusBase: base}
	if !s.IsOnline() {
		return view, nil
	}

	version := &BedrockVersionView{}
	name, err := s.VersionName()
	if err != nil {
		return nil, err
	}
	version.Name = deref(name)
	if version.Protocol, err = s.VersionProtocol(); err != nil {
		return nil, err
	}
	view.Version = version

	players := &BedrockPlayersView{}
	if players.Online, err = s.PlayersOnline(); err != nil {
		return nil, err
	}
	if players.Max, err = s.MaxPlayers(); err != nil {
		return nil, err
	}
	view.Players = players

	if view.MOTD, err = newMOTDView(s); err != nil {
		return nil, err
	}
	if view.Gamemode, err = s.Gamemode(); err != nil {
		return nil, err
	}
	if view.ServerID, err = s.ServerID(); err != nil {
		return nil, err
	}
	if view.Edition, err = s.Edition(); err != nil {
		return nil, err
	}
	return view, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
