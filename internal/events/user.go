package events

type User struct {
	UserId        int64  `json:"id,string"`
	Name          string `json:"username"`
	Discriminator string `json:"discriminator,omitempty"`
	GlobalName    string `json:"global_name,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	Bot           bool   `json:"bot,omitempty"`
	Flags         int    `json:"public_flags,omitempty"`
}

/*
* public flags 32 bit
* 0x01 staff
* 0x02 partner
* 0x04 hypesquad
* 0x08 bug hunter
 */

const (
	FLstaff = 1 << iota
	FLpartner
	FLhypesquad
	FLbugHunter
)

type Ready struct {
	Version   int            `json:"v"`
	User      User           `json:"user"`
	Guilds    []UnavailGuild `json:"guilds"`
	SessionId string         `json:"session_id"`
	ResumeURL string         `json:"resume_gateway_url"`
}
