package events

// UnavailGuild is what READY lists before the matching GUILD_CREATE arrives.
type UnavailGuild struct {
	GuildId     int64 `json:"id,string"`
	Unavailable bool  `json:"unavailable"`
}

type Guild struct {
	GuildId     int64  `json:"id,string"`
	Name        string `json:"name"`
	OwnerId     int64  `json:"owner_id,string"`
	Icon        string `json:"icon,omitempty"`
	MemberCount int    `json:"member_count,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}
