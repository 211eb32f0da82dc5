package events

// Dispatch event names as sent in the t field.
const (
	READY                 = "READY"
	RESUMED               = "RESUMED"
	GUILD_CREATE          = "GUILD_CREATE"
	GUILD_UPDATE          = "GUILD_UPDATE"
	GUILD_DELETE          = "GUILD_DELETE"
	GUILD_MEMBER_ADD      = "GUILD_MEMBER_ADD"
	GUILD_MEMBER_REMOVE   = "GUILD_MEMBER_REMOVE"
	CHANNEL_CREATE        = "CHANNEL_CREATE"
	CHANNEL_UPDATE        = "CHANNEL_UPDATE"
	CHANNEL_DELETE        = "CHANNEL_DELETE"
	MESSAGE_CREATE        = "MESSAGE_CREATE"
	MESSAGE_UPDATE        = "MESSAGE_UPDATE"
	MESSAGE_DELETE        = "MESSAGE_DELETE"
	MESSAGE_REACTION_ADD  = "MESSAGE_REACTION_ADD"
	TYPING_START          = "TYPING_START"
	PRESENCE_UPDATE       = "PRESENCE_UPDATE"
	INTERACTION_CREATE    = "INTERACTION_CREATE"
	VOICE_STATE_UPDATE    = "VOICE_STATE_UPDATE"
)
