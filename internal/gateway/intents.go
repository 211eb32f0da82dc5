package gateway

/*
* intents bitmask, one bit per event category
* 0x001 guilds
* 0x002 guild members
* 0x200 guild messages
* 0x1000 direct messages
* 0x8000 message content
 */

const (
	IntentGuilds = 1 << iota
	IntentGuildMembers
	IntentGuildModeration
	IntentGuildEmojis
	IntentGuildIntegrations
	IntentGuildWebhooks
	IntentGuildInvites
	IntentGuildVoiceStates
	IntentGuildPresences
	IntentGuildMessages
	IntentGuildMessageReactions
	IntentGuildMessageTyping
	IntentDirectMessages
	IntentDirectMessageReactions
	IntentDirectMessageTyping
	IntentMessageContent
)

// DefaultIntents subscribes to guild lifecycle and guild message events.
const DefaultIntents = IntentGuilds | IntentGuildMessages
