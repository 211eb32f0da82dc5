package events

import (
	"regexp"
	"time"
)

type Msg struct {
	MsgId           int64        `json:"id,string"`
	ChannelId       int64        `json:"channel_id,string"`
	GuildId         int64        `json:"guild_id,string,omitempty"` //absent for dms
	Content         string       `json:"content"`
	MentionEveryone bool         `json:"mention_everyone"`
	Mentions        []User       `json:"mentions,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Author          User         `json:"author"`
	Created         time.Time    `json:"timestamp"`
	Modified        *time.Time   `json:"edited_timestamp,omitempty"`
}

type Attachment struct {
	Id          int64  `json:"id,string"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int    `json:"size"`
	URL         string `json:"url"`
}

var MentionExp = regexp.MustCompile(`<@!?(\d+)>`)

// MentionedIds pulls user ids out of the raw content. The mentions array only
// lists users the server resolved, this also catches the rest.
func (m *Msg) MentionedIds() []string {
	var ids []string
	for _, match := range MentionExp.FindAllStringSubmatch(m.Content, -1) {
		ids = append(ids, match[1])
	}
	return ids
}
