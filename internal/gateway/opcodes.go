package gateway

import "strconv"

type Opcode int

const (
	OpDispatch Opcode = iota //enum
	OpHeartbeat
	OpIdentify
	OpPresenceUpdate
	OpVoiceStateUpdate
	OpResume Opcode = iota + 1 //5 is unused by the protocol
	OpReconnect
	OpRequestGuildMembers
	OpInvalidSession
	OpHello
	OpHeartbeatAck
)

var opNames = map[Opcode]string{
	OpDispatch:            "DISPATCH",
	OpHeartbeat:           "HEARTBEAT",
	OpIdentify:            "IDENTIFY",
	OpPresenceUpdate:      "PRESENCE_UPDATE",
	OpVoiceStateUpdate:    "VOICE_STATE_UPDATE",
	OpResume:              "RESUME",
	OpReconnect:           "RECONNECT",
	OpRequestGuildMembers: "REQUEST_GUILD_MEMBERS",
	OpInvalidSession:      "INVALID_SESSION",
	OpHello:               "HELLO",
	OpHeartbeatAck:        "HEARTBEAT_ACK",
}

func (o Opcode) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "OP_" + strconv.Itoa(int(o))
}
