package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/asianchinaboi/brocord/internal/errors"
)

// DataFrame is one inbound gateway message as it appears on the wire.
type DataFrame struct {
	Op    Opcode          `json:"op"`          //opcode (shows what datatype)
	Seq   *int64          `json:"s,omitempty"` //only dispatches carry one in practice
	Event string          `json:"t,omitempty"`
	Data  json.RawMessage `json:"d,omitempty"`
}

// sendFrame is the outbound shape. Data is always written, so a heartbeat
// without a sequence encodes as {"op":1,"d":null}.
type sendFrame struct {
	Op   Opcode `json:"op"`
	Data any    `json:"d"`
}

type helloFrame struct {
	HeartbeatInterval *int64 `json:"heartbeat_interval"` //milliseconds
}

type identifyFrame struct {
	Token      string     `json:"token"`
	Intents    int        `json:"intents"`
	Properties Properties `json:"properties"`
}

// Properties identifies the client to the gateway.
type Properties struct {
	OS      string `json:"$os"`
	Browser string `json:"$browser"`
	Device  string `json:"$device"`
}

// Payload is the decoded, opcode specific view of a DataFrame. The set of
// implementations is closed: Dispatch, HeartbeatRequest, Hello, HeartbeatAck
// and Unknown.
type Payload interface {
	Opcode() Opcode
	payload()
}

type Dispatch struct {
	Name  string
	Frame DataFrame
}

type HeartbeatRequest struct{}

type Hello struct {
	HeartbeatInterval time.Duration
}

type HeartbeatAck struct{}

// Unknown carries every opcode the session does not act on.
type Unknown struct {
	Op  Opcode
	Raw json.RawMessage
}

func (Dispatch) Opcode() Opcode         { return OpDispatch }
func (HeartbeatRequest) Opcode() Opcode { return OpHeartbeat }
func (Hello) Opcode() Opcode            { return OpHello }
func (HeartbeatAck) Opcode() Opcode     { return OpHeartbeatAck }
func (u Unknown) Opcode() Opcode        { return u.Op }

func (Dispatch) payload()         {}
func (HeartbeatRequest) payload() {}
func (Hello) payload()            {}
func (HeartbeatAck) payload()     {}
func (Unknown) payload()          {}

// ParseFrame decodes a text message into a DataFrame.
func ParseFrame(message []byte) (DataFrame, error) {
	var frame DataFrame
	if err := json.Unmarshal(message, &frame); err != nil {
		return DataFrame{}, fmt.Errorf("%w: %v", errors.ErrMalformedFrame, err)
	}
	if bytes.Equal(frame.Data, []byte("null")) {
		frame.Data = nil
	}
	return frame, nil
}

// Payload classifies the frame by opcode. Only a HELLO without a usable
// interval fails; every unrecognised opcode becomes Unknown.
func (f DataFrame) Payload() (Payload, error) {
	switch f.Op {
	case OpDispatch:
		return Dispatch{Name: f.Event, Frame: f}, nil
	case OpHeartbeat:
		return HeartbeatRequest{}, nil
	case OpHello:
		var hello helloFrame
		if len(f.Data) > 0 {
			if err := json.Unmarshal(f.Data, &hello); err != nil {
				return nil, fmt.Errorf("%w: %v", errors.ErrHelloMissingInterval, err)
			}
		}
		if hello.HeartbeatInterval == nil || *hello.HeartbeatInterval <= 0 {
			return nil, errors.ErrHelloMissingInterval
		}
		return Hello{HeartbeatInterval: time.Duration(*hello.HeartbeatInterval) * time.Millisecond}, nil
	case OpHeartbeatAck:
		return HeartbeatAck{}, nil
	default:
		return Unknown{Op: f.Op, Raw: f.Data}, nil
	}
}
