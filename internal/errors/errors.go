package errors

import "errors"

type Body struct {
	Error  string     `json:"error"`
	Status StatusCode `json:"status"`
}

var (

	//CONNECTION

	ErrNotConnected   = errors.New("connection: not connected")
	ErrConnectFailed  = errors.New("connection: connect failed")
	ErrConnectTimeout = errors.New("connection: connect timed out")

	//FRAME

	ErrMalformedFrame       = errors.New("frame: malformed")
	ErrBinaryFrame          = errors.New("frame: unexpected binary message")
	ErrHelloMissingInterval = errors.New("frame: hello without heartbeat interval")

	//TOKEN

	ErrAbsentToken = errors.New("token: not provided")

	//SESSION

	ErrSessionStarted = errors.New("session: already started")
	ErrSessionClosed  = errors.New("session: closed")

	//JOURNAL

	ErrJournalClosed = errors.New("journal: closed")
	ErrJournalFull   = errors.New("journal: buffer full")

	//CONFIG

	ErrInvalidConfig = errors.New("config: invalid")
)

// Is and As are re-exported so callers importing this package under the
// name errors keep the standard helpers.
func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target any) bool { return errors.As(err, target) }
