// Package journal keeps a postgres record of every dispatch the session
// publishes.
package journal

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/asianchinaboi/brocord/internal/compress"
	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/gateway"
	"github.com/asianchinaboi/brocord/internal/logger"
)

const schema = `CREATE TABLE IF NOT EXISTS dispatches (
	id BIGSERIAL PRIMARY KEY,
	connection_id TEXT NOT NULL,
	seq BIGINT,
	event TEXT NOT NULL,
	received_at TIMESTAMPTZ NOT NULL,
	compressed BOOLEAN NOT NULL,
	raw_size INTEGER NOT NULL,
	payload BYTEA NOT NULL
)`

const insert = `INSERT INTO dispatches
	(connection_id, seq, event, received_at, compressed, raw_size, payload)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

const writeTimeout = 5 * time.Second

// Execer is the part of *sql.DB the journal writes through.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type Entry struct {
	ConnectionId string
	Seq          *int64
	Event        string
	Received     time.Time
	Payload      []byte
}

type Options struct {
	Compress bool
	Buffer   int
	// ConnectionId labels each entry; usually Session.ConnectionID.
	ConnectionId func() string
}

type Journal struct {
	db   Execer
	opts Options

	mu     sync.RWMutex
	closed bool
	queue  chan Entry
	wg     sync.WaitGroup
}

// Migrate creates the dispatches table if needed.
func Migrate(ctx context.Context, db Execer) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

func New(db Execer, opts Options) *Journal {
	if opts.ConnectionId == nil {
		opts.ConnectionId = func() string { return "" }
	}
	j := &Journal{
		db:    db,
		opts:  opts,
		queue: make(chan Entry, opts.Buffer),
	}
	j.wg.Add(1)
	go j.run()
	return j
}

// Record queues a dispatch for writing. It never blocks; when the buffer is
// full the entry is dropped.
func (j *Journal) Record(event string, frame gateway.DataFrame) error {
	entry := Entry{
		ConnectionId: j.opts.ConnectionId(),
		Seq:          frame.Seq,
		Event:        event,
		Received:     time.Now().UTC(),
		Payload:      frame.Data,
	}
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return errors.ErrJournalClosed
	}
	select {
	case j.queue <- entry:
		return nil
	default:
		logger.Warn.Println(errors.ErrJournalFull, "dropping", event)
		return errors.ErrJournalFull
	}
}

// Handler adapts Record to the emitter's catch-all subscription.
func (j *Journal) Handler(event string, frame gateway.DataFrame) {
	j.Record(event, frame)
}

// Close stops accepting entries and waits for the queue to drain.
func (j *Journal) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	close(j.queue)
	j.mu.Unlock()
	j.wg.Wait()
	return nil
}

func (j *Journal) run() {
	defer j.wg.Done()
	for entry := range j.queue {
		if err := j.write(entry); err != nil {
			logger.Error.Println("journal write failed:", err)
		}
	}
	logger.Debug.Println("journal stopped")
}

func (j *Journal) write(e Entry) error {
	payload, compressed := e.Payload, false
	if payload == nil {
		payload = []byte{}
	}
	if j.opts.Compress && len(payload) > 0 {
		block, err := compress.Compress(payload)
		if err != nil {
			return err
		}
		if block != nil {
			payload, compressed = block, true
		}
	}
	var seq sql.NullInt64
	if e.Seq != nil {
		seq = sql.NullInt64{Int64: *e.Seq, Valid: true}
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	_, err := j.db.ExecContext(ctx, insert,
		e.ConnectionId, seq, e.Event, e.Received, compressed, len(e.Payload), payload)
	return err
}
