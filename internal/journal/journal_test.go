package journal

import (
	"bytes"
	"context"
	"database/sql"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/asianchinaboi/brocord/internal/compress"
	"github.com/asianchinaboi/brocord/internal/errors"
	"github.com/asianchinaboi/brocord/internal/gateway"
	"github.com/asianchinaboi/brocord/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type exec struct {
	query string
	args  []any
}

type fakeDB struct {
	mu    sync.Mutex
	execs []exec
	block chan struct{} //when set, inserts wait on it
}

func (f *fakeDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.block != nil && strings.HasPrefix(query, "INSERT") {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.execs = append(f.execs, exec{query, args})
	return nil, nil
}

func (f *fakeDB) inserts() []exec {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []exec
	for _, e := range f.execs {
		if strings.HasPrefix(e.query, "INSERT") {
			out = append(out, e)
		}
	}
	return out
}

func dispatch(seq int64, data string) gateway.DataFrame {
	return gateway.DataFrame{Op: gateway.OpDispatch, Seq: &seq, Data: []byte(data)}
}

func TestMigrate(t *testing.T) {
	db := &fakeDB{}
	if err := Migrate(context.Background(), db); err != nil {
		t.Fatal(err)
	}
	if len(db.execs) != 1 || !strings.Contains(db.execs[0].query, "CREATE TABLE IF NOT EXISTS dispatches") {
		t.Fatalf("execs = %+v", db.execs)
	}
}

func TestRecordWritesEntries(t *testing.T) {
	db := &fakeDB{}
	j := New(db, Options{
		Compress:     true,
		Buffer:       8,
		ConnectionId: func() string { return "conn-1" },
	})
	big := `{"content":"` + strings.Repeat("spam ", 50) + `"}`
	small := `{"x":1}`
	if err := j.Record("MESSAGE_CREATE", dispatch(1, big)); err != nil {
		t.Fatal(err)
	}
	if err := j.Record("READY", gateway.DataFrame{Data: []byte(small)}); err != nil {
		t.Fatal(err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}

	rows := db.inserts()
	if len(rows) != 2 {
		t.Fatalf("inserted %d rows, want 2", len(rows))
	}

	first := rows[0].args
	if first[0] != "conn-1" || first[2] != "MESSAGE_CREATE" {
		t.Fatalf("first row = %v", first)
	}
	if seq := first[1].(sql.NullInt64); !seq.Valid || seq.Int64 != 1 {
		t.Fatalf("seq = %+v", seq)
	}
	if first[4] != true || first[5] != len(big) {
		t.Fatalf("compressed=%v size=%v", first[4], first[5])
	}
	out, err := compress.Decompress(first[6].([]byte), first[5].(int))
	if err != nil || string(out) != big {
		t.Fatalf("stored payload does not decompress: %v", err)
	}

	second := rows[1].args
	if second[1].(sql.NullInt64).Valid {
		t.Fatal("frame without sequence stored one")
	}
	if second[4] != false || !bytes.Equal(second[6].([]byte), []byte(small)) {
		t.Fatalf("small payload stored as %v %q", second[4], second[6])
	}
}

func TestRecordDropsWhenFull(t *testing.T) {
	db := &fakeDB{block: make(chan struct{})}
	j := New(db, Options{Buffer: 1})

	var full bool
	for i := 0; i < 5; i++ {
		if err := j.Record("READY", dispatch(int64(i), `{}`)); errors.Is(err, errors.ErrJournalFull) {
			full = true
			break
		}
	}
	if !full {
		t.Fatal("Record never reported a full buffer")
	}
	close(db.block)
	j.Close()

	if err := j.Record("READY", dispatch(9, `{}`)); !errors.Is(err, errors.ErrJournalClosed) {
		t.Fatalf("Record after Close = %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatal(err)
	}
}
