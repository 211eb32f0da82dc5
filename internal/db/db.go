package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

const pingTimeout = 5 * time.Second

// Open connects to postgres and checks the connection before returning.
func Open(dsn string) (*sql.DB, error) {
	Db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := Db.PingContext(ctx); err != nil {
		Db.Close()
		return nil, err
	}
	return Db, nil
}
