package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"
)

// insert runs a named INSERT ... RETURNING id and returns the new id.
func insert(ctx context.Context, db *sqlx.DB, query string, arg interface{}) (int, error) {
	q, args, err := db.BindNamed(query, arg)
	if err != nil {
		return 0, errors.Wrap(err, "binding query")
	}
	var id int
	if err := db.QueryRowxContext(ctx, q, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// update runs a named UPDATE and reports notFound when no row matched.
func update(ctx context.Context, db *sqlx.DB, query string, arg interface{}, notFound error) error {
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "counting affected rows")
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// trapNoRowsErr maps psql "no rows" err to notFound
func trapNoRowsErr(err error, notFound error, msg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

func jsonFrom(raw json.RawMessage) null.JSON {
	return null.JSONFrom(raw)
}

func rawFrom(j null.JSON) json.RawMessage {
	if !j.Valid {
		return nil
	}
	return json.RawMessage(j.JSON)
}

func intPtr(n null.Int) *int {
	if !n.Valid {
		return nil
	}
	i := n.Int
	return &i
}

func nullIntFrom(p *int) null.Int {
	if p == nil {
		return null.Int{}
	}
	return null.IntFrom(*p)
}
