package indexdb

import (
	"context"
	"database/sql"
)

// BaseTotal is the food delivered to one base according to the index.
type BaseTotal struct {
	BaseID   string  `json:"base_id"`
	Deposits int     `json:"deposits"`
	Amount   float64 `json:"amount"`
}

// DepositTotals aggregates deposits per base, ordered by base id.
func (s *SQLiteIndex) DepositTotals(ctx context.Context) ([]BaseTotal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT base_id, COUNT(*), COALESCE(SUM(amount),0) FROM deposits GROUP BY base_id ORDER BY base_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BaseTotal
	for rows.Next() {
		var bt BaseTotal
		if err := rows.Scan(&bt.BaseID, &bt.Deposits, &bt.Amount); err != nil {
			return nil, err
		}
		out = append(out, bt)
	}
	return out, rows.Err()
}

// DeathsByKind counts recorded deaths per agent kind.
func (s *SQLiteIndex) DeathsByKind(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM deaths GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		out[kind] = n
	}
	return out, rows.Err()
}

// LastTick returns the highest indexed tick. ok is false on an empty index.
func (s *SQLiteIndex) LastTick(ctx context.Context) (tick uint64, digest string, ok bool, err error) {
	var t int64
	err = s.db.QueryRowContext(ctx, `SELECT tick, digest FROM ticks ORDER BY tick DESC LIMIT 1`).Scan(&t, &digest)
	if err == sql.ErrNoRows {
		return 0, "", false, nil
	}
	if err != nil {
		return 0, "", false, err
	}
	return uint64(t), digest, true, nil
}
