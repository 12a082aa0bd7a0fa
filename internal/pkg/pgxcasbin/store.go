package pgxcasbin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/lo"
)

// Casbin rules have at most six value columns (v0..v5).
const ruleFields = 6

const defaultTableName = "casbin_rule"

// Commander defines the pgx operations required by the adapter store.
type Commander interface {
	Begin(context.Context) (pgx.Tx, error)
	SendBatch(context.Context, *pgx.Batch) pgx.BatchResults
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type store struct {
	db        Commander
	tableName string
}

func newStore(db Commander) *store {
	return &store{db: db, tableName: defaultTableName}
}

func (s *store) setTableName(tableName string) {
	s.tableName = lo.SnakeCase(tableName)
}

func (s *store) valueColumns() string {
	return strings.Join(lo.Times(ruleFields, func(i int) string {
		return "v" + strconv.Itoa(i)
	}), ",")
}

func (s *store) insertSQL() string {
	placeholders := strings.Join(lo.Times(ruleFields, func(i int) string {
		return "$" + strconv.Itoa(i+2)
	}), ",")
	return fmt.Sprintf(
		"insert into %[1]s (ptype, %[2]s) values ($1, %[3]s) on conflict (ptype, %[2]s) do nothing",
		s.tableName, s.valueColumns(), placeholders,
	)
}

func (s *store) deleteSQL() string {
	conditions := strings.Join(lo.Times(ruleFields, func(i int) string {
		return "v" + strconv.Itoa(i) + " = $" + strconv.Itoa(i+2)
	}), " and ")
	return fmt.Sprintf("delete from %s where ptype = $1 and %s", s.tableName, conditions)
}

func (s *store) insertRow(ctx context.Context, ptype string, args ...string) error {
	normalized, err := normalizeRule(args)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, s.insertSQL(), lo.ToAnySlice(genRule(ptype, normalized))...); err != nil {
		return errors.Join(ErrInsertRow, err)
	}
	return nil
}

func (s *store) deleteRow(ctx context.Context, ptype string, args ...string) error {
	normalized, err := normalizeRule(args)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, s.deleteSQL(), lo.ToAnySlice(genRule(ptype, normalized))...); err != nil {
		return errors.Join(ErrDeleteRow, err)
	}
	return nil
}

func (s *store) deleteWhere(ctx context.Context, ptype string, startIdx int, args ...string) error {
	if ptype == "" {
		return ErrEmptyPtype
	}
	if len(args) > ruleFields-startIdx {
		return fmt.Errorf("%w: %d > %d", ErrArgsTooLong, len(args), ruleFields-startIdx)
	}

	sqlQuery := fmt.Sprintf("delete from %s where ptype = $1", s.tableName)
	argsList := []any{ptype}
	for i, arg := range args {
		if arg == "" {
			continue
		}
		sqlQuery += " and v" + strconv.Itoa(i+startIdx) + " = $" + strconv.Itoa(len(argsList)+1)
		argsList = append(argsList, arg)
	}

	if _, err := s.db.Exec(ctx, sqlQuery, argsList...); err != nil {
		return errors.Join(ErrDeleteWhere, err)
	}
	return nil
}

func (s *store) selectAll(ctx context.Context) ([][]string, error) {
	sqlQuery := fmt.Sprintf("select ptype, %s from %s", s.valueColumns(), s.tableName)

	rows, err := s.db.Query(ctx, sqlQuery)
	if err != nil {
		return nil, errors.Join(ErrSelectWhere, err)
	}
	defer rows.Close()

	var result [][]string
	for rows.Next() {
		row := make([]sql.NullString, ruleFields+1)
		scanArgs := make([]any, len(row))
		for i := range row {
			scanArgs[i] = &row[i]
		}
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, errors.Join(ErrScanRow, err)
		}

		converted := make([]string, len(row))
		for i := range row {
			if row[i].Valid {
				converted[i] = row[i].String
			}
		}
		result = append(result, trimTrailingEmpty(converted))
	}
	return result, rows.Err()
}

func (s *store) deleteAndInsertAll(ctx context.Context, rules [][]string) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errors.Join(ErrBeginTx, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, ErrRollbackTx, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(ctx, fmt.Sprintf("truncate table %s restart identity", s.tableName)); err != nil {
		return errors.Join(ErrDeleteAll, err)
	}

	if len(rules) > 0 {
		batch := &pgx.Batch{}
		for _, rule := range rules {
			if len(rule) == 0 {
				continue
			}
			normalized, nerr := normalizeRule(rule[1:])
			if nerr != nil {
				return nerr
			}
			batch.Queue(s.insertSQL(), lo.ToAnySlice(genRule(rule[0], normalized))...)
		}
		if err = s.runBatch(tx.SendBatch(ctx, batch), batch.Len()); err != nil {
			return err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return errors.Join(ErrCommitTx, err)
	}
	return nil
}

func (s *store) batchInsert(ctx context.Context, ptype string, rules [][]string) error {
	return s.batchExec(ctx, ptype, rules, s.insertSQL())
}

func (s *store) batchDelete(ctx context.Context, ptype string, rules [][]string) error {
	return s.batchExec(ctx, ptype, rules, s.deleteSQL())
}

func (s *store) batchExec(ctx context.Context, ptype string, rules [][]string, sqlQuery string) error {
	if len(rules) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rule := range rules {
		normalized, err := normalizeRule(rule)
		if err != nil {
			return err
		}
		batch.Queue(sqlQuery, lo.ToAnySlice(genRule(ptype, normalized))...)
	}

	return s.runBatch(s.db.SendBatch(ctx, batch), batch.Len())
}

func (s *store) runBatch(br pgx.BatchResults, n int) error {
	for range n {
		if _, err := br.Exec(); err != nil {
			closeErr := br.Close()
			return errors.Join(ErrBatchExec, err, closeErr)
		}
	}
	if err := br.Close(); err != nil {
		return errors.Join(ErrBatchClose, err)
	}
	return nil
}

func genRule(ptype string, rule []string) []string {
	result := make([]string, 1+len(rule))
	result[0] = ptype
	copy(result[1:], rule)
	return result
}

func normalizeRule(rule []string) ([]string, error) {
	if len(rule) > ruleFields {
		return nil, fmt.Errorf("%w: %d > %d", ErrRuleTooLong, len(rule), ruleFields)
	}
	normalized := make([]string, ruleFields)
	copy(normalized, rule)
	return normalized, nil
}

func trimTrailingEmpty(rule []string) []string {
	last := len(rule) - 1
	for last >= 0 && rule[last] == "" {
		last--
	}
	return rule[:last+1]
}
