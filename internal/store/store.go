// Package store persists plans in SQLite for the editing commands.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/horizon/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrPlanNotFound is returned when no plan with the requested name is stored.
var ErrPlanNotFound = errors.New("plan not found")

// Store is a SQLite-backed plan store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the plan database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// PlanInfo describes a stored plan without its elements.
type PlanInfo struct {
	Name          string
	StartYear     int
	EndYear       int
	InflationRate float64
	Elements      int
	Revision      int64
	UpdatedAt     time.Time
}

// SavePlan writes plan under its name, replacing any stored plan of the same
// name and all of its elements.
func (s *Store) SavePlan(plan model.Plan) error {
	if plan.Name == "" {
		return errors.New("plan has no name")
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = tx.Exec(`INSERT INTO plans
		(name, start_year, end_year, inflation_rate, revision, created_at, updated_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			start_year = excluded.start_year,
			end_year = excluded.end_year,
			inflation_rate = excluded.inflation_rate,
			revision = plans.revision + 1,
			updated_at = excluded.updated_at`,
		plan.Name, plan.StartYear, plan.EndYear, plan.InflationRate, now, now,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM elements WHERE plan_name = ?", plan.Name); err != nil {
		return err
	}

	for i, e := range plan.Elements.All() {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding %s %q: %w", e.Kind(), e.ElementID(), err)
		}
		_, err = tx.Exec(`INSERT INTO elements (plan_name, kind, element_id, position, payload)
			VALUES (?, ?, ?, ?, ?)`, plan.Name, string(e.Kind()), e.ElementID(), i, string(payload))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadPlan reads the named plan with its elements in saved order.
func (s *Store) LoadPlan(name string) (model.Plan, error) {
	plan := model.Plan{Name: name}
	err := s.db.QueryRow(`SELECT start_year, end_year, inflation_rate FROM plans WHERE name = ?`, name).
		Scan(&plan.StartYear, &plan.EndYear, &plan.InflationRate)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Plan{}, fmt.Errorf("%w: %q", ErrPlanNotFound, name)
	}
	if err != nil {
		return model.Plan{}, err
	}

	rows, err := s.db.Query(`SELECT kind, payload FROM elements
		WHERE plan_name = ? ORDER BY position, kind, element_id`, name)
	if err != nil {
		return model.Plan{}, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var kind, payload string
		if err := rows.Scan(&kind, &payload); err != nil {
			return model.Plan{}, err
		}
		e, err := decodeElement(kind, payload)
		if err != nil {
			return model.Plan{}, err
		}
		if err := plan.Elements.Add(e); err != nil {
			return model.Plan{}, err
		}
	}
	return plan, rows.Err()
}

// ListPlans returns every stored plan ordered by name.
func (s *Store) ListPlans() ([]PlanInfo, error) {
	rows, err := s.db.Query(`SELECT p.name, p.start_year, p.end_year, p.inflation_rate,
		p.revision, p.updated_at, COUNT(e.element_id)
		FROM plans p LEFT JOIN elements e ON e.plan_name = p.name
		GROUP BY p.name ORDER BY p.name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []PlanInfo
	for rows.Next() {
		var info PlanInfo
		var updated string
		if err := rows.Scan(&info.Name, &info.StartYear, &info.EndYear, &info.InflationRate,
			&info.Revision, &updated, &info.Elements); err != nil {
			return nil, err
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Revision returns a counter that increases every time the named plan or
// one of its elements is written.
func (s *Store) Revision(name string) (int64, error) {
	var rev int64
	err := s.db.QueryRow("SELECT revision FROM plans WHERE name = ?", name).Scan(&rev)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %q", ErrPlanNotFound, name)
	}
	return rev, err
}

// DeletePlan removes the named plan and its elements.
func (s *Store) DeletePlan(name string) error {
	res, err := s.db.Exec("DELETE FROM plans WHERE name = ?", name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrPlanNotFound, name)
	}
	return nil
}

// PutElement inserts or replaces a single element of a stored plan. A new
// element is appended after the existing ones. The element is validated but
// cross-element rules such as id uniqueness are the caller's concern.
func (s *Store) PutElement(planName string, e model.Element) error {
	if err := e.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding %s %q: %w", e.Kind(), e.ElementID(), err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := touch(tx, planName); err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT INTO elements (plan_name, kind, element_id, position, payload)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM elements WHERE plan_name = ?), ?)
		ON CONFLICT(plan_name, kind, element_id) DO UPDATE SET payload = excluded.payload`,
		planName, string(e.Kind()), e.ElementID(), planName, string(payload))
	if err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteElement removes every element with the given id from a stored plan
// and reports whether anything was removed.
func (s *Store) DeleteElement(planName, id string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := touch(tx, planName); err != nil {
		return false, err
	}

	res, err := tx.Exec("DELETE FROM elements WHERE plan_name = ? AND element_id = ?", planName, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}
	return true, tx.Commit()
}

// touch bumps the plan's revision and fails if the plan does not exist.
func touch(tx *sql.Tx, name string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := tx.Exec("UPDATE plans SET revision = revision + 1, updated_at = ? WHERE name = ?", now, name)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %q", ErrPlanNotFound, name)
	}
	return nil
}

func decodeElement(kind, payload string) (model.Element, error) {
	k, err := model.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	var e model.Element
	switch k {
	case model.KindIncomeStream:
		var v model.IncomeStream
		err = json.Unmarshal([]byte(payload), &v)
		e = v
	case model.KindRecurringExpense:
		var v model.RecurringExpense
		err = json.Unmarshal([]byte(payload), &v)
		e = v
	case model.KindOneTimeExpense:
		var v model.OneTimeExpense
		err = json.Unmarshal([]byte(payload), &v)
		e = v
	case model.KindOneTimeIncome:
		var v model.OneTimeIncome
		err = json.Unmarshal([]byte(payload), &v)
		e = v
	case model.KindDebt:
		var v model.Debt
		err = json.Unmarshal([]byte(payload), &v)
		e = v
	case model.KindInvestment:
		var v model.Investment
		err = json.Unmarshal([]byte(payload), &v)
		e = v
	case model.KindAsset:
		var v model.Asset
		err = json.Unmarshal([]byte(payload), &v)
		e = v
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	return e, nil
}
