// Package store persists leads in a SQLite database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"leadscout/internal/model"
)

// SQLiteStore implements model.LeadStore on a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// Ensure SQLiteStore implements model.LeadStore.
var _ model.LeadStore = (*SQLiteStore)(nil)

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures
// the leads table exists.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS leads (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		title               TEXT NOT NULL,
		source              TEXT NOT NULL DEFAULT '',
		source_url          TEXT NOT NULL DEFAULT '',
		keywords            TEXT NOT NULL DEFAULT '',
		preview             TEXT NOT NULL DEFAULT '',
		full_text           TEXT NOT NULL DEFAULT '',
		location            TEXT NOT NULL DEFAULT '',
		company_name        TEXT NOT NULL DEFAULT '',
		company_website     TEXT NOT NULL DEFAULT '',
		company_address     TEXT NOT NULL DEFAULT '',
		company_email       TEXT NOT NULL DEFAULT '',
		contact_name        TEXT NOT NULL DEFAULT '',
		contact_role        TEXT NOT NULL DEFAULT '',
		contact_profile_url TEXT NOT NULL DEFAULT '',
		contact_source      TEXT NOT NULL DEFAULT '',
		cover_letter        TEXT NOT NULL DEFAULT '',
		status              TEXT NOT NULL DEFAULT 'new',
		created_at          DATETIME NOT NULL,
		updated_at          DATETIME NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating leads table: %w", err)
	}

	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// leadColumns lists every column except id, in insert order.
const leadColumns = `title, source, source_url, keywords, preview, full_text, location,
	company_name, company_website, company_address, company_email,
	contact_name, contact_role, contact_profile_url, contact_source,
	cover_letter, status, created_at, updated_at`

// Create inserts a new lead and returns it with its assigned ID and
// timestamps.
func (s *SQLiteStore) Create(lead *model.Lead) (*model.Lead, error) {
	now := s.now()
	cp := *lead
	cp.CreatedAt = now
	cp.UpdatedAt = now
	if cp.Status == "" {
		cp.Status = model.StatusNew
	}

	res, err := s.db.Exec(`INSERT INTO leads (`+leadColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		cp.Title, cp.Source, cp.SourceURL, cp.Keywords, cp.Preview, cp.FullText, cp.Location,
		cp.CompanyName, cp.CompanyWebsite, cp.CompanyAddress, cp.CompanyEmail,
		cp.ContactName, cp.ContactRole, cp.ContactProfileURL, cp.ContactSource,
		cp.CoverLetter, string(cp.Status), cp.CreatedAt, cp.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting lead: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new lead id: %w", err)
	}
	cp.ID = id
	return &cp, nil
}

// Get returns the lead with the given ID, or model.ErrNotFound.
func (s *SQLiteStore) Get(id int64) (*model.Lead, error) {
	row := s.db.QueryRow(`SELECT id, `+leadColumns+` FROM leads WHERE id = ?`, id)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying lead %d: %w", id, err)
	}
	return lead, nil
}

// Update writes every mutable column of the lead and refreshes updated_at.
// Returns model.ErrNotFound when no such lead exists.
func (s *SQLiteStore) Update(lead *model.Lead) error {
	lead.UpdatedAt = s.now()

	res, err := s.db.Exec(`UPDATE leads SET
		title = ?, source = ?, source_url = ?, keywords = ?, preview = ?,
		full_text = ?, location = ?, company_name = ?, company_website = ?,
		company_address = ?, company_email = ?, contact_name = ?,
		contact_role = ?, contact_profile_url = ?, contact_source = ?,
		cover_letter = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		lead.Title, lead.Source, lead.SourceURL, lead.Keywords, lead.Preview,
		lead.FullText, lead.Location, lead.CompanyName, lead.CompanyWebsite,
		lead.CompanyAddress, lead.CompanyEmail, lead.ContactName,
		lead.ContactRole, lead.ContactProfileURL, lead.ContactSource,
		lead.CoverLetter, string(lead.Status), lead.UpdatedAt,
		lead.ID)
	if err != nil {
		return fmt.Errorf("updating lead %d: %w", lead.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of lead %d: %w", lead.ID, err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete removes the lead with the given ID. Returns model.ErrNotFound when
// no such lead exists.
func (s *SQLiteStore) Delete(id int64) error {
	res, err := s.db.Exec(`DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting lead %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of lead %d: %w", id, err)
	}
	if affected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// List returns leads matching the filter, newest first.
func (s *SQLiteStore) List(filter model.ListFilter) ([]model.Lead, error) {
	query := `SELECT id, ` + leadColumns + ` FROM leads`
	var conds []string
	var args []any
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Keyword != "" {
		conds = append(conds, "keywords LIKE ?")
		args = append(args, "%"+filter.Keyword+"%")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead row: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lead rows: %w", err)
	}
	return leads, nil
}

// FindBySourceURL returns the lead with the given source URL, or (nil, nil)
// if none exists.
func (s *SQLiteStore) FindBySourceURL(url string) (*model.Lead, error) {
	row := s.db.QueryRow(`SELECT id, `+leadColumns+` FROM leads WHERE source_url = ? LIMIT 1`, url)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying lead by source url: %w", err)
	}
	return lead, nil
}

// FindByTitle returns the lead with the given title, or (nil, nil) if none
// exists.
func (s *SQLiteStore) FindByTitle(title string) (*model.Lead, error) {
	row := s.db.QueryRow(`SELECT id, `+leadColumns+` FROM leads WHERE title = ? LIMIT 1`, title)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying lead by title: %w", err)
	}
	return lead, nil
}

// CountByStatus returns the number of leads per status. Statuses with no
// leads are absent from the map.
func (s *SQLiteStore) CountByStatus() (map[model.Status]int, error) {
	rows, err := s.db.Query(`SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting leads by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Status]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning status count: %w", err)
		}
		counts[model.Status(status)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating status counts: %w", err)
	}
	return counts, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*model.Lead, error) {
	var lead model.Lead
	var status string
	err := row.Scan(&lead.ID,
		&lead.Title, &lead.Source, &lead.SourceURL, &lead.Keywords, &lead.Preview,
		&lead.FullText, &lead.Location, &lead.CompanyName, &lead.CompanyWebsite,
		&lead.CompanyAddress, &lead.CompanyEmail, &lead.ContactName,
		&lead.ContactRole, &lead.ContactProfileURL, &lead.ContactSource,
		&lead.CoverLetter, &status, &lead.CreatedAt, &lead.UpdatedAt)
	if err != nil {
		return nil, err
	}
	lead.Status = model.Status(status)
	return &lead, nil
}
