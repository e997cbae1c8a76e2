// Package store persists permkit role records in PostgreSQL through dbkit.
//
// The store deals exclusively in permkit.RoleRecord values; compiled
// permissions are never written to the database. It implements
// permkit.RecordSource, so a live service can be (re)loaded from it:
//
//	st := store.New(db)
//	service := permkit.NewBuilder().Build()
//	if err := st.ApplyTo(ctx, service); err != nil { ... }
package store

import (
	"context"
	"time"

	"github.com/fernandezvara/dbkit"
	"github.com/uptrace/bun"

	"github.com/fernandezvara/permkit"
)

// roleRow is the bun model backing role records.
type roleRow struct {
	bun.BaseModel `bun:"table:permkit_roles,alias:pr"`

	ID          string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name        string    `bun:"name,notnull,unique"`
	Permissions []string  `bun:"permissions,type:text[]"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt   time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

func newRoleRow(rec permkit.RoleRecord) roleRow {
	return roleRow{
		Name:        rec.Name,
		Permissions: rec.Permissions,
	}
}

func (r roleRow) record() permkit.RoleRecord {
	perms := make([]string, len(r.Permissions))
	copy(perms, r.Permissions)
	return permkit.RoleRecord{Name: r.Name, Permissions: perms}
}

// Store reads and writes role records through a dbkit connection.
type Store struct {
	db dbkit.IDB
}

// New creates a role record store on top of an existing dbkit connection.
//
// Example:
//
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	st := store.New(db)
func New(db dbkit.IDB) *Store {
	return &Store{db: db}
}

// Migrations returns the database migrations required by the store.
// Run them with dbkit.Migrate(ctx, st.Migrations()).
func (s *Store) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "permkit-001",
			Description: "Create permkit_roles table",
			SQL: `
                CREATE TABLE IF NOT EXISTS permkit_roles (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL UNIQUE,
                    permissions TEXT[] NOT NULL DEFAULT '{}',
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
	}
}

// Load returns every stored role record ordered by name. It implements
// permkit.RecordSource.
func (s *Store) Load(ctx context.Context) ([]permkit.RoleRecord, error) {
	var rows []roleRow
	err := dbkit.WithErr1(s.db.NewSelect().Model(&rows).Order("name ASC").Scan(ctx), "LoadRoles").Err()
	if err != nil {
		return nil, err
	}

	records := make([]permkit.RoleRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.record())
	}
	return records, nil
}

// Get returns one stored role record by name.
func (s *Store) Get(ctx context.Context, name string) (permkit.RoleRecord, error) {
	var row roleRow
	err := dbkit.WithErr1(s.db.NewSelect().Model(&row).Where("name = ?", name).Limit(1).Scan(ctx), "GetRole").Err()
	if err != nil {
		return permkit.RoleRecord{}, err
	}
	return row.record(), nil
}

// Save upserts one role record by name.
func (s *Store) Save(ctx context.Context, rec permkit.RoleRecord) error {
	row := newRoleRow(rec)
	result, err := s.db.NewInsert().
		Model(&row).
		On("CONFLICT (name) DO UPDATE").
		Set("permissions = EXCLUDED.permissions").
		Set("updated_at = current_timestamp").
		Exec(ctx)
	return dbkit.WithErr(result, err, "SaveRole").Err()
}

// SaveAll upserts multiple role records.
func (s *Store) SaveAll(ctx context.Context, records []permkit.RoleRecord) error {
	for _, rec := range records {
		if err := s.Save(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a role record by name. Deleting a missing name is not an
// error.
func (s *Store) Delete(ctx context.Context, name string) error {
	result, err := s.db.NewDelete().
		Model((*roleRow)(nil)).
		Where("name = ?", name).
		Exec(ctx)
	return dbkit.WithErr(result, err, "DeleteRole").Err()
}

// Replace overwrites the whole stored role set with the given records.
// When the store sits on a plain connection the delete and insert run in
// one transaction; inside an existing transaction they join it.
func (s *Store) Replace(ctx context.Context, records []permkit.RoleRecord) error {
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.Transaction(ctx, func(tx *dbkit.Tx) error {
			return replace(ctx, tx, records)
		})
	}
	return replace(ctx, s.db, records)
}

func replace(ctx context.Context, db dbkit.IDB, records []permkit.RoleRecord) error {
	result, err := db.NewDelete().
		Model((*roleRow)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err := dbkit.WithErr(result, err, "ReplaceRolesDelete").Err(); err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}

	rows := make([]roleRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, newRoleRow(rec))
	}
	result, err = db.NewInsert().Model(&rows).Exec(ctx)
	return dbkit.WithErr(result, err, "ReplaceRolesInsert").Err()
}

// ApplyTo loads the stored records and swaps them into the live service as
// one clean update. Roles absent from the store disappear from the
// service; fallback roles are left untouched.
func (s *Store) ApplyTo(ctx context.Context, service *permkit.Service) error {
	up := service.Updater()
	if err := up.LoadFrom(ctx, s); err != nil {
		return err
	}
	up.Apply()
	return nil
}
