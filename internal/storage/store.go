package storage

import "context"

// Store bundles the repos behind the run store used by the activities.
type Store struct {
	*RunRepo
	*RecordRepo
}

func NewStore(q Querier) *Store {
	return &Store{RunRepo: NewRunRepo(q), RecordRepo: NewRecordRepo(q)}
}

// OpenStore connects to postgres, creates the schema and returns the store.
// The caller closes the returned DB.
func OpenStore(ctx context.Context, dsn string) (*DB, *Store, error) {
	db, err := NewDB(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := EnsureSchema(ctx, db.Pool); err != nil {
		db.Close()
		return nil, nil, err
	}
	return db, NewStore(db.Pool), nil
}
