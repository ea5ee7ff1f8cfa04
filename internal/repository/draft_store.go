package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/muhammadidrees/raseed/internal/db"
	"github.com/muhammadidrees/raseed/internal/domain"
)

var errDraftNotFound = errors.New("draft not found")

// DraftStore keeps JSON documents in the drafts table, one per key
type DraftStore struct {
	db *db.DB
}

// NewDraftStore creates a new DraftStore
func NewDraftStore(database *db.DB) *DraftStore {
	return &DraftStore{db: database}
}

// get decodes the draft stored under key into v.
// Returns errDraftNotFound when the key has never been saved.
func (s *DraftStore) get(ctx context.Context, key string, v any) error {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM drafts WHERE key = ?", key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errDraftNotFound
		}
		return fmt.Errorf("failed to get draft %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return fmt.Errorf("failed to decode draft %s: %w", key, err)
	}
	return nil
}

// put replaces the draft stored under key
func (s *DraftStore) put(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", key, err)
	}

	query := `
		INSERT INTO drafts (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, string(payload), formatTime()); err != nil {
		return fmt.Errorf("failed to save draft %s: %w", key, err)
	}
	return nil
}

// Reset deletes the drafts under the given keys, or all drafts if none are given
func (s *DraftStore) Reset(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		keys = AllKeys
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, "DELETE FROM drafts WHERE key = ?", key); err != nil {
			return fmt.Errorf("failed to delete draft %s: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reset: %w", err)
	}
	return nil
}

// PartyRepo stores one party record under a fixed key.
// It implements PersonalInfoRepository, CompanyInfoRepository and BankInfoRepository.
type PartyRepo[T any] struct {
	store *DraftStore
	key   string
}

// NewPersonalInfoRepo creates the repository for issuer details
func NewPersonalInfoRepo(store *DraftStore) *PartyRepo[domain.PersonalInfo] {
	return &PartyRepo[domain.PersonalInfo]{store: store, key: KeyPersonal}
}

// NewCompanyInfoRepo creates the repository for company details
func NewCompanyInfoRepo(store *DraftStore) *PartyRepo[domain.CompanyInfo] {
	return &PartyRepo[domain.CompanyInfo]{store: store, key: KeyCompany}
}

// NewBankInfoRepo creates the repository for bank details
func NewBankInfoRepo(store *DraftStore) *PartyRepo[domain.BankInfo] {
	return &PartyRepo[domain.BankInfo]{store: store, key: KeyBank}
}

// Load returns the stored record, or an empty one if nothing was saved
func (r *PartyRepo[T]) Load(ctx context.Context) (*T, error) {
	v := new(T)
	if err := r.store.get(ctx, r.key, v); err != nil {
		if errors.Is(err, errDraftNotFound) {
			return new(T), nil
		}
		return nil, err
	}
	return v, nil
}

// Save replaces the stored record
func (r *PartyRepo[T]) Save(ctx context.Context, v *T) error {
	if v == nil {
		return fmt.Errorf("cannot save nil %s", r.key)
	}
	return r.store.put(ctx, r.key, v)
}

var (
	_ InvoiceDataRepository  = (*InvoiceDataRepo)(nil)
	_ PersonalInfoRepository = (*PartyRepo[domain.PersonalInfo])(nil)
	_ CompanyInfoRepository  = (*PartyRepo[domain.CompanyInfo])(nil)
	_ BankInfoRepository     = (*PartyRepo[domain.BankInfo])(nil)
	_ DraftResetter          = (*DraftStore)(nil)
)
