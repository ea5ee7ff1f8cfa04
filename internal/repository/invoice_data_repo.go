package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/muhammadidrees/raseed/internal/logger"
	"github.com/rs/zerolog"
)

// invoiceDraft is the stored shape of the invoice draft. Terms stay a plain
// string so drafts written by older versions still decode.
type invoiceDraft struct {
	Date       string            `json:"date"`
	Terms      string            `json:"dueTerms"`
	CustomDays *int              `json:"customDueDays,omitempty"`
	Items      []domain.LineItem `json:"items"`
}

// InvoiceDataRepo is a SQLite implementation of InvoiceDataRepository
type InvoiceDataRepo struct {
	store *DraftStore
	now   func() time.Time
	log   zerolog.Logger
}

// NewInvoiceDataRepo creates a new InvoiceDataRepo
func NewInvoiceDataRepo(store *DraftStore) *InvoiceDataRepo {
	return &InvoiceDataRepo{
		store: store,
		now:   time.Now,
		log:   logger.WithComponent("invoice_data_repo"),
	}
}

// Load returns the stored invoice draft, or the default draft if none exists
func (r *InvoiceDataRepo) Load(ctx context.Context) (*domain.InvoiceData, error) {
	var draft invoiceDraft
	if err := r.store.get(ctx, KeyInvoiceData, &draft); err != nil {
		if errors.Is(err, errDraftNotFound) {
			return domain.NewInvoiceData(r.now()), nil
		}
		return nil, err
	}

	return r.fromDraft(draft), nil
}

// fromDraft converts a stored draft, repairing anything a user could not have entered
func (r *InvoiceDataRepo) fromDraft(draft invoiceDraft) *domain.InvoiceData {
	data := domain.NewInvoiceData(r.now())

	if draft.Date != "" {
		date, err := parseDate(draft.Date)
		if err != nil {
			r.log.Warn().Err(err).Msg("stored invoice date unreadable, using today")
		} else {
			data.Date = date
		}
	}

	terms, ok := domain.LegacyPaymentTerms(draft.Terms)
	if !ok {
		r.log.Warn().Str("terms", draft.Terms).Msg("unknown stored payment terms, using due on receipt")
	}
	data.SetTerms(terms, draft.CustomDays)

	if len(draft.Items) > 0 {
		data.Items = make([]domain.LineItem, len(draft.Items))
		for i, item := range draft.Items {
			if item.Key == "" {
				item.Key = uuid.NewString()
			}
			data.Items[i] = item
		}
	}

	return data
}

// Save replaces the stored invoice draft
func (r *InvoiceDataRepo) Save(ctx context.Context, data *domain.InvoiceData) error {
	if err := data.Validate(); err != nil {
		return fmt.Errorf("invalid invoice data: %w", err)
	}

	draft := invoiceDraft{
		Date:       data.Date.Format(dateLayout),
		Terms:      string(data.Terms),
		CustomDays: data.EffectiveCustomDays(),
		Items:      data.Items,
	}

	if err := r.store.put(ctx, KeyInvoiceData, draft); err != nil {
		return err
	}

	r.log.Debug().
		Str("terms", draft.Terms).
		Int("items", len(draft.Items)).
		Msg("saved invoice draft")
	return nil
}
