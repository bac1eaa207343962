package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallybook/tallybook/internal/apperrors"
	"github.com/tallybook/tallybook/internal/core/domain"
	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
	"github.com/tallybook/tallybook/internal/utils/accounting"
)

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for journal entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

// SaveEntry inserts the entry and all of its lines within one transaction, so
// a rejected or failed save leaves no partial entry behind.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	entryQuery := `
		INSERT INTO journal_entries (entry_id, company_id, entry_date, memo, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.Exec(ctx, entryQuery,
		entry.EntryID,
		entry.CompanyID,
		entry.EntryDate,
		entry.Memo,
		entry.CreatedAt,
		entry.LastUpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, account_id, line_no, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, line := range entry.Lines {
		batch.Queue(lineQuery,
			line.LineID,
			line.EntryID,
			line.AccountID,
			line.LineNo,
			line.Debit,
			line.Credit,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute line batch for entry "+entry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry with its lines in line order.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT entry_id, company_id, entry_date, memo, created_at, last_updated_at
		FROM journal_entries
		WHERE entry_id = $1;
	`
	var entry domain.JournalEntry
	err := r.Pool.QueryRow(ctx, query, entryID).Scan(
		&entry.EntryID,
		&entry.CompanyID,
		&entry.EntryDate,
		&entry.Memo,
		&entry.CreatedAt,
		&entry.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	linesByEntry, err := r.findLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = linesByEntry[entryID]
	return &entry, nil
}

// ListEntries retrieves a company's entries with lines, newest first. All set
// filter criteria apply together; date bounds are whole calendar days.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, companyID string, filter portsrepo.EntryFilter) ([]domain.JournalEntry, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT entry_id, company_id, entry_date, memo, created_at, last_updated_at
		FROM journal_entries
		WHERE company_id = $1`)
	args := []any{companyID}

	if filter.MemoContains != "" {
		args = append(args, "%"+filter.MemoContains+"%")
		sb.WriteString(` AND memo ILIKE $` + strconv.Itoa(len(args)))
	}
	start, end := accounting.Range(filter.From, filter.To).Bounds()
	if start != nil {
		args = append(args, *start)
		sb.WriteString(` AND entry_date >= $` + strconv.Itoa(len(args)))
	}
	if end != nil {
		args = append(args, *end)
		sb.WriteString(` AND entry_date < $` + strconv.Itoa(len(args)))
	}
	if filter.AccountID != "" {
		args = append(args, filter.AccountID)
		sb.WriteString(` AND EXISTS (
			SELECT 1 FROM journal_entry_lines l
			WHERE l.entry_id = journal_entries.entry_id AND l.account_id = $` + strconv.Itoa(len(args)) + `)`)
	}
	sb.WriteString(` ORDER BY entry_date DESC, created_at DESC;`)

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list entries for company "+companyID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	var entryIDs []string
	for rows.Next() {
		var entry domain.JournalEntry
		if err := rows.Scan(
			&entry.EntryID,
			&entry.CompanyID,
			&entry.EntryDate,
			&entry.Memo,
			&entry.CreatedAt,
			&entry.LastUpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry row", err)
		}
		entries = append(entries, entry)
		entryIDs = append(entryIDs, entry.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed while iterating entry rows", err)
	}
	if len(entries) == 0 {
		return entries, nil
	}

	linesByEntry, err := r.findLines(ctx, entryIDs)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Lines = linesByEntry[entries[i].EntryID]
	}
	return entries, nil
}

// findLines fetches the lines of the given entries keyed by entry ID.
func (r *PgxEntryRepository) findLines(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, line_no, debit, credit
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to fetch entry lines", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]domain.JournalEntryLine, len(entryIDs))
	for rows.Next() {
		var line domain.JournalEntryLine
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.AccountID,
			&line.LineNo,
			&line.Debit,
			&line.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry line row", err)
		}
		linesByEntry[line.EntryID] = append(linesByEntry[line.EntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed while iterating entry line rows", err)
	}
	return linesByEntry, nil
}

// DeleteEntry removes an entry; lines cascade with it. Deleting an absent
// entry is a no-op.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM journal_entries WHERE entry_id = $1;`
	_, err := r.Pool.Exec(ctx, query, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	return nil
}

// ListPostingsByCompany retrieves the posting read model for a whole company.
func (r *PgxEntryRepository) ListPostingsByCompany(ctx context.Context, companyID string) ([]domain.Posting, error) {
	query := `
		SELECT l.entry_id, l.account_id, e.entry_date, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.company_id = $1;
	`
	return r.queryPostings(ctx, query, companyID)
}

// ListPostingsByAccount retrieves the posting read model for one account.
func (r *PgxEntryRepository) ListPostingsByAccount(ctx context.Context, accountID string) ([]domain.Posting, error) {
	query := `
		SELECT l.entry_id, l.account_id, e.entry_date, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1;
	`
	return r.queryPostings(ctx, query, accountID)
}

func (r *PgxEntryRepository) queryPostings(ctx context.Context, query string, arg any) ([]domain.Posting, error) {
	rows, err := r.Pool.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list postings", err)
	}
	defer rows.Close()

	var postings []domain.Posting
	for rows.Next() {
		var p domain.Posting
		if err := rows.Scan(&p.EntryID, &p.AccountID, &p.EntryDate, &p.Debit, &p.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting row", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed while iterating posting rows", err)
	}
	return postings, nil
}
