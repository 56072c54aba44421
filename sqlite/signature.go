package sqlite

import (
	"context"
	"time"

	"github.com/domsift/domsift"
)

// Compile-time interface verification.
var _ domsift.SignatureService = (*SignatureService)(nil)

// SignatureService implements domsift.SignatureService using SQLite. It
// accumulates the per-domain duplicate signature set across crawls.
type SignatureService struct {
	db *DB
}

// NewSignatureService creates a new SignatureService.
func NewSignatureService(db *DB) *SignatureService {
	return &SignatureService{db: db}
}

// AddSignatures records signatures as known duplicates for a domain.
// Already-recorded signatures are ignored.
func (s *SignatureService) AddSignatures(ctx context.Context, domain string, signatures []string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	for _, sig := range signatures {
		if sig == "" {
			continue
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO signatures (domain, signature, created_at)
			VALUES (?, ?, ?)
		`, domain, sig, now)
		if err != nil {
			return err
		}
	}

	return nil
}

// FindSignatures returns all duplicate signatures recorded for a domain.
func (s *SignatureService) FindSignatures(ctx context.Context, domain string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT signature FROM signatures WHERE domain = ? ORDER BY signature
	`, domain)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signatures []string
	for rows.Next() {
		var sig string
		if err := rows.Scan(&sig); err != nil {
			return nil, err
		}
		signatures = append(signatures, sig)
	}

	return signatures, rows.Err()
}
