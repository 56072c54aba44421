package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/domsift/domsift"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// marshalTree encodes a page tree as JSON. A nil tree maps to SQL NULL.
func marshalTree(tree *domsift.Node) (sql.NullString, error) {
	if tree == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(tree)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode tree: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

// unmarshalTree decodes a stored page tree. SQL NULL maps to a nil tree.
func unmarshalTree(value sql.NullString) (*domsift.Node, error) {
	if !value.Valid || value.String == "" {
		return nil, nil
	}
	var tree domsift.Node
	if err := json.Unmarshal([]byte(value.String), &tree); err != nil {
		return nil, fmt.Errorf("failed to decode tree: %w", err)
	}
	return &tree, nil
}
