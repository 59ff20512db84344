package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
)

const timeFormat = time.RFC3339Nano

// ErrInvalidToken is wrapped by every decoding failure. It also matches apperrors.ErrValidation.
var ErrInvalidToken = errors.New("invalid pagination token")

// Cursor points at the last journal entry of a page. Entries are listed by
// entry date, then creation time, then entry ID, all descending.
type Cursor struct {
	EntryDate time.Time
	CreatedAt time.Time
	EntryID   string
}

// EncodeToken creates an opaque token from a cursor.
func EncodeToken(c Cursor) string {
	tokenStr := strings.Join([]string{c.EntryDate.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.EntryID}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

func invalid(reason string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %w (%s): %w", apperrors.ErrValidation, ErrInvalidToken, reason, err)
	}
	return fmt.Errorf("%w: %w (%s)", apperrors.ErrValidation, ErrInvalidToken, reason)
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, invalid("base64 decode", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 || parts[2] == "" {
		return Cursor{}, invalid("split", nil)
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, invalid("entry date parse", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, invalid("created_at parse", err)
	}

	return Cursor{EntryDate: entryDate, CreatedAt: createdAt, EntryID: parts[2]}, nil
}
