// Package report prepares the data handed to the export collaborator that
// renders static borrower reports. The artifact format (PDF layout, fonts,
// charts) is the exporter's concern, not this service's.
package report

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/lending/recovery-service/internal/domain"
)

// Fallbacks for identifiers built from incomplete names.
const (
	fallbackLoanCode = "GEN"
	fallbackInitial  = "X"
)

// GenerateBorrowerID builds the export identifier for a borrower report:
// loan-type prefix, name initials, unix timestamp, and a 4-hex random
// suffix, e.g. "PER-RS-1718000000-A3F0".
func GenerateBorrowerID(loanType, firstName, lastName string) string {
	return borrowerID(loanType, firstName, lastName, time.Now())
}

// borrowerID is the clock-injectable form used by tests.
func borrowerID(loanType, firstName, lastName string, now time.Time) string {
	code := fallbackLoanCode
	if trimmed := strings.TrimSpace(loanType); trimmed != "" {
		code = strings.ToUpper(trimmed)
		if len(code) > 3 {
			code = code[:3]
		}
	}

	return fmt.Sprintf("%s-%s%s-%d-%s",
		code,
		initial(firstName),
		initial(lastName),
		now.Unix(),
		randomSuffix(),
	)
}

func initial(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fallbackInitial
	}
	return strings.ToUpper(string([]rune(trimmed)[0]))
}

func randomSuffix() string {
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// a constant suffix still yields a usable identifier.
		return "0000"
	}
	return strings.ToUpper(hex.EncodeToString(buf))
}

// Artifact is the bundle handed to the export collaborator: the assembled
// record plus its generated identifier. The core does not format the
// artifact itself.
type Artifact struct {
	BorrowerID string                 `json:"borrower_id"`
	Record     *domain.BorrowerRecord `json:"record"`
	PreparedAt time.Time              `json:"prepared_at"`
}

// NewArtifact prepares an export bundle for an assembled record.
func NewArtifact(record *domain.BorrowerRecord) *Artifact {
	return &Artifact{
		BorrowerID: GenerateBorrowerID(record.Profile.LoanType, record.Profile.FirstName, record.Profile.LastName),
		Record:     record,
		PreparedAt: time.Now().UTC(),
	}
}
