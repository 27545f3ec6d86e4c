package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spec-kit/token-demo/internal/auth"
	apperrors "github.com/spec-kit/token-demo/pkg/util/errorutil"
)

// Reporter renders pipeline results as console lines.
type Reporter struct {
	out io.Writer
}

// NewReporter writes to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Token prints the issued token.
func (r *Reporter) Token(token string) {
	fmt.Fprintf(r.out, "Generated JWT: %s\n", token)
}

// Claims prints the claims as a JSON object with sorted keys. Nothing is
// printed when the claims cannot be serialized.
func (r *Reporter) Claims(claims auth.Claims) error {
	encoded, err := json.Marshal(claims)
	if err != nil {
		return apperrors.NewSerializationFailure(err)
	}
	fmt.Fprintf(r.out, "Parsed Claims: %s\n", encoded)
	return nil
}

// Error prints a verification or reporting failure.
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.out, "Error parsing JWT: %v\n", err)
}
