package output

import (
	"fmt"
	"io"

	"github.com/rgehrsitz/rulescalc/internal/domain"
)

// WriteTrace prints benefit trace steps, one step per line followed by its
// named values.
func WriteTrace(w io.Writer, steps []domain.TraceStep, indent string) {
	for _, step := range steps {
		if step.Reason != "" {
			fmt.Fprintf(w, "%s[%s] %s\n", indent, step.Type, step.Reason)
		} else {
			fmt.Fprintf(w, "%s[%s]\n", indent, step.Type)
		}
		for _, v := range step.Values {
			fmt.Fprintf(w, "%s  %-24s %s\n", indent, v.Name, v.Value.String())
		}
	}
}
