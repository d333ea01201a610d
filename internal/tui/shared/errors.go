package shared

import (
	"fmt"
	"strings"

	"github.com/joe/dirlist/pkg/errors"
)

// RenderListingError renders a failed listing with its suggestions. The
// error message is cut to maxWidth when there is room for an ellipsis.
func RenderListingError(err error, maxWidth int) string {
	if err == nil {
		return ""
	}

	var builder strings.Builder

	errMsg := err.Error()
	if maxWidth > EllipsisLength && len(errMsg) > maxWidth {
		errMsg = errMsg[:maxWidth-EllipsisLength] + strings.Repeat(".", EllipsisLength)
	}

	fmt.Fprintf(&builder, "%s\n", RenderError(errMsg))

	suggestions := errors.FormatSuggestions(err)
	if suggestions != "" {
		fmt.Fprintf(&builder, "\n%s\n", RenderDim(suggestions))
	}

	return builder.String()
}
