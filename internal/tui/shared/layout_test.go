//nolint:varnamelen // Test files use idiomatic short variable names (g, etc.)
package shared_test

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/dirlist/internal/tui/shared"
)

func TestRenderWidgetBox(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := shared.RenderWidgetBox("Cannot list", "no such file", 40)

	g.Expect(result).Should(ContainSubstring("Cannot list"))
	g.Expect(result).Should(ContainSubstring("no such file"))

	for line := range strings.SplitSeq(result, "\n") {
		g.Expect(lipgloss.Width(line)).Should(BeNumerically("<=", 40))
	}
}

func TestRenderWidgetBox_UnknownWidth(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.RenderWidgetBox("Title", "body", 0)).Should(ContainSubstring("body"))
}
