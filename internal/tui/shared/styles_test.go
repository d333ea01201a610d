//nolint:varnamelen // Test files use idiomatic short variable names (g, etc.)
package shared_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/dirlist/internal/tui/shared"
)

func TestRenderFunctions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.RenderBox("test")).Should(ContainSubstring("test"))
	g.Expect(shared.RenderDim("test")).Should(ContainSubstring("test"))
	g.Expect(shared.RenderError("test")).Should(ContainSubstring("test"))
	g.Expect(shared.RenderLabel("test")).Should(ContainSubstring("test"))
	g.Expect(shared.RenderSubtitle("test")).Should(ContainSubstring("test"))
	g.Expect(shared.RenderTitle("test")).Should(ContainSubstring("test"))
	g.Expect(shared.RenderWarning("test")).Should(ContainSubstring("test"))
}

func TestColors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.AccentColor()).ShouldNot(BeEmpty())
	g.Expect(shared.DimColor()).ShouldNot(BeEmpty())
	g.Expect(shared.ErrorColor()).ShouldNot(BeEmpty())
	g.Expect(shared.HighlightColor()).ShouldNot(BeEmpty())
	g.Expect(shared.NormalColor()).ShouldNot(BeEmpty())
	g.Expect(shared.PrimaryColor()).ShouldNot(BeEmpty())
	g.Expect(shared.SubtleColor()).ShouldNot(BeEmpty())
	g.Expect(shared.WarningColor()).ShouldNot(BeEmpty())
}
