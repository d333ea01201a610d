package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/dirlist/internal/listing"
	"github.com/joe/dirlist/internal/logger"
	"github.com/joe/dirlist/internal/tui/shared"
	"github.com/joe/dirlist/pkg/filesystem"
)

// chromeLines is the number of rows around the entry list: title, blank,
// blank, summary, help.
const chromeLines = 5

// BrowserScreen lists one directory at a time and moves through the tree.
type BrowserScreen struct {
	fsys   filesystem.FileSystem
	lister *listing.Lister
	keys   keyMap
	help   help.Model

	dir     string
	result  *listing.Result
	loading bool

	// selectName is put under the cursor when the pending listing arrives.
	selectName string

	cursor int
	offset int
	width  int
	height int

	quitting bool
}

// NewBrowserScreen creates a browser rooted at dir. filter may be nil.
func NewBrowserScreen(fsys filesystem.FileSystem, filter listing.Filter, dir string) *BrowserScreen {
	return &BrowserScreen{
		fsys:    fsys,
		lister:  listing.NewLister(fsys, filter),
		keys:    defaultKeyMap(),
		help:    help.New(),
		dir:     dir,
		loading: true,
	}
}

// Dir returns the directory being shown or loaded.
func (s BrowserScreen) Dir() string {
	return s.dir
}

// Init implements tea.Model
func (s BrowserScreen) Init() tea.Cmd {
	return s.load(s.dir)
}

// Selected returns the entry under the cursor.
func (s BrowserScreen) Selected() (filesystem.Entry, bool) {
	if s.result == nil || s.cursor >= len(s.result.Entries) {
		return filesystem.Entry{}, false
	}

	return s.result.Entries[s.cursor], true
}

// Update implements tea.Model
func (s BrowserScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.help.Width = msg.Width

		return s, nil
	case shared.ListingLoadedMsg:
		return s.handleListing(msg), nil
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}

	return s, nil
}

// View implements tea.Model
func (s BrowserScreen) View() string {
	if s.quitting {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("dirlist"))
	builder.WriteString(" ")
	builder.WriteString(shared.RenderLabel(shared.TruncatePath(s.dir, s.width-len("dirlist "))))
	builder.WriteString("\n\n")

	switch {
	case s.result == nil:
		builder.WriteString(shared.RenderDim("Loading..."))
		builder.WriteString("\n")
	case s.result.Err != nil:
		content := shared.RenderListingError(s.result.Err, s.width-shared.DefaultPadding*3)
		builder.WriteString(shared.RenderWidgetBox("Cannot list "+s.result.Dir, content, s.width))
		builder.WriteString("\n")
	default:
		builder.WriteString(s.renderEntries())
		builder.WriteString("\n")
		builder.WriteString(shared.RenderSubtitle(listing.FormatSummary(s.result.Summarize(), s.result.Hidden)))
	}

	builder.WriteString("\n")
	builder.WriteString(s.help.View(s.keys))

	return builder.String()
}

func (s BrowserScreen) clampCursor() BrowserScreen {
	count := 0
	if s.result != nil {
		count = len(s.result.Entries)
	}

	s.cursor = max(min(s.cursor, count-1), 0)
	s.offset, _ = shared.VisibleWindow(s.cursor, s.offset, s.listHeight(), count)

	return s
}

// enter starts loading dir. A listing still in flight for another
// directory is ignored when it arrives.
func (s BrowserScreen) enter(dir, selectName string) (tea.Model, tea.Cmd) {
	s.dir = dir
	s.loading = true
	s.selectName = selectName

	return s, s.load(dir)
}

func (s BrowserScreen) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, s.keys.Quit):
		s.quitting = true
		return s, tea.Quit
	case key.Matches(msg, s.keys.Help):
		s.help.ShowAll = !s.help.ShowAll
		return s, nil
	case key.Matches(msg, s.keys.Parent):
		return s.openParent()
	}

	if s.loading {
		return s, nil
	}

	switch {
	case key.Matches(msg, s.keys.Up):
		s.cursor--
	case key.Matches(msg, s.keys.Down):
		s.cursor++
	case key.Matches(msg, s.keys.PageUp):
		s.cursor -= s.listHeight()
	case key.Matches(msg, s.keys.PageDown):
		s.cursor += s.listHeight()
	case key.Matches(msg, s.keys.Top):
		s.cursor = 0
	case key.Matches(msg, s.keys.Bottom):
		s.cursor = len(s.result.Entries) - 1
	case key.Matches(msg, s.keys.Open):
		entry, ok := s.Selected()
		if ok && entry.IsDir {
			return s.enter(s.fsys.Join(s.dir, entry.Name), "")
		}
	case key.Matches(msg, s.keys.Reload):
		entry, _ := s.Selected()
		return s.enter(s.dir, entry.Name)
	}

	return s.clampCursor(), nil
}

func (s BrowserScreen) handleListing(msg shared.ListingLoadedMsg) BrowserScreen {
	if msg.Result == nil || msg.Result.Dir != s.dir {
		return s
	}

	s.result = msg.Result
	s.loading = false
	s.cursor = 0
	s.offset = 0

	for i, entry := range s.result.Entries {
		if entry.Name == s.selectName {
			s.cursor = i
			break
		}
	}

	s.selectName = ""

	return s.clampCursor()
}

func (s BrowserScreen) listHeight() int {
	if s.height <= 0 {
		return shared.DefaultListHeight
	}

	return max(s.height-chromeLines, 1)
}

func (s BrowserScreen) load(dir string) tea.Cmd {
	lister := s.lister

	return func() tea.Msg {
		logger.Debug("Browsing %s", dir)
		return shared.ListingLoadedMsg{Result: lister.List(dir)}
	}
}

// openParent moves up one level and selects the directory we came from.
func (s BrowserScreen) openParent() (tea.Model, tea.Cmd) {
	parent, ok := parentDir(s.fsys, s.dir)
	if !ok {
		return s, nil
	}

	return s.enter(parent, filesystem.NewPath(s.dir).Name())
}

// parentDir returns the directory above dir, or false at the top of the tree.
// A root joins to itself; a relative path stops where it would climb above
// its starting point with "..".
func parentDir(fsys filesystem.FileSystem, dir string) (string, bool) {
	parent := fsys.Join(dir, "..")

	switch {
	case parent == dir:
		return "", false
	case parent == "..", strings.HasPrefix(parent, "../"), strings.HasPrefix(parent, `..\`):
		return "", false
	}

	return parent, true
}

func (s BrowserScreen) renderEntries() string {
	if len(s.result.Entries) == 0 {
		return shared.RenderDim("(empty)") + "\n"
	}

	var builder strings.Builder

	start, end := shared.VisibleWindow(s.cursor, s.offset, s.listHeight(), len(s.result.Entries))

	for i := start; i < end; i++ {
		entry := s.result.Entries[i]
		line := listing.FormatEntry(entry.Name, entry.IsDir, entry.Size, true)

		switch {
		case i == s.cursor:
			fmt.Fprintf(&builder, "%s\n", shared.SelectedItemStyle().Render(shared.PromptArrow+line))
		case entry.IsDir:
			fmt.Fprintf(&builder, "  %s\n", shared.DirItemStyle().Render(line))
		default:
			fmt.Fprintf(&builder, "  %s\n", shared.FileItemStyle().Render(line))
		}
	}

	return builder.String()
}
