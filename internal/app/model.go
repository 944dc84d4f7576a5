package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"reviewdesk/internal/logging"
	"reviewdesk/internal/mutation"
	"reviewdesk/internal/selection"
	"reviewdesk/internal/store"
	"reviewdesk/internal/types"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// tabs + divider above the panel; bulk bar, input, toast and help below.
	chromeTop    = 2
	chromeBottom = 4
)

type viewKind int

const (
	viewSitemaps viewKind = iota
	viewPages
	viewEmails
)

func (v viewKind) String() string {
	switch v {
	case viewSitemaps:
		return "sitemaps"
	case viewPages:
		return "pages"
	case viewEmails:
		return "emails"
	default:
		return "unknown"
	}
}

func (v viewKind) resource() mutation.Resource {
	switch v {
	case viewPages:
		return mutation.Pages
	case viewEmails:
		return mutation.Emails
	default:
		return mutation.Sitemaps
	}
}

type Options struct {
	API            ReviewAPI
	Logger         logging.Logger
	Flags          *store.Flags
	BulkPolicy     string
	ShowOnboarding bool
	Clipboard      ClipboardService
}

type Model struct {
	api       ReviewAPI
	logger    logging.Logger
	flags     *store.Flags
	clipboard ClipboardService

	busy  *mutation.Busy
	bulk  *mutation.Bulk
	items *mutation.Item

	view     viewKind
	panels   map[viewKind]*ListPanel
	loading  map[viewKind]bool
	sitemaps map[types.ItemID]*types.Sitemap
	sitemap  *types.Sitemap

	confirm        *ConfirmController
	confirmPending *mutation.Pending
	confirmView    viewKind

	addInput       *AddInputController
	onboarding     *OnboardingPanel
	showOnboarding bool

	status     string
	toastText  string
	toastLevel toastLevel
	toastUntil time.Time
	now        func() time.Time

	width  int
	height int
}

func NewModel(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	clipboard := opts.Clipboard
	if clipboard == nil {
		clipboard = defaultClipboardService{}
	}
	m := &Model{
		api:            opts.API,
		logger:         logger,
		flags:          opts.Flags,
		clipboard:      clipboard,
		busy:           mutation.NewBusy(),
		view:           viewSitemaps,
		loading:        map[viewKind]bool{},
		sitemaps:       map[types.ItemID]*types.Sitemap{},
		confirm:        NewConfirmController(),
		addInput:       NewAddInputController(defaultWidth),
		onboarding:     &OnboardingPanel{},
		showOnboarding: opts.ShowOnboarding,
		now:            time.Now,
	}
	m.panels = map[viewKind]*ListPanel{
		viewSitemaps: NewListPanel(selection.NewList(nil), plainRowLabel, "No sitemaps yet."),
		viewPages:    NewListPanel(selection.NewList(nil), pageRowLabel, "No pages in this sitemap."),
		viewEmails:   NewListPanel(selection.NewList(nil), emailRowLabel, "No email addresses yet. Press i to add one."),
	}
	policy := opts.BulkPolicy
	if policy == "" {
		policy = mutation.PolicyReload
	}
	mopts := []mutation.Option{
		mutation.WithLogger(logger.With(logging.F("component", "mutation"))),
		mutation.WithBusy(m.busy),
		mutation.WithBulkPolicy(policy),
	}
	m.bulk = mutation.NewBulk(opts.API, m, mopts...)
	m.items = mutation.NewItem(opts.API, m, mopts...)
	m.resize(defaultWidth, defaultHeight)
	return m
}

func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(model)
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.api != nil {
		m.loading[viewSitemaps] = true
		m.loading[viewEmails] = true
		cmds = append(cmds, fetchSitemapsCmd(m.api), fetchEmailsCmd(m.api))
	}
	if m.showOnboarding {
		cmds = append(cmds, loadOnboardingCmd(m.flags))
	}
	return tea.Batch(cmds...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		m.handleTick(msg)
		return m, tickCmd()
	case sitemapsMsg:
		m.handleSitemaps(msg)
		return m, nil
	case pagesMsg:
		m.handlePages(msg)
		return m, nil
	case emailsMsg:
		m.handleEmails(msg)
		return m, nil
	case bulkSettledMsg:
		panel := m.panels[msg.view]
		effect := m.bulk.Settle(panel.List(), msg.pending, msg.result, msg.err)
		panel.Sync()
		return m, m.applyEffect(msg.view, effect)
	case itemSettledMsg:
		panel := m.panels[msg.view]
		effect := m.items.Settle(panel.List(), msg.pending, msg.result, msg.err)
		panel.Sync()
		return m, m.applyEffect(msg.view, effect)
	case onboardingMsg:
		if !msg.dismissed {
			m.onboarding.Show()
		}
		return m, nil
	case clipboardResultMsg:
		m.handleClipboardResult(msg)
		return m, nil
	case tea.MouseClickMsg:
		return m, m.handleMouseClick(msg)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}
	if m.addInput.Active() {
		return m, m.addInput.Update(msg)
	}
	return m, nil
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *Model) resize(width, height int) {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	m.width = width
	m.height = height
	panelHeight := max(2, height-chromeTop-chromeBottom)
	for _, panel := range m.panels {
		panel.SetSize(width, panelHeight)
	}
	m.addInput.Resize(width - 20)
}

func (m *Model) panel() *ListPanel {
	return m.panels[m.view]
}

func (m *Model) setView(view viewKind) {
	if view == viewPages && m.sitemap == nil {
		m.status = "open a sitemap first"
		return
	}
	if m.addInput.Active() {
		m.addInput.Close()
	}
	m.view = view
}

func (m *Model) cycleView(delta int) {
	order := []viewKind{viewSitemaps, viewPages, viewEmails}
	if m.sitemap == nil {
		order = []viewKind{viewSitemaps, viewEmails}
	}
	current := 0
	for i, view := range order {
		if view == m.view {
			current = i
		}
	}
	next := (current + delta + len(order)) % len(order)
	m.setView(order[next])
}

func (m *Model) handleSitemaps(msg sitemapsMsg) {
	m.loading[viewSitemaps] = false
	if msg.err != nil {
		m.reportLoadError(viewSitemaps, msg.err)
		return
	}
	m.sitemaps = make(map[types.ItemID]*types.Sitemap, len(msg.sitemaps))
	for _, sitemap := range msg.sitemaps {
		if sitemap != nil {
			m.sitemaps[sitemap.ID] = sitemap
		}
	}
	panel := m.panels[viewSitemaps]
	panel.List().Replace(selection.SitemapItems(msg.sitemaps))
	panel.Sync()
	if m.sitemap == nil {
		return
	}
	if current, ok := m.sitemaps[m.sitemap.ID]; ok {
		m.sitemap = current
		return
	}
	m.closeSitemap()
}

// closeSitemap forgets the open sitemap and its pages.
func (m *Model) closeSitemap() {
	m.sitemap = nil
	m.panels[viewPages].List().Replace(nil)
	m.panels[viewPages].Sync()
	m.loading[viewPages] = false
	if m.view == viewPages {
		m.view = viewSitemaps
	}
}

func (m *Model) handlePages(msg pagesMsg) {
	if m.sitemap == nil || msg.sitemapID != m.sitemap.ID {
		m.logger.Debug("stale pages response dropped", logging.F("sitemap_id", msg.sitemapID.String()))
		return
	}
	m.loading[viewPages] = false
	if msg.err != nil {
		m.reportLoadError(viewPages, msg.err)
		return
	}
	panel := m.panels[viewPages]
	panel.List().Replace(selection.PageItems(msg.pages))
	panel.Sync()
}

func (m *Model) handleEmails(msg emailsMsg) {
	m.loading[viewEmails] = false
	if msg.err != nil {
		m.reportLoadError(viewEmails, msg.err)
		return
	}
	panel := m.panels[viewEmails]
	panel.List().Replace(selection.EmailItems(msg.emails))
	panel.Sync()
}

func (m *Model) reportLoadError(view viewKind, err error) {
	m.logger.Warn("list load failed", logging.F("view", view.String()), logging.Err(err))
	m.showErrorToast("Failed to load " + view.String())
	m.status = fmt.Sprintf("load %s: %v", view, err)
}

func (m *Model) reload(view viewKind) tea.Cmd {
	if m.api == nil {
		return nil
	}
	switch view {
	case viewSitemaps:
		m.loading[viewSitemaps] = true
		return fetchSitemapsCmd(m.api)
	case viewPages:
		if m.sitemap == nil {
			return nil
		}
		m.loading[viewPages] = true
		return fetchPagesCmd(m.api, m.sitemap.ID)
	case viewEmails:
		m.loading[viewEmails] = true
		return fetchEmailsCmd(m.api)
	}
	return nil
}

func (m *Model) applyEffect(view viewKind, effect mutation.Effect) tea.Cmd {
	if effect.ClearInput {
		m.addInput.Clear()
		m.addInput.Close()
	}
	if view == viewSitemaps && m.sitemap != nil && effect.Removed != "" && effect.Removed == m.sitemap.ID {
		delete(m.sitemaps, effect.Removed)
		m.closeSitemap()
	}
	if effect.Reload {
		return m.reload(view)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}
	if m.confirm.IsOpen() {
		_, choice := m.confirm.HandleKey(msg)
		return m.resolveConfirm(choice)
	}
	if m.onboarding.Visible() {
		return m.handleOnboardingKey(key)
	}
	if m.addInput.Active() {
		return m.handleAddKey(msg)
	}

	panel := m.panel()
	switch key {
	case "q":
		return tea.Quit
	case "tab":
		m.cycleView(1)
	case "shift+tab":
		m.cycleView(-1)
	case "1":
		m.setView(viewSitemaps)
	case "2":
		m.setView(viewPages)
	case "3":
		m.setView(viewEmails)
	case "up", "k":
		panel.Move(-1)
	case "down", "j":
		panel.Move(1)
	case "pgup":
		panel.Move(-max(1, panel.bodyHeight()))
	case "pgdown":
		panel.Move(max(1, panel.bodyHeight()))
	case "home", "g":
		panel.Move(-panel.List().Len())
	case "end", "G":
		panel.Move(panel.List().Len())
	case "space":
		panel.ToggleCurrent()
	case "a":
		panel.ToggleAll()
	case "enter":
		if m.view == viewSitemaps {
			return m.openCurrentSitemap()
		}
	case "esc":
		if m.view == viewPages {
			m.setView(viewSitemaps)
		}
	case "m":
		return m.startBulk(types.ActionMarkReview)
	case "u":
		return m.startBulk(types.ActionUnmarkReview)
	case "d":
		return m.startItem(types.ActionDelete)
	case "x":
		return m.startItem(types.ActionArchive)
	case "t":
		return m.startItem(types.ActionToggle)
	case "i", "+":
		return m.openAddInput()
	case "y":
		return m.copySelectedURLs()
	case "r":
		return m.reload(m.view)
	case "?":
		m.onboarding.Show()
	}
	return nil
}

func (m *Model) handleOnboardingKey(key string) tea.Cmd {
	switch key {
	case "enter", "esc", "q", "?":
		m.onboarding.Hide()
	case "d", "D":
		m.onboarding.Hide()
		m.showInfoToast("Onboarding hidden. Press ? to see it again.")
		return dismissOnboardingCmd(m.flags)
	}
	return nil
}

func (m *Model) openCurrentSitemap() tea.Cmd {
	item, ok := m.panel().Current()
	if !ok {
		return nil
	}
	sitemap, ok := m.sitemaps[item.ID]
	if !ok {
		sitemap = &types.Sitemap{ID: item.ID, URL: item.Label}
	}
	if m.sitemap == nil || m.sitemap.ID != sitemap.ID {
		m.panels[viewPages].List().Replace(nil)
		m.panels[viewPages].Sync()
	}
	m.sitemap = sitemap
	m.view = viewPages
	return m.reload(viewPages)
}

func (m *Model) startBulk(action types.Action) tea.Cmd {
	if m.view != viewPages {
		m.status = "bulk actions apply to pages"
		return nil
	}
	p, err := m.bulk.Begin(m.panel().List(), mutation.Request{Resource: mutation.Pages, Action: action})
	if err != nil {
		m.noteBeginError(err)
		return nil
	}
	m.status = fmt.Sprintf("updating %d page(s)…", len(p.IDs()))
	return bulkSendCmd(m.bulk, viewPages, p)
}

func (m *Model) startItem(action types.Action) tea.Cmd {
	if !m.actionAvailable(action) {
		m.status = fmt.Sprintf("%s is not available for %s", action.Verb(), m.view)
		return nil
	}
	item, ok := m.panel().Current()
	if !ok {
		m.status = "nothing to " + action.Verb()
		return nil
	}
	req := mutation.Request{
		Resource: m.view.resource(),
		Action:   action,
		ID:       item.ID,
		Label:    item.Label,
	}
	if action == types.ActionToggle {
		req.Enabled = !item.Enabled
	}
	p, err := m.items.Begin(m.panel().List(), req)
	if err != nil {
		m.noteBeginError(err)
		return nil
	}
	if p.Step() == mutation.StepConfirm {
		m.confirmPending = p
		m.confirmView = m.view
		m.confirm.Open(confirmTitle(action, req.Resource), p.Prompt(), titleWord(action.Verb()), "Cancel")
		return nil
	}
	return itemSendCmd(m.items, m.view, p)
}

func (m *Model) actionAvailable(action types.Action) bool {
	switch action {
	case types.ActionDelete:
		return m.view == viewSitemaps || m.view == viewEmails
	case types.ActionArchive:
		return m.view == viewSitemaps
	case types.ActionToggle:
		return m.view == viewEmails
	}
	return false
}

func (m *Model) resolveConfirm(choice confirmChoice) tea.Cmd {
	if choice == confirmChoiceNone {
		return nil
	}
	p, view := m.confirmPending, m.confirmView
	m.confirmPending = nil
	m.confirm.Close()
	if !m.items.Confirmed(p, choice == confirmChoiceConfirm) {
		m.status = "cancelled"
		return nil
	}
	return itemSendCmd(m.items, view, p)
}

func (m *Model) openAddInput() tea.Cmd {
	if m.view != viewEmails {
		m.status = "switch to emails to add an address"
		return nil
	}
	return m.addInput.Open()
}

func (m *Model) handleAddKey(msg tea.KeyPressMsg) tea.Cmd {
	adding := m.busy.Active(mutation.Emails.AddKey())
	switch msg.String() {
	case "esc":
		m.addInput.Close()
		return nil
	case "enter":
		if adding {
			return nil
		}
		p, err := m.items.Begin(m.panels[viewEmails].List(), mutation.Request{
			Resource: mutation.Emails,
			Action:   types.ActionAdd,
			Value:    m.addInput.Value(),
		})
		if err != nil {
			m.noteBeginError(err)
			return nil
		}
		return itemSendCmd(m.items, viewEmails, p)
	}
	if adding {
		return nil
	}
	return m.addInput.Update(msg)
}

func (m *Model) noteBeginError(err error) {
	var validation *mutation.ValidationError
	switch {
	case errors.As(err, &validation):
		// already reported through Notify
	case errors.Is(err, mutation.ErrBusy):
		m.status = "request already in progress"
	case errors.Is(err, mutation.ErrNotListed):
		m.status = "item is no longer listed"
	default:
		m.logger.Warn("action rejected", logging.Err(err))
		m.status = err.Error()
	}
}

func (m *Model) copySelectedURLs() tea.Cmd {
	if m.view != viewPages {
		m.status = "copy works on pages"
		return nil
	}
	list := m.panel().List()
	var urls []string
	for _, id := range list.SelectedIDs() {
		if item, ok := list.Item(id); ok {
			urls = append(urls, item.Label)
		}
	}
	if len(urls) == 0 {
		item, ok := m.panel().Current()
		if !ok {
			m.status = "nothing to copy"
			return nil
		}
		urls = []string{item.Label}
	}
	return copyURLsCmd(m.clipboard, urls)
}

func (m *Model) handleClipboardResult(msg clipboardResultMsg) {
	if msg.err != nil {
		m.logger.Warn("clipboard copy failed", logging.Err(msg.err))
		m.showErrorToast("Copy failed: " + msg.err.Error())
		return
	}
	if msg.method == clipboardMethodOSC52 {
		m.showWarningToast(fmt.Sprintf("Copied %d URL(s) through the terminal; paste may not reach every app", msg.count))
	} else {
		m.showInfoToast(fmt.Sprintf("Copied %d URL(s)", msg.count))
	}
	m.status = fmt.Sprintf("copied %d URL(s) via %s", msg.count, msg.method)
}

func (m *Model) handleMouseClick(msg tea.MouseClickMsg) tea.Cmd {
	if m.confirm.IsOpen() {
		_, choice := m.confirm.HandleMouse(msg, m.width, m.height)
		return m.resolveConfirm(choice)
	}
	if m.onboarding.Visible() || msg.Button != tea.MouseLeft {
		return nil
	}
	if msg.Y == 0 {
		return m.clickTab(msg.X)
	}
	m.panel().HandleClick(msg.Y - chromeTop)
	return nil
}

func (m *Model) clickTab(x int) tea.Cmd {
	offset := 0
	for _, tab := range m.tabs() {
		width := len([]rune(tab.title)) + 2
		if x >= offset && x < offset+width {
			m.setView(tab.view)
			return nil
		}
		offset += width
	}
	return nil
}

type tabEntry struct {
	view  viewKind
	title string
}

func (m *Model) tabs() []tabEntry {
	tabs := []tabEntry{{view: viewSitemaps, title: "Sitemaps"}}
	if m.sitemap != nil {
		tabs = append(tabs, tabEntry{view: viewPages, title: "Pages: " + truncateLabel(m.sitemap.DisplayName(), 30)})
	}
	tabs = append(tabs, tabEntry{view: viewEmails, title: "Emails"})
	for i := range tabs {
		if m.loading[tabs[i].view] {
			tabs[i].title += " …"
		}
	}
	return tabs
}

func (m *Model) render() string {
	var tabs strings.Builder
	for _, tab := range m.tabs() {
		if tab.view == m.view {
			tabs.WriteString(tabActiveStyle.Render(tab.title))
		} else {
			tabs.WriteString(tabStyle.Render(tab.title))
		}
	}
	lines := []string{
		truncateToWidth(tabs.String(), m.width),
		dividerStyle.Render(strings.Repeat("─", m.width)),
	}

	body := m.panel().View()
	if m.onboarding.Visible() {
		body = m.onboarding.View(m.width, m.height-chromeTop-chromeBottom)
	}
	lines = append(lines, strings.Split(body, "\n")...)
	lines = append(lines,
		m.bulkBarLine(),
		m.inputLine(),
		m.toastLine(m.width),
		helpStyle.Render(truncateToWidth(m.helpText(), m.width)),
	)

	if m.confirm.IsOpen() {
		dialog, row := m.confirm.View(m.width, m.height)
		lines = overlayLines(lines, strings.Split(dialog, "\n"), row)
	}
	return padLines(lines, m.width)
}

func (m *Model) bulkBarLine() string {
	agg := selection.Derive(m.panel().List())
	if !agg.BulkBarVisible {
		return ""
	}
	text := fmt.Sprintf(" %d selected", agg.Selected)
	if m.view == viewPages {
		if m.busy.Active(mutation.Pages.BulkKey()) {
			return busyStyle.Render(text + " · updating…")
		}
		text += " · m mark for review · u clear review flag · y copy URLs"
	}
	return bulkBarStyle.Render(padToWidth(truncateToWidth(text, m.width), m.width))
}

func (m *Model) inputLine() string {
	if !m.addInput.Active() {
		if m.view == viewEmails && m.busy.Active(mutation.Emails.AddKey()) {
			return busyStyle.Render(" " + mutation.AddingLabel)
		}
		return ""
	}
	label := inputLabelStyle.Render(" Add email: ")
	if m.busy.Active(mutation.Emails.AddKey()) {
		return label + busyStyle.Render(mutation.AddingLabel)
	}
	return label + m.addInput.View()
}

func (m *Model) helpText() string {
	if m.addInput.Active() {
		return "enter add · esc cancel"
	}
	switch m.view {
	case viewSitemaps:
		return "space select · a all · enter pages · d delete · x archive · r reload · tab views · ? help · q quit"
	case viewPages:
		return "space select · a all · m mark · u unmark · y copy · esc back · r reload · ? help · q quit"
	default:
		return "space select · a all · t toggle · i add · d delete · r reload · ? help · q quit"
	}
}

func confirmTitle(action types.Action, resource mutation.Resource) string {
	return titleWord(action.Verb()) + " " + resource.Noun
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func overlayLines(base, block []string, row int) []string {
	for i, line := range block {
		idx := row + i
		if idx < 0 {
			continue
		}
		for len(base) <= idx {
			base = append(base, "")
		}
		base[idx] = line
	}
	return base
}
