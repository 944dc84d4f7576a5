package app

import "strings"

const onboardingMarkdown = `# Welcome to reviewdesk

Keep an eye on the pages of your sitemaps and on who gets the review emails.

- **space** selects a row, **a** selects or clears every row
- **enter** opens the pages of a sitemap
- **m** / **u** mark or clear "needs review" on every selected page
- **t** turns an email address on or off, **i** adds a new one
- **d** deletes, **x** archives (you will be asked first)
- **y** copies the selected page URLs
`

const onboardingHint = "enter/esc close · d don't show again"

type OnboardingPanel struct {
	visible bool
}

func (p *OnboardingPanel) Visible() bool {
	return p != nil && p.visible
}

func (p *OnboardingPanel) Show() {
	p.visible = true
}

func (p *OnboardingPanel) Hide() {
	p.visible = false
}

func (p *OnboardingPanel) View(width, height int) string {
	if !p.Visible() {
		return ""
	}
	inner := max(20, width-4)
	body := renderMarkdown(onboardingMarkdown, inner)
	lines := strings.Split(body, "\n")
	if limit := height - 3; limit > 0 && len(lines) > limit {
		lines = lines[:limit]
	}
	lines = append(lines, helpStyle.Render(onboardingHint))
	return onboardingFrameStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}
