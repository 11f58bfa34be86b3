package portfolio

import (
	"strconv"
	"strings"
	"time"
)

// View is Content prepared for a template: markdown rendered, projects split
// and footer placeholders expanded.
type View struct {
	Content
	AboutHTML string    `json:"aboutHtml"`
	Featured  []Project `json:"featured"`
	Other     []Project `json:"other"`
	Year      int       `json:"year"`
	Copyright string    `json:"copyright"`
	Credit    string    `json:"credit"`
}

// View prepares c for rendering at time now.
func (c Content) View(now time.Time) View {
	year := now.Year()
	replacer := strings.NewReplacer("{year}", strconv.Itoa(year), "{owner}", c.Owner)

	return View{
		Content:   c,
		AboutHTML: RenderMarkdown(c.About.Body),
		Featured:  c.Projects.Featured(),
		Other:     c.Projects.Other(),
		Year:      year,
		Copyright: replacer.Replace(c.Footer.Copyright),
		Credit:    replacer.Replace(c.Footer.Credit),
	}
}
