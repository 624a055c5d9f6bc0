package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/blogsmith/blogsmith/internal/model"
)

// Literature renders the numbered source list as the HTML block shown
// at the end of the article. Indices are the citation numbers from the
// body, so gaps left by dropped sources are preserved.
func Literature(sources []model.Source) string {
	if len(sources) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, src := range sources {
		index := src.Index
		if index == 0 {
			index = i + 1
		}
		sb.WriteString(fmt.Sprintf(`<p>[%d]: <a href="%s" target="_blank">%s</a></p>`,
			index, src.URL, html.EscapeString(src.Title)))
	}
	return sb.String()
}
