package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/blogsmith/blogsmith/internal/model"
)

// pageTemplate is the standalone HTML page layout. Section content,
// intro, and literature are pre-cleaned HTML and rendered unescaped;
// everything else is escaped by the template engine.
var pageTemplate = template.Must(template.New("article").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <title>{{.Article.Headline}}</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body{font-family:Arial, sans-serif;line-height:1.5;margin:0;padding:20px;color:#333;}
    article{max-width:800px;margin:0 auto;}
    h1{font-size:2em;margin-bottom:0.3em;}
    h2{font-size:1.6em;margin-top:1em;color:#222;}
    h3{font-size:1.3em;margin-top:0.8em;color:#444;}
    .key-takeaways ul{padding-left:20px;}
    .sources{font-size:0.9em;margin:24px 0;white-space:pre-wrap;}
  </style>
</head>
<body>
  <article>
    <header>
      <h1>{{.Article.Headline}}</h1>
      {{- if .Article.Subtitle}}
      <h2>{{.Article.Subtitle}}</h2>
      {{- end}}
      <p class="teaser">{{.Article.Teaser}}</p>
      {{.Intro}}
    </header>

{{range .Sections}}    <section id="{{.ID}}">
      <h2>{{.Title}}</h2>
      {{.Content}}
    </section>

{{end}}
{{- if .Article.KeyTakeaways}}    <section class="key-takeaways">
      <h2>Key Takeaways</h2>
      <ul>
{{- range .Article.KeyTakeaways}}
        <li>{{.}}</li>
{{- end}}
      </ul>
    </section>

{{end}}    <section class="sources">
      <h2>Literature</h2>
      {{.Literature}}
    </section>
{{- if .Article.SearchQueries}}

    <section class="queries">
      <h2>Search Queries</h2>
      <ul>
{{- range .Article.SearchQueries}}
        <li>{{.}}</li>
{{- end}}
      </ul>
    </section>
{{- end}}
  </article>
</body>
</html>
`))

// pageData is the template input for one rendered page.
type pageData struct {
	Lang       string
	Article    *model.Article
	Intro      template.HTML
	Literature template.HTML
	Sections   []pageSection
}

type pageSection struct {
	ID      string
	Title   string
	Content template.HTML
}

// Document renders the article as a complete standalone HTML page.
func Document(article *model.Article, lang string) (string, error) {
	if lang == "" {
		lang = "en"
	}

	data := pageData{
		Lang:       lang,
		Article:    article,
		Intro:      template.HTML(article.Intro),      //nolint:gosec // Cleaned upstream
		Literature: template.HTML(article.Literature), //nolint:gosec // Built from validated sources
	}

	for _, section := range article.Sections {
		if section.Title == "" {
			continue
		}
		data.Sections = append(data.Sections, pageSection{
			ID:      "section-" + model.Slugify(section.Title),
			Title:   section.Title,
			Content: template.HTML(section.Content), //nolint:gosec // Cleaned upstream
		})
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render article page: %w", err)
	}
	return sb.String(), nil
}
