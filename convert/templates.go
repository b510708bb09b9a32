package convert

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"xmd/config"
	"xmd/content"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context string
	Author  string
	ID      string
	Title   string
	Date    string
}

func buildTitle(t *content.Tweet) string {
	if t.IsArticle() {
		return t.Article.Title
	}
	return ""
}

func buildDate(t *content.Tweet) string {
	raw := t.CreatedAt
	layout := statusTimeLayout
	if t.IsArticle() && t.Article.CreatedAt != "" {
		raw, layout = t.Article.CreatedAt, time.RFC3339
	}
	if parsed, err := time.Parse(layout, raw); err == nil {
		return parsed.Format("2006-01-02")
	}
	return ""
}

func expandTemplate(t *content.Tweet, name config.TemplateFieldName, field, id string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context: string(name),
		Author:  t.Author.ScreenName,
		ID:      id,
		Title:   buildTitle(t),
		Date:    buildDate(t),
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
