package site

import "html/template"

type archiveLink struct {
	Date string
	Href string
}

type articleView struct {
	Headline string
	Dek      string
	Section  string
	Author   string
	Image    string
	Href     string
	BodyHTML template.HTML
	Excerpt  string
}

type indexData struct {
	SiteTitle string
	Tagline   string
	Date      string
	Hero      *articleView
	Cards     []articleView
	Briefs    []articleView
	Archive   []archiveLink
}

type articleData struct {
	SiteTitle string
	Date      string
	Article   articleView
	SourceURL string
	IndexHref string
	Archive   []archiveLink
}

// Styling follows the site's typewriter-newspaper look.
const baseCSS = `
body { font-family: 'Courier New', monospace; background: #f4f4f4; margin: 0; padding: 20px; }
header { text-align: center; border-bottom: 3px solid black; padding-bottom: 20px; margin-bottom: 30px; }
h1 { font-size: 3em; margin: 0; text-transform: uppercase; }
.fecha { color: #666; font-style: italic; }
.hemeroteca { text-align: center; margin: 10px 0; font-size: 0.9em; }
.hemeroteca a { color: #333; margin: 0 6px; }
.hero { background: white; padding: 30px; border: 1px solid #ddd; box-shadow: 5px 5px 0px #000; margin-bottom: 30px; }
.hero h2 { font-size: 2.2em; margin-top: 10px; }
.grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 20px; }
.card { background: white; padding: 20px; border: 1px solid #ddd; box-shadow: 5px 5px 0px #000; }
.categoria { background: black; color: white; padding: 3px 8px; font-size: 0.8em; text-transform: uppercase; }
.imagen-noticia { width: 100%; height: 200px; object-fit: cover; filter: grayscale(100%); margin-bottom: 10px; }
h2 { font-size: 1.5em; margin-top: 10px; }
.dek { font-style: italic; color: #444; }
.breves { margin-top: 30px; border-top: 2px solid black; padding-top: 20px; }
.breve { margin-bottom: 14px; }
.breve h3 { margin: 0; font-size: 1.1em; }
.autor { color: #666; font-size: 0.85em; margin-top: 20px; }
.cuerpo p { line-height: 1.6; }
a { color: inherit; }
`

const indexTemplateText = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.SiteTitle}}</title>
<style>{{template "css"}}</style>
</head>
<body>
<header>
<h1>{{.SiteTitle}}</h1>
<p>{{.Tagline}}</p>
<p class="fecha">Edición del {{.Date}}</p>
<nav class="hemeroteca">Hemeroteca:
{{- range .Archive}}
<a href="{{.Href}}">{{.Date}}</a>
{{- end}}
</nav>
</header>
{{with .Hero}}
<article class="hero">
<span class="categoria">{{.Section}}</span>
{{if .Image}}<img src="{{.Image}}" class="imagen-noticia" alt="">{{end}}
<h2><a href="{{.Href}}">{{.Headline}}</a></h2>
<p class="dek">{{.Dek}}</p>
<div class="cuerpo">{{.BodyHTML}}</div>
<p class="autor">{{.Author}}</p>
</article>
{{end}}
<div class="grid">
{{- range .Cards}}
<article class="card">
<span class="categoria">{{.Section}}</span>
{{if .Image}}<img src="{{.Image}}" class="imagen-noticia" alt="">{{end}}
<h2><a href="{{.Href}}">{{.Headline}}</a></h2>
<p class="dek">{{.Dek}}</p>
</article>
{{- end}}
</div>
{{if .Briefs}}
<section class="breves">
{{- range .Briefs}}
<div class="breve">
<h3><a href="{{.Href}}">{{.Headline}}</a></h3>
<p>{{.Excerpt}}</p>
</div>
{{- end}}
</section>
{{end}}
</body>
</html>
`

const articleTemplateText = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Article.Headline}} — {{.SiteTitle}}</title>
<style>{{template "css"}}</style>
</head>
<body>
<header>
<h1>{{.SiteTitle}}</h1>
<p class="fecha">Edición del {{.Date}} — <a href="{{.IndexHref}}">portada</a></p>
<nav class="hemeroteca">Hemeroteca:
{{- range .Archive}}
<a href="{{.Href}}">{{.Date}}</a>
{{- end}}
</nav>
</header>
<article class="hero">
<span class="categoria">{{.Article.Section}}</span>
{{if .Article.Image}}<img src="{{.Article.Image}}" class="imagen-noticia" alt="">{{end}}
<h2>{{.Article.Headline}}</h2>
<p class="dek">{{.Article.Dek}}</p>
<div class="cuerpo">{{.Article.BodyHTML}}</div>
<p class="autor">{{.Article.Author}}{{if .SourceURL}} — <a href="{{.SourceURL}}">fuente original</a>{{end}}</p>
</article>
</body>
</html>
`

var (
	indexTemplate   *template.Template
	articleTemplate *template.Template
)

func init() {
	css := template.Must(template.New("css").Parse(baseCSS))
	indexTemplate = template.Must(template.Must(css.Clone()).New("index").Parse(indexTemplateText))
	articleTemplate = template.Must(template.Must(css.Clone()).New("article").Parse(articleTemplateText))
}
