// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"io"

	"github.com/google/safehtml/template"
)

// A Page is an HTML index of rendered charts.
type Page struct {
	Title  string
	Source string // where the results came from
	Charts []ChartRef
}

// A ChartRef links one rendered chart from a Page.
type ChartRef struct {
	Title string
	// File is the chart image, relative to the page.
	File string
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>rtplot</title>
<style>
body { font-family: sans-serif; }
figure { display: inline-block; margin: 1em; }
img { max-width: 40em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{with .Source}}<p>Results: <code>{{.}}</code></p>{{end}}
{{range .Charts}}<figure>
<a href="{{.File}}"><img src="{{.File}}" alt="{{.Title}}"></a>
<figcaption>{{.Title}}</figcaption>
</figure>
{{end}}</body>
</html>
`))

// WriteHTML writes page p to w.
func WriteHTML(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}
