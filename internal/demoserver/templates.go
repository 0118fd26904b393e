package demoserver

import (
	"html/template"
	"strings"
)

const pageHead = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>Case Status</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        table { border-collapse: collapse; }
        td, th { border: 1px solid #ccc; padding: 6px 12px; text-align: left; }
        .orders li { margin: 4px 0; }
    </style>
</head>
<body>
`

const tableLayoutHTML = pageHead + `<h2>Case Status</h2>
<table class="case-status">
    <tr><th>Case</th><td>{{.Type}} {{.Number}}/{{.Year}}</td></tr>
    <tr><td>Petitioner</td><td>{{.Petitioner}}</td></tr>
    <tr><td>Respondent</td><td>{{.Respondent}}</td></tr>
    <tr><td>Filing Date</td><td>{{.FilingDate}}</td></tr>
    <tr><td>Next Date</td><td>{{.NextHearing}}</td></tr>
</table>
<h3>Orders</h3>
<ul class="orders">
{{- range .Orders}}
    <li><a href="/orders/{{.File}}">{{.Name}}</a></li>
{{- else}}
    <li>No orders uploaded</li>
{{- end}}
</ul>
</body>
</html>
`

// The marked layout drops the table labels and the .pdf extension so only
// the attribute and container selectors find anything.
const markedLayoutHTML = pageHead + `<h2>{{.Type}} {{.Number}}/{{.Year}}</h2>
<div class="parties">
    <span data-field="petitioner">{{.Petitioner}}</span>
    vs
    <span id="respondent">{{.Respondent}}</span>
</div>
<p>Filed on <span class="filing-date">{{.FilingDate}}</span></p>
{{- if .NextHearing}}
<p>Listed on <span data-field="next_hearing">{{.NextHearing}}</span></p>
{{- end}}
<div class="orders">
{{- range .Orders}}
    <a href="/orders/{{trimPDF .File}}">{{.Name}}</a>
{{- end}}
</div>
</body>
</html>
`

const scriptLayoutHTML = pageHead + `<h2>Case Status</h2>
<div id="result">Loading...</div>
<script>
(function () {
    const c = {{.}};
    const result = document.getElementById("result");
    result.textContent = "";

    const table = document.createElement("table");
    [["Petitioner", c.Petitioner], ["Respondent", c.Respondent],
     ["Filing Date", c.FilingDate], ["Next Date", c.NextHearing || ""]].forEach(function (row) {
        const tr = table.insertRow();
        tr.insertCell().textContent = row[0];
        tr.insertCell().textContent = row[1];
    });
    result.appendChild(table);

    const ul = document.createElement("ul");
    (c.Orders || []).forEach(function (o) {
        const a = document.createElement("a");
        a.href = "/orders/" + o.File;
        a.textContent = o.Name;
        const li = document.createElement("li");
        li.appendChild(a);
        ul.appendChild(li);
    });
    result.appendChild(ul);
})();
</script>
</body>
</html>
`

const notFoundHTML = pageHead + `<h2>Case Status</h2>
<p class="no-record">No record found for the given case details.</p>
</body>
</html>
`

const indexHTML = pageHead + `<h2>Demo Court</h2>
<p>Layout: <strong>{{.Current}}</strong> (<a href="/demo/control">change</a>)</p>
<ul>
{{- range .Cases}}
    <li><a href="{{.URL}}">{{.Type}} {{.Number}}/{{.Year}}</a></li>
{{- end}}
</ul>
</body>
</html>
`

const controlPanelHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Demo Court Control Panel</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; background: #f5f5f5; }
        .container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #333; }
        .current { background: #e3f2fd; padding: 15px; border-radius: 4px; margin: 20px 0; }
        .layout-buttons { display: flex; gap: 10px; margin: 20px 0; }
        button { padding: 12px 24px; font-size: 16px; cursor: pointer; border: none; border-radius: 4px; background: #2196F3; color: white; }
        button:hover { background: #1976D2; }
        button.active { background: #4CAF50; }
        .case-list { margin-top: 30px; }
        .case-item { padding: 10px; margin: 5px 0; background: #f9f9f9; border-left: 3px solid #2196F3; }
        .case-item a { color: #2196F3; text-decoration: none; }
        .case-item a:hover { text-decoration: underline; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Demo Court Control Panel</h1>

        <div class="current">
            <strong>Current Layout:</strong> <span id="current-layout">{{.Current}}</span>
        </div>

        <h2>Switch Layout</h2>
        <div class="layout-buttons">
            {{- range .Layouts}}
            <button onclick="setLayout('{{.}}')" {{if eq . $.Current}}class="active"{{end}}>{{.}}</button>
            {{- end}}
        </div>

        <div class="case-list">
            <h2>Cases</h2>
            {{- range .Cases}}
            <div class="case-item">
                <a href="{{.URL}}" target="_blank">{{.Type}} {{.Number}}/{{.Year}}</a>
                ({{len .Orders}} orders)
            </div>
            {{- end}}
        </div>
    </div>

    <script>
        function setLayout(layout) {
            fetch('/demo/set-layout', {
                method: 'POST',
                headers: {'Content-Type': 'application/x-www-form-urlencoded'},
                body: 'layout=' + encodeURIComponent(layout)
            })
            .then(r => r.json())
            .then(data => {
                if (data.success) {
                    location.reload();
                }
            });
        }
    </script>
</body>
</html>
`

var funcs = template.FuncMap{
	"trimPDF": func(s string) string { return strings.TrimSuffix(s, ".pdf") },
}

var (
	layoutTemplates = map[Layout]*template.Template{
		LayoutTable:  template.Must(template.New("table").Parse(tableLayoutHTML)),
		LayoutMarked: template.Must(template.New("marked").Funcs(funcs).Parse(markedLayoutHTML)),
		LayoutScript: template.Must(template.New("script").Parse(scriptLayoutHTML)),
	}
	notFoundTmpl     = template.Must(template.New("notfound").Parse(notFoundHTML))
	indexTmpl        = template.Must(template.New("index").Parse(indexHTML))
	controlPanelTmpl = template.Must(template.New("control").Parse(controlPanelHTML))
)
