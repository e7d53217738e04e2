package web

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
<script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#0d1117;color:#c9d1d9;font-size:14px;line-height:1.5;display:flex;min-height:100vh}
aside{width:300px;flex-shrink:0;background:#161b22;border-right:1px solid #30363d;padding:16px}
main{flex:1;padding:24px;min-width:0}
h1{font-size:24px;font-weight:700;color:#f0f6fc}
h2{font-size:13px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:20px 0 8px}
aside h2:first-child{margin-top:0}
label{display:block;margin:6px 0;font-size:13px}
fieldset{border:none}
legend{font-size:13px;color:#8b949e;margin-bottom:4px}
.opt{display:flex;gap:6px;align-items:center;word-break:break-all}
input[type=range]{width:100%}
select{width:100%;background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:4px 6px}
.dim{color:#8b949e}
.chart{width:100%;margin:16px 0}
.err-box{background:#f8717122;border:1px solid #f87171;color:#fca5a5;padding:8px 12px;border-radius:6px;margin:12px 0}
.warn-box{background:#f59e0b22;border:1px solid #f59e0b;color:#fcd34d;padding:8px 12px;border-radius:6px;margin:12px 0}
details{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:8px 12px;margin:12px 0}
summary{cursor:pointer;color:#f0f6fc}
.section{background:#161b22;border:1px solid #30363d;border-radius:6px;margin-bottom:16px;overflow:auto;max-height:420px}
table{width:100%;border-collapse:collapse;font-size:12px;font-family:monospace}
th{position:sticky;top:0;background:#161b22;text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600}
td{padding:4px 10px;border-bottom:1px solid #21262d;white-space:nowrap}
tr:hover td{background:#21262d}
</style>
</head>
<body>
<aside>
<form id="widgets" method="post" action="render" enctype="multipart/form-data">
{{if .Upload}}<h2>Data upload</h2>
<label>Upload CSV files<input type="file" name="files" accept=".csv" multiple></label>
{{end}}<div id="controls">{{template "controls" .}}</div>
</form>
</aside>
<main id="main">{{template "main" .}}</main>
<script>
var form = document.getElementById('widgets');
function embed(spec) {
  if (spec && document.getElementById('chart')) {
    vegaEmbed('#chart', spec, {actions: false});
  }
}
function refresh() {
  fetch('render', {method: 'POST', body: new FormData(form)})
    .then(function (resp) { return resp.json(); })
    .then(function (out) {
      document.getElementById('controls').innerHTML = out.controls;
      document.getElementById('main').innerHTML = out.main;
      embed(out.spec);
    })
    .catch(function (err) {
      document.getElementById('main').textContent = 'render failed: ' + err;
    });
}
form.addEventListener('change', refresh);
form.addEventListener('input', function (e) {
  if (e.target.type === 'range') {
    var o = e.target.parentElement.querySelector('output');
    if (o) { o.value = e.target.value; }
  }
});
form.addEventListener('submit', function (e) { e.preventDefault(); refresh(); });
embed({{.SpecJSON}});
</script>
</body>
</html>{{end}}`

// ── Sidebar widgets ───────────────────────────────────────────────────────────

const tmplControls = `
{{define "controls"}}{{with .View}}{{if .Available}}
<h2>Chart settings</h2>
<fieldset>
<legend>Select the data to display</legend>
{{range .Available}}<label class="opt"><input type="checkbox" name="sel" value="{{.}}"{{if $.IsSelected .}} checked{{end}}>{{.}}</label>
{{end}}</fieldset>
{{if .State.Selected}}
<label>Circle size: <output>{{fmtNum .State.CircleSize}}</output>
<input type="range" name="size" min="{{fmtNum $.MinSize}}" max="{{fmtNum $.MaxSize}}" step="1" value="{{fmtNum .State.CircleSize}}"></label>
<h2>DataFrame settings</h2>
<label>Select a file to view its data
<select name="inspect">{{range .State.Selected}}<option value="{{.}}"{{if eq . $.View.State.Inspect}} selected{{end}}>{{.}}</option>{{end}}</select></label>
{{else}}<input type="hidden" name="size" value="{{fmtNum .State.CircleSize}}">
{{end}}{{end}}{{end}}{{end}}`

// ── Main area ─────────────────────────────────────────────────────────────────

const tmplMain = `
{{define "main"}}
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p class="dim">{{.Subtitle}}</p>{{end}}
{{range .View.Warnings}}<div class="warn-box">{{.}}</div>
{{end}}{{if .Fatal}}<div class="err-box">{{.Fatal}}</div>
{{else}}{{with .View}}{{if .Error}}<div class="err-box">{{.Error}}</div>
{{end}}{{if .Chart}}<div id="chart" class="chart"></div>
{{if $.Conclusion}}<details><summary>Data conclusion</summary><p>{{$.Conclusion}}</p></details>
{{end}}{{end}}{{with .Inspection}}
<h2>Data for {{.Name}}:</h2>
<p class="dim">{{len .Rows}} rows{{if .Dropped}}, {{.Dropped}} dropped with missing values{{end}}</p>
<div class="section"><table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table></div>
<h2>Summary statistics for {{.Name}}:</h2>
<div class="section"><table>
<thead><tr>{{range $.StatsHeader}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range $.StatsRows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table></div>
{{end}}{{end}}{{end}}
{{end}}`
