package http

// ── Base layout ───────────────────────────────────────────────────────────────

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Sikkim Flood 2025 · SAR Evidence</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:system-ui,sans-serif;background:#0f172a;color:#e2e8f0;font-size:14px;line-height:1.5}
a{color:#38bdf8;text-decoration:none}
header{background:#1e293b;border-bottom:1px solid #334155;padding:24px 16px}
header h1{font-size:24px;font-weight:700;color:#f8fafc}
header p{color:#94a3b8;margin-top:4px}
nav{display:flex;gap:16px;margin-top:12px}
nav a{color:#94a3b8;padding:4px 8px;border-radius:4px}
main{padding:16px;max-width:1280px;margin:0 auto}
section{background:#1e293b;border:1px solid #334155;border-radius:8px;margin-bottom:16px;padding:16px}
h2{font-size:16px;font-weight:600;color:#f8fafc;margin-bottom:12px}
h3{font-size:14px;font-weight:600;color:#f1f5f9}
form.inline{display:inline}
button{font:inherit;cursor:pointer;border:1px solid #334155;background:#0f172a;color:#cbd5e1;border-radius:6px;padding:6px 10px}
button.active{background:#0284c7;border-color:#0284c7;color:#fff}
.row{display:flex;gap:8px;flex-wrap:wrap;align-items:center}
.grid{display:grid;grid-template-columns:repeat(auto-fit,minmax(280px,1fr));gap:12px}
.grid.split{grid-template-columns:1fr}
.panel{border:1px solid #334155;border-radius:6px;overflow:hidden}
.panel.selected{border-color:#0284c7}
.panel img{display:block;width:100%;height:220px;object-fit:cover;background:#020617}
.panel .cap{padding:8px}
.dim{color:#94a3b8}
.swatch{display:inline-block;width:10px;height:10px;border-radius:2px;margin-right:4px}
.cards{display:flex;gap:12px;flex-wrap:wrap}
.card{background:#0f172a;border:1px solid #334155;border-radius:6px;padding:12px 16px;min-width:160px}
.card .val{font-size:20px;font-weight:700;color:#f8fafc}
.card .lbl{font-size:12px;color:#94a3b8}
.status-Normal{color:#4ade80}
.status-Critical{color:#f87171}
.status-Recovery{color:#facc15}
.sev-info{border-left:3px solid #38bdf8}
.sev-warning{border-left:3px solid #facc15}
.sev-critical{border-left:3px solid #f87171}
.tl-item{padding:6px 10px;margin:4px 0;background:#0f172a;border-radius:4px}
.tl-item.open{background:#172554}
table{width:100%;border-collapse:collapse}
td{padding:4px 8px;border-bottom:1px solid #334155}
iframe{width:100%;height:420px;border:0;border-radius:6px}
input[type=text]{font:inherit;background:#0f172a;color:#e2e8f0;border:1px solid #334155;border-radius:4px;padding:4px 6px;width:100%}
</style>
</head>
<body>
<header>
  <h1>Sikkim Flood 2025</h1>
  <p>Synthetic Aperture Radar evidence of the North Sikkim flood event across six study areas.</p>
  <nav>
    <a href="#platform">Analysis Platform</a>
    <a href="#evidence">Evidence</a>
    <a href="#findings">Key Findings</a>
    <a href="#timeline">Timeline</a>
    <a href="#map">Impact Map</a>
    <a href="#uploads">Your Images</a>
  </nav>
</header>
<main>
{{template "content" .}}
</main>
</body>
</html>
{{end}}`

// ── Portal page ───────────────────────────────────────────────────────────────

const tmplPortal = `
{{define "content"}}
{{$v := .View}}
<section id="platform">
  <h2>Study Area</h2>
  <div class="row">
  {{range $v.Areas}}
    <form class="inline" method="post" action="/actions/area">
      <input type="hidden" name="area_id" value="{{.ID}}">
      <button type="submit" {{if eq .ID $v.Area.ID}}class="active"{{end}} title="{{.Description}}">{{.Name}}</button>
    </form>
  {{end}}
  </div>
  {{if $v.Area.ID}}
  <p class="dim" style="margin-top:8px">{{$v.Area.Location}} · {{coord $v.Area.Latitude}}, {{coord $v.Area.Longitude}}{{if $v.Area.PlaceName}} · {{$v.Area.PlaceName}}{{end}}{{if $v.Area.District}}, {{$v.Area.District}} district{{end}}</p>
  {{end}}

  <h2 style="margin-top:16px">Flood Phase</h2>
  <div class="row">
  {{range $v.Phases}}
    <form class="inline" method="post" action="/actions/phase">
      <input type="hidden" name="phase" value="{{.Phase}}">
      <button type="submit" {{if .Active}}class="active"{{end}}>{{.Label}} <span class="dim">{{.Date}}</span></button>
    </form>
  {{end}}
  </div>

  {{with $v.Analytics}}
  <h2 style="margin-top:16px">Flood Analytics <span class="status-{{.Status}}">{{.Status}}</span></h2>
  <div class="cards">
    <div class="card"><div class="val">{{km2 .Current.WaterCoverageKm2}} km²</div><div class="lbl">Water coverage</div></div>
    <div class="card"><div class="val">{{signed .WaterIncrease}} km²</div><div class="lbl">Change vs baseline ({{.PercentDisplay}}%)</div></div>
    <div class="card"><div class="val">{{.Current.AffectedPopulation}}</div><div class="lbl">Affected population</div></div>
  </div>
  <table style="margin-top:12px">
  {{range .DamageRows}}<tr><td class="dim">{{.Label}}</td><td>{{.Value}}</td></tr>{{end}}
  </table>
  {{end}}

  <h2 style="margin-top:16px">Comparison</h2>
  <div class="row" style="margin-bottom:8px">
    <form class="inline" method="post" action="/actions/view-mode">
      <input type="hidden" name="mode" value="grid">
      <button type="submit" {{if eq (print $v.ViewMode) "grid"}}class="active"{{end}}>Grid</button>
    </form>
    <form class="inline" method="post" action="/actions/view-mode">
      <input type="hidden" name="mode" value="split">
      <button type="submit" {{if eq (print $v.ViewMode) "split"}}class="active"{{end}}>Split</button>
    </form>
  </div>
  <div class="grid{{if eq (print $v.ViewMode) "split"}} split{{end}}" id="comparison">
  {{range $v.Panels}}
    <div class="panel{{if .Selected}} selected{{end}}">
      <img src="{{imgSrc .DisplaySource}}" alt="{{.Title}}" loading="lazy">
      <div class="cap">
        <h3>{{.Title}}</h3>
        <div class="dim">{{fmtDate .Image.CaptureDate}} · {{.Image.Satellite}} · {{.Image.Metadata.Polarization}} · {{.Image.Metadata.Orbit}}</div>
        <div class="row" style="margin-top:6px">
        {{$active := .ActiveOverlayID}}
        {{range .Overlays}}
          <form class="inline" method="post" action="/actions/overlays/{{.ID}}/toggle">
            <button type="submit" {{if eq .ID $active}}class="active"{{end}}><span class="swatch" style="background:{{overlayColor .OverlayType}}"></span>{{overlayLabel .OverlayType}}</button>
          </form>
        {{end}}
        </div>
      </div>
    </div>
  {{end}}
  </div>
</section>

<section id="evidence">
  <div class="row" style="margin-bottom:12px">
    <form class="inline" method="post" action="/actions/tab">
      <input type="hidden" name="tab" value="sar">
      <button type="submit" {{if eq (print $v.Tab) "sar"}}class="active"{{end}}>SAR Evidence</button>
    </form>
    <form class="inline" method="post" action="/actions/tab">
      <input type="hidden" name="tab" value="methodology">
      <button type="submit" {{if eq (print $v.Tab) "methodology"}}class="active"{{end}}>Methodology</button>
    </form>
  </div>
  {{if eq (print $v.Tab) "methodology"}}
  <div class="grid">
  {{range .Content.Methods}}
    <div class="card"><h3>{{.Title}}</h3><p class="dim">{{.Description}}</p></div>
  {{end}}
  </div>
  {{else}}
  <div class="grid">
  {{range .Content.Gallery}}
    <div class="panel">
      <img src="{{imgSrc .ImageURL}}" alt="{{.Title}}" loading="lazy">
      <div class="cap"><h3>{{.Title}}</h3><div class="dim">{{.Date}}</div><p>{{.Description}}</p></div>
    </div>
  {{end}}
  </div>
  {{end}}
</section>

<section id="findings">
  <h2>Key Findings</h2>
  {{range .Content.Findings}}
  <div class="tl-item{{if eq .ID $v.ExpandedFinding}} open{{end}}">
    <form method="post" action="/actions/findings/{{.ID}}/toggle">
      <button type="submit"><strong>{{.Metric}}</strong> {{.MetricLabel}}</button>
      <h3 style="margin-top:6px">{{.Title}}</h3>
    </form>
    <p class="dim">{{.Summary}}</p>
    {{if eq .ID $v.ExpandedFinding}}<p style="margin-top:6px">{{.Details}}</p>{{end}}
  </div>
  {{end}}
</section>

<section id="timeline">
  <h2>Event Timeline</h2>
  {{range $i, $e := .Content.Timeline}}
  <div class="tl-item sev-{{$e.Type}}{{if eq $i $v.SelectedEvent}} open{{end}}">
    <form method="post" action="/actions/timeline/{{$i}}/toggle">
      <button type="submit">{{$e.Date}}</button> <strong>{{$e.Title}}</strong>
    </form>
    {{if eq $i $v.SelectedEvent}}<p style="margin-top:6px">{{$e.Description}}</p>{{end}}
  </div>
  {{end}}
</section>

<section id="map">
  <h2>Flood Impact Map</h2>
  <iframe src="{{.Content.MapURL}}" title="Flood impact map" loading="lazy"></iframe>
</section>

<section id="uploads">
  <h2>Your Images</h2>
  <form method="post" action="/actions/uploads" enctype="multipart/form-data" class="row">
    <input type="file" name="files" accept="image/*" multiple>
    <button type="submit">Upload</button>
  </form>
  <div class="grid" style="margin-top:12px">
  {{range $v.Uploads}}
    <div class="panel">
      <img src="{{imgSrc .URL}}" alt="{{.Title}}">
      <div class="cap">
        <form method="post" action="/actions/uploads/{{.ID}}">
          <input type="hidden" name="field" value="title">
          <input type="text" name="value" value="{{.Title}}" aria-label="Title">
        </form>
        <form method="post" action="/actions/uploads/{{.ID}}" style="margin-top:4px">
          <input type="hidden" name="field" value="description">
          <input type="text" name="value" value="{{.Description}}" aria-label="Description">
        </form>
        <div class="row" style="margin-top:6px">
          <span class="dim">{{fmtDate .UploadedAt}}</span>
          <form class="inline" method="post" action="/actions/uploads/{{.ID}}/remove"><button type="submit">Remove</button></form>
        </div>
      </div>
    </div>
  {{else}}
    <p class="dim">No images uploaded in this session.</p>
  {{end}}
  </div>
</section>
{{end}}`
