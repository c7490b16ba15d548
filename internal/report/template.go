package report

const pageTpl = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<meta name="description" content="Print-friendly progress report">
<title>{{.Title}} - {{.Subtitle}}</title>
<style>
@media print {
  body { margin: 0; }
  .no-print, .print-button { display: none; }
  h1, h2 { page-break-after: avoid; }
  .course { page-break-inside: avoid; }
}
body { font-family: 'Georgia', 'Times New Roman', serif; line-height: 1.6; max-width: 800px; margin: 0 auto; padding: 20px; color: #333; }
h1 { color: #2c3e50; border-bottom: 3px solid #3498db; padding-bottom: 10px; text-align: center; }
h2 { color: #34495e; border-bottom: 2px solid #ecf0f1; padding-bottom: 8px; margin-top: 30px; }
h3 { color: #7f8c8d; margin-top: 25px; }
h4 { color: #95a5a6; margin-top: 20px; }
h5 { color: #bdc3c7; margin-top: 15px; margin-bottom: 5px; }
ul { list-style-type: none; padding-left: 0; }
ul li { margin-bottom: 8px; }
.header { text-align: center; margin-bottom: 40px; padding: 20px; background-color: #f8f9fa; border-radius: 10px; }
.summary { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: 20px; margin-bottom: 30px; }
.summary-item { background-color: #f1f2f6; padding: 15px; border-radius: 8px; text-align: center; }
.summary-item h3 { margin: 0 0 10px 0; color: #3498db; }
.summary-item p { margin: 0; font-size: 1.2em; font-weight: bold; }
.course { margin-bottom: 40px; padding: 20px; border: 1px solid #e0e0e0; border-radius: 10px; background-color: #fafafa; }
.course-summary { background-color: #e8f4f8; padding: 10px; border-radius: 5px; margin-bottom: 20px; }
.course-summary p { margin: 5px 0; }
.week { margin-bottom: 25px; padding: 15px; border-left: 4px solid #3498db; background-color: #fff; }
.assignments { margin-left: 20px; }
.assignment { margin-bottom: 20px; padding: 15px; border: 1px solid #ddd; border-radius: 5px; background-color: #fefefe; }
.assignment-details { margin-top: 10px; }
.notebooks li, .python-files li { margin-bottom: 10px; padding: 8px; background-color: #f8f9fa; border-radius: 3px; }
.description { font-style: italic; color: #666; font-size: 0.9em; }
.meta { font-size: 0.8em; color: #888; }
.error { color: #c0392b; }
.test-indicator { color: #27ae60; font-weight: bold; margin-top: 10px; }
.issues { margin-top: 30px; padding: 15px; border: 1px solid #f5c6cb; border-radius: 5px; background-color: #fdf2f2; }
.footer { margin-top: 50px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 0.9em; }
.print-button { position: fixed; top: 20px; right: 20px; background-color: #3498db; color: white; padding: 10px 20px; border: none; border-radius: 5px; cursor: pointer; font-size: 16px; z-index: 1000; }
.print-button:hover { background-color: #2980b9; }
</style>
</head>
<body>
<button class="print-button no-print" onclick="window.print()">🖨️ Print Report</button>

<div class="header">
  <h1>{{.Title}}</h1>
  <h2>{{.Subtitle}}</h2>
  <p><strong>Generated on:</strong> {{.Generated}}</p>
</div>

<div class="summary">
  <div class="summary-item"><h3>Courses</h3><p>{{.Totals.Courses}}</p></div>
  <div class="summary-item"><h3>Weeks</h3><p>{{.Totals.Weeks}}</p></div>
  <div class="summary-item"><h3>Assignments</h3><p>{{.Totals.Assignments}}</p></div>
  <div class="summary-item"><h3>Notebooks</h3><p>{{.Totals.Notebooks}}</p></div>
  <div class="summary-item"><h3>With Tests</h3><p>{{.Totals.TestedAssignments}}</p></div>
</div>

<div class="content">
{{- range .Courses}}
  <div class="course">
    <h2>Course {{.Number}}: {{.Title}}</h2>
    <div class="course-summary">
      {{- with .Totals}}
      <p><strong>Total Weeks:</strong> {{.Weeks}}</p>
      <p><strong>Total Assignments:</strong> {{.Assignments}}</p>
      <p><strong>Total Notebooks:</strong> {{.Notebooks}}</p>
      {{- end}}
    </div>
    {{- range .Weeks}}
    <div class="week">
      <h3>{{.Name}}</h3>
      <div class="assignments">
      {{- range .Assignments}}
        <div class="assignment">
          <h4>{{.Name}}</h4>
          <div class="assignment-details">
          {{- if .Notebooks}}
            <h5>Notebooks:</h5>
            <ul class="notebooks">
            {{- range .Notebooks}}
              <li>
                <strong>{{.Filename}}</strong> - {{if .Title}}{{.Title}}{{else}}Untitled{{end}}
                {{- if .Description}}
                <br><span class="description">{{preview .Description $.DescriptionPreview}}</span>
                {{- end}}
                <br><span class="meta">Cells: {{.CellCount}}{{if .CellCount}} ({{.CodeCells}} code, {{.MarkdownCells}} markdown){{end}}</span>
                {{- if .Err}}
                <br><span class="meta error">Could not read notebook: {{.Err}}</span>
                {{- end}}
              </li>
            {{- end}}
            </ul>
          {{- end}}
          {{- if .Scripts}}
            <h5>Python Files:</h5>
            <ul class="python-files">
            {{- range .Scripts}}
              <li>{{.}}</li>
            {{- end}}
            </ul>
          {{- end}}
          {{- if .HasTests}}
            <p class="test-indicator">✓ Contains test files ({{len .TestFiles}} {{plural (len .TestFiles) "file" "files"}})</p>
          {{- end}}
          </div>
        </div>
      {{- end}}
      </div>
    </div>
    {{- end}}
  </div>
{{- else}}
  <p>No courses found.</p>
{{- end}}
</div>
{{- if .Issues}}

<div class="issues no-print">
  <h3>Scan Issues</h3>
  <ul>
  {{- range .Issues}}
    <li><strong>{{.Path}}</strong>: {{.Message}}</li>
  {{- end}}
  </ul>
</div>
{{- end}}

<div class="footer">
  <p>This print-friendly report was generated automatically from the course repository.</p>
  <p>For best printing results, use landscape orientation and enable background graphics.</p>
</div>
</body>
</html>
`
