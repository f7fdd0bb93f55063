package render

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"

	"github.com/clinops/icfcheck/internal/domain/report"
)

// The DOCX writer emits a minimal WordprocessingML package: a heading plus
// one table, which is all the consent report ever contained. Full-featured
// OOXML libraries in the ecosystem are either template-only or carry
// restrictive licenses, so the handful of parts is assembled directly.

const docxContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const docxRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const docxTitle = "Consent Report"

// WriteDOCX writes the report as a Word document with a level-1 heading and
// a four-column table. Multi-line comments become explicit line breaks.
func WriteDOCX(w io.Writer, rows []report.Row) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxRels},
		{"word/document.xml", documentXML(rows)},
	}
	for _, p := range parts {
		f, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("creating docx part %s: %w", p.name, err)
		}
		if _, err := f.Write([]byte(p.content)); err != nil {
			return fmt.Errorf("writing docx part %s: %w", p.name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing docx: %w", err)
	}
	return nil
}

// documentXML builds word/document.xml for the report table.
func documentXML(rows []report.Row) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	// Heading
	b.WriteString(`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>`)
	b.WriteString(escapeXML(docxTitle))
	b.WriteString(`</w:t></w:r></w:p>`)

	// Table with header row
	b.WriteString(`<w:tbl><w:tblPr><w:tblBorders>` +
		`<w:top w:val="single"/><w:bottom w:val="single"/>` +
		`<w:left w:val="single"/><w:right w:val="single"/>` +
		`<w:insideH w:val="single"/><w:insideV w:val="single"/>` +
		`</w:tblBorders></w:tblPr>`)

	writeTableRow(&b, report.Header, true)
	for _, r := range rows {
		writeTableRow(&b, []string{r.ParticipantID, r.Version, r.Status, r.Comment}, false)
	}

	b.WriteString(`</w:tbl><w:sectPr/></w:body></w:document>`)
	return b.String()
}

func writeTableRow(b *strings.Builder, cells []string, bold bool) {
	b.WriteString(`<w:tr>`)
	for _, cell := range cells {
		b.WriteString(`<w:tc><w:p>`)
		writeRuns(b, cell, bold)
		b.WriteString(`</w:p></w:tc>`)
	}
	b.WriteString(`</w:tr>`)
}

// writeRuns renders a cell value, turning embedded newlines into <w:br/>.
func writeRuns(b *strings.Builder, text string, bold bool) {
	b.WriteString(`<w:r>`)
	if bold {
		b.WriteString(`<w:rPr><w:b/></w:rPr>`)
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			b.WriteString(`<w:br/>`)
		}
		b.WriteString(`<w:t xml:space="preserve">`)
		b.WriteString(escapeXML(line))
		b.WriteString(`</w:t>`)
	}
	b.WriteString(`</w:r>`)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
