// Package xmlexport exporta conteos físicos a XML (etree) y calcula el digest del
// documento canónico (C14N) para el header Digest.
package xmlexport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/stock-api/internal/application/report"
)

// Namespace del documento exportado.
const Namespace = "urn:stock-api:stocktaking:1"

// StocktakingExporter implementa report.StocktakingExporter.
type StocktakingExporter struct{}

var _ report.StocktakingExporter = (*StocktakingExporter)(nil)

// NewStocktakingExporter construye el exportador.
func NewStocktakingExporter() *StocktakingExporter { return &StocktakingExporter{} }

// ExportStocktaking arma el XML y devuelve su digest "SHA-256=<base64>".
func (x *StocktakingExporter) ExportStocktaking(ctx context.Context, e *report.StocktakingExport) ([]byte, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("stocktakingExport")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("generatedAt", e.GeneratedAt.UTC().Format(time.RFC3339))
	if e.From != nil {
		root.CreateAttr("from", e.From.UTC().Format(time.RFC3339))
	}
	if e.To != nil {
		root.CreateAttr("to", e.To.UTC().Format(time.RFC3339))
	}
	root.CreateAttr("count", strconv.Itoa(len(e.Lines)))

	for _, l := range e.Lines {
		st := root.CreateElement("stocktaking")
		st.CreateAttr("id", l.ID)
		st.CreateElement("date").SetText(l.Date.UTC().Format(time.RFC3339))

		p := st.CreateElement("product")
		p.CreateAttr("id", l.ProductID)
		if l.ProductCode != "" {
			p.CreateAttr("code", l.ProductCode)
		}
		p.SetText(l.ProductName)

		st.CreateElement("user").CreateAttr("id", l.UserID)
		st.CreateElement("systemQuantity").SetText(strconv.FormatInt(l.SystemQuantity, 10))
		st.CreateElement("countedQuantity").SetText(strconv.FormatInt(l.CountedQuantity, 10))
		st.CreateElement("difference").SetText(strconv.FormatInt(l.Difference, 10))
		if l.Notes != "" {
			st.CreateElement("notes").SetText(l.Notes)
		}
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, "", fmt.Errorf("xmlexport: escribir documento: %w", err)
	}
	digest, err := Digest(out.Bytes())
	if err != nil {
		return nil, "", err
	}
	return out.Bytes(), digest, nil
}

// Digest SHA-256 de la forma canónica C14N del documento, en formato "SHA-256=<base64>".
// Dos documentos equivalentes (atributos en otro orden, otra indentación entre
// atributos) producen el mismo digest.
func Digest(doc []byte) (string, error) {
	canonical, err := canonicalize(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return "SHA-256=" + base64.StdEncoding.EncodeToString(sum[:]), nil
}

// canonicalize descarta la declaración XML y aplica C14N al elemento raíz.
func canonicalize(data []byte) ([]byte, error) {
	src := etree.NewDocument()
	if err := src.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("xmlexport: parsear XML: %w", err)
	}
	if src.Root() == nil {
		return nil, fmt.Errorf("xmlexport: documento sin raíz")
	}
	rootOnly, err := etree.NewDocumentWithRoot(src.Root().Copy()).WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("xmlexport: serializar raíz: %w", err)
	}
	dec := xml.NewDecoder(bytes.NewReader(rootOnly))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("xmlexport: canonicalizar: %w", err)
	}
	return out, nil
}
