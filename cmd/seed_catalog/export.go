package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	domcatalog "github.com/karnifashions/catalog-api/internal/domain/catalog"
	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// Formato esperado:
//
//	<catalog>
//	  <series name="SeriesA" active="1"/>
//	  <category name="Saree"/>
//	  <product item="KF-100" series="SeriesA" category="Saree">
//	    <stock location="Jaipur" qty="5"/>
//	    <image url="https://drive.google.com/file/d/.../view"/>
//	  </product>
//	</catalog>
type export struct {
	Series     []namedFlag
	Categories []namedFlag
	Products   []productRow
}

type namedFlag struct {
	Name   string
	Active bool
}

type productRow struct {
	Item     string
	Series   string
	Category string
	Stock    map[string]decimal.Decimal // bodega -> cantidad
	ImageURL string
}

func parseExport(r io.Reader) (*export, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(charset) {
		case "windows-1252", "cp1252":
			return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
		case "iso-8859-1", "iso8859-1", "latin1":
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("decodificar XML: %w", err)
	}
	root := doc.SelectElement("catalog")
	if root == nil {
		return nil, fmt.Errorf("decodificar XML: falta el elemento <catalog>")
	}

	exp := &export{
		Series:     readNamedFlags(root.SelectElements("series")),
		Categories: readNamedFlags(root.SelectElements("category")),
	}

	seen := make(map[string]bool)
	for _, el := range root.SelectElements("product") {
		item := strings.TrimSpace(el.SelectAttrValue("item", ""))
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		p := productRow{
			Item:     item,
			Series:   strings.TrimSpace(el.SelectAttrValue("series", "")),
			Category: strings.TrimSpace(el.SelectAttrValue("category", "")),
			Stock:    make(map[string]decimal.Decimal),
		}
		for _, st := range el.SelectElements("stock") {
			loc := canonicalLocation(st.SelectAttrValue("location", ""))
			if loc == "" {
				return nil, fmt.Errorf("producto %s: bodega desconocida %q", item, st.SelectAttrValue("location", ""))
			}
			qty, err := decimal.NewFromString(strings.TrimSpace(st.SelectAttrValue("qty", "0")))
			if err != nil {
				return nil, fmt.Errorf("producto %s: cantidad inválida: %w", item, err)
			}
			p.Stock[loc] = p.Stock[loc].Add(qty)
		}
		if img := el.SelectElement("image"); img != nil {
			p.ImageURL = domcatalog.NormalizeImageURL(strings.TrimSpace(img.SelectAttrValue("url", "")))
		}
		exp.Products = append(exp.Products, p)
	}
	exp.Series = withReferenced(exp.Series, exp.Products, func(p productRow) string { return p.Series })
	exp.Categories = withReferenced(exp.Categories, exp.Products, func(p productRow) string { return p.Category })
	return exp, nil
}

// withReferenced agrega como activas las series/categorías que usan los productos
// pero que la exportación no declara; sin ellas fallaría la FK de products.
func withReferenced(list []namedFlag, products []productRow, name func(productRow) string) []namedFlag {
	known := make(map[string]bool, len(list))
	for _, nf := range list {
		known[nf.Name] = true
	}
	for _, p := range products {
		if n := name(p); n != "" && !known[n] {
			known[n] = true
			list = append(list, namedFlag{Name: n, Active: true})
		}
	}
	return list
}

// readNamedFlags lee series o categorías sin repetir nombre: si la exportación declara
// dos veces el mismo, gana la última declaración y conserva la posición de la primera.
// Un INSERT ... ON CONFLICT DO UPDATE no admite la misma clave dos veces.
func readNamedFlags(els []*etree.Element) []namedFlag {
	var list []namedFlag
	index := make(map[string]int)
	for _, el := range els {
		nf, ok := readNamedFlag(el)
		if !ok {
			continue
		}
		if i, dup := index[nf.Name]; dup {
			list[i] = nf
			continue
		}
		index[nf.Name] = len(list)
		list = append(list, nf)
	}
	return list
}

func readNamedFlag(el *etree.Element) (namedFlag, bool) {
	name := strings.TrimSpace(el.SelectAttrValue("name", ""))
	if name == "" {
		return namedFlag{}, false
	}
	active := el.SelectAttrValue("active", "1")
	return namedFlag{Name: name, Active: active != "0" && !strings.EqualFold(active, "false")}, true
}

func canonicalLocation(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jaipur":
		return entity.LocationJaipur
	case "kolkata", "calcutta":
		return entity.LocationKolkata
	}
	return ""
}
