package main

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

// writeCatalogSQL escribe el script en orden de dependencias. Todas las sentencias
// son idempotentes, se puede aplicar más de una vez.
func writeCatalogSQL(w io.Writer, exp *export) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("-- Carga inicial del catálogo Karni Fashions\n")
	bw.WriteString("-- Generado por cmd/seed_catalog\n\n")
	bw.WriteString("BEGIN;\n\n")

	writeNamed(bw, "series", "series_name", exp.Series)
	writeNamed(bw, "categories", "category_name", exp.Categories)

	if len(exp.Products) > 0 {
		bw.WriteString("-- Productos\n")
		bw.WriteString("INSERT INTO products (item, series_name, category_name) VALUES\n")
		for i, p := range exp.Products {
			fmt.Fprintf(bw, "  (%s, %s, %s)%s\n", quote(p.Item), nullable(p.Series), nullable(p.Category), sep(i, len(exp.Products)))
		}
		bw.WriteString("ON CONFLICT (item) DO UPDATE SET series_name = EXCLUDED.series_name, category_name = EXCLUDED.category_name;\n\n")
	}

	bw.WriteString("-- Inventario por bodega\n")
	for _, p := range exp.Products {
		locs := make([]string, 0, len(p.Stock))
		for loc := range p.Stock {
			locs = append(locs, loc)
		}
		sort.Strings(locs)
		for _, loc := range locs {
			fmt.Fprintf(bw, "INSERT INTO inventory (product_id, location, quantity)\n")
			fmt.Fprintf(bw, "SELECT product_id, %s, %s FROM products WHERE item = %s\n", quote(loc), p.Stock[loc].String(), quote(p.Item))
			bw.WriteString("ON CONFLICT (product_id, location) DO UPDATE SET quantity = EXCLUDED.quantity;\n")
		}
	}
	bw.WriteString("\n-- Imágenes\n")
	for _, p := range exp.Products {
		if p.ImageURL == "" {
			continue
		}
		fmt.Fprintf(bw, "INSERT INTO product_images (product_id, image_url)\n")
		fmt.Fprintf(bw, "SELECT product_id, %s FROM products WHERE item = %s\n", quote(p.ImageURL), quote(p.Item))
		bw.WriteString("ON CONFLICT (product_id) DO UPDATE SET image_url = EXCLUDED.image_url, updated_at = now();\n")
	}
	bw.WriteString("\nCOMMIT;\n")
	return bw.Flush()
}

// writeCatalogFile escribe el script y cierra el archivo; un fallo al cerrar también
// es un fallo de escritura (el contenido puede no haber llegado a disco).
func writeCatalogFile(out io.WriteCloser, exp *export) error {
	if err := writeCatalogSQL(out, exp); err != nil {
		_ = out.Close()
		return fmt.Errorf("escribir SQL: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("cerrar archivo: %w", err)
	}
	return nil
}

func writeNamed(bw *bufio.Writer, table, column string, list []namedFlag) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintf(bw, "-- %s\n", table)
	fmt.Fprintf(bw, "INSERT INTO %s (%s, is_active) VALUES\n", table, column)
	for i, nf := range list {
		fmt.Fprintf(bw, "  (%s, %t)%s\n", quote(nf.Name), nf.Active, sep(i, len(list)))
	}
	fmt.Fprintf(bw, "ON CONFLICT (%s) DO UPDATE SET is_active = EXCLUDED.is_active;\n\n", column)
}

func writeStaffSQL(w io.Writer, username, hash, fullName, role string) error {
	_, err := fmt.Fprintf(w,
		"INSERT INTO users (username, password_hash, full_name, role, customer_type)\n"+
			"VALUES (%s, %s, %s, %s, %d)\n"+
			"ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash, role = EXCLUDED.role;\n",
		quote(username), quote(hash), nullable(fullName), quote(role), entity.CustomerTypeNone)
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}
