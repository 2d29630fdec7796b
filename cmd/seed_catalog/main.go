// seed_catalog genera scripts SQL a partir de la exportación XML del catálogo heredado
// (series, categorías, productos, stock por bodega e imágenes) y de cuentas del personal.
//
// Uso:
//
//	go run ./cmd/seed_catalog catalog --in catalogo.xml
//	go run ./cmd/seed_catalog staff --username admin --password '...' --role Admin
//
// Por defecto escribe migrations/002_seed_catalog.sql.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/karnifashions/catalog-api/internal/domain/entity"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "seed_catalog",
		Short:         "Genera SQL de carga inicial para el catálogo",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCatalogCmd(), newStaffCmd())
	return root
}

func newCatalogCmd() *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Convierte la exportación XML del catálogo en SQL idempotente",
		Long: `Lee la exportación XML (UTF-8 o Windows-1252) y escribe un script con
INSERT ... ON CONFLICT para series, categorías, productos, inventario e imágenes.
Las URLs de Google Drive se guardan ya normalizadas.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := os.Open(inPath)
			if err != nil {
				return fmt.Errorf("abrir XML: %w", err)
			}
			defer f.Close()

			exp, err := parseExport(f)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = filepath.Join(findModuleRoot(), "migrations", "002_seed_catalog.sql")
			}
			out, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("crear archivo: %w", err)
			}
			if err := writeCatalogFile(out, exp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generado %s: %d series, %d categorías, %d productos\n",
				outPath, len(exp.Series), len(exp.Categories), len(exp.Products))
			return nil
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "catalogo.xml", "Ruta de la exportación XML")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Ruta del script SQL de salida")
	return cmd
}

func newStaffCmd() *cobra.Command {
	var username, password, fullName, role string
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Imprime el INSERT de una cuenta del personal con password bcrypt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if role != entity.RoleAdmin && role != entity.RoleUser {
				return fmt.Errorf("rol inválido %q: use %s o %s", role, entity.RoleAdmin, entity.RoleUser)
			}
			if len(password) < 6 {
				return fmt.Errorf("password debe tener al menos 6 caracteres")
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			return writeStaffSQL(cmd.OutOrStdout(), strings.TrimSpace(username), string(hash), fullName, role)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "Usuario (requerido)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password en claro (requerido)")
	cmd.Flags().StringVar(&fullName, "name", "", "Nombre completo")
	cmd.Flags().StringVar(&role, "role", entity.RoleUser, "Admin | User")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
