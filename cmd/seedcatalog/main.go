// seedcatalog genera un script SQL para poblar el catálogo de productos a
// partir de un vademécum en XML (export del sistema anterior, ISO-8859-1).
//
// Uso: go run ./cmd/seedcatalog [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_products.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Productos []producto `xml:"producto"`
}

type producto struct {
	Nombre      string `xml:"nombre,attr"`
	Categoria   string `xml:"categoria,attr"`
	Precio      string `xml:"precio,attr"`
	PrecioMin   string `xml:"precio_minimo,attr"`
	Descripcion string `xml:"descripcion,attr"`
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var cat catalogo
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&cat); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Filtrar filas incompletas o con precios que no parsean
	type row struct {
		nombre, categoria, descripcion string
		precio, precioMin              decimal.Decimal
	}
	var rows []row
	var skipped int
	for _, p := range cat.Productos {
		nombre := strings.TrimSpace(p.Nombre)
		if nombre == "" {
			skipped++
			continue
		}
		precio, err := decimal.NewFromString(strings.TrimSpace(p.Precio))
		if err != nil || !precio.IsPositive() {
			skipped++
			continue
		}
		precioMin := decimal.Zero
		if s := strings.TrimSpace(p.PrecioMin); s != "" {
			if pm, err := decimal.NewFromString(s); err == nil && !pm.IsNegative() && !pm.GreaterThan(precio) {
				precioMin = pm
			}
		}
		rows = append(rows, row{
			nombre:      nombre,
			categoria:   strings.TrimSpace(p.Categoria),
			descripcion: strings.TrimSpace(p.Descripcion),
			precio:      precio,
			precioMin:   precioMin,
		})
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "El catálogo no tiene productos válidos")
		os.Exit(1)
	}

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_products.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo inicial de productos (vademécum)\n")
	out.WriteString("-- Generado desde catalogo.xml con cmd/seedcatalog\n\n")

	out.WriteString("INSERT INTO products (id, name, category, description, price, min_price, created_at, updated_at) VALUES\n")
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  (gen_random_uuid()::text, '%s', '%s', '%s', %s, %s, now(), now())%s\n",
			escapeSQL(r.nombre), escapeSQL(r.categoria), escapeSQL(r.descripcion),
			r.precio.StringFixed(2), r.precioMin.StringFixed(2), sep)
	}
	// El nombre es único: correr dos veces no duplica el catálogo
	out.WriteString("ON CONFLICT (name) DO NOTHING;\n")

	fmt.Printf("Generado %s: %d productos (%d descartados)\n", outPath, len(rows), skipped)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
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
