// importar carga el padrón de clientes desde el CSV exportado de la hoja de
// cálculo legada (es-CO, a menudo en ISO-8859-1) y lo inserta/actualiza en
// PostgreSQL.
//
// Uso: go run ./cmd/importar [ruta/clientes.csv]
// Por defecto busca clientes.csv en el directorio actual.
//
// Columnas esperadas (con encabezado):
//
//	id, nombre, direccion, fecha_instalacion, plan, valor, fecha_pago,
//	mes_pagado, nodo, tvbox, usuario, pin, estado, ultimo_pago,
//	proximo_pago, factura, contacto1, contacto2, correo, whatsapp1,
//	whatsapp2, nota
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/alianzanet/gestion-api/internal/domain/cartera"
	"github.com/alianzanet/gestion-api/internal/domain/entity"
	"github.com/alianzanet/gestion-api/internal/infrastructure/postgres"
	"github.com/alianzanet/gestion-api/pkg/config"
)

func main() {
	csvPath := "clientes.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	// Exportes viejos de Excel vienen en ISO-8859-1; los de Sheets en UTF-8.
	if !utf8.Valid(raw) {
		raw, _, err = transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Decodificar ISO-8859-1: %v\n", err)
			os.Exit(1)
		}
	}

	r := csv.NewReader(strings.NewReader(string(raw)))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	if len(rows) < 2 {
		fmt.Fprintln(os.Stderr, "El CSV no tiene filas de datos")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewClienteRepository(pool)

	importados, omitidos := 0, 0
	for i, row := range rows[1:] { // saltar encabezado
		c, ok := parseFila(row)
		if !ok {
			fmt.Fprintf(os.Stderr, "fila %d omitida: id o nombre inválido\n", i+2)
			omitidos++
			continue
		}
		if c.ID > 0 {
			err = repo.Guardar(ctx, c)
		} else {
			_, err = repo.Crear(ctx, c)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "fila %d (%s): %v\n", i+2, c.Nombre, err)
			omitidos++
			continue
		}
		importados++
	}

	fmt.Printf("Importados %d clientes, %d filas omitidas\n", importados, omitidos)
}

// parseFila mapea una fila del CSV a la entidad, normalizando moneda, mes y
// mayúsculas igual que la captura manual.
func parseFila(row []string) (*entity.Cliente, bool) {
	col := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	nombre := strings.ToUpper(col(1))
	if nombre == "" {
		return nil, false
	}
	id, err := strconv.ParseInt(col(0), 10, 64)
	if err != nil && col(0) != "" {
		return nil, false
	}

	estado := strings.ToUpper(col(12))
	if estado == "" {
		estado = entity.EstadoActivo
	}

	return &entity.Cliente{
		ID:               id,
		Nombre:           nombre,
		Direccion:        strings.ToUpper(col(2)),
		FechaInstalacion: col(3),
		Plan:             strings.ToUpper(col(4)),
		Valor:            cartera.ParseValor(col(5)),
		FechaPago:        col(6),
		MesPagado:        strings.ToUpper(col(7)),
		Nodo:             strings.ToUpper(col(8)),
		TVBox:            strings.ToUpper(col(9)),
		Usuario:          col(10),
		PIN:              col(11),
		Estado:           estado,
		UltimoPago:       col(13),
		ProximoPago:      col(14),
		Factura:          col(15),
		Contacto1:        col(16),
		Contacto2:        col(17),
		Correo:           col(18),
		Whatsapp1:        col(19),
		Whatsapp2:        col(20),
		Nota:             col(21),
	}, true
}
