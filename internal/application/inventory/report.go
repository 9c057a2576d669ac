package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cafevaldore/tienda-api/internal/application/dto"
)

// esCO formatea números con separadores de miles colombianos para el bloque
// RESUMEN del CSV, igual que el reporte histórico.
var esCO = message.NewPrinter(language.MustParse("es-CO"))

// Report genera el resumen del inventario para el panel admin.
func (uc *AdminUseCase) Report() (*dto.InventoryReportResponse, error) {
	items, err := uc.List()
	if err != nil {
		return nil, err
	}

	report := &dto.InventoryReportResponse{
		TotalProducts: len(items),
		TotalValue:    decimal.Zero,
		Products:      items,
		GeneratedAt:   time.Now(),
	}
	for _, it := range items {
		report.TotalStock += it.Stock
		if it.Active {
			report.ActiveProducts++
		} else {
			report.InactiveProducts++
		}
		switch {
		case it.Stock == 0:
			report.OutOfStock++
		case it.Stock <= it.StockMin:
			report.LowStock++
		}
		report.TotalValue = report.TotalValue.Add(
			it.Price.Mul(decimal.NewFromInt(int64(it.Stock))))
	}
	return report, nil
}

// ExportCSV aplana el reporte al formato histórico: cabecera fija, una fila
// por producto y un bloque RESUMEN separado por línea en blanco. El bloque
// final no es rectangular, por eso se arma a mano y no con encoding/csv.
// Devuelve el nombre de archivo sugerido y el contenido.
func (uc *AdminUseCase) ExportCSV() (string, []byte, error) {
	report, err := uc.Report()
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	b.WriteString("ID,Nombre,Precio,Stock,Stock Mínimo,Stock Máximo,Valor Stock,Activo,Última Actualización\n")
	for _, it := range report.Products {
		active := "Sí"
		if !it.Active {
			active = "No"
		}
		value := it.Price.Mul(decimal.NewFromInt(int64(it.Stock)))
		fmt.Fprintf(&b, "%q,%q,%s,%d,%d,%d,%s,%s,%q\n",
			it.ProductID, it.Name, it.Price.String(),
			it.Stock, it.StockMin, it.StockMax,
			value.String(), active,
			it.LastUpdated.Format("02/01/2006 15:04"),
		)
	}

	b.WriteString("\n\nRESUMEN\n")
	fmt.Fprintf(&b, "Total Productos,%d\n", report.TotalProducts)
	fmt.Fprintf(&b, "Stock Total,%d\n", report.TotalStock)
	fmt.Fprintf(&b, "Productos Activos,%d\n", report.ActiveProducts)
	fmt.Fprintf(&b, "Stock Bajo,%d\n", report.LowStock)
	fmt.Fprintf(&b, "Agotados,%d\n", report.OutOfStock)
	fmt.Fprintf(&b, "Valor Total Inventario,%s\n", esCO.Sprintf("%d", report.TotalValue.IntPart()))

	filename := fmt.Sprintf("inventario-cafe-valdore-%s.csv", time.Now().Format("2006-01-02"))
	return filename, []byte(b.String()), nil
}
