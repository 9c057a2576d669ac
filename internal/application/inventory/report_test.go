package inventory_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafevaldore/tienda-api/internal/application/inventory"
	"github.com/cafevaldore/tienda-api/internal/domain/entity"
)

func newAdminEnv() (*inventory.AdminUseCase, *fakeInventoryRepo, *fakeMovementRepo) {
	products := &fakeProductRepo{products: []*entity.Product{
		{ID: "cafe-caturra", Name: "Café Caturra", Price: decimal.NewFromInt(25000)},
		{ID: "cafe-bourbon", Name: "Café Bourbon", Price: decimal.NewFromInt(28000)},
		{ID: "super-promocion", Name: "Súper Promoción", Price: decimal.NewFromInt(95000)},
	}}
	inv := newFakeInventoryRepo()
	inv.records["cafe-caturra"] = &entity.InventoryRecord{
		ProductID: "cafe-caturra", Stock: 100, StockMin: 10, StockMax: 500, Active: true,
	}
	inv.records["cafe-bourbon"] = &entity.InventoryRecord{
		ProductID: "cafe-bourbon", Stock: 5, StockMin: 10, StockMax: 500, Active: true,
	}
	inv.records["super-promocion"] = &entity.InventoryRecord{
		ProductID: "super-promocion", Stock: 0, StockMin: 10, StockMax: 500, Active: false,
	}
	mov := &fakeMovementRepo{}
	runner := &fakeTxRunner{inv: inv, mov: mov, ded: newFakeDeductionRepo()}
	return inventory.NewAdminUseCase(runner, products, inv, mov), inv, mov
}

func TestReport_Totales(t *testing.T) {
	uc, _, _ := newAdminEnv()

	report, err := uc.Report()
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalProducts)
	assert.Equal(t, 105, report.TotalStock)
	assert.Equal(t, 2, report.ActiveProducts)
	assert.Equal(t, 1, report.InactiveProducts)
	assert.Equal(t, 1, report.LowStock, "bourbon con 5 <= mínimo 10")
	assert.Equal(t, 1, report.OutOfStock, "la súper promoción está agotada")

	// 100*25000 + 5*28000 + 0*95000
	assert.True(t, report.TotalValue.Equal(decimal.NewFromInt(2640000)),
		"valor total esperado 2640000, obtenido %s", report.TotalValue)
}

func TestExportCSV_FormatoHistorico(t *testing.T) {
	uc, _, _ := newAdminEnv()

	filename, data, err := uc.ExportCSV()
	require.NoError(t, err)

	expected := fmt.Sprintf("inventario-cafe-valdore-%s.csv", time.Now().Format("2006-01-02"))
	assert.Equal(t, expected, filename)

	csv := string(data)
	lines := strings.Split(csv, "\n")
	assert.Equal(t,
		"ID,Nombre,Precio,Stock,Stock Mínimo,Stock Máximo,Valor Stock,Activo,Última Actualización",
		lines[0], "la cabecera debe ser la histórica, columna por columna")

	assert.Contains(t, csv, `"cafe-caturra","Café Caturra",25000,100,10,500,2500000,Sí`)
	assert.Contains(t, csv, `"super-promocion","Súper Promoción",95000,0,10,500,0,No`)

	// Bloque RESUMEN separado por línea en blanco, con miles es-CO.
	assert.Contains(t, csv, "\n\nRESUMEN\n")
	assert.Contains(t, csv, "Total Productos,3\n")
	assert.Contains(t, csv, "Stock Total,105\n")
	assert.Contains(t, csv, "Productos Activos,2\n")
	assert.Contains(t, csv, "Stock Bajo,1\n")
	assert.Contains(t, csv, "Agotados,1\n")
	assert.Contains(t, csv, "Valor Total Inventario,2.640.000\n")
}

func TestUpdateStock_RegistraMovimientoConDelta(t *testing.T) {
	uc, inv, mov := newAdminEnv()

	require.NoError(t, uc.UpdateStock(context.Background(), "cafe-caturra", 80, "conteo físico"))

	rec, err := inv.Get("cafe-caturra")
	require.NoError(t, err)
	assert.Equal(t, 80, rec.Stock)

	require.Len(t, mov.movements, 1)
	assert.Equal(t, -20, mov.movements[0].Quantity)
	assert.Equal(t, "conteo físico", mov.movements[0].Reason)
	assert.Equal(t, "Café Caturra", mov.movements[0].ProductName)
}

func TestAdjustStock_PisoEnCero(t *testing.T) {
	uc, inv, mov := newAdminEnv()

	require.NoError(t, uc.AdjustStock(context.Background(), "cafe-bourbon", -50, ""))

	rec, err := inv.Get("cafe-bourbon")
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Stock, "el ajuste nunca deja stock negativo")

	require.Len(t, mov.movements, 1)
	assert.Equal(t, -5, mov.movements[0].Quantity, "el movimiento registra el delta real aplicado")
	assert.Equal(t, "ajuste-manual", mov.movements[0].Reason)
}

func TestAdjustStock_SinCambioNoRegistraMovimiento(t *testing.T) {
	uc, _, mov := newAdminEnv()

	require.NoError(t, uc.AdjustStock(context.Background(), "super-promocion", -3, "intento"))
	assert.Empty(t, mov.movements, "de 0 a 0 no hay movimiento")
}
