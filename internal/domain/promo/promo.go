// Package promo contiene la tabla de promociones (bundles) de la tienda y la
// resolución de nombres de producto a SKUs de inventario. Es la única fuente
// de verdad para la expansión bundle→componentes que usa el motor de descuento.
package promo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/cafevaldore/tienda-api/internal/domain/entity"
)

// SKUs fijos del catálogo que participan en promociones.
const (
	SKUCafeCaturra = "cafe-caturra"
	SKUCafeBourbon = "cafe-bourbon"
	SKUSuperPromo  = "super-promocion"
	SKUPromoBC     = "promocion-bourbon-caturra"
)

// Component un SKU consumido por cada unidad vendida del bundle.
// Factor multiplica la cantidad de la línea del pedido.
type Component struct {
	ProductID string
	Name      string
	Factor    int
}

// Bundle una promoción: SKU propio más los componentes que consume.
// ReasonTag se usa en el motivo del movimiento (venta-<tag>-<pedido>).
type Bundle struct {
	SKU        string
	Label      string
	ReasonTag  string
	Components []Component
}

// Tabla única de promociones. El bundle consume stock de su propio SKU
// (una unidad por línea) además de los componentes individuales.
var bundles = []Bundle{
	{
		SKU:       SKUSuperPromo,
		Label:     "Súper Promoción",
		ReasonTag: "super-promocion",
		Components: []Component{
			{ProductID: SKUSuperPromo, Name: "Súper Promoción", Factor: 1},
			{ProductID: SKUCafeCaturra, Name: "Café Caturra", Factor: 2},
			{ProductID: SKUCafeBourbon, Name: "Café Bourbon", Factor: 2},
		},
	},
	{
		SKU:       SKUPromoBC,
		Label:     "Promoción Bourbon + Caturra",
		ReasonTag: "promocion",
		Components: []Component{
			{ProductID: SKUPromoBC, Name: "Promoción Bourbon + Caturra", Factor: 1},
			{ProductID: SKUCafeCaturra, Name: "Café Caturra", Factor: 1},
			{ProductID: SKUCafeBourbon, Name: "Café Bourbon", Factor: 1},
		},
	},
}

// RequiredUnit una unidad de inventario requerida por una línea de pedido ya
// resuelta: SKU real, nombre para el reporte y cantidad total a descontar.
type RequiredUnit struct {
	ProductID string
	Name      string
	Quantity  int
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza un nombre para comparación: minúsculas y sin tildes, de modo
// que "Promoción" ≡ "promocion" y "Súper" ≡ "super".
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// DetectBundle devuelve la promoción que corresponde al nombre mostrado, o nil
// si la línea no es una promoción. La detección es por subcadena, insensible a
// mayúsculas y tildes.
func DetectBundle(displayName string) *Bundle {
	name := Fold(displayName)
	if !strings.Contains(name, "promocion") {
		return nil
	}
	if strings.Contains(name, "super") {
		return &bundles[0]
	}
	return &bundles[1]
}

// Expand resuelve una línea de pedido promocional a sus unidades requeridas.
// Devuelve nil si el nombre no corresponde a una promoción.
func Expand(displayName string, quantity int) []RequiredUnit {
	b := DetectBundle(displayName)
	if b == nil {
		return nil
	}
	units := make([]RequiredUnit, 0, len(b.Components))
	for _, comp := range b.Components {
		units = append(units, RequiredUnit{
			ProductID: comp.ProductID,
			Name:      comp.Name,
			Quantity:  comp.Factor * quantity,
		})
	}
	return units
}

// MatchProduct busca el producto del catálogo cuyo nombre corresponde a la
// línea: primero igualdad exacta (insensible a mayúsculas/tildes) y como
// respaldo contención de subcadena en ambos sentidos. Devuelve nil si no hay
// correspondencia; la línea se trata como no resuelta, nunca como error.
func MatchProduct(displayName string, catalog []*entity.Product) *entity.Product {
	name := Fold(displayName)
	for _, p := range catalog {
		if Fold(p.Name) == name {
			return p
		}
	}
	for _, p := range catalog {
		pn := Fold(p.Name)
		if strings.Contains(name, pn) || strings.Contains(pn, name) {
			return p
		}
	}
	return nil
}

// IdentifySKU replica la resolución rápida del carrito: promociones por
// palabra clave y los dos cafés por subcadena. Devuelve "" si no se pudo
// identificar el producto.
func IdentifySKU(displayName string) string {
	if b := DetectBundle(displayName); b != nil {
		return b.SKU
	}
	name := Fold(displayName)
	switch {
	case strings.Contains(name, "bourbon"):
		return SKUCafeBourbon
	case strings.Contains(name, "caturra"):
		return SKUCafeCaturra
	}
	return ""
}
