package catalog

import (
	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// DefaultCategories is the built-in category list.
func DefaultCategories() []Category {
	return []Category{
		{
			ID:          enums.ProductCategoryAridos,
			Name:        "Áridos",
			Description: "Puesto en obra",
			Color:       "#F0A830",
			Icon:        "/cat-aridos.png",
			QuoteName:   "Áridos",
			Emoji:       "🪨",
		},
		{
			ID:          enums.ProductCategoryMaquinaria,
			Name:        "Maquinaria",
			Description: "Alquiler con operario",
			Color:       "#D94432",
			Icon:        "/cat-maquinaria.png",
			QuoteName:   "Maquinaria",
			Emoji:       "🚜",
		},
		{
			ID:          enums.ProductCategoryTransportes,
			Name:        "Transportes",
			Description: "Retirada de materiales",
			Color:       "#22C55E",
			Icon:        "/cat-transportes.png",
			QuoteName:   "Transportes y Retirada",
			Emoji:       "🚛",
		},
	}
}

func aridos(id, emoji, name, description, price string) Product {
	return Product{ID: id, Emoji: emoji, Name: name, Description: description, Unit: enums.ProductUnitTonne, UnitLabel: "Tonelada", Price: decimal.RequireFromString(price), Category: enums.ProductCategoryAridos}
}

func maquinaria(id, emoji, name, description, price string) Product {
	return Product{ID: id, Emoji: emoji, Name: name, Description: description, Unit: enums.ProductUnitHour, UnitLabel: "Hora", Price: decimal.RequireFromString(price), Category: enums.ProductCategoryMaquinaria}
}

func transporte(id, emoji, name, description, price string) Product {
	return Product{ID: id, Emoji: emoji, Name: name, Description: description, Unit: enums.ProductUnitService, UnitLabel: "Servicio", Price: decimal.RequireFromString(price), Category: enums.ProductCategoryTransportes}
}

// DefaultProducts is the built-in price list.
func DefaultProducts() []Product {
	return []Product{
		aridos("arena-fina", "⏳", "Arena Fina", "Arena lavada para morteros y acabados", "19.50"),
		aridos("arena-basta", "🏖️", "Arena Basta", "Arena gruesa para hormigones y rellenos", "19.00"),
		aridos("bolos-30-60", "🪨", "Bolos 30/60", "Cantos rodados para drenajes y decoración", "14.50"),
		aridos("gravin-20", "🔶", "Gravín del 20", "Gravilla calibrada 20mm para hormigones", "16.50"),
		aridos("jabre", "🏔️", "Jabre", "Arena de cantera para compactación y bases", "16.50"),
		aridos("zahorra-artificial", "🛣️", "Zahorra Artificial", "Base granular para firmes y explanadas", "20.00"),
		aridos("zahorra-reciclada", "♻️", "Zahorra Reciclada", "Material reciclado para rellenos económicos", "12.00"),
		aridos("tierra-vegetal", "🌱", "Tierra Vegetal", "Tierra fértil para jardinería y revegetación", "12.00"),
		aridos("revuelto-20", "🔀", "Revuelto del 20", "Mezcla de áridos calibre 20mm para rellenos", "19.50"),

		maquinaria("mixta-cat-428", "🚜", "Máquina Mixta Cat 428", "Retroexcavadora mixta para obras versátiles", "40.00"),
		maquinaria("retro-cat-318", "⛏️", "Retro Cat 318", "Excavadora de cadenas para grandes movimientos", "75.00"),
		maquinaria("rulo-compactador", "🛞", "Rulo Compactador", "Rodillo vibrante para compactación de terrenos", "60.00"),
		maquinaria("camion-banera", "🚚", "Camión Bañera", "Bañera de 18m³ para transporte de materiales", "65.00"),
		maquinaria("camion-doble-carro", "🚛", "Camión Doble Carro", "Camión con remolque de 12m³ aprox.", "50.00"),
		maquinaria("camion-multilinea", "🛻", "Camión MultiLínea", "Camión ligero de 3,5m³ para accesos difíciles", "45.00"),
		maquinaria("mini-excavadora", "🏗️", "Mini Excavadora", "Excavadora compacta para espacios reducidos", "40.00"),
		maquinaria("mini-cargadora", "🔧", "Mini Cargadora", "Cargadora compacta tipo Bobcat multiusos", "35.00"),
		maquinaria("martillo-miniexc", "🔨", "Martillo Miniexcavadora", "Martillo hidráulico para miniexcavadora", "45.00"),
		maquinaria("martillo-mixta", "⚒️", "Martillo Mixta", "Martillo hidráulico para retroexcavadora mixta", "50.00"),
		maquinaria("martillo-retro", "💥", "Martillo Retro", "Martillo hidráulico de alto rendimiento", "85.00"),

		transporte("batea-tierra", "🚧", "Batea de Tierra", "Transporte de tierras a vertedero exterior", "75.00"),
		transporte("batea-vegetales", "🌿", "Batea Residuos Vegetales", "Retirada y transporte de residuos vegetales", "100.00"),
		transporte("gondola", "🚢", "Servicio de Góndola", "Transporte especial de maquinaria pesada", "250.00"),
	}
}

// Default builds the built-in catalog.
func Default() *Catalog {
	c, err := New(DefaultCategories(), DefaultProducts())
	if err != nil {
		panic("built-in catalog is invalid: " + err.Error())
	}
	return c
}
