package enums

import "testing"

func TestParseProductCategory(t *testing.T) {
	for _, raw := range []string{"aridos", "maquinaria", "transportes"} {
		got, err := ParseProductCategory(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if got.String() != raw {
			t.Fatalf("expected %q got %q", raw, got)
		}
	}
	if _, err := ParseProductCategory("Aridos"); err == nil {
		t.Fatal("expected case-sensitive parse to reject Aridos")
	}
}

func TestProductCategoriesReturnsCopy(t *testing.T) {
	cats := ProductCategories()
	cats[0] = "mutated"
	if ProductCategories()[0] != ProductCategoryAridos {
		t.Fatal("expected display order to be unaffected by caller mutation")
	}
}

func TestProductUnitLabels(t *testing.T) {
	cases := map[ProductUnit]string{
		ProductUnitTonne:   "Tonelada",
		ProductUnitHour:    "Hora",
		ProductUnitService: "Servicio",
		ProductUnit("m3"):  "m3",
	}
	for unit, want := range cases {
		if got := unit.Label(); got != want {
			t.Fatalf("unit %q expected label %q got %q", unit, want, got)
		}
	}
	if _, err := ParseProductUnit("kg"); err == nil {
		t.Fatal("expected unknown unit to fail")
	}
}
