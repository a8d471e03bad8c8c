package pagination

import "testing"

func TestNormalize_Defaults(t *testing.T) {
	p := Normalize(0, 0)
	if p.Page != 1 || p.Size != DefaultSize || p.Offset != 0 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
}

func TestNormalize_Clamps(t *testing.T) {
	p := Normalize(-3, 500)
	if p.Page != 1 {
		t.Fatalf("page must floor at 1, got %d", p.Page)
	}
	if p.Size != MaxSize {
		t.Fatalf("size must clamp to %d, got %d", MaxSize, p.Size)
	}
}

func TestNormalize_Offset(t *testing.T) {
	p := Normalize(3, 20)
	if p.Offset != 40 {
		t.Fatalf("expected offset 40, got %d", p.Offset)
	}
}

func TestGetMeta_TotalPages(t *testing.T) {
	meta := GetMeta(Normalize(1, 20), 45)
	if meta.TotalPages != 3 {
		t.Fatalf("45 items at size 20 must give 3 pages, got %d", meta.TotalPages)
	}
	if meta.TotalItems != 45 {
		t.Fatalf("expected totalItems 45, got %d", meta.TotalItems)
	}
}

func TestGetMeta_FloorsAtOnePage(t *testing.T) {
	meta := GetMeta(Normalize(1, 20), 0)
	if meta.TotalPages != 1 {
		t.Fatalf("an empty result set still reports one page, got %d", meta.TotalPages)
	}
}

func TestGetMeta_ExactFit(t *testing.T) {
	meta := GetMeta(Normalize(1, 20), 40)
	if meta.TotalPages != 2 {
		t.Fatalf("40 items at size 20 must give 2 pages, got %d", meta.TotalPages)
	}
}
