package imageref

import "testing"

func TestUseExampleFor(t *testing.T) {
	fields := MaterialImageFields{
		UseExamples: []UseExampleRef{
			{Domain: "生活雑貨", ImagePath: "a.jpg"},
			{Domain: "空間デザイン", ImagePath: "b.jpg"},
			{Domain: "Product Design", ImagePath: "c.jpg"},
			{Domain: "プロダクト", ImagePath: "d.jpg"},
		},
	}

	tests := []struct {
		name     string
		kind     Kind
		wantPath string
		wantOK   bool
	}{
		{
			name:     "space matches japanese label",
			kind:     KindSpace,
			wantPath: "b.jpg",
			wantOK:   true,
		},
		{
			name:     "product matches first of english and japanese rows",
			kind:     KindProduct,
			wantPath: "c.jpg",
			wantOK:   true,
		},
		{
			name:   "primary has no domain labels",
			kind:   KindPrimary,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ue, ok := fields.UseExampleFor(tt.kind)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && ue.ImagePath != tt.wantPath {
				t.Errorf("path = %q, want %q", ue.ImagePath, tt.wantPath)
			}
		})
	}
}

func TestDisplayNameAndSlug(t *testing.T) {
	f := MaterialImageFields{Name: "old name", NameOfficial: "PP/PE複合材"}
	if f.DisplayName() != "PP/PE複合材" {
		t.Errorf("DisplayName() = %q", f.DisplayName())
	}
	if f.Slug() != "PP_PE複合材" {
		t.Errorf("Slug() = %q", f.Slug())
	}

	f = MaterialImageFields{Name: "樫"}
	if f.DisplayName() != "樫" {
		t.Errorf("fallback DisplayName() = %q", f.DisplayName())
	}
}
