package service

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/materiallab/materialmap/internal/display"
	"github.com/materiallab/materialmap/internal/domain"
	"github.com/materiallab/materialmap/internal/imagegen"
	"github.com/materiallab/materialmap/internal/imageref"
	"github.com/materiallab/materialmap/internal/logger"
	"github.com/materiallab/materialmap/internal/repository"
)

// newTestStack wires the full resolve/heal pipeline against a throwaway
// sqlite database and project root.
func newTestStack(t *testing.T, autoHeal bool) (*ImageService, *repository.MaterialRepository, string) {
	t.Helper()
	root := t.TempDir()

	db, err := gorm.Open(sqlite.Open(filepath.Join(root, "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Material{},
		&domain.Property{},
		&domain.Image{},
		&domain.UseExample{},
		&domain.ProcessExampleImage{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	materialRepo := repository.NewMaterialRepository(db)
	imageRepo := repository.NewImageRepository(db)
	resolver := imageref.NewResolver(imageref.Config{ProjectRoot: root, Version: "test"})
	generator, err := imagegen.NewGenerator(root, "")
	if err != nil {
		t.Fatalf("generator: %v", err)
	}
	adapter := display.NewAdapter(root, "")

	log := logger.New(&logger.Config{Level: "error", Format: "text", Output: io.Discard})
	svc := NewImageService(materialRepo, imageRepo, resolver, generator, adapter, log, root, &ImageConfig{AutoHeal: autoHeal})
	return svc, materialRepo, root
}

func TestGetDisplayAutoHealsPrimary(t *testing.T) {
	svc, materialRepo, root := newTestStack(t, true)
	ctx := context.Background()

	material := &domain.Material{
		UUID:     "11111111-1111-1111-1111-111111111111",
		Name:     "アルミニウム（純アルミ）",
		Category: "金属",
	}
	if err := materialRepo.Create(ctx, material); err != nil {
		t.Fatalf("create: %v", err)
	}

	d, ref := svc.GetDisplay(ctx, material, imageref.KindPrimary)
	if d.Source != display.SourceInline {
		t.Fatalf("source = %q, want %q", d.Source, display.SourceInline)
	}
	if ref.Branch != imageref.BranchLocal {
		t.Errorf("branch = %q, want %q", ref.Branch, imageref.BranchLocal)
	}

	// The healed file must land at the conventional slug path.
	want := filepath.Join(root, "static", "images", "materials", "アルミニウム（純アルミ）", "primary.jpg")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("healed file: %v", err)
	}

	// The path must be recorded so the next resolution wins locally.
	fresh, err := materialRepo.GetByID(ctx, material.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if fresh.TextureImagePath == "" {
		t.Error("texture path was not recorded")
	}
}

func TestGetDisplayWithoutAutoHealServesPlaceholder(t *testing.T) {
	svc, materialRepo, root := newTestStack(t, false)
	ctx := context.Background()

	material := &domain.Material{UUID: "22222222-2222-2222-2222-222222222222", Name: "栗", Category: "木材"}
	if err := materialRepo.Create(ctx, material); err != nil {
		t.Fatalf("create: %v", err)
	}

	d, ref := svc.GetDisplay(ctx, material, imageref.KindPrimary)
	if d.Source != display.SourcePlaceholder {
		t.Errorf("source = %q, want %q", d.Source, display.SourcePlaceholder)
	}
	if !ref.IsZero() {
		t.Errorf("ref = %+v, want zero", ref)
	}
	if _, err := os.Stat(filepath.Join(root, "static", "images", "materials", "栗", "primary.jpg")); !os.IsNotExist(err) {
		t.Errorf("no file should have been generated, stat err = %v", err)
	}
}

func TestGetDisplayPrefersDatabaseURL(t *testing.T) {
	svc, materialRepo, _ := newTestStack(t, true)
	ctx := context.Background()

	material := &domain.Material{
		UUID:            "33333333-3333-3333-3333-333333333333",
		Name:            "真鍮",
		Category:        "金属",
		TextureImageURL: "https://cdn.example.com/brass.jpg",
	}
	if err := materialRepo.Create(ctx, material); err != nil {
		t.Fatalf("create: %v", err)
	}

	d, ref := svc.GetDisplay(ctx, material, imageref.KindPrimary)
	if d.Source != display.SourceURL {
		t.Fatalf("source = %q, want %q", d.Source, display.SourceURL)
	}
	if ref.Branch != imageref.BranchDBURL {
		t.Errorf("branch = %q, want %q", ref.Branch, imageref.BranchDBURL)
	}
}

func TestHealSpaceCreatesUseExampleRecord(t *testing.T) {
	svc, materialRepo, root := newTestStack(t, false)
	ctx := context.Background()

	material := &domain.Material{UUID: "44444444-4444-4444-4444-444444444444", Name: "樫", Category: "木材"}
	if err := materialRepo.Create(ctx, material); err != nil {
		t.Fatalf("create: %v", err)
	}

	rel, err := svc.Heal(ctx, material, imageref.KindSpace)
	if err != nil {
		t.Fatalf("Heal: %v", err)
	}
	if want := "static/images/materials/樫/uses/space.jpg"; rel != want {
		t.Errorf("rel = %q, want %q", rel, want)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
		t.Errorf("healed file: %v", err)
	}

	fresh, err := materialRepo.GetByID(ctx, material.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(fresh.UseExamples) != 1 {
		t.Fatalf("use examples = %d, want 1", len(fresh.UseExamples))
	}
	if fresh.UseExamples[0].ImagePath != rel {
		t.Errorf("recorded path = %q, want %q", fresh.UseExamples[0].ImagePath, rel)
	}
	if fresh.UseExamples[0].Domain != "空間" {
		t.Errorf("domain = %q, want 空間", fresh.UseExamples[0].Domain)
	}
}

func TestHealSpaceUpdatesExistingRecord(t *testing.T) {
	svc, materialRepo, _ := newTestStack(t, false)
	ctx := context.Background()

	material := &domain.Material{
		UUID:     "55555555-5555-5555-5555-555555555555",
		Name:     "カリン",
		Category: "木材",
		UseExamples: []domain.UseExample{
			{Title: "リビングの床材", Domain: "空間デザイン", ImagePath: "static/images/materials/カリン/uses/space.jpg"},
		},
	}
	if err := materialRepo.Create(ctx, material); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Heal(ctx, material, imageref.KindSpace); err != nil {
		t.Fatalf("Heal: %v", err)
	}

	fresh, err := materialRepo.GetByID(ctx, material.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(fresh.UseExamples) != 1 {
		t.Fatalf("use examples = %d, want 1 (no duplicate row)", len(fresh.UseExamples))
	}
	if fresh.UseExamples[0].Title != "リビングの床材" {
		t.Errorf("title = %q, existing title should be kept", fresh.UseExamples[0].Title)
	}
}

func TestEnsureAll(t *testing.T) {
	svc, materialRepo, _ := newTestStack(t, false)
	ctx := context.Background()

	materials := []*domain.Material{
		{UUID: "66666666-6666-6666-6666-666666666666", Name: "PP", Category: "プラスチック"},
		{
			UUID: "77777777-7777-7777-7777-777777777777", Name: "ステンレス", Category: "金属",
			UseExamples: []domain.UseExample{{Title: "キッチン", Domain: "空間"}},
		},
	}
	for _, m := range materials {
		if err := materialRepo.Create(ctx, m); err != nil {
			t.Fatalf("create %s: %v", m.Name, err)
		}
	}

	report, err := svc.EnsureAll(ctx)
	if err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	// Two primary slots plus one space slot with a use example; product
	// slots without a record are skipped.
	if report.Checked != 3 {
		t.Errorf("checked = %d, want 3", report.Checked)
	}
	if report.Regenerated != 3 {
		t.Errorf("regenerated = %d, want 3", report.Regenerated)
	}
	if report.Failed != 0 {
		t.Errorf("failed = %d, want 0", report.Failed)
	}

	// A second pass finds everything healthy.
	report, err = svc.EnsureAll(ctx)
	if err != nil {
		t.Fatalf("EnsureAll second pass: %v", err)
	}
	if report.Healthy != 3 {
		t.Errorf("healthy = %d, want 3", report.Healthy)
	}
	if report.Regenerated != 0 {
		t.Errorf("regenerated = %d, want 0", report.Regenerated)
	}
}
