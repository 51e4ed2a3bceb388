// Command validate checks a catalog fixture written by genmock against the
// catalog invariants: full area × phase coverage, overlay id and selection
// rules, well-formed damage variants, and reproducibility from the recorded
// seed.
//
// Usage:
//
//	go run ./cmd/validate -catalog data/mock/catalog_2025.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
)

// check tracks pass/fail for a validation phase.
type check struct {
	name   string
	errors []string
}

func (c *check) errorf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Sprintf(format, args...))
}

func (c *check) passed() bool { return len(c.errors) == 0 }

func main() {
	path := flag.String("catalog", "", "path to a catalog JSON fixture")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(run(*path, os.Stdout))
}

func run(path string, out io.Writer) int {
	fmt.Fprintln(out, "=== SAR Catalog Validation ===")
	fmt.Fprintln(out)

	snap, err := loadSnapshot(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load catalog: %v\n", err)
		return 1
	}

	checks := validate(snap)

	allPassed := true
	for _, c := range checks {
		status := "\033[32mPASS\033[0m"
		if !c.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(c.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", c.name, status)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Records: %d areas, %d images, %d overlays, %d metrics (seed %d)\n",
		len(snap.Areas), len(snap.Images), len(snap.Overlays), len(snap.Metrics), snap.Seed)

	for _, c := range checks {
		if c.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", c.name)
		for i, e := range c.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return 1
}

func loadSnapshot(path string) (domain.CatalogSnapshot, error) {
	var snap domain.CatalogSnapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("decode %s: %w", path, err)
	}
	return snap, nil
}

func validate(snap domain.CatalogSnapshot) []*check {
	return []*check{
		validateImages(snap),
		validateOverlays(snap),
		validateMetrics(snap),
		validateAnalytics(snap),
		validateReproducible(snap),
	}
}

// ── Images ──

func validateImages(snap domain.CatalogSnapshot) *check {
	c := &check{name: "SAR images cover every area and phase"}
	images := make(map[string]domain.SARImage, len(snap.Images))
	for _, img := range snap.Images {
		if _, dup := images[img.ID]; dup {
			c.errorf("duplicate image id %s", img.ID)
		}
		images[img.ID] = img
	}

	for _, area := range snap.Areas {
		for _, p := range domain.Phases {
			id := domain.ImageID(area.ID, p)
			img, ok := images[id]
			if !ok {
				c.errorf("area %s: missing %s image %s", area.ID, p, id)
				continue
			}
			if img.StudyAreaID != area.ID || img.Phase != p {
				c.errorf("image %s: area/phase = %s/%s, want %s/%s", id, img.StudyAreaID, img.Phase, area.ID, p)
			}
			if want := domain.ImageURL(area.Name, p, domain.OverlayBaseSARReference.FileName()); img.ImageURL != want {
				c.errorf("image %s: url %q, want %q", id, img.ImageURL, want)
			}
			if !img.CaptureDate.Equal(p.Date()) {
				c.errorf("image %s: capture date %s, want %s", id, img.CaptureDate.Format("2006-01-02"), p.Date().Format("2006-01-02"))
			}
		}
	}
	if want := len(snap.Areas) * len(domain.Phases); len(snap.Images) != want {
		c.errorf("image count %d, want %d", len(snap.Images), want)
	}
	return c
}

// ── Overlays ──

func validateOverlays(snap domain.CatalogSnapshot) *check {
	c := &check{name: "Overlays reference images, one active each"}
	imageIDs := make(map[string]bool, len(snap.Images))
	for _, img := range snap.Images {
		imageIDs[img.ID] = true
	}

	perImage := make(map[string]map[domain.OverlayType]bool)
	enabled := make(map[string]int)
	for _, o := range snap.Overlays {
		if !imageIDs[o.SARImageID] {
			c.errorf("overlay %s: unknown image %s", o.ID, o.SARImageID)
			continue
		}
		if !o.OverlayType.Valid() {
			c.errorf("overlay %s: unknown type %q", o.ID, o.OverlayType)
			continue
		}
		if want := domain.OverlayID(o.SARImageID, o.OverlayType); o.ID != want {
			c.errorf("overlay %s: id should be %s", o.ID, want)
		}
		if perImage[o.SARImageID] == nil {
			perImage[o.SARImageID] = make(map[domain.OverlayType]bool)
		}
		if perImage[o.SARImageID][o.OverlayType] {
			c.errorf("image %s: duplicate %s overlay", o.SARImageID, o.OverlayType)
		}
		perImage[o.SARImageID][o.OverlayType] = true
		if o.Enabled {
			enabled[o.SARImageID]++
		}
	}

	for id := range imageIDs {
		if n := len(perImage[id]); n != len(domain.OverlayTypes) {
			c.errorf("image %s: %d overlay types, want %d", id, n, len(domain.OverlayTypes))
		}
		if enabled[id] > 1 {
			c.errorf("image %s: %d overlays enabled, at most one allowed", id, enabled[id])
		}
	}
	return c
}

// ── Metrics ──

func validateMetrics(snap domain.CatalogSnapshot) *check {
	c := &check{name: "Flood metrics well-formed"}
	seen := make(map[string]bool, len(snap.Metrics))
	for _, m := range snap.Metrics {
		if seen[m.ID] {
			c.errorf("duplicate metrics id %s", m.ID)
		}
		seen[m.ID] = true

		if want := domain.MetricsID(m.StudyAreaID, m.Phase); m.ID != want {
			c.errorf("metrics %s: id should be %s", m.ID, want)
		}
		if !m.InfrastructureDamage.Valid() {
			c.errorf("metrics %s: malformed damage variant", m.ID)
		}
		if m.InfrastructureDamage.Phase != m.Phase {
			c.errorf("metrics %s: damage phase %s, record phase %s", m.ID, m.InfrastructureDamage.Phase, m.Phase)
		}
		if m.WaterCoverageKm2 <= 0 {
			c.errorf("metrics %s: water coverage %.2f must be positive", m.ID, m.WaterCoverageKm2)
		}
		if m.AffectedPopulation < 0 {
			c.errorf("metrics %s: negative affected population", m.ID)
		}
		if r := m.InfrastructureDamage.Recovery; r != nil && (r.RecoveryRate < 0 || r.RecoveryRate > 1) {
			c.errorf("metrics %s: recovery rate %.2f outside [0,1]", m.ID, r.RecoveryRate)
		}
	}

	for _, area := range snap.Areas {
		for _, p := range domain.Phases {
			if !seen[domain.MetricsID(area.ID, p)] {
				c.errorf("area %s: missing %s metrics", area.ID, p)
			}
		}
	}
	return c
}

// ── Analytics ──

func validateAnalytics(snap domain.CatalogSnapshot) *check {
	c := &check{name: "Analytics derivable for every area and phase"}
	byArea := make(map[string][]domain.FloodMetrics)
	for _, m := range snap.Metrics {
		byArea[m.StudyAreaID] = append(byArea[m.StudyAreaID], m)
	}
	for _, area := range snap.Areas {
		for _, p := range domain.Phases {
			a, ok := domain.Analyze(byArea[area.ID], p)
			if !ok {
				c.errorf("area %s: no analytics for %s", area.ID, p)
				continue
			}
			if p == domain.PhaseDuringEvent && a.WaterIncrease <= 0 {
				c.errorf("area %s: during-event water coverage did not increase (%s km²)", area.ID, domain.FormatSigned(a.WaterIncrease))
			}
		}
	}
	return c
}

// ── Reproducibility ──

func validateReproducible(snap domain.CatalogSnapshot) *check {
	c := &check{name: "Catalog reproducible from seed"}
	regenerated := domain.NewCatalog(snap.Areas, snap.Seed).Snapshot()
	if diff := cmp.Diff(regenerated.Metrics, snap.Metrics); diff != "" {
		c.errorf("metrics differ from seed %d (-regenerated +fixture):\n%s", snap.Seed, diff)
	}
	if diff := cmp.Diff(regenerated.Overlays, snap.Overlays); diff != "" {
		c.errorf("overlays differ from seed %d (-regenerated +fixture):\n%s", snap.Seed, diff)
	}
	return c
}
