// Command genmock writes the generated SAR catalog (study areas, images,
// overlays and flood metrics) as a JSON fixture. The same seed always yields
// the same fixture, so the output can be checked in and diffed.
//
// Usage:
//
//	go run ./cmd/genmock -seed 2025 -out data/mock/catalog_2025.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/sikkim-flood-portal/internal/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("genmock", flag.ContinueOnError)
	seed := fs.Uint64("seed", 2025, "generator seed")
	randomize := fs.Bool("randomize", false, "derive the seed from the current time")
	out := fs.String("out", "", "output path for the catalog fixture (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s := *seed
	if *randomize {
		s = domain.RandomSeed()
	}
	snap := domain.NewCatalog(domain.DefaultStudyAreas(), s).Snapshot()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	data = append(data, '\n')

	if *out == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := writeJSON(*out, data); err != nil {
		return err
	}
	log.Printf("wrote %s: seed %d, %d areas, %d images, %d overlays, %d metrics",
		*out, s, len(snap.Areas), len(snap.Images), len(snap.Overlays), len(snap.Metrics))
	return nil
}

func writeJSON(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // fixture files are world-readable
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
