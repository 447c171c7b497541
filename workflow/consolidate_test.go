package workflow

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func writeTestRecord(t *testing.T, root string, rel string, md Metadata) {
	t.Helper()

	dir := filepath.Join(root, rel)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := json.MarshalIndent(md, "", "  ")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFileName), data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func intPtr(v int64) *int64 { return &v }

func TestConsolidate(t *testing.T) {
	root := t.TempDir()

	records := map[string]Metadata{
		"wren/XC1": {
			SourceName: "train_audio/wren/XC1.wav", CensSampleRate: 10,
			MatrixProfileWindow: 50, SampleRate: 22050, DurationCens: 312,
			DurationSamples: 689062, DurationSeconds: 31.25,
			Motif0: intPtr(17), Motif1: intPtr(141),
		},
		"wren/XC2": {
			SourceName: "train_audio/wren/XC2.wav", CensSampleRate: 10,
			MatrixProfileWindow: 50, SampleRate: 22050, DurationCens: 44,
			DurationSamples: 99225, DurationSeconds: 4.5,
		},
		"robin/XC3": {
			SourceName: "train_audio/robin/XC3.wav", CensSampleRate: 10,
			MatrixProfileWindow: 50, SampleRate: 32000, DurationCens: 120,
			DurationSamples: 384000, DurationSeconds: 12.0,
			Motif0: intPtr(3), Motif1: intPtr(80),
		},
	}
	for rel, md := range records {
		writeTestRecord(t, root, rel, md)
	}

	out := filepath.Join(t.TempDir(), "consolidated.parquet")
	got, err := Consolidate(root, out, 2)
	if err != nil {
		t.Fatalf("Consolidate: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d rows, want %d", len(got), len(records))
	}

	rows, err := parquet.ReadFile[Metadata](out)
	if err != nil {
		t.Fatalf("read parquet: %v", err)
	}
	if len(rows) != len(records) {
		t.Fatalf("parquet has %d rows, want %d", len(rows), len(records))
	}

	// Every row must match its source record exactly.
	for _, row := range rows {
		var want *Metadata
		for _, md := range records {
			if md.SourceName == row.SourceName {
				md := md
				want = &md
				break
			}
		}
		if want == nil {
			t.Fatalf("unexpected row %q", row.SourceName)
		}

		if row.DurationCens != want.DurationCens || row.SampleRate != want.SampleRate ||
			row.DurationSeconds != want.DurationSeconds {
			t.Errorf("%s: row %+v does not match record %+v", row.SourceName, row, *want)
		}
		if (row.Motif0 == nil) != (want.Motif0 == nil) {
			t.Errorf("%s: motif_0 nullability mismatch", row.SourceName)
		}
		if row.Motif0 != nil && want.Motif0 != nil && *row.Motif0 != *want.Motif0 {
			t.Errorf("%s: motif_0 = %d, want %d", row.SourceName, *row.Motif0, *want.Motif0)
		}
	}
}

func TestConsolidateNoRecords(t *testing.T) {
	out := filepath.Join(t.TempDir(), "consolidated.parquet")

	_, err := Consolidate(t.TempDir(), out, 2)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("got %v, want ConfigurationError", err)
	}
}

func TestConsolidateUnreadableRecord(t *testing.T) {
	root := t.TempDir()
	writeTestRecord(t, root, "wren/XC1", Metadata{SourceName: "train_audio/wren/XC1.wav"})

	dir := filepath.Join(root, "wren", "XC2")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, metadataFileName), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(t.TempDir(), "consolidated.parquet")
	if _, err := Consolidate(root, out, 2); err == nil {
		t.Fatal("expected error for unreadable record")
	}
}

func TestRenderHead(t *testing.T) {
	records := []Metadata{
		{SourceName: "train_audio/wren/XC1.wav", DurationSeconds: 31.25, Motif0: intPtr(17), Motif1: intPtr(141)},
		{SourceName: "train_audio/wren/XC2.wav", DurationSeconds: 4.5},
	}

	rendered := RenderHead(records, 5)

	if !strings.Contains(rendered, "source_name") {
		t.Error("header missing")
	}
	if !strings.Contains(rendered, "XC1.wav") || !strings.Contains(rendered, "XC2.wav") {
		t.Error("rows missing")
	}
	if !strings.Contains(rendered, "null") {
		t.Error("null motif not rendered")
	}
	if !strings.Contains(rendered, "141") {
		t.Error("motif index not rendered")
	}
}
