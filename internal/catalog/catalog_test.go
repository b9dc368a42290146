package catalog

import "testing"

func TestLoadEmbeddedCatalog(t *testing.T) {
	cat, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cat.Len() != 12 {
		t.Fatalf("expected 12 tasks, got %d", cat.Len())
	}

	// Display order must match the declared order.
	ids := cat.IDs()
	if ids[0] != "oil_change" || ids[len(ids)-1] != "ac_system_check" {
		t.Fatalf("unexpected task order: first=%q last=%q", ids[0], ids[len(ids)-1])
	}

	apk, ok := cat.ByID("apk")
	if !ok {
		t.Fatal("apk task missing")
	}
	if apk.Cost != 60 {
		t.Fatalf("expected apk cost 60, got %v", apk.Cost)
	}
	if apk.Dynamic {
		t.Fatal("apk must not be dynamically priced")
	}

	for _, id := range []string{"oil_change", "spark_plug_replacement"} {
		task, ok := cat.ByID(id)
		if !ok {
			t.Fatalf("%s task missing", id)
		}
		if !task.Dynamic {
			t.Fatalf("%s must be marked dynamic", id)
		}
		if task.Cost != 0 {
			t.Fatalf("%s flat cost must be 0, got %v", id, task.Cost)
		}
	}
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	cases := map[string]string{
		"empty":         "tasks: []",
		"missing id":    "tasks:\n  - label: x\n    cost: 1",
		"negative cost": "tasks:\n  - id: a\n    label: x\n    cost: -1",
		"duplicate id":  "tasks:\n  - id: a\n    label: x\n    cost: 1\n  - id: a\n    label: y\n    cost: 2",
	}

	for name, raw := range cases {
		if _, err := parse([]byte(raw)); err == nil {
			t.Errorf("%s: expected error, got none", name)
		}
	}
}
