package tracking

import (
	"path/filepath"
	"testing"
	"time"

	"go-restaurant-operations/models"
)

func testRecord() OrderRecord {
	return OrderRecord{
		Order_id:     "order-1",
		Order_number: 7,
		Total:        2200,
		Status:       models.StatusPlaced,
	}
}

func TestRememberAndLookup(t *testing.T) {
	store := NewRecoveryStore("")
	store.Remember("token-1", testRecord())

	rec, ok := store.Lookup("token-1")
	if !ok {
		t.Fatal("Lookup() missed a just-remembered record")
	}
	if rec.Order_number != 7 || rec.Total != 2200 || rec.Status != models.StatusPlaced {
		t.Errorf("Lookup() = %+v, want the remembered record", rec)
	}

	if _, ok := store.Lookup("token-other"); ok {
		t.Error("Lookup() returned a record for an unknown token")
	}
}

func TestReconcileUpdatesStatusOnly(t *testing.T) {
	store := NewRecoveryStore("")
	store.Remember("token-1", testRecord())

	rec, ok := store.Reconcile("token-1", models.StatusAccepted)
	if !ok {
		t.Fatal("Reconcile() found no record")
	}
	if rec.Status != models.StatusAccepted {
		t.Errorf("status = %s, want ACCEPTED", rec.Status)
	}
	if rec.Order_id != "order-1" || rec.Order_number != 7 || rec.Total != 2200 {
		t.Errorf("Reconcile() touched identity fields: %+v", rec)
	}
	if rec.Terminal_at != nil {
		t.Error("Terminal_at set for a non-terminal status")
	}
}

func TestReconcileUnknownToken(t *testing.T) {
	store := NewRecoveryStore("")
	if _, ok := store.Reconcile("token-missing", models.StatusReady); ok {
		t.Error("Reconcile() reported success for an unknown token")
	}
}

func TestTerminalRecordRetention(t *testing.T) {
	store := NewRecoveryStore("")
	current := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Remember("token-1", testRecord())
	if _, ok := store.Reconcile("token-1", models.StatusServed); !ok {
		t.Fatal("Reconcile() found no record")
	}

	// still present immediately after reaching terminal
	rec, ok := store.Lookup("token-1")
	if !ok {
		t.Fatal("record removed immediately at terminal status; must be retained")
	}
	if rec.Terminal_at == nil || !rec.Terminal_at.Equal(current) {
		t.Errorf("Terminal_at = %v, want %v", rec.Terminal_at, current)
	}

	// still present just inside the retention window
	current = current.Add(59 * time.Minute)
	if _, ok := store.Lookup("token-1"); !ok {
		t.Error("record swept before the retention window elapsed")
	}

	// gone once the window has elapsed
	current = current.Add(2 * time.Minute)
	if _, ok := store.Lookup("token-1"); ok {
		t.Error("record still present after the retention window elapsed")
	}
}

func TestTerminalTimestampNotRefreshed(t *testing.T) {
	store := NewRecoveryStore("")
	current := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Remember("token-1", testRecord())
	store.Reconcile("token-1", models.StatusCancelled)
	first := current

	// repeated polls keep reporting the terminal status
	current = current.Add(10 * time.Minute)
	rec, ok := store.Reconcile("token-1", models.StatusCancelled)
	if !ok {
		t.Fatal("Reconcile() found no record")
	}
	if !rec.Terminal_at.Equal(first) {
		t.Errorf("Terminal_at moved to %v; retention must count from first terminal observation %v", rec.Terminal_at, first)
	}
}

func TestPersistenceAcrossReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recovery.json")

	store := NewRecoveryStore(path)
	store.Remember("token-1", testRecord())

	// a page reload constructs a fresh store over the same device file
	reloaded := NewRecoveryStore(path)
	rec, ok := reloaded.Lookup("token-1")
	if !ok {
		t.Fatal("reloaded store lost the persisted record")
	}
	if rec.Order_id != "order-1" || rec.Order_number != 7 {
		t.Errorf("reloaded record = %+v, want the persisted one", rec)
	}
}

func TestRememberReplacesPreviousOrder(t *testing.T) {
	store := NewRecoveryStore("")
	store.Remember("token-1", testRecord())

	next := OrderRecord{Order_id: "order-2", Order_number: 8, Total: 500, Status: models.StatusPlaced}
	store.Remember("token-1", next)

	rec, _ := store.Lookup("token-1")
	if rec.Order_id != "order-2" {
		t.Errorf("Lookup() = %+v, want the most recently placed order", rec)
	}
}
