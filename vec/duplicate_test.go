package vec

import "testing"

// TestDuplicateRowid checks that inserting a rowid twice is rejected. This
// resolves spec.md's open question about re-insert behavior in favor of
// reject rather than silent overwrite; see DESIGN.md.
func TestDuplicateRowid(t *testing.T) {
	db := openTestTable(t, "t7", `{"name":"v","dim":1,"distance_type":"l2"}`, "")
	if _, err := db.Exec(`INSERT INTO t7(rowid, v) VALUES (1, ?)`, blobOf(t, []float32{0})); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO t7(rowid, v) VALUES (1, ?)`, blobOf(t, []float32{1})); err == nil {
		t.Fatalf("duplicate rowid insert: want error, got nil")
	}
}
