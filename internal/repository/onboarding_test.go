package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()
	d, err := OpenSQLite(ctx, "", slog.Default())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { d.Close(slog.Default()) })
	if err := EnsureSchema(ctx, d); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return d
}

// seedUsecase inserts a use case and its five milestones. Values are keyed by
// column name, or "table.column" where a name exists in several tables.
func seedUsecase(t *testing.T, d *Database, id int, updatedAt, milestone string, values map[string]string) {
	t.Helper()
	ctx := context.Background()
	for _, tbl := range onboardingTables {
		cols := []string{"id", "is_active"}
		args := []any{id, "1"}
		if tbl.name != "usecase" {
			cols = append(cols, "usecase_id")
			args = append(args, id)
		}
		for _, c := range tbl.columns {
			v, ok := values[tbl.name+"."+c]
			if !ok {
				v, ok = values[c]
			}
			switch {
			case tbl.name == "usecase" && c == "updated_at":
				v, ok = updatedAt, true
			case tbl.name == "usecase" && c == "current_milestone":
				v, ok = milestone, true
			}
			if !ok {
				continue
			}
			cols = append(cols, c)
			args = append(args, v)
		}
		marks := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
		stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", tbl.name, strings.Join(cols, ", "), marks)
		if _, err := d.DB.ExecContext(ctx, stmt, args...); err != nil {
			t.Fatalf("insert %s: %v", tbl.name, err)
		}
	}
}

func TestFetchBatchFiltersAndProjects(t *testing.T) {
	d := openTestDB(t)
	seedUsecase(t, d, 1, "2024-03-09 10:15:00", "0", map[string]string{
		"reg_mobile_number":        "9876543210",
		"merchant_entered_otp":     "4321",
		"milestone2.rich_card_img": "https://cdn.example.com/pan.png",
		"milestone4.rich_card_img": "https://cdn.example.com/po.png",
		"api_pdf_url":              "https://cdn.example.com/api.pdf",
	})
	seedUsecase(t, d, 2, "2024-03-08 23:59:59", "0", nil) // previous day
	seedUsecase(t, d, 3, "2024-03-09 11:00:00", "3", nil) // not completed

	repo := NewOnboardingRepository(d, time.Second, slog.Default())
	recs, err := repo.FetchBatch(context.Background(), time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), 0, 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 record, got %d", len(recs))
	}
	r := recs[0]
	if r.ID != 1 {
		t.Fatalf("id = %d", r.ID)
	}
	checks := map[string]string{
		"updated_at":        "09/03/2024",
		"reg_mobile_number": "9876543210",
		"otp":               "4321",
		"rich_card_img":     "https://cdn.example.com/pan.png",
		"po_rich_card":      "https://cdn.example.com/po.png",
		"api_pdf_url":       "https://cdn.example.com/api.pdf",
		"landmark":          "",
	}
	for col, want := range checks {
		if got := r.Text(col); got != want {
			t.Fatalf("%s = %q, want %q", col, got, want)
		}
	}
}

func TestFetchBatchPaginationIsExhaustive(t *testing.T) {
	d := openTestDB(t)
	for id := 1; id <= 23; id++ {
		seedUsecase(t, d, id, "2024-03-09 08:00:00", "0", map[string]string{
			"reg_mobile_number": fmt.Sprintf("90000%05d", id),
		})
	}
	repo := NewOnboardingRepository(d, time.Second, slog.Default())
	ctx := context.Background()
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)

	all, err := repo.FetchBatch(ctx, day, 0, 1000)
	if err != nil {
		t.Fatalf("unpaged fetch: %v", err)
	}
	if len(all) != 23 {
		t.Fatalf("unpaged fetch returned %d", len(all))
	}

	var paged []int64
	for offset := 0; ; offset += 5 {
		page, err := repo.FetchBatch(ctx, day, offset, 5)
		if err != nil {
			t.Fatalf("page at %d: %v", offset, err)
		}
		if len(page) == 0 {
			break
		}
		for _, r := range page {
			paged = append(paged, r.ID)
		}
	}

	if len(paged) != len(all) {
		t.Fatalf("paged %d rows, unpaged %d", len(paged), len(all))
	}
	for i := range all {
		if paged[i] != all[i].ID {
			t.Fatalf("row %d: paged id %d, unpaged id %d", i, paged[i], all[i].ID)
		}
	}
	if all[0].ID != 23 || all[len(all)-1].ID != 1 {
		t.Fatalf("expected descending ids, got %d..%d", all[0].ID, all[len(all)-1].ID)
	}
}

func TestOnboardingQueryDialects(t *testing.T) {
	pg := onboardingQuery(Postgres)
	for _, want := range []string{"to_char(u.updated_at, 'DD/MM/YYYY')", "(u.updated_at)::date = $1::text::date", "LIMIT $2 OFFSET $3", "ORDER BY u.id DESC"} {
		if !strings.Contains(pg, want) {
			t.Fatalf("postgres query missing %q:\n%s", want, pg)
		}
	}
	lite := onboardingQuery(SQLite)
	for _, want := range []string{"strftime('%d/%m/%Y', u.updated_at)", "date(u.updated_at) = ?", "LIMIT ? OFFSET ?"} {
		if !strings.Contains(lite, want) {
			t.Fatalf("sqlite query missing %q:\n%s", want, lite)
		}
	}
}

func TestEnsureSchemaRejectsPostgres(t *testing.T) {
	if err := EnsureSchema(context.Background(), &Database{Dialect: Postgres}); err == nil {
		t.Fatalf("expected error for postgres dialect")
	}
}
