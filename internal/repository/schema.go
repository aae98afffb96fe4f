package repository

import (
	"context"
	"fmt"
	"strings"
)

// onboardingTables mirrors the source schema's text columns per table; every
// table also carries id and is_active, milestones carry usecase_id.
var onboardingTables = []struct {
	name    string
	columns []string
}{
	{"usecase", []string{"current_milestone", "updated_at", "api_pdf_url"}},
	{"milestone1", []string{
		"merchant_name", "reg_mobile_number", "form_owner_name", "store_name", "email_id",
		"no_of_outlets", "annual_turn_over", "store_manager_name", "store_manager_phone_number",
	}},
	{"milestone2", []string{
		"pan_image", "pan_no", "udhayam_no", "udhayam_date", "udyam_principle_address", "udyam_principle_state",
		"udyam_address_1", "udyam_address_2", "udyam_city", "udyam_pincode", "udham_pdf_url",
		"trade_name", "selected_gst_number", "fuzzy_score", "legal_name_of_business", "gst_reg_date",
		"constitution_of_business", "gst_state", "gst_address", "gst_status", "gst_city",
		"gst_pincode", "address_1", "address_2", "landmark", "city", "state", "pincode",
		"country", "rich_card_img", "gst_rich_card",
	}},
	{"milestone3", []string{"aadhar_validation", "aadhar_no_masked"}},
	{"milestone4", []string{
		"acc_holder_name", "bank_acc_no", "bank_ifsc_code", "bank_name", "fuzzy_logic_score",
		"cheque_image", "rich_card_img",
	}},
	{"milestone5", []string{"merchant_entered_otp", "otp_validation", "pdf_url"}},
}

// EnsureSchema creates the onboarding tables on an empty SQLite store so the
// pipeline can run locally without the production database.
func EnsureSchema(ctx context.Context, d *Database) error {
	if d.Dialect.Name != SQLite.Name {
		return fmt.Errorf("ensure schema: only supported on sqlite, got %s", d.Dialect.Name)
	}
	for _, t := range onboardingTables {
		cols := []string{"id INTEGER PRIMARY KEY", "is_active TEXT NOT NULL DEFAULT '1'"}
		if t.name != "usecase" {
			cols = append(cols, "usecase_id INTEGER NOT NULL")
		}
		for _, c := range t.columns {
			cols = append(cols, c+" TEXT")
		}
		stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.name, strings.Join(cols, ", "))
		if _, err := d.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create %s: %w", t.name, err)
		}
	}
	return nil
}
