package repository

import (
	"fmt"
	"strings"
)

// Dialect captures the SQL differences between the supported sources.
type Dialect struct {
	Name string
	// Placeholder returns the bind marker for the n-th (1-based) argument.
	Placeholder func(n int) string
	// DayFormat renders a timestamp column as DD/MM/YYYY.
	DayFormat func(col string) string
	// DateOf truncates a timestamp column to its calendar date.
	DateOf func(col string) string
	// DateParam converts a YYYY-MM-DD text parameter to a date.
	DateParam func(param string) string
}

var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	DayFormat:   func(col string) string { return fmt.Sprintf("to_char(%s, 'DD/MM/YYYY')", col) },
	DateOf:      func(col string) string { return fmt.Sprintf("(%s)::date", col) },
	DateParam:   func(param string) string { return fmt.Sprintf("%s::text::date", param) },
}

var SQLite = Dialect{
	Name:        "sqlite",
	Placeholder: func(int) string { return "?" },
	DayFormat:   func(col string) string { return fmt.Sprintf("strftime('%%d/%%m/%%Y', %s)", col) },
	DateOf:      func(col string) string { return fmt.Sprintf("date(%s)", col) },
	DateParam:   func(param string) string { return param },
}

// onboardingProjection lists the selected expressions after id and updated_at.
var onboardingProjection = []string{
	"m1.merchant_name", "m1.reg_mobile_number", "m1.form_owner_name", "m1.store_name", "m1.email_id",
	"m1.no_of_outlets", "m1.annual_turn_over", "m1.store_manager_name", "m1.store_manager_phone_number",
	"m2.pan_image", "m2.pan_no", "m2.udhayam_no", "m2.udhayam_date", "m2.udyam_principle_address", "m2.udyam_principle_state",
	"m2.udyam_address_1", "m2.udyam_address_2", "m2.udyam_city", "m2.udyam_pincode", "m2.udham_pdf_url",
	"m2.trade_name", "m2.selected_gst_number", "m2.fuzzy_score", "m2.legal_name_of_business", "m2.gst_reg_date",
	"m2.constitution_of_business", "m2.gst_state", "m2.gst_address", "m2.gst_status", "m2.gst_city",
	"m2.gst_pincode", "m2.address_1", "m2.address_2", "m2.landmark", "m2.city", "m2.state", "m2.pincode",
	"m2.country", "m2.rich_card_img", "m2.gst_rich_card", "m3.aadhar_validation", "m4.acc_holder_name",
	"m4.bank_acc_no", "m4.bank_ifsc_code", "m4.bank_name", "m4.fuzzy_logic_score", "m5.merchant_entered_otp AS otp",
	"m5.otp_validation", "m3.aadhar_no_masked", "m4.cheque_image", "m4.rich_card_img AS po_rich_card",
	"m5.pdf_url", "u.api_pdf_url",
}

// onboardingQuery builds the single paginated query shape: completed,
// active use cases updated on a calendar date, newest id first.
func onboardingQuery(d Dialect) string {
	var b strings.Builder
	b.WriteString("SELECT DISTINCT u.id, ")
	b.WriteString(d.DayFormat("u.updated_at"))
	b.WriteString(" AS updated_at, ")
	b.WriteString(strings.Join(onboardingProjection, ", "))
	b.WriteString(" FROM usecase u")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, " INNER JOIN milestone%d m%d ON m%d.is_active = '1' AND m%d.usecase_id = u.id", i, i, i, i)
	}
	b.WriteString(" WHERE u.is_active = '1' AND u.current_milestone = '0' AND ")
	b.WriteString(d.DateOf("u.updated_at"))
	b.WriteString(" = ")
	b.WriteString(d.DateParam(d.Placeholder(1)))
	b.WriteString(" ORDER BY u.id DESC LIMIT ")
	b.WriteString(d.Placeholder(2))
	b.WriteString(" OFFSET ")
	b.WriteString(d.Placeholder(3))
	return b.String()
}
