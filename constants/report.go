package constants

// ReportFileName is the rendered table inside each staging cycle.
const ReportFileName = "main_report.xlsx"

// ReportSheet is the sheet the report is written to and read back from.
const ReportSheet = "Report"

// IdentifierColumn is the zero-based column holding the subject's contact
// number (Registered Phone Number). Asset file names are built from the value
// at this position, not from a header lookup, so reordering ReportHeaders
// changes the file names without raising an error.
const IdentifierColumn = 2

// ReportHeaders are the header labels of the rendered table, in column order.
var ReportHeaders = []string{
	"Completed Date", "Merchant Name", "Registered Phone Number", "Name of the Owner", "Name of the Store", "Email ID",
	"Number of Outlets", "Annual Turnover (in Rs)", "Store Manager Name", "Store Manager Phone Number",
	"PAN Image", "PAN No", "Udyam No", "Udyam Date", "Udyam Address", "Udyam State", "Udyam Address1",
	"Udyam Address2", "Udyam City", "Udyam Pincode", "Udyam PDF URL", "Trade Name", "GSTIN",
	"Fuzzy Logic Score (GST)", "Legal Name of Business", "GSTIN Registration Date",
	"Constitution of Business", "GSTIN State", "GSTIN Address", "GSTIN Status", "GSTIN City",
	"GSTIN Pincode", "Address Line 1", "Address Line 2", "Landmark", "City", "State", "Pincode",
	"Country", "Rich Card Image (Pan)", "GST Rich Card", "Aadhaar Validation", "Account Holder Name",
	"Bank Account No", "IFSC Code", "Bank Name", "Fuzzy Logic Score (Bank)", "OTP", "OTP Validation",
	"Masked Aadhaar No", "Cheque Image", "PO Rich Card", "Agreement PDF URL", "API PDF URL",
}

// RecordColumns are the source column names feeding each header, aligned
// index-for-index with ReportHeaders.
var RecordColumns = []string{
	"updated_at", "merchant_name", "reg_mobile_number", "form_owner_name", "store_name", "email_id",
	"no_of_outlets", "annual_turn_over", "store_manager_name", "store_manager_phone_number",
	"pan_image", "pan_no", "udhayam_no", "udhayam_date", "udyam_principle_address", "udyam_principle_state",
	"udyam_address_1", "udyam_address_2", "udyam_city", "udyam_pincode", "udham_pdf_url",
	"trade_name", "selected_gst_number", "fuzzy_score", "legal_name_of_business", "gst_reg_date",
	"constitution_of_business", "gst_state", "gst_address", "gst_status", "gst_city",
	"gst_pincode", "address_1", "address_2", "landmark", "city", "state", "pincode",
	"country", "rich_card_img", "gst_rich_card", "aadhar_validation", "acc_holder_name",
	"bank_acc_no", "bank_ifsc_code", "bank_name", "fuzzy_logic_score", "otp",
	"otp_validation", "aadhar_no_masked", "cheque_image", "po_rich_card",
	"pdf_url", "api_pdf_url",
}
