package constants

// Classification decides which staging subtree an asset lands in.
type Classification string

const (
	ClassDocument Classification = "document"
	ClassImage    Classification = "image"
)

// Dir returns the staging subdirectory for the classification.
func (c Classification) Dir() string {
	if c == ClassDocument {
		return "documents"
	}
	return "images"
}

// AssetField identifies a report column whose cells hold downloadable URLs.
type AssetField string

const (
	FieldAPIPDF       AssetField = "api_pdf_url"
	FieldAgreementPDF AssetField = "pdf_url"
	FieldUdyamPDF     AssetField = "udham_pdf_url"
	FieldPANImage     AssetField = "pan_image"
	FieldRichCardPAN  AssetField = "rich_card_img"
	FieldGSTRichCard  AssetField = "gst_rich_card"
	FieldChequeImage  AssetField = "cheque_image"
	FieldPORichCard   AssetField = "po_rich_card"
)

// AssetSpec is the static configuration of one AssetField.
type AssetSpec struct {
	Field          AssetField
	Header         string
	Classification Classification
}

// AssetFields are processed in this order for every row.
var AssetFields = []AssetSpec{
	{FieldAPIPDF, "API PDF URL", ClassDocument},
	{FieldAgreementPDF, "Agreement PDF URL", ClassDocument},
	{FieldUdyamPDF, "Udyam PDF URL", ClassDocument},
	{FieldPANImage, "PAN Image", ClassImage},
	{FieldRichCardPAN, "Rich Card Image (Pan)", ClassImage},
	{FieldGSTRichCard, "GST Rich Card", ClassImage},
	{FieldChequeImage, "Cheque Image", ClassImage},
	{FieldPORichCard, "PO Rich Card", ClassImage},
}
