package extraction

// merge combines the text-layer and OCR results field-wise.
//
// Rules, in order of specificity:
//   - order_lines: the longer list wins (ties go to the text layer)
//   - vendor_name, department: OCR wins when non-empty, it understands
//     document layout better than a flat text dump
//   - everything else: non-empty wins; when both are set the longer wins,
//     ties go to the text layer
func merge(text, ocr *Result) *Result {
	m := &Result{}

	if len(text.OrderLines) >= len(ocr.OrderLines) {
		m.OrderLines = text.OrderLines
	} else {
		m.OrderLines = ocr.OrderLines
	}

	m.VendorName = preferFirst(ocr.VendorName, text.VendorName)
	m.Department = preferFirst(ocr.Department, text.Department)

	m.VatID = preferLonger(text.VatID, ocr.VatID)
	m.Title = preferLonger(text.Title, ocr.Title)
	m.SuggestedCommodityGroupID = preferLonger(text.SuggestedCommodityGroupID, ocr.SuggestedCommodityGroupID)

	m.TotalCost = text.TotalCost
	if m.TotalCost == nil {
		m.TotalCost = ocr.TotalCost
	}
	return m
}

func preferFirst(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func preferLonger(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if len(b) > len(a) {
		return b
	}
	return a
}
