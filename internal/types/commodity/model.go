package commodity

// Group is one leaf of the static commodity taxonomy.
type Group struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
}

// Groups returns the reference list. Ids are stable ("001".."050") and the
// list is not user-mutable; callers must not modify the returned slice.
func Groups() []Group {
	return groups
}

var groups = []Group{
	{ID: "001", Category: "IT Hardware", Name: "Desktop Computers"},
	{ID: "002", Category: "IT Hardware", Name: "Notebooks & Tablets"},
	{ID: "003", Category: "IT Hardware", Name: "Monitors & Displays"},
	{ID: "004", Category: "IT Hardware", Name: "Printers & Scanners"},
	{ID: "005", Category: "IT Hardware", Name: "Servers & Storage"},
	{ID: "006", Category: "IT Hardware", Name: "Network Equipment"},
	{ID: "007", Category: "IT Hardware", Name: "Peripherals & Accessories"},
	{ID: "008", Category: "Software & Licenses", Name: "Operating Systems"},
	{ID: "009", Category: "Software & Licenses", Name: "Office & Productivity Software"},
	{ID: "010", Category: "Software & Licenses", Name: "Engineering & CAD Software"},
	{ID: "011", Category: "Software & Licenses", Name: "Cloud Subscriptions & SaaS"},
	{ID: "012", Category: "Software & Licenses", Name: "Security Software"},
	{ID: "013", Category: "IT Services", Name: "Software Development"},
	{ID: "014", Category: "IT Services", Name: "IT Consulting"},
	{ID: "015", Category: "IT Services", Name: "Hosting & Data Center Services"},
	{ID: "016", Category: "IT Services", Name: "IT Support & Maintenance"},
	{ID: "017", Category: "Office Supplies", Name: "Stationery & Paper"},
	{ID: "018", Category: "Office Supplies", Name: "Toner & Ink Cartridges"},
	{ID: "019", Category: "Office Supplies", Name: "Office Furniture"},
	{ID: "020", Category: "Office Supplies", Name: "Kitchen & Break Room Supplies"},
	{ID: "021", Category: "Facility Management", Name: "Cleaning Services"},
	{ID: "022", Category: "Facility Management", Name: "Building Maintenance & Repairs"},
	{ID: "023", Category: "Facility Management", Name: "Security Services"},
	{ID: "024", Category: "Facility Management", Name: "Waste Disposal & Recycling"},
	{ID: "025", Category: "Facility Management", Name: "Heating, Ventilation & Climate"},
	{ID: "026", Category: "Production Materials", Name: "Raw Metals"},
	{ID: "027", Category: "Production Materials", Name: "Plastics & Polymers"},
	{ID: "028", Category: "Production Materials", Name: "Electronic Components"},
	{ID: "029", Category: "Production Materials", Name: "Fasteners & Fittings"},
	{ID: "030", Category: "Production Materials", Name: "Packaging Materials"},
	{ID: "031", Category: "Machinery & Equipment", Name: "Production Machinery"},
	{ID: "032", Category: "Machinery & Equipment", Name: "Hand & Power Tools"},
	{ID: "033", Category: "Machinery & Equipment", Name: "Measurement & Test Equipment"},
	{ID: "034", Category: "Machinery & Equipment", Name: "Laboratory Equipment"},
	{ID: "035", Category: "Machinery & Equipment", Name: "Spare Parts"},
	{ID: "036", Category: "Logistics", Name: "Freight & Shipping"},
	{ID: "037", Category: "Logistics", Name: "Courier & Express Services"},
	{ID: "038", Category: "Logistics", Name: "Warehousing"},
	{ID: "039", Category: "Logistics", Name: "Customs & Import Services"},
	{ID: "040", Category: "Professional Services", Name: "Legal Services"},
	{ID: "041", Category: "Professional Services", Name: "Tax & Audit Services"},
	{ID: "042", Category: "Professional Services", Name: "Recruiting & HR Services"},
	{ID: "043", Category: "Professional Services", Name: "Training & Education"},
	{ID: "044", Category: "Marketing", Name: "Advertising & Media"},
	{ID: "045", Category: "Marketing", Name: "Print & Promotional Materials"},
	{ID: "046", Category: "Marketing", Name: "Events & Trade Shows"},
	{ID: "047", Category: "Travel", Name: "Flights & Rail"},
	{ID: "048", Category: "Travel", Name: "Hotels & Accommodation"},
	{ID: "049", Category: "Travel", Name: "Rental Cars & Local Transport"},
	{ID: "050", Category: "Utilities", Name: "Electricity, Gas & Water"},
}
