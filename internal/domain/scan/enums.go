package scan

// PageType classifies a scanned page.
type PageType string

// Page types.
const (
	PageTypeNormal      PageType = "Normal"
	PageTypeFrontMatter PageType = "FrontMatter"
	PageTypeBackMatter  PageType = "BackMatter"
	PageTypeInsert      PageType = "Insert"
	PageTypePlate       PageType = "Plate"
)

// PageTypes lists page types in canonical order.
func PageTypes() []string {
	return []string{
		string(PageTypeNormal), string(PageTypeFrontMatter), string(PageTypeBackMatter),
		string(PageTypeInsert), string(PageTypePlate),
	}
}

// PageColor is the color mode a page was scanned in.
type PageColor string

// Page colors.
const (
	PageColorBW        PageColor = "BW"
	PageColorGrayscale PageColor = "Grayscale"
	PageColorColor     PageColor = "Color"
)

// PageColors lists page colors in canonical order.
func PageColors() []string {
	return []string{string(PageColorBW), string(PageColorGrayscale), string(PageColorColor)}
}

// Project is the digitization project a scan came from.
type Project string

// Projects. ProjectMicrofilm is a legacy name kept only as an accepted alias.
const (
	ProjectPHaEDRA    Project = "PHaEDRA"
	ProjectHistorical Project = "Historical Literature"
	ProjectMicrofilm  Project = "Microfilm Scanning"
)

// Projects lists every accepted project spelling, the legacy alias included.
func Projects() []string {
	return []string{string(ProjectPHaEDRA), string(ProjectHistorical), string(ProjectMicrofilm)}
}

// Canonical maps legacy project names to their current name.
func (p Project) Canonical() Project {
	if p == ProjectMicrofilm {
		return ProjectHistorical
	}
	return p
}
