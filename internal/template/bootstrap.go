package template

// Mimetype is the literal content of the OCF marker file. It must be the
// first physical entry of every archive and stored without compression.
const Mimetype = "application/epub+zip"

// Well-known archive paths for the bootstrap file set.
const (
	MimetypePath  = "mimetype"
	ContainerPath = "META-INF/container.xml"
	PackagePath   = "OEBPS/content.opf"
	NavPath       = "OEBPS/toc.ncx"
)

// PackageMediaType is the media-type the container descriptor declares for
// the package manifest.
const PackageMediaType = "application/oebps-package+xml"

var containerTemplate = &Template{
	Name: ContainerPath,
	Root: &Node{
		Tag: "container",
		Attrs: []Attr{
			{Name: "version", Value: "1.0"},
			{Name: "xmlns", Value: "urn:oasis:names:tc:opendocument:xmlns:container"},
		},
		Children: []*Node{
			{
				Tag: "rootfiles",
				Children: []*Node{
					{
						Tag: "rootfile",
						Attrs: []Attr{
							{Name: "full-path", Value: Slot},
							{Name: "media-type", Value: PackageMediaType},
						},
					},
				},
			},
		},
	},
}

var packageTemplate = &Template{
	Name: PackagePath,
	Root: &Node{
		Tag: "package",
		Attrs: []Attr{
			{Name: "xmlns", Value: "http://www.idpf.org/2007/opf"},
			{Name: "version", Value: Slot},
			{Name: "unique-identifier", Value: "bookid"},
		},
		Children: []*Node{
			{
				Tag: "metadata",
				Attrs: []Attr{
					{Name: "xmlns:dc", Value: "http://purl.org/dc/elements/1.1/"},
					{Name: "xmlns:opf", Value: "http://www.idpf.org/2007/opf"},
				},
				Children: []*Node{
					{
						Tag: "dc:identifier",
						Attrs: []Attr{
							{Name: "id", Value: "bookid"},
							{Name: "opf:scheme", Value: "UUID"},
						},
						Text: Slot,
					},
					{
						Tag: "meta",
						Attrs: []Attr{
							{Name: "name", Value: "generator"},
							{Name: "content", Value: Slot},
						},
					},
					{Tag: "dc:title", Text: Slot},
					{Tag: "dc:language", Text: "en"},
				},
			},
			{Tag: "manifest"},
			{Tag: "spine", Attrs: []Attr{{Name: "toc", Value: "ncx"}}},
		},
	},
}

var navTemplate = &Template{
	Name:    NavPath,
	Doctype: `<!DOCTYPE ncx PUBLIC "-//NISO//DTD ncx 2005-1//EN" "http://www.daisy.org/z3986/2005/ncx-2005-1.dtd">`,
	Root: &Node{
		Tag: "ncx",
		Attrs: []Attr{
			{Name: "xmlns", Value: "http://www.daisy.org/z3986/2005/ncx/"},
			{Name: "version", Value: "2005-1"},
		},
		Children: []*Node{
			{
				Tag: "head",
				Children: []*Node{
					ncxMeta("dtb:uid", Slot),
					ncxMeta("dtb:depth", "0"),
					ncxMeta("dtb:totalPageCount", "0"),
					ncxMeta("dtb:maxPageNumber", "0"),
				},
			},
			{
				Tag:      "docTitle",
				Children: []*Node{{Tag: "text", Text: Slot}},
			},
			{Tag: "navMap"},
		},
	},
}

func ncxMeta(name, content string) *Node {
	return &Node{
		Tag: "meta",
		Attrs: []Attr{
			{Name: "name", Value: name},
			{Name: "content", Value: content},
		},
	}
}

// Container returns the container descriptor template.
//
// Slot order: package manifest path.
func Container() *Template { return containerTemplate }

// Package returns the OPF package manifest template. Both format versions
// share the skeleton; the version string is the first slot.
//
// Slot order: format version, unique identifier, generator signature, title.
func Package() *Template { return packageTemplate }

// Nav returns the NCX navigation skeleton with zeroed page and depth
// metadata and an empty navigation map as extension points.
//
// Slot order: unique identifier, title.
func Nav() *Template { return navTemplate }
