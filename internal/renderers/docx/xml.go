package docx

import "encoding/xml"

// WordprocessingML nodes. Prefixed names are written literally and the
// prefixes are bound on the root element.

type wDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	Body    wBody    `xml:"w:body"`
}

type wBody struct {
	Paragraphs []wParagraph `xml:"w:p"`
	Section    wSection     `xml:"w:sectPr"`
}

type wParagraph struct {
	Props *wParaProps `xml:"w:pPr,omitempty"`
	Run   wRun        `xml:"w:r"`
}

type wParaProps struct {
	Spacing *wSpacing `xml:"w:spacing,omitempty"`
}

type wSpacing struct {
	Before int `xml:"w:before,attr"`
}

type wRun struct {
	Props *wRunProps `xml:"w:rPr,omitempty"`
	Text  wText      `xml:"w:t"`
}

type wRunProps struct {
	Bold   *wOnOff `xml:"w:b,omitempty"`
	Italic *wOnOff `xml:"w:i,omitempty"`
	Size   *wVal   `xml:"w:sz,omitempty"`
	SizeCS *wVal   `xml:"w:szCs,omitempty"`
}

type wOnOff struct{}

type wVal struct {
	Val int `xml:"w:val,attr"`
}

type wText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

// wSection sets a Letter page with 50pt (1000 twip) margins.
type wSection struct {
	PageSize   wPageSize   `xml:"w:pgSz"`
	PageMargin wPageMargin `xml:"w:pgMar"`
}

type wPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type wPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

// Package parts.

type typesXML struct {
	XMLName   xml.Name       `xml:"Types"`
	NS        string         `xml:"xmlns,attr"`
	Defaults  []typeDefault  `xml:"Default"`
	Overrides []typeOverride `xml:"Override"`
}

type typeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type typeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type relationshipsXML struct {
	XMLName       xml.Name       `xml:"Relationships"`
	NS            string         `xml:"xmlns,attr"`
	Relationships []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

type coreProperties struct {
	XMLName  xml.Name `xml:"cp:coreProperties"`
	NSCP     string   `xml:"xmlns:cp,attr"`
	NSDC     string   `xml:"xmlns:dc,attr"`
	NSDCT    string   `xml:"xmlns:dcterms,attr"`
	NSXSI    string   `xml:"xmlns:xsi,attr"`
	Title    string   `xml:"dc:title"`
	Creator  string   `xml:"dc:creator"`
	Created  w3cdtf   `xml:"dcterms:created"`
	Modified w3cdtf   `xml:"dcterms:modified"`
}

type w3cdtf struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}
