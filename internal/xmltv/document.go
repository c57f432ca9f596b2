package xmltv

import (
	"encoding/xml"
	"strings"
)

// Element preserves an arbitrary XML element verbatim: name, attributes, and
// raw inner content survive an unmarshal/marshal round trip.
type Element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",innerxml"`
}

// Title is a programme title in an optional language.
type Title struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Category is a programme genre tag.
type Category struct {
	Lang  string `xml:"lang,attr,omitempty"`
	Value string `xml:",chardata"`
}

// Icon references poster artwork by URL or local path.
type Icon struct {
	Src    string `xml:"src,attr"`
	Width  string `xml:"width,attr,omitempty"`
	Height string `xml:"height,attr,omitempty"`
}

// Programme is a single guide entry. Children appear in XMLTV DTD order;
// elements the enricher never touches are carried as raw elements.
type Programme struct {
	Start     string `xml:"start,attr"`
	Stop      string `xml:"stop,attr,omitempty"`
	PDCStart  string `xml:"pdc-start,attr,omitempty"`
	VPSStart  string `xml:"vps-start,attr,omitempty"`
	ShowView  string `xml:"showview,attr,omitempty"`
	VideoPlus string `xml:"videoplus,attr,omitempty"`
	Channel   string `xml:"channel,attr"`
	Clumpidx  string `xml:"clumpidx,attr,omitempty"`

	Titles          []Title    `xml:"title"`
	SubTitles       []Element  `xml:"sub-title"`
	Descriptions    []Element  `xml:"desc"`
	Credits         *Element   `xml:"credits"`
	Date            *Element   `xml:"date"`
	Categories      []Category `xml:"category"`
	Keywords        []Element  `xml:"keyword"`
	Language        *Element   `xml:"language"`
	OrigLanguage    *Element   `xml:"orig-language"`
	Length          *Element   `xml:"length"`
	Icons           []Icon     `xml:"icon"`
	URLs            []Element  `xml:"url"`
	Countries       []Element  `xml:"country"`
	EpisodeNums     []Element  `xml:"episode-num"`
	Video           *Element   `xml:"video"`
	Audio           *Element   `xml:"audio"`
	PreviouslyShown *Element   `xml:"previously-shown"`
	Premiere        *Element   `xml:"premiere"`
	LastChance      *Element   `xml:"last-chance"`
	New             *Element   `xml:"new"`
	Subtitles       []Element  `xml:"subtitles"`
	Ratings         []Element  `xml:"rating"`
	StarRatings     []Element  `xml:"star-rating"`
	Reviews         []Element  `xml:"review"`
	Images          []Element  `xml:"image"`

	// Extras captures children outside the DTD vocabulary (provider
	// extensions like x-* elements) so they survive the round trip.
	Extras []Element `xml:",any"`
}

// TV is the XMLTV document root. Doctype holds the document's DOCTYPE line
// verbatim when the input carried one.
type TV struct {
	XMLName           xml.Name `xml:"tv"`
	Doctype           string   `xml:"-"`
	Date              string   `xml:"date,attr,omitempty"`
	SourceInfoURL     string   `xml:"source-info-url,attr,omitempty"`
	SourceInfoName    string   `xml:"source-info-name,attr,omitempty"`
	SourceDataURL     string   `xml:"source-data-url,attr,omitempty"`
	GeneratorInfoName string   `xml:"generator-info-name,attr,omitempty"`
	GeneratorInfoURL  string   `xml:"generator-info-url,attr,omitempty"`

	Channels   []Element    `xml:"channel"`
	Programmes []*Programme `xml:"programme"`
}

// Title returns the programme's first non-empty title, trimmed.
func (p *Programme) Title() string {
	for _, title := range p.Titles {
		if value := strings.TrimSpace(title.Value); value != "" {
			return value
		}
	}
	return ""
}

// HasIcon reports whether the programme already carries artwork.
func (p *Programme) HasIcon() bool {
	return len(p.Icons) > 0
}

// AddIcon appends an icon element pointing at src.
func (p *Programme) AddIcon(src string) {
	p.Icons = append(p.Icons, Icon{Src: src})
}

// CategoryValues returns the programme's category texts lowercased and
// trimmed, in document order.
func (p *Programme) CategoryValues() []string {
	if len(p.Categories) == 0 {
		return nil
	}
	values := make([]string, 0, len(p.Categories))
	for _, category := range p.Categories {
		value := strings.ToLower(strings.TrimSpace(category.Value))
		if value == "" {
			continue
		}
		values = append(values, value)
	}
	return values
}
