package generator

import (
	"encoding/xml"
	"fmt"
	"io"
)

// GoogleBaseNamespace is namespace of Google Base feed extension elements.
const GoogleBaseNamespace = "http://base.google.com/ns/1.0"

const (
	channelTitle       = "Google Base feed"
	channelLink        = "http://base.google.com/base/"
	channelDescription = "Information about products"
)

// cdata is element content written as CDATA section.
type cdata struct {
	Value string `xml:",cdata"`
}

func newCDATA(value string) *cdata {
	return &cdata{Value: value}
}

// item is single feed item. Fields are written in declaration order, nil and empty optional fields are omitted.
type item struct {
	XMLName               xml.Name `xml:"item"`
	ID                    string   `xml:"g:id"`
	Title                 cdata    `xml:"title"`
	Description           cdata    `xml:"description"`
	GoogleProductCategory cdata    `xml:"g:google_product_category"`
	ProductType           *cdata   `xml:"g:product_type"`
	Link                  string   `xml:"link"`
	ImageLink             string   `xml:"g:image_link"`
	AdditionalImageLinks  []string `xml:"g:additional_image_link"`
	Condition             string   `xml:"g:condition"`
	ExpirationDate        string   `xml:"g:expiration_date"`
	Availability          string   `xml:"g:availability"`
	Price                 string   `xml:"g:price"`
	GTIN                  *cdata   `xml:"g:gtin"`
	Brand                 *cdata   `xml:"g:brand"`
	MPN                   *cdata   `xml:"g:mpn"`
	IdentifierExists      string   `xml:"g:identifier_exists,omitempty"`
	Gender                *cdata   `xml:"g:gender"`
	AgeGroup              *cdata   `xml:"g:age_group"`
	Color                 *cdata   `xml:"g:color"`
	Size                  *cdata   `xml:"g:size"`
	ShippingWeight        string   `xml:"g:shipping_weight,omitempty"`
	ShippingLength        string   `xml:"g:shipping_length,omitempty"`
	ShippingWidth         string   `xml:"g:shipping_width,omitempty"`
	ShippingHeight        string   `xml:"g:shipping_height,omitempty"`
}

// feedWriter streams RSS 2.0 document with Google Base items.
type feedWriter struct {
	enc     *xml.Encoder
	rss     xml.StartElement
	channel xml.StartElement
	items   int
}

func newFeedWriter(w io.Writer) *feedWriter {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	return &feedWriter{
		enc: enc,
		rss: xml.StartElement{
			Name: xml.Name{Local: "rss"},
			Attr: []xml.Attr{
				{Name: xml.Name{Local: "version"}, Value: "2.0"},
				{Name: xml.Name{Local: "xmlns:g"}, Value: GoogleBaseNamespace},
			},
		},
		channel: xml.StartElement{Name: xml.Name{Local: "channel"}},
	}
}

// start writes xml declaration, rss and channel headers.
func (f *feedWriter) start() error {
	err := f.enc.EncodeToken(xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="utf-8"`)})
	if err != nil {
		return fmt.Errorf("can't write xml declaration: %w", err)
	}

	if err := f.enc.EncodeToken(f.rss); err != nil {
		return fmt.Errorf("can't write rss element: %w", err)
	}

	if err := f.enc.EncodeToken(f.channel); err != nil {
		return fmt.Errorf("can't write channel element: %w", err)
	}

	for _, el := range [][2]string{
		{"title", channelTitle},
		{"link", channelLink},
		{"description", channelDescription},
	} {
		if err := f.enc.EncodeElement(el[1], xml.StartElement{Name: xml.Name{Local: el[0]}}); err != nil {
			return fmt.Errorf("can't write channel %s: %w", el[0], err)
		}
	}

	return f.enc.Flush()
}

// write writes single item and flushes it to underlying writer.
func (f *feedWriter) write(it *item) error {
	if err := f.enc.Encode(it); err != nil {
		return fmt.Errorf("can't write item %s: %w", it.ID, err)
	}

	if err := f.enc.Flush(); err != nil {
		return fmt.Errorf("can't flush item %s: %w", it.ID, err)
	}

	f.items++

	return nil
}

// end closes channel and rss elements.
func (f *feedWriter) end() error {
	if err := f.enc.EncodeToken(f.channel.End()); err != nil {
		return fmt.Errorf("can't close channel element: %w", err)
	}

	if err := f.enc.EncodeToken(f.rss.End()); err != nil {
		return fmt.Errorf("can't close rss element: %w", err)
	}

	return f.enc.Close()
}
