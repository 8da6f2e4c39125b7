package szamlazz

import "encoding/xml"

// xmlInvoiceRequest is the Agent invoice-generation payload. Element names
// follow the Agent's Hungarian schema.
type xmlInvoiceRequest struct {
	XMLName  xml.Name    `xml:"xmlszamla"`
	Settings xmlSettings `xml:"beallitasok"`
	Header   xmlHeader   `xml:"fejlec"`
	Buyer    xmlBuyer    `xml:"vevo"`
	Items    []xmlItem   `xml:"tetelek>tetel"`
}

type xmlSettings struct {
	AgentKey    string `xml:"szamlaagentkulcs"`
	EInvoice    bool   `xml:"eszamla"`
	DownloadPDF bool   `xml:"szamlaLetoltes"`
}

type xmlHeader struct {
	IssueDate       string `xml:"keltDatum"`
	FulfillmentDate string `xml:"teljesitesDatum"`
	PaymentDueDate  string `xml:"fizetesiHataridoDatum"`
	Proforma        bool   `xml:"dijbekero"`
}

type xmlBuyer struct {
	Name      string `xml:"nev"`
	Postcode  string `xml:"irsz"`
	City      string `xml:"telepules"`
	Address   string `xml:"cim"`
	Email     string `xml:"email,omitempty"`
	TaxNumber string `xml:"adoszam,omitempty"`
}

type xmlItem struct {
	Description  string `xml:"megnevezes"`
	Quantity     string `xml:"mennyiseg"`
	Unit         string `xml:"mennyisegiEgyseg"`
	NetUnitPrice string `xml:"nettoEgysegar"`
	NetAmount    string `xml:"nettoErtek"`
	VATAmount    string `xml:"afaErtek"`
	GrossAmount  string `xml:"bruttoErtek"`
}

// xmlInvoiceResponse is the Agent's answer to a generation request. The
// provider reports failure explicitly through Success plus an error code
// and message, not through the HTTP status.
type xmlInvoiceResponse struct {
	XMLName       xml.Name `xml:"xmlszamlavalasz"`
	Success       bool     `xml:"sikeres"`
	InvoiceNumber string   `xml:"szamlaszam"`
	InvoiceID     string   `xml:"szamlaId"`
	ErrorCode     string   `xml:"hibakod"`
	ErrorMessage  string   `xml:"hibauzenet"`
}

// xmlPDFRequest asks for the PDF of a previously generated invoice.
type xmlPDFRequest struct {
	XMLName       xml.Name `xml:"xmlszamlapdf"`
	AgentKey      string   `xml:"szamlaagentkulcs"`
	InvoiceNumber string   `xml:"szamlaszam"`
}
