package nav

import "encoding/xml"

// xmlTaxpayerRequest is the agent taxpayer-query payload. The agent
// forwards the query to the NAV Online Számla interface and returns NAV's
// answer verbatim.
type xmlTaxpayerRequest struct {
	XMLName  xml.Name    `xml:"xmltaxpayer"`
	Settings xmlSettings `xml:"beallitasok"`
	TaxID    string      `xml:"torzsszam"`
}

type xmlSettings struct {
	AgentKey string `xml:"szamlaagentkulcs"`
}

// xmlQueryTaxpayerResponse mirrors NAV's QueryTaxpayerResponse. The
// document mixes the OSA/3.0/api and OSA/3.0/base namespaces; decoding by
// local element name covers both.
type xmlQueryTaxpayerResponse struct {
	XMLName  xml.Name        `xml:"QueryTaxpayerResponse"`
	Validity bool            `xml:"taxpayerValidity"`
	Data     xmlTaxpayerData `xml:"taxpayerData"`
}

type xmlTaxpayerData struct {
	Name      string             `xml:"taxpayerName"`
	ShortName string             `xml:"taxpayerShortName"`
	TaxNumber xmlTaxNumberDetail `xml:"taxNumberDetail"`
	Addresses []xmlAddressItem   `xml:"taxpayerAddressList>taxpayerAddressItem"`
}

type xmlTaxNumberDetail struct {
	TaxpayerID string `xml:"taxpayerId"`
	VATCode    string `xml:"vatCode"`
	CountyCode string `xml:"countyCode"`
}

type xmlAddressItem struct {
	Type    string     `xml:"taxpayerAddressType"`
	Address xmlAddress `xml:"taxpayerAddress"`
}

type xmlAddress struct {
	PostalCode          string `xml:"postalCode"`
	City                string `xml:"city"`
	StreetName          string `xml:"streetName"`
	PublicPlaceCategory string `xml:"publicPlaceCategory"`
	Number              string `xml:"number"`
	Door                string `xml:"door"`
}
