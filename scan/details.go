package scan

import "maps"

// Details is a sealed interface with one concrete struct per Type. It gives
// consumers a typed view of Payload.Fields; a type switch over the variants
// below covers every kind of scan.
type Details interface {
	details()
	Kind() Type
}

// URLDetails describes a web link.
type URLDetails struct {
	URL  string
	Host string
	Path string
}

// WiFiDetails describes a network join configuration.
type WiFiDetails struct {
	SSID     string
	Security string // WPA, WEP, nopass, or empty when unspecified
	Password string
	Hidden   string
}

// ContactDetails holds the vCard properties the classifier extracts.
type ContactDetails struct {
	FullName string
	Name     string
	Phone    string
	Email    string
	Org      string
	Title    string
	URL      string
	Address  string
}

// DisplayName returns FN, falling back to the assembled N property.
func (c ContactDetails) DisplayName() string {
	return firstNonEmpty(c.FullName, c.Name)
}

// PaymentDetails is a UPI payment request. Params holds every query
// parameter, including the well-known ones mirrored into named fields.
type PaymentDetails struct {
	PayeeAddress string // pa
	PayeeName    string // pn
	Amount       string // am
	Note         string // tn
	Params       map[string]string
}

// EmailDetails is a mailto: link. Params holds every decoded query pair.
type EmailDetails struct {
	Address string
	Subject string
	Body    string
	Params  map[string]string
}

// PhoneDetails is a tel: link with whitespace removed.
type PhoneDetails struct {
	Number string
}

// SMSDetails is an sms:/smsto: link.
type SMSDetails struct {
	Number  string
	Message string
}

// GeoDetails keeps coordinates as scanned; they are not validated.
type GeoDetails struct {
	Lat string
	Lon string
	Raw string
}

// TextDetails is the fallback for anything unrecognized.
type TextDetails struct {
	Text string
}

func (URLDetails) details()     {}
func (WiFiDetails) details()    {}
func (ContactDetails) details() {}
func (PaymentDetails) details() {}
func (EmailDetails) details()   {}
func (PhoneDetails) details()   {}
func (SMSDetails) details()     {}
func (GeoDetails) details()     {}
func (TextDetails) details()    {}

func (URLDetails) Kind() Type     { return TypeURL }
func (WiFiDetails) Kind() Type    { return TypeWiFi }
func (ContactDetails) Kind() Type { return TypeContact }
func (PaymentDetails) Kind() Type { return TypePayment }
func (EmailDetails) Kind() Type   { return TypeEmail }
func (PhoneDetails) Kind() Type   { return TypePhone }
func (SMSDetails) Kind() Type     { return TypeSMS }
func (GeoDetails) Kind() Type     { return TypeGeo }
func (TextDetails) Kind() Type    { return TypeText }

// Details builds the typed variant for the payload's Type. Unknown types
// (possible only for hand-edited history) are treated as Text.
func (p Payload) Details() Details {
	return detailsFor(p.Type, p.Fields)
}

func detailsFor(t Type, f map[string]string) Details {
	switch t {
	case TypeURL:
		return URLDetails{URL: f["url"], Host: f["host"], Path: f["path"]}
	case TypeWiFi:
		return WiFiDetails{SSID: f["ssid"], Security: f["security"], Password: f["password"], Hidden: f["hidden"]}
	case TypeContact:
		return ContactDetails{
			FullName: f["fullName"],
			Name:     f["name"],
			Phone:    f["phone"],
			Email:    f["email"],
			Org:      f["org"],
			Title:    f["title"],
			URL:      f["url"],
			Address:  f["address"],
		}
	case TypePayment:
		return PaymentDetails{PayeeAddress: f["pa"], PayeeName: f["pn"], Amount: f["am"], Note: f["tn"], Params: maps.Clone(f)}
	case TypeEmail:
		return EmailDetails{Address: f["email"], Subject: f["subject"], Body: f["body"], Params: maps.Clone(f)}
	case TypePhone:
		return PhoneDetails{Number: f["number"]}
	case TypeSMS:
		return SMSDetails{Number: f["number"], Message: f["message"]}
	case TypeGeo:
		return GeoDetails{Lat: f["lat"], Lon: f["lon"], Raw: f["raw"]}
	default:
		return TextDetails{Text: f["text"]}
	}
}
