package settings

// StoreSettings is the typed view over the settings key-value table. Each
// field maps to one well-known row key.
type StoreSettings struct {
	StoreName        string `json:"store_name"`
	StoreDescription string `json:"store_description"`
	ContactEmail     string `json:"contact_email"`
	ContactPhone     string `json:"contact_phone"`
	WhatsappNumber   string `json:"whatsapp_number"`
	Address          string `json:"address"`
	InstagramURL     string `json:"instagram_url"`
	FacebookURL      string `json:"facebook_url"`
}

const (
	keyStoreName        = "store_name"
	keyStoreDescription = "store_description"
	keyContactEmail     = "contact_email"
	keyContactPhone     = "contact_phone"
	keyWhatsappNumber   = "whatsapp_number"
	keyAddress          = "address"
	keyInstagramURL     = "instagram_url"
	keyFacebookURL      = "facebook_url"
)

func fromRows(rows map[string]string) StoreSettings {
	return StoreSettings{
		StoreName:        rows[keyStoreName],
		StoreDescription: rows[keyStoreDescription],
		ContactEmail:     rows[keyContactEmail],
		ContactPhone:     rows[keyContactPhone],
		WhatsappNumber:   rows[keyWhatsappNumber],
		Address:          rows[keyAddress],
		InstagramURL:     rows[keyInstagramURL],
		FacebookURL:      rows[keyFacebookURL],
	}
}

func (s StoreSettings) toRows() map[string]string {
	return map[string]string{
		keyStoreName:        s.StoreName,
		keyStoreDescription: s.StoreDescription,
		keyContactEmail:     s.ContactEmail,
		keyContactPhone:     s.ContactPhone,
		keyWhatsappNumber:   s.WhatsappNumber,
		keyAddress:          s.Address,
		keyInstagramURL:     s.InstagramURL,
		keyFacebookURL:      s.FacebookURL,
	}
}
