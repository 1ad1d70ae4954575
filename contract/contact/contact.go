// Package contact is the contact plugin contract.
package contact

import (
	rowskema "github.com/reoring/rowskema"
	"github.com/reoring/rowskema/codec"
)

// PhoneNumber is one entry of the phone_numbers list.
type PhoneNumber struct {
	Number string `json:"number"`
	Type   string `json:"type,omitempty"`
}

// EmailAddress is one entry of the email_addresses list.
type EmailAddress struct {
	Address string `json:"address"`
	Type    string `json:"type,omitempty"`
}

// PostalAddress is one entry of the postal_addresses list.
type PostalAddress struct {
	Address string `json:"address"`
	Type    string `json:"type,omitempty"`
}

// CustomAction is an app specific action (messenger chat, video call, ...).
type CustomAction struct {
	Label       string `json:"label"`
	URI         string `json:"uri"`
	PackageName string `json:"package_name,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

var (
	ID              = rowskema.NewColumn("id", rowskema.Text())
	URI             = rowskema.NewColumn("uri", rowskema.Text())
	DisplayName     = rowskema.NewColumn("display_name", rowskema.Text())
	PhoneNumbers    = rowskema.NewColumn("phone_numbers", codec.List[PhoneNumber]())
	EmailAddresses  = rowskema.NewColumn("email_addresses", codec.List[EmailAddress]())
	PostalAddresses = rowskema.NewColumn("postal_addresses", codec.List[PostalAddress]())
	CustomActions   = rowskema.NewColumn("custom_actions", codec.List[CustomAction]())
	PhotoURI        = rowskema.NewColumn("photo_uri", rowskema.Text())

	ContactColumns = rowskema.NewSchema("contact.contacts",
		ID, URI, DisplayName, PhoneNumbers, EmailAddresses, PostalAddresses,
		CustomActions, PhotoURI,
	)
)

// Contact is a contact as exchanged with a plugin.
type Contact struct {
	ID              string
	URI             string
	DisplayName     string
	PhoneNumbers    []PhoneNumber
	EmailAddresses  []EmailAddress
	PostalAddresses []PostalAddress
	CustomActions   []CustomAction
	PhotoURI        string
}

func EncodeContacts(contacts []Contact) *rowskema.Table {
	return rowskema.BuildRows(ContactColumns, contacts, func(w *rowskema.RowWriter, c Contact) {
		ID.Set(w, c.ID)
		URI.Set(w, c.URI)
		DisplayName.Set(w, c.DisplayName)
		PhoneNumbers.Set(w, c.PhoneNumbers)
		EmailAddresses.Set(w, c.EmailAddresses)
		PostalAddresses.Set(w, c.PostalAddresses)
		CustomActions.Set(w, c.CustomActions)
		if c.PhotoURI != "" {
			PhotoURI.Set(w, c.PhotoURI)
		}
	})
}

// DecodeContacts skips rows without id, uri or display name. Missing lists
// decode as nil.
func DecodeContacts(rs rowskema.RowSet) ([]Contact, error) {
	var out []Contact
	err := rowskema.WithColumns(rs, ContactColumns, func(sc *rowskema.Scope) error {
		for sc.Next() {
			id, ok := ID.Get(sc)
			if !ok {
				continue
			}
			uri, ok := URI.Get(sc)
			if !ok {
				continue
			}
			name, ok := DisplayName.Get(sc)
			if !ok {
				continue
			}
			out = append(out, Contact{
				ID:              id,
				URI:             uri,
				DisplayName:     name,
				PhoneNumbers:    PhoneNumbers.Or(sc, nil),
				EmailAddresses:  EmailAddresses.Or(sc, nil),
				PostalAddresses: PostalAddresses.Or(sc, nil),
				CustomActions:   CustomActions.Or(sc, nil),
				PhotoURI:        PhotoURI.Or(sc, ""),
			})
		}
		return nil
	})
	return out, err
}
