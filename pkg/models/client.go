package models

import "time"

// Client is an organisation that commissions projects.
// Names are not unique: distinct clients may share one.
type Client struct {
	Record
	Name               string `json:"name" db:"name"`
	ContactInformation string `json:"contact_information" db:"contact_information"`
}

func NewClient(name, contactInformation string) (*Client, error) {
	c := &Client{Name: name, ContactInformation: contactInformation}
	if err := c.Validate(time.Time{}); err != nil {
		return nil, err
	}
	return c, nil
}

func (Client) TableName() string { return TableClients }

func (c *Client) Validate(time.Time) error {
	return firstErr(
		requiredText("name", c.Name, 50),
		requiredText("contact_information", c.ContactInformation, 50),
	)
}
