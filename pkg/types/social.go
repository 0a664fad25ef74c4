package types

import (
	"database/sql/driver"
	"fmt"
)

// Social mirrors the social_t composite Postgres type carrying the profile
// links tracked for contacts and employees.
type Social struct {
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	TikTok    *string `json:"tiktok,omitempty"`
	Snapchat  *string `json:"snapchat,omitempty"`
	YouTube   *string `json:"youtube,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
}

func (s Social) Value() (driver.Value, error) {
	parts := []string{
		quoteCompositeNullable(s.Facebook),
		quoteCompositeNullable(s.Instagram),
		quoteCompositeNullable(s.TikTok),
		quoteCompositeNullable(s.Snapchat),
		quoteCompositeNullable(s.YouTube),
		quoteCompositeNullable(s.Twitter),
	}
	return "(" + joinComposite(parts) + ")", nil
}

func (s *Social) Scan(value interface{}) error {
	if value == nil {
		*s = Social{}
		return nil
	}

	raw, ok := toString(value)
	if !ok {
		return fmt.Errorf("social: unsupported scan type %T", value)
	}

	fields, err := parseComposite(raw, 6)
	if err != nil {
		return err
	}

	s.Facebook = newCompositeNullable(fields[0])
	s.Instagram = newCompositeNullable(fields[1])
	s.TikTok = newCompositeNullable(fields[2])
	s.Snapchat = newCompositeNullable(fields[3])
	s.YouTube = newCompositeNullable(fields[4])
	s.Twitter = newCompositeNullable(fields[5])

	return nil
}

func joinComposite(parts []string) string {
	out := ""
	for i, part := range parts {
		if i > 0 {
			out += ","
		}
		out += part
	}
	return out
}
