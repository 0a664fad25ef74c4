package types

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/agencydesk/agencydesk-backend/pkg/enums"
)

// PlatformList stores the target platforms of a service line item as a
// comma-joined text column so the same model works on Postgres and SQLite.
type PlatformList []enums.Platform

func (l PlatformList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(l))
	for _, p := range l {
		if !p.IsValid() {
			return nil, fmt.Errorf("platform list: invalid platform %q", p)
		}
		parts = append(parts, string(p))
	}
	return strings.Join(parts, ","), nil
}

func (l *PlatformList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	raw, ok := toString(value)
	if !ok {
		return fmt.Errorf("platform list: unsupported scan type %T", value)
	}
	if strings.TrimSpace(raw) == "" {
		*l = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make(PlatformList, 0, len(parts))
	for _, part := range parts {
		platform, err := enums.ParsePlatform(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		out = append(out, platform)
	}
	*l = out
	return nil
}
