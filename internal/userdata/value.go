package userdata

import "github.com/smurphik/vkts/internal/userdata/storage"

// ParseValue interprets a value token: valid JSON decodes into the document
// value types, anything else is taken as a bare string.
func ParseValue(raw string) any {
	if value, err := storage.DecodeValue([]byte(raw)); err == nil {
		return value
	}
	return raw
}
