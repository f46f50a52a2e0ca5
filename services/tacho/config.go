package tacho

import (
	"encoding/json"

	"motioncode-go/types"
)

// decodeConfig accepts the shapes a config payload arrives in: raw JSON from
// the config service, a decoded map, or the struct itself.
func decodeConfig(src any, dst *types.TachoConfig) error {
	switch v := src.(type) {
	case types.TachoConfig:
		*dst = v
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}
