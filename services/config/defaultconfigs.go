package config

// Embedded configuration, keyed by device ID. Populate at build time (e.g.
// via code generation) or manually during development.

const cfgPico = `{
  "tacho": {
    "poll_interval_ms": 100,
    "report": true
  },
  "heartbeat": {
    "interval": 2
  }
}`

const cfgHost = `{
  "tacho": {
    "poll_interval_ms": 100,
    "report": true
  },
  "heartbeat": {
    "interval": 10
  }
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
	"host": []byte(cfgHost),
}
