package params

import (
	"github.com/pkg/errors"
)

const (
	Mainnet ConfigName = iota
	Minimal
	EndToEnd
)

// ConfigNames provides network configuration names.
var ConfigNames = map[ConfigName]string{
	Mainnet:  "mainnet",
	Minimal:  "minimal",
	EndToEnd: "end-to-end",
}

// ConfigName enum describes the type of known network in use.
type ConfigName int

func (n ConfigName) String() string {
	s, ok := ConfigNames[n]
	if !ok {
		return "undefined"
	}
	return s
}

// ErrUnknownConfig is returned when no preset is registered under a name.
var ErrUnknownConfig = errors.New("unknown config name")

// ByName returns a fresh copy of the preset registered under name.
func ByName(name string) (*BeaconChainConfig, error) {
	switch name {
	case ConfigNames[Mainnet]:
		return MainnetConfig(), nil
	case ConfigNames[Minimal]:
		return MinimalSpecConfig(), nil
	case ConfigNames[EndToEnd]:
		return E2ETestConfig(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownConfig, "%q", name)
	}
}
