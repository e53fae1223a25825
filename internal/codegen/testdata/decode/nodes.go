package decode

import (
	"context"

	"github.com/acme/units/v2"
	"github.com/birdayz/kflow/kchan"
	"gopkg.in/yaml.v3"
)

// Reading turns YAML documents into temperatures.
type Reading struct {
	Docs *kchan.Receiver[yaml.Node]
	Out  *kchan.Sender[units.Celsius]
}

func (r *Reading) Step(_ context.Context, doc yaml.Node) (units.Celsius, error) {
	var c units.Celsius
	if err := doc.Decode(&c); err != nil {
		return 0, err
	}
	return c, nil
}
