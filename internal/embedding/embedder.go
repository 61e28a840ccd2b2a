package embedding

import (
	"github.com/cockroachdb/errors"

	"qabot/internal/domain"
	"qabot/internal/embedding/charcode"
)

// New returns the encoder registered under name.
func New(name string, dimension int) (domain.Encoder, error) {
	if dimension <= 0 {
		return nil, errors.Newf("invalid dimension %d", dimension)
	}
	switch name {
	case "charcode", "":
		return charcode.New(dimension), nil
	default:
		return nil, errors.Wrapf(domain.ErrUnknownMetric, "encoder %q", name)
	}
}
