//go:build !unix

package launch

import (
	"fmt"

	"github.com/GriffinCanCode/MiraOS/internal/infrastructure/logging"
)

// NewPTY is unavailable without unix pseudo-terminals
func NewPTY(string, int, *logging.Logger) (Strategy, error) {
	return nil, fmt.Errorf("%w: pty strategy requires a unix host", ErrUnsupportedPlatform)
}
