package services

import (
	"fmt"
	"net/http"
	"strings"

	"cosmossdk.io/math"

	"github.com/stakehub-io/stakehub-client/internal/types"
)

const lamportsPerSol = 1_000_000_000

// maxAmountSol caps user input well below uint64 lamport range.
var maxAmountSol = math.LegacyNewDec(1_000_000_000)

// parseLamports converts a user-entered decimal amount to lamports. Anything
// non-numeric, non-positive, too small to represent or absurdly large is an
// InvalidAmount, rejected before any submission state exists.
func parseLamports(raw string) (uint64, *types.Error) {
	dec, err := math.LegacyNewDecFromStr(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalidAmount(raw)
	}
	if !dec.IsPositive() || dec.GT(maxAmountSol) {
		return 0, invalidAmount(raw)
	}

	lamports := dec.MulInt64(lamportsPerSol).TruncateInt()
	if lamports.IsZero() || !lamports.IsUint64() {
		return 0, invalidAmount(raw)
	}
	return lamports.Uint64(), nil
}

func invalidAmount(raw string) *types.Error {
	return types.NewError(
		http.StatusBadRequest,
		types.InvalidAmount,
		fmt.Errorf("invalid amount %q: a positive numeric amount is required", raw),
	)
}

// formatLamports renders lamports in display units with fixed 4 decimal
// places. Internal representations stay integral; this runs only at the
// presentation boundary.
func formatLamports(lamports uint64) string {
	return fmt.Sprintf("%d.%04d", lamports/lamportsPerSol, (lamports%lamportsPerSol)/100_000)
}
