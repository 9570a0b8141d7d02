package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/storage"
)

// IAction is a unit of work executed by an operator worker inside a
// single store transaction. Actions that produce output expose it on
// exported result fields after Perform returns.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
