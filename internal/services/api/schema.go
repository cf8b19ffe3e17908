package api

import (
	"context"
	"fmt"

	"producescan/internal/platform/store"

	arepo "producescan/internal/services/audit/repo"
	nrepo "producescan/internal/services/nutrition/repo"
)

// EnsureSchema creates the nutrition and audit tables on the primary sql store
// and the audit table on clickhouse when it is enabled
func EnsureSchema(ctx context.Context, st *store.Store) error {
	if st == nil {
		return nil
	}
	if q := st.Primary(); q != nil {
		nd, ad := nrepo.SQLite, arepo.SQLite
		if st.PG != nil {
			nd, ad = nrepo.Postgres, arepo.Postgres
		}
		if err := nrepo.EnsureSchema(ctx, q, nd); err != nil {
			return fmt.Errorf("nutrition schema: %w", err)
		}
		if err := arepo.EnsureSchema(ctx, q, ad); err != nil {
			return fmt.Errorf("audit schema: %w", err)
		}
	}
	if st.CH != nil {
		if err := arepo.EnsureSchemaCH(ctx, st.CH); err != nil {
			return fmt.Errorf("audit clickhouse schema: %w", err)
		}
	}
	return nil
}
