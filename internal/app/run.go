package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/modloadgo/internal/ctxlog"
)

// Run loads the entry imports through the session and prints each loaded
// module value to the output writer as JSON, in request order.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	entry := a.model.Entry
	if len(a.config.Entry) > 0 {
		entry = a.config.Entry
	}
	if len(entry) == 0 {
		a.logger.Warn("No entry imports configured, nothing to load.")
		return nil
	}

	a.logger.Info("Loading entry imports...", "names", entry)
	err := a.session.Run(ctx, entry, func(modules ...any) {
		for i, mod := range modules {
			encoded, err := json.Marshal(mod)
			if err != nil {
				fmt.Fprintf(a.outW, "%s: %v\n", entry[i], mod)
				continue
			}
			fmt.Fprintf(a.outW, "%s: %s\n", entry[i], encoded)
		}
	})
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	a.logger.Info("All entry imports loaded.")
	a.logger.Debug("App.Run method finished.")
	return nil
}
