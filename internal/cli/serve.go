package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/predict"
	"github.com/ayusman/mudra/internal/server"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var addr, labelsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve gesture predictions over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if labelsPath != "" {
				cfg.Labels.Path = labelsPath
			}
			ctx := cmd.Context()

			st, err := opts.openStore(false)
			if err != nil {
				return err
			}
			defer st.Close()

			templates, err := gesture.LoadTemplates(st)
			if err != nil {
				return fmt.Errorf("load model: %w", err)
			}
			if len(templates) == 0 {
				slog.Warn("Model has no templates; every prediction will be unknown", "model", cfg.Model.Path)
			}

			classifier := gesture.NewTemplateClassifier(templates,
				gesture.WithMaxResults(cfg.Classifier.MaxResults),
				gesture.WithMinScore(cfg.Classifier.MinScore),
			)

			var labels gesture.Labeler
			switch {
			case cfg.Labels.Path == "":
			case cfg.Labels.Watch:
				live, err := gesture.WatchLabels(ctx, cfg.Labels.Path)
				if err != nil {
					return err
				}
				labels = live
				slog.Info("Watching label map", "path", cfg.Labels.Path, "labels", live.Snapshot().Len())
			default:
				m, err := gesture.LoadLabelMap(cfg.Labels.Path)
				if err != nil {
					return err
				}
				labels = m
				slog.Info("Loaded label map", "path", cfg.Labels.Path, "labels", m.Len())
			}

			srv := server.New(server.Config{
				Addr:            cfg.Server.Addr,
				ReadTimeout:     cfg.Server.ReadTimeout.Std(),
				WriteTimeout:    cfg.Server.WriteTimeout.Std(),
				IdleTimeout:     cfg.Server.IdleTimeout.Std(),
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Std(),
				MaxBodyBytes:    cfg.Server.MaxBodyBytes,
				Predictor:       predict.New(classifier, predict.WithLabels(labels)),
				Store:           st,
				Templates:       classifier.Len(),
				Logger:          slog.Default(),
			})
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: :8000)")
	cmd.Flags().StringVar(&labelsPath, "labels", "", "JSON file mapping gesture names to display labels")
	return cmd
}
