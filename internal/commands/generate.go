package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/typegen/compiler"
	"github.com/syssam/typegen/compiler/gen"
	"github.com/syssam/typegen/internal/logging"
)

type generateOptions struct {
	pkg     string
	layout  string
	skip    []string
	workers int
	watch   bool
}

func registerGenerateCmd(parent *cobra.Command) {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <schema> <outdir>",
		Short: "Generate the model of a schema",
		Long: `Generate Go structs for the types of a schema document.

The schema is a file path, a file:// URI or an http(s):// URL. Each namespace
becomes a package below outdir unless the flat layout is used.`,
		Example: `  # Generate into ./model
  typegen generate schema/city.yaml model --package example.com/city/model

  # Put every class into one package and leave out a type
  typegen generate schema/city.yaml model --layout flat --skip-type ArcType

  # Regenerate whenever the schema changes
  typegen generate schema/city.yaml model --watch`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Import path of the generated root package")
	cmd.Flags().StringVar(&opts.layout, "layout", "namespace", "Package layout (namespace, flat)")
	cmd.Flags().StringArrayVar(&opts.skip, "skip-type", nil, "Local name of a type to leave out (repeatable)")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Number of files written in parallel (default GOMAXPROCS)")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when the schema file changes")

	parent.AddCommand(cmd)
}

func runGenerate(ctx context.Context, location, outdir string, opts *generateOptions) error {
	layout, err := gen.ParseLayout(opts.layout)
	if err != nil {
		return err
	}
	options := []gen.Option{gen.WithTarget(outdir), gen.WithLayout(layout)}
	if opts.pkg != "" {
		options = append(options, gen.WithPackage(opts.pkg))
	}
	if len(opts.skip) > 0 {
		options = append(options, gen.WithSkipTypes(opts.skip...))
	}
	if opts.workers != 0 {
		options = append(options, gen.WithWorkers(opts.workers))
	}
	cfg, err := gen.NewConfig(options...)
	if err != nil {
		return err
	}
	run := func(ctx context.Context) error {
		return compiler.GenerateConfig(ctx, location, cfg)
	}
	if !opts.watch {
		return run(ctx)
	}
	return watch(ctx, location, run)
}

// watch runs gen once and again on every write to the schema file,
// until ctx is done. Failed runs are logged and do not stop watching.
func watch(ctx context.Context, location string, run func(context.Context) error) error {
	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		if u.Scheme != "file" {
			return fmt.Errorf("cannot watch %s: only local files can be watched", location)
		}
		location = filepath.FromSlash(u.Path)
	}
	file, err := filepath.Abs(location)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// Editors replace files on save, so watch the directory.
	if err := w.Add(filepath.Dir(file)); err != nil {
		return err
	}

	regenerate := func() {
		if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Str("schema", file).Msg("generation failed")
		}
	}
	regenerate()
	logging.Info().Str("schema", file).Msg("watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != file || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			logging.Debug().Str("event", ev.Op.String()).Msg("schema changed")
			regenerate()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logging.Warn().Err(err).Msg("watch error")
		}
	}
}
